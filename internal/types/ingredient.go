// Package types provides type definitions for the structured data passed between FoodFlow pipeline steps.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Quantity holds an ingredient amount that may arrive as a JSON number or as
// free text such as "unlimited".
type Quantity struct {
	Value  float64
	Text   string
	IsText bool
}

// NumberQuantity returns a numeric Quantity.
func NumberQuantity(v float64) Quantity {
	return Quantity{Value: v}
}

// TextQuantity returns a free-text Quantity.
func TextQuantity(s string) Quantity {
	return Quantity{Text: s, IsText: true}
}

// IsZero reports whether the quantity carries no information.
func (q Quantity) IsZero() bool {
	return !q.IsText && q.Value == 0 && q.Text == ""
}

// String renders the quantity for human-readable output.
func (q Quantity) String() string {
	if q.IsText {
		return q.Text
	}
	if q.Value == float64(int64(q.Value)) {
		return fmt.Sprintf("%d", int64(q.Value))
	}
	return fmt.Sprintf("%.2f", q.Value)
}

// MarshalJSON emits the numeric form when the quantity is numeric.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.IsText {
		return json.Marshal(q.Text)
	}
	return json.Marshal(q.Value)
}

// UnmarshalJSON accepts either a number or a string.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*q = Quantity{Value: num}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*q = Quantity{Text: text, IsText: true}
		return nil
	}
	return fmt.Errorf("quantity must be a number or a string, got %s", string(data))
}

// Ingredient is the canonical record for an inventory or expiring item.
//
// Upstream snapshot files are inconsistent about key names (`item` vs `name`,
// `days_to_expire` vs `expires_in_days` vs `days`); UnmarshalJSON maps every
// accepted alias onto this one shape so nothing past the boundary has to know
// about the variants.
type Ingredient struct {
	Name         string   `json:"name"`
	Quantity     Quantity `json:"quantity,omitempty"`
	Unit         string   `json:"unit,omitempty"`
	DaysToExpire *int     `json:"days_to_expire,omitempty"`
}

// UnmarshalJSON adapts the accepted field aliases into the canonical shape.
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	var aux struct {
		Item          string          `json:"item"`
		Name          string          `json:"name"`
		Quantity      json.RawMessage `json:"quantity"`
		Unit          string          `json:"unit"`
		DaysToExpire  *int            `json:"days_to_expire"`
		ExpiresInDays *int            `json:"expires_in_days"`
		Days          *int            `json:"days"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	name := strings.TrimSpace(aux.Item)
	if name == "" {
		name = strings.TrimSpace(aux.Name)
	}
	i.Name = name
	i.Unit = strings.TrimSpace(aux.Unit)

	i.Quantity = Quantity{}
	if len(aux.Quantity) > 0 && string(aux.Quantity) != "null" {
		if err := i.Quantity.UnmarshalJSON(aux.Quantity); err != nil {
			return err
		}
	}

	switch {
	case aux.DaysToExpire != nil:
		i.DaysToExpire = aux.DaysToExpire
	case aux.ExpiresInDays != nil:
		i.DaysToExpire = aux.ExpiresInDays
	case aux.Days != nil:
		i.DaysToExpire = aux.Days
	default:
		i.DaysToExpire = nil
	}
	return nil
}

// Unlimited reports whether the item is effectively non-depletable
// (water, salt, or any quantity marked "unlimited").
func (i Ingredient) Unlimited() bool {
	if i.Quantity.IsText && strings.EqualFold(strings.TrimSpace(i.Quantity.Text), "unlimited") {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(i.Name)) {
	case "water", "salt":
		return true
	}
	return false
}

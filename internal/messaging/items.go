// Package messaging turns final decisions into outbound text: the kitchen
// dispatch for the cook group and WhatsApp-style offers for the sell and
// donate groups.
package messaging

import (
	"fmt"
	"strings"

	"github.com/team4/foodflow/internal/ingredient"
	"github.com/team4/foodflow/internal/types"
)

// Groups holds the decision list regrouped by outbound channel.
type Groups struct {
	SellTarget   string
	SellItems    []string
	DonateTarget string
	DonateItems  []string
}

// GroupDecisions splits the final decisions into the sell and donate batches
// with their targets. The first sell target and the first donation center
// seen win; one run only messages one of each.
func GroupDecisions(decisions []types.Decision) Groups {
	var g Groups
	for _, d := range decisions {
		switch d.Action {
		case types.ActionSell:
			if g.SellTarget == "" && len(d.TargetRestaurants) > 0 {
				g.SellTarget = d.TargetRestaurants[0]
			}
			g.SellItems = append(g.SellItems, d.Item)
		case types.ActionDonate:
			if g.DonateTarget == "" && d.DonationCenter != "" {
				g.DonateTarget = d.DonationCenter
			}
			g.DonateItems = append(g.DonateItems, d.Item)
		}
	}
	return g
}

// ItemLines renders decision items as offer bullet lines, enriched with
// quantity, unit and shelf life from the expiring batch.
func ItemLines(items []string, expiring []types.Ingredient) []string {
	byNorm := make(map[string]types.Ingredient, len(expiring))
	for _, ing := range expiring {
		byNorm[ingredient.Normalize(ing.Name)] = ing
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		ing, ok := byNorm[ingredient.Normalize(item)]
		if !ok {
			lines = append(lines, fmt.Sprintf("- %s", item))
			continue
		}

		var b strings.Builder
		b.WriteString("- ")
		b.WriteString(item)
		if !ing.Quantity.IsZero() {
			b.WriteString(": ")
			b.WriteString(ing.Quantity.String())
			if ing.Unit != "" {
				b.WriteString(" ")
				b.WriteString(ing.Unit)
			}
		}
		if ing.DaysToExpire != nil {
			b.WriteString(fmt.Sprintf(", expires in %d days", *ing.DaysToExpire))
		} else {
			b.WriteString(", expires soon")
		}
		lines = append(lines, b.String())
	}
	return lines
}

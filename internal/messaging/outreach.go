package messaging

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/team4/foodflow/internal/llm"
	"github.com/team4/foodflow/internal/prompts"
)

// outreachTemperature gives the drafts a little warmth without letting the
// wording drift from the offer facts.
const outreachTemperature = 0.4

// phonePlaceholders matches the placeholder shapes models write instead of
// the literal contact number.
var phonePlaceholders = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\[\s*phone\s*number\s*\]`),
	regexp.MustCompile(`(?i)\[\s*insert\s*phone\s*number\s*\]`),
	regexp.MustCompile(`(?i)\[\s*phone\s*\]`),
	regexp.MustCompile(`(?i)\(\s*phone\s*\)`),
	regexp.MustCompile(`(?i)\{\s*phone\s*\}`),
	regexp.MustCompile(`\b(?:XXX-XXX-XXXX|000-000-0000)\b`),
}

// Drafter writes the outbound sell and donation offers.
type Drafter struct {
	client       llm.Client
	brand        string
	city         string
	contactPhone string
}

// NewDrafter wires a message drafter for the given restaurant identity.
func NewDrafter(client llm.Client, brand, city, contactPhone string) *Drafter {
	return &Drafter{client: client, brand: brand, city: city, contactPhone: contactPhone}
}

// DraftSellOffer writes the WhatsApp-style sale offer to a partner restaurant.
func (d *Drafter) DraftSellOffer(ctx context.Context, target string, itemLines []string) (string, error) {
	return d.draft(ctx, "sell_offer", target, itemLines)
}

// DraftDonationOffer writes the donation offer to a soup kitchen.
func (d *Drafter) DraftDonationOffer(ctx context.Context, target string, itemLines []string) (string, error) {
	return d.draft(ctx, "donation_offer", target, itemLines)
}

func (d *Drafter) draft(ctx context.Context, promptKey, target string, itemLines []string) (string, error) {
	if target == "" || len(itemLines) == 0 {
		return "", nil
	}

	template := prompts.MustGet("messages.json", promptKey)
	prompt := prompts.Format(template, map[string]string{
		"Brand":        d.brand,
		"City":         d.city,
		"Target":       target,
		"ItemList":     strings.Join(itemLines, "\n"),
		"ContactPhone": d.contactPhone,
	})

	response, err := d.client.GenerateContent(ctx, prompt, llm.TierStandard, outreachTemperature)
	if err != nil {
		return "", fmt.Errorf("failed to draft %s message: %w", promptKey, err)
	}
	return EnsureContactPhone(strings.TrimSpace(response), d.contactPhone), nil
}

// EnsureContactPhone guarantees the literal contact number appears in the
// message: placeholders get substituted, and a contact line is appended when
// the number is missing entirely.
func EnsureContactPhone(text, phone string) string {
	if phone == "" || strings.Contains(text, phone) {
		return text
	}

	replaced := false
	for _, pat := range phonePlaceholders {
		if pat.MatchString(text) {
			text = pat.ReplaceAllString(text, phone)
			replaced = true
		}
	}
	if !replaced {
		text += fmt.Sprintf("\nContact: %s", phone)
	}
	return text
}

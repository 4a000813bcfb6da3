// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/team4/foodflow/internal/allocation"
	"github.com/team4/foodflow/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExpiringBatch outputs the expiring ingredients for the run.
func (p *Printer) PrintExpiringBatch(batch []types.Ingredient) {
	if len(batch) == 0 {
		return
	}

	var sb strings.Builder
	for _, ing := range batch {
		sb.WriteString(fmt.Sprintf("• %s", ing.Name))
		if !ing.Quantity.IsZero() {
			sb.WriteString(fmt.Sprintf(": %s", ing.Quantity.String()))
			if ing.Unit != "" {
				sb.WriteString(" " + ing.Unit)
			}
		}
		if ing.DaysToExpire != nil {
			sb.WriteString(fmt.Sprintf(" (expires in %d days)", *ing.DaysToExpire))
		}
		sb.WriteString("\n")
	}

	p.printBox(fmt.Sprintf("⏳ EXPIRING BATCH (%d items)", len(batch)), strings.TrimRight(sb.String(), "\n"))
}

// PrintCandidates outputs the ranked recipe candidates.
func (p *Printer) PrintCandidates(candidates []types.CandidateRecipe) {
	if len(candidates) == 0 {
		return
	}

	var sb strings.Builder
	for _, c := range candidates {
		sb.WriteString(fmt.Sprintf("%d. %s\n", c.Rank, c.Title))
		if len(c.MatchedExpiring) > 0 {
			sb.WriteString(fmt.Sprintf("   expiring: %s\n", joinCapped(c.MatchedExpiring)))
		}
		if len(c.Missing) > 0 {
			sb.WriteString(fmt.Sprintf("   missing:  %s\n", joinCapped(c.Missing)))
		}
	}

	p.printBox("🍽️  CANDIDATE RECIPES", strings.TrimRight(sb.String(), "\n"))
}

// PrintRestaurantScores outputs the scored buyer shortlist.
func (p *Printer) PrintRestaurantScores(scores []types.RestaurantScore) {
	if len(scores) == 0 {
		return
	}

	var sb strings.Builder
	for i, s := range scores {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, s.Name))
		if len(s.MatchedIngredients) > 0 {
			sb.WriteString(fmt.Sprintf("   wants: %s\n", joinCapped(s.MatchedIngredients)))
		}
	}

	p.printBox("🏪 RESTAURANT BUYERS", strings.TrimRight(sb.String(), "\n"))
}

// PrintDonationCenter outputs the chosen soup kitchen.
func (p *Printer) PrintDonationCenter(center *types.DonationCenter) {
	if center == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", center.Name))
	if center.Address != "" {
		sb.WriteString(fmt.Sprintf("Address:  %s\n", center.Address))
	}
	sb.WriteString(fmt.Sprintf("Distance: %.2f km", center.DistanceKm))

	p.printBox("🥣 DONATION CENTER", sb.String())
}

// PrintDecisions outputs the final allocation, one line per ingredient.
func (p *Printer) PrintDecisions(decisions []types.Decision) {
	if len(decisions) == 0 {
		return
	}

	var sb strings.Builder
	for _, d := range decisions {
		sb.WriteString(fmt.Sprintf("• %-20s → %s\n", d.Item, d.Action))
	}

	p.printBox(fmt.Sprintf("⚖️  FINAL DECISIONS (%d items)", len(decisions)), strings.TrimRight(sb.String(), "\n"))
}

// PrintSummary outputs the three-group run summary.
func (p *Printer) PrintSummary(summary *allocation.Summary) {
	if summary == nil {
		return
	}
	p.printBox("📋 RUN SUMMARY", strings.Join(summary.Lines(), "\n"))
}

// joinCapped joins up to maxItemsToShow items, noting how many were elided.
func joinCapped(items []string) string {
	if len(items) <= maxItemsToShow {
		return strings.Join(items, ", ")
	}
	shown := strings.Join(items[:maxItemsToShow], ", ")
	return fmt.Sprintf("%s ... and %d more", shown, len(items)-maxItemsToShow)
}

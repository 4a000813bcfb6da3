// Package recipes generates dish candidates from the expiring batch, grounds
// them in the recipe corpus and classifies each dish's ingredient usage.
package recipes

import (
	"fmt"
	"regexp"
	"strings"
)

// Dish is one parsed dish block from the chef model's numbered output.
type Dish struct {
	Title string
	Body  string
}

// Errors for dish parsing.
type DishCountError struct {
	Want int
	Got  int
}

func (e *DishCountError) Error() string {
	return fmt.Sprintf("expected %d dishes, parsed %d", e.Want, e.Got)
}

var (
	dishHeadPattern = regexp.MustCompile(`(?m)^\s*(\d+)\.\s+(?:\*\*(.+?)\*\*|([^\n]+))\s*$`)
	boldPattern     = regexp.MustCompile(`\*\*.*?\*\*`)
	bulletPattern   = regexp.MustCompile(`(?m)^[\s]*[-•*]\s*`)
	rulePattern     = regexp.MustCompile(`---+`)
	dashPattern     = regexp.MustCompile(`[–—−]`)
)

// ParseDishes splits a numbered dish listing ("1. **Title**" followed by
// instructions) into one Dish per block. Plain unbolded titles are accepted.
func ParseDishes(text string) []Dish {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n")

	matches := dishHeadPattern.FindAllStringSubmatchIndex(text, -1)
	dishes := make([]Dish, 0, len(matches))
	for i, m := range matches {
		title := submatch(text, m, 2)
		if title == "" {
			title = submatch(text, m, 3)
		}
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}

		bodyStart := m[1]
		bodyEnd := len(text)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		dishes = append(dishes, Dish{
			Title: title,
			Body:  strings.TrimSpace(text[bodyStart:bodyEnd]),
		})
	}
	return dishes
}

func submatch(text string, m []int, group int) string {
	start, end := m[2*group], m[2*group+1]
	if start < 0 || end < 0 {
		return ""
	}
	return text[start:end]
}

// CleanForRAG strips markdown decoration from a dish block so the retrieval
// query is plain text: the title line stays first, bold markers, bullets and
// horizontal rules go away, and blank lines are dropped.
func CleanForRAG(dish Dish) string {
	content := boldPattern.ReplaceAllString(dish.Body, "")
	content = bulletPattern.ReplaceAllString(content, "")
	content = rulePattern.ReplaceAllString(content, "")

	lines := []string{strings.TrimSpace(dish.Title)}
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// StripDashes replaces en and em dashes with commas; downstream text channels
// render them inconsistently.
func StripDashes(s string) string {
	return dashPattern.ReplaceAllString(s, ", ")
}

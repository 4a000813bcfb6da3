package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Eggplant", "eggplant"},
		{"trims and collapses whitespace", "  baby   spinach \t", "baby spinach"},
		{"strips diacritics", "Crème Fraîche", "creme fraiche"},
		{"diacritic and spacing variants match", " creme fraiche ", "creme fraiche"},
		{"hebrew passes through", "חומוס", "חומוס"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_EquivalentForms(t *testing.T) {
	// Both spellings are the same ingredient.
	assert.Equal(t, Normalize("Crème Fraîche"), Normalize(" creme fraiche "))
}

func TestNormalizeAll(t *testing.T) {
	set := NormalizeAll([]string{"Eggplant", "  eggplant", "Mint", ""})
	assert.Len(t, set, 2)
	assert.True(t, set["eggplant"])
	assert.True(t, set["mint"])
}

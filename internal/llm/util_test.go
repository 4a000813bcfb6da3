package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "object with surrounding prose",
			input:    "Here you go:\n{\"matched_expiring\": [\"mint\"]}\nHope that helps!",
			expected: `{"matched_expiring": ["mint"]}`,
		},
		{
			name:     "array with surrounding prose",
			input:    "Top picks: [{\"name\": \"Bistro X\"}] done.",
			expected: `[{"name": "Bistro X"}]`,
		},
		{
			name:     "nested braces",
			input:    `{"a": {"b": 1}}`,
			expected: `{"a": {"b": 1}}`,
		},
		{
			name:     "braces inside strings ignored",
			input:    `{"reason": "uses {fresh} herbs"}`,
			expected: `{"reason": "uses {fresh} herbs"}`,
		},
		{
			name:     "fenced array",
			input:    "```json\n[1, 2, 3]\n```",
			expected: `[1, 2, 3]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractJSON_Errors(t *testing.T) {
	_, err := ExtractJSON("no structured content here")
	assert.Error(t, err)

	_, err = ExtractJSON(`{"truncated": [1, 2`)
	assert.Error(t, err)
}

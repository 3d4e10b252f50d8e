package services

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]any
	}{
		{
			name:  "valid json",
			input: `{"name":"A","skills":["Go"]}`,
			want:  map[string]any{"name": "A", "skills": []any{"Go"}},
		},
		{
			name:  "fenced with language tag",
			input: "```json\n{\"name\":\"A\"}\n```",
			want:  map[string]any{"name": "A"},
		},
		{
			name:  "fenced without language tag",
			input: "```\n{\"name\":\"A\"}\n```",
			want:  map[string]any{"name": "A"},
		},
		{
			name:  "surrounding prose",
			input: `Here you go: {"name":"A"} hope this helps`,
			want:  map[string]any{"name": "A"},
		},
		{
			name:  "trailing comma",
			input: `{"name":"A","skills":["Go",],}`,
			want:  map[string]any{"name": "A", "skills": []any{"Go"}},
		},
		{
			name:  "prose and trailing comma",
			input: "Sure!\n{\n  \"name\": \"A\",\n}\nThanks",
			want:  map[string]any{"name": "A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RecoverJSON(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecoverJSONFailure(t *testing.T) {
	for _, input := range []string{"no braces at all", "", "[1,2,3]", "} backwards {"} {
		_, err := RecoverJSON(input)
		require.Error(t, err, input)
		assert.True(t, errors.Is(err, ErrUnparsableOutput))

		var recoveryErr *JSONRecoveryError
		require.True(t, errors.As(err, &recoveryErr))
		assert.Equal(t, input, recoveryErr.Original)
	}
}

func TestCleanHTMLFences(t *testing.T) {
	assert.Equal(t, "<!DOCTYPE html><html></html>", CleanHTMLFences("```html\n<!DOCTYPE html><html></html>\n```"))
	assert.Equal(t, "<html></html>", CleanHTMLFences("  <html></html>  "))
	assert.Equal(t, "<html></html>", CleanHTMLFences("```\n<html></html>```"))
}

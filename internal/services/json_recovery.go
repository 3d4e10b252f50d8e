package services

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var trailingCommas = regexp.MustCompile(`,\s*([}\]])`)

type recoveryStrategy struct {
	name    string
	extract func(text string) (string, bool)
}

// The cascade runs in order; the first strategy that yields a JSON object wins.
var recoveryStrategies = []recoveryStrategy{
	{name: "direct", extract: func(text string) (string, bool) { return text, true }},
	{name: "strip_fence", extract: stripCodeFence},
	{name: "brace_slice", extract: braceSlice},
	{name: "trailing_commas", extract: func(text string) (string, bool) {
		slice, ok := braceSlice(text)
		if !ok {
			return "", false
		}
		return trailingCommas.ReplaceAllString(slice, "$1"), true
	}},
}

// RecoverJSON turns possibly-malformed model output into a JSON object.
func RecoverJSON(text string) (map[string]any, error) {
	var lastErr error
	for _, strategy := range recoveryStrategies {
		candidate, ok := strategy.extract(text)
		if !ok {
			continue
		}

		var out map[string]any
		err := json.Unmarshal([]byte(strings.TrimSpace(candidate)), &out)
		if err == nil && out != nil {
			return out, nil
		}
		if err == nil {
			err = errors.New("decoded value is not an object")
		}
		lastErr = errors.Wrapf(err, "strategy %s", strategy.name)
	}

	if lastErr == nil {
		lastErr = errors.New("no strategy applicable")
	}
	return nil, &JSONRecoveryError{Original: text, Cause: lastErr}
}

// stripCodeFence removes a leading ``` (optionally with a language tag) and a trailing ```.
func stripCodeFence(text string) (string, bool) {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") && !strings.HasSuffix(t, "```") {
		return "", false
	}

	if strings.HasPrefix(t, "```") {
		t = strings.TrimPrefix(t, "```")
		if nl := strings.IndexByte(t, '\n'); nl >= 0 && !strings.ContainsAny(t[:nl], "{[") {
			t = t[nl+1:]
		}
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")

	return strings.TrimSpace(t), true
}

// braceSlice returns the text from the first '{' through the last '}'.
func braceSlice(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// CleanHTMLFences strips markdown code fences a model sometimes wraps HTML in.
func CleanHTMLFences(text string) string {
	t := strings.TrimSpace(text)
	for _, prefix := range []string{"```html", "```HTML", "```"} {
		if strings.HasPrefix(t, prefix) {
			t = strings.TrimPrefix(t, prefix)
			break
		}
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}

package scenario

import (
	"encoding/json"
	"regexp"
)

// Generators are asked for bare JSON but routinely wrap it in markdown
// fences or leave trailing commas. Extraction tolerates both; anything
// stricter just turns retryable drift into hard failures.
var (
	// jsonBlockPattern matches JSON inside markdown code blocks: ```json { ... } ```
	jsonBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\{.*\\})\\s*```")
	// jsonObjectPattern matches any JSON object (greedy fallback)
	jsonObjectPattern = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
	// trailingCommaPattern matches trailing commas before ] or }
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// extractJSON pulls the single JSON object out of free-form generator
// output. Returns "" when no object is present.
func extractJSON(content string) string {
	raw := ""
	if matches := jsonBlockPattern.FindStringSubmatch(content); len(matches) > 1 {
		raw = matches[1]
	} else if match := jsonObjectPattern.FindString(content); match != "" {
		raw = match
	}
	if raw == "" || json.Valid([]byte(raw)) {
		return raw
	}
	// The comma fix can touch string content, so it only runs on input that
	// does not already decode
	return trailingCommaPattern.ReplaceAllString(raw, "$1")
}

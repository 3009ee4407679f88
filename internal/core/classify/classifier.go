// Package classify post-processes the document-type classifier endpoint
// output into a clean (label, isFinancial) pair. The provider answers with
// anything from a structured object to a half-serialized JSON blob to free
// text, so the adapter cleans aggressively and falls back to filename
// heuristics when nothing usable remains.
package classify

import (
	"regexp"
	"strings"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
	"github.com/kucp1127/clarityvault-gateway/internal/core/normalize"
)

var typeKeys = []string{"document_type", "documentType", "type"}

// Classify is a pure function of the raw classifier payload, the filename
// fallback, and the fixed pattern table.
func Classify(raw []byte, filename string) domain.ClassificationResult {
	value := normalize.Decode(raw)
	if inner, ok := normalize.UnwrapEnvelope(value); ok {
		value = inner
	}

	var label string
	var financial bool

	switch payload := value.(type) {
	case map[string]any:
		for _, key := range typeKeys {
			if v, ok := payload[key]; ok {
				label = CleanLabel(asText(v))
				break
			}
		}
		financial = isFinancialValue(payload["financial"])
	case string:
		label = CleanLabel(payload)
	}

	if label == "" {
		label = FromFilename(filename)
	}
	return domain.ClassificationResult{Label: label, IsFinancial: financial}
}

// isFinancialValue is deliberately strict: only the literal boolean true or
// the exact string "yes" count.
func isFinancialValue(v any) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		return value == "yes"
	default:
		return false
	}
}

var (
	jsonPunct   = regexp.MustCompile(`[{}",\[\]]`)
	asterisks   = regexp.MustCompile(`\*`)
	jsonWord    = regexp.MustCompile(`(?i)json`)
	typeLabel   = regexp.MustCompile(`(?i)document_type:`)
	finLabel    = regexp.MustCompile(`(?i)financial:`)
	boolWords   = regexp.MustCompile(`(?i)\byes\b|\bno\b|\btrue\b|\bfalse\b`)
	nonWordRune = regexp.MustCompile(`[^\w\s-]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// CleanLabel strips JSON punctuation, markup and label noise from a raw
// document-type string. It returns "" when the cleaned text is empty, too
// short, or still carries serialization artifacts, signalling the caller to
// fall back to the filename heuristic.
func CleanLabel(text string) string {
	clean := strings.TrimSpace(text)
	clean = jsonPunct.ReplaceAllString(clean, "")
	clean = asterisks.ReplaceAllString(clean, "")
	clean = jsonWord.ReplaceAllString(clean, "")
	clean = typeLabel.ReplaceAllString(clean, "")
	clean = finLabel.ReplaceAllString(clean, "")
	clean = boolWords.ReplaceAllString(clean, "")
	clean = nonWordRune.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(whitespace.ReplaceAllString(clean, " "))

	lower := strings.ToLower(clean)
	if len(clean) < 2 || strings.Contains(lower, "undefined") || strings.Contains(lower, "null") {
		return ""
	}
	return TitleCase(clean)
}

// TitleCase uppercases the first letter of every word, including parts after
// a hyphen.
func TitleCase(text string) string {
	runes := []rune(text)
	boundary := true
	for i, r := range runes {
		isWordRune := r == '_' || r >= '0' && r <= '9' ||
			r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
		if boundary && r >= 'a' && r <= 'z' {
			runes[i] = r - 'a' + 'A'
		}
		boundary = !isWordRune
	}
	return string(runes)
}

func asText(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case nil:
		return ""
	default:
		return ""
	}
}

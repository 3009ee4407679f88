// Package normalize reduces the heterogeneous payloads returned by the
// analysis provider to the canonical domain.AnalysisResult. Payloads arrive
// as plain text, JSON text, a nested provider envelope
// (candidates[0].content.parts[0].text), or a flat object; an ordered list
// of shape matchers is applied and the first structural match wins.
// Normalization never fails: malformed sub-structures degrade to omitted
// fields.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
)

// Result normalizes a raw provider response body.
func Result(raw []byte, kind domain.AnalysisKind) domain.AnalysisResult {
	return ResultValue(Decode(raw), kind)
}

// ResultValue normalizes an already-decoded payload value.
func ResultValue(v any, kind domain.AnalysisKind) domain.AnalysisResult {
	switch payload := v.(type) {
	case nil:
		return domain.AnalysisResult{}
	case string:
		if parsed, ok := parseJSON(payload); ok {
			return ResultValue(parsed, kind)
		}
		return domain.AnalysisResult{MainText: payload}
	case map[string]any:
		if inner, ok := UnwrapEnvelope(payload); ok {
			if obj, isObj := inner.(map[string]any); isObj {
				return extractFields(obj, kind)
			}
			if text, isText := inner.(string); isText {
				return domain.AnalysisResult{MainText: text}
			}
			// Inner JSON that is neither object nor text (e.g. a bare
			// array) has no recognized fields; keep it for debugging.
			return domain.AnalysisResult{Extras: map[string]any{"candidates_content": inner}}
		}
		return extractFields(payload, kind)
	default:
		return domain.AnalysisResult{MainText: stringify(v)}
	}
}

// Decode interprets a response body as JSON when possible and as plain text
// otherwise.
func Decode(raw []byte) any {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil
	}
	if parsed, ok := parseJSON(text); ok {
		return parsed
	}
	return text
}

// UnwrapEnvelope extracts the nested text of a provider envelope. When the
// nested text itself parses as JSON the parsed value is returned, otherwise
// the text is returned verbatim. ok is false when v is not an envelope or
// the envelope carries no text.
func UnwrapEnvelope(v any) (any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	candidates, ok := obj["candidates"].([]any)
	if !ok || len(candidates) == 0 {
		return nil, false
	}
	first, ok := candidates[0].(map[string]any)
	if !ok {
		return nil, false
	}
	content, ok := first["content"].(map[string]any)
	if !ok {
		return nil, false
	}
	parts, ok := content["parts"].([]any)
	if !ok || len(parts) == 0 {
		return nil, false
	}
	part, ok := parts[0].(map[string]any)
	if !ok {
		return nil, false
	}
	text, ok := part["text"].(string)
	if !ok || text == "" {
		return nil, false
	}
	if parsed, ok := parseJSON(text); ok {
		return parsed, true
	}
	return text, true
}

// Key precedence for the main content field. Translation payloads name their
// text differently from analysis payloads, so the ordering is kind-dependent.
// The canonical name sits first in both orderings so that re-normalizing an
// already canonical result is the identity.
var (
	mainKeysTranslation = []string{"mainText", "translated_text", "translation", "result", "content", "text", "analysis"}
	mainKeysDefault     = []string{"mainText", "result", "content", "text", "analysis", "translated_text", "translation"}

	termKeys = []struct {
		key    string
		source domain.TermSource
	}{
		{"legal_terms", domain.TermsLegal},
		{"jargon_terms", domain.TermsJargon},
		{"keywords", domain.TermsKeywords},
		{"tags", domain.TermsTags},
	}
)

// recognizedKeys are consumed into canonical fields; everything else is
// copied verbatim into Extras.
var recognizedKeys = map[string]struct{}{
	"result": {}, "content": {}, "text": {}, "analysis": {},
	"translated_text": {}, "translation": {},
	"original_text": {}, "summary": {},
	"key_information": {},
	"legal_terms":     {}, "jargon_terms": {}, "keywords": {}, "tags": {},
	"risks":       {},
	"definitions": {}, "explanations": {},
	"word_count": {}, "character_count": {}, "page_count": {},
	"confidence": {}, "language": {},
	// canonical pass-through names
	"mainText": {}, "originalText": {}, "keyInformation": {},
	"terms": {}, "termSource": {}, "stats": {}, "extras": {},
}

func extractFields(obj map[string]any, kind domain.AnalysisKind) domain.AnalysisResult {
	var out domain.AnalysisResult

	mainKeys := mainKeysDefault
	if kind == domain.KindTranslation {
		mainKeys = mainKeysTranslation
	}
	for _, key := range mainKeys {
		if text, ok := stringField(obj, key); ok {
			out.MainText = text
			break
		}
	}

	if text, ok := stringField(obj, "original_text"); ok {
		out.OriginalText = text
	} else if text, ok := stringField(obj, "originalText"); ok {
		out.OriginalText = text
	}
	if text, ok := stringField(obj, "summary"); ok {
		out.Summary = text
	}

	if v, ok := obj["key_information"]; ok {
		out.KeyInformation = stringList(v)
	} else if v, ok := obj["keyInformation"]; ok {
		out.KeyInformation = stringList(v)
	}

	if v, ok := obj["terms"]; ok {
		out.Terms = termList(v)
		if src, ok := stringField(obj, "termSource"); ok {
			out.TermSource = domain.TermSource(src)
		}
	} else {
		for _, candidate := range termKeys {
			if v, ok := obj[candidate.key]; ok {
				if terms := termList(v); len(terms) > 0 {
					out.Terms = terms
					out.TermSource = candidate.source
					break
				}
			}
		}
	}

	if v, ok := obj["risks"]; ok {
		out.Risks = stringList(v)
	}

	if v, ok := obj["definitions"]; ok {
		out.Definitions = definitionList(v)
	} else if v, ok := obj["explanations"]; ok {
		out.Definitions = definitionList(v)
	}

	out.Stats = extractStats(obj)

	for key, value := range obj {
		if _, known := recognizedKeys[key]; known {
			continue
		}
		if out.Extras == nil {
			out.Extras = map[string]any{}
		}
		out.Extras[key] = value
	}
	if extras, ok := obj["extras"].(map[string]any); ok {
		if out.Extras == nil {
			out.Extras = map[string]any{}
		}
		for key, value := range extras {
			out.Extras[key] = value
		}
	}

	return out
}

func extractStats(obj map[string]any) domain.Stats {
	var stats domain.Stats
	if nested, ok := obj["stats"].(map[string]any); ok {
		stats.WordCount = intField(nested, "wordCount")
		stats.CharacterCount = intField(nested, "characterCount")
		stats.PageCount = intField(nested, "pageCount")
		stats.Confidence = floatField(nested, "confidence")
		stats.Language, _ = stringField(nested, "language")
		return stats
	}
	stats.WordCount = intField(obj, "word_count")
	stats.CharacterCount = intField(obj, "character_count")
	stats.PageCount = intField(obj, "page_count")
	stats.Confidence = floatField(obj, "confidence")
	stats.Language, _ = stringField(obj, "language")
	return stats
}

func parseJSON(text string) (any, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}
	// json.Unmarshal accepts bare literals; only object/array/string forms
	// count as structured payloads here, so "5" or "true" stay plain text.
	// Quoted strings are unwrapped to support JSON-in-JSON payloads.
	if trimmed[0] != '{' && trimmed[0] != '[' && trimmed[0] != '"' {
		return nil, false
	}
	var parsed any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return nil, false
	}
	return parsed, true
}

func stringField(obj map[string]any, key string) (string, bool) {
	v, ok := obj[key]
	if !ok {
		return "", false
	}
	text, ok := v.(string)
	if !ok || text == "" {
		return "", false
	}
	return text, true
}

func intField(obj map[string]any, key string) int {
	switch v := obj[key].(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

func floatField(obj map[string]any, key string) float64 {
	switch v := obj[key].(type) {
	case float64:
		return v
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return 0
}

// stringList wraps a scalar into a single-element list and renders list
// entries as display text.
func stringList(v any) []string {
	switch value := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if text := stringify(item); text != "" {
				out = append(out, text)
			}
		}
		return out
	default:
		if text := stringify(v); text != "" {
			return []string{text}
		}
		return nil
	}
}

// termList is stringList plus the object form {term} / {text} some providers
// emit for term entries.
func termList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return stringList(v)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if obj, isObj := item.(map[string]any); isObj {
			if text, ok := stringField(obj, "term"); ok {
				out = append(out, text)
				continue
			}
			if text, ok := stringField(obj, "text"); ok {
				out = append(out, text)
				continue
			}
		}
		if text := stringify(item); text != "" {
			out = append(out, text)
		}
	}
	return out
}

func definitionList(v any) []domain.Definition {
	items, ok := v.([]any)
	if !ok {
		// A non-list definitions value has no usable entries; omit the
		// field rather than failing the result.
		return nil
	}
	out := make([]domain.Definition, 0, len(items))
	for _, item := range items {
		obj, isObj := item.(map[string]any)
		if !isObj {
			if text := stringify(item); text != "" {
				out = append(out, domain.Definition{Body: text})
			}
			continue
		}
		var def domain.Definition
		def.Term, _ = stringField(obj, "term")
		for _, key := range []string{"definition", "explanation", "description", "body"} {
			if text, ok := stringField(obj, key); ok {
				def.Body = text
				break
			}
		}
		if def.Term == "" && def.Body == "" {
			continue
		}
		out = append(out, def)
	}
	return out
}

func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case map[string]any, []any:
		encoded, err := json.Marshal(value)
		if err != nil {
			return ""
		}
		return string(encoded)
	default:
		return fmt.Sprint(value)
	}
}

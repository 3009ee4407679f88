// Package present converts canonical analysis results into ordered section
// descriptors for rendering. The mapping is pure and knows nothing about any
// UI toolkit; icon and color keys are symbolic names the client resolves.
package present

import (
	"fmt"
	"math"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
)

// Context carries the request facts that influence section titles.
type Context struct {
	TargetLanguage string
	Kind           domain.AnalysisKind
}

// ToSections maps a result to its display sections in a fixed order: main
// content, original text, key information, summary, terms, risks,
// definitions, statistics, and the extras fallback last, each emitted only
// when populated.
func ToSections(result domain.AnalysisResult, ctx Context) []domain.Section {
	sections := make([]domain.Section, 0, 8)

	if result.MainText != "" {
		sections = append(sections, domain.Section{
			Title:    mainTitle(ctx),
			IconKey:  mainIcon(ctx.Kind),
			ColorKey: "blue",
			Body:     result.MainText,
		})
	}
	if result.OriginalText != "" {
		sections = append(sections, domain.Section{
			Title:    "Original Content",
			IconKey:  "file-text",
			ColorKey: "gray",
			Body:     result.OriginalText,
		})
	}
	if len(result.KeyInformation) > 0 {
		sections = append(sections, domain.Section{
			Title:    "Key Information",
			IconKey:  "zap",
			ColorKey: "blue",
			Body:     result.KeyInformation,
		})
	}
	if result.Summary != "" {
		sections = append(sections, domain.Section{
			Title:    "Summary",
			IconKey:  "file-search",
			ColorKey: "green",
			Body:     result.Summary,
		})
	}
	if len(result.Terms) > 0 {
		sections = append(sections, domain.Section{
			Title:    termsTitle(result.TermSource),
			IconKey:  "bot",
			ColorKey: "purple",
			Body:     result.Terms,
		})
	}
	if len(result.Risks) > 0 {
		sections = append(sections, domain.Section{
			Title:    "Risk Assessment",
			IconKey:  "alert-triangle",
			ColorKey: "red",
			Body:     result.Risks,
		})
	}
	if len(result.Definitions) > 0 {
		sections = append(sections, domain.Section{
			Title:    "Definitions",
			IconKey:  "book-open",
			ColorKey: "indigo",
			Body:     result.Definitions,
		})
	}
	if !result.Stats.IsZero() {
		sections = append(sections, domain.Section{
			Title:    "Document Statistics",
			IconKey:  "bar-chart",
			ColorKey: "yellow",
			Body:     statsBody(result.Stats),
		})
	}
	if len(result.Extras) > 0 {
		sections = append(sections, domain.Section{
			Title:    "Additional Data",
			IconKey:  "file-text",
			ColorKey: "gray",
			Body:     result.Extras,
		})
	}
	return sections
}

func mainTitle(ctx Context) string {
	switch ctx.Kind {
	case domain.KindTranslation:
		if ctx.TargetLanguage != "" {
			return "Translated to " + ctx.TargetLanguage
		}
		return "Translated Document"
	case domain.KindExtraction:
		return "Extraction Result"
	default:
		return "Analysis Result"
	}
}

func mainIcon(kind domain.AnalysisKind) string {
	switch kind {
	case domain.KindTranslation:
		return "languages"
	case domain.KindExtraction:
		return "file-search"
	default:
		return "zap"
	}
}

func termsTitle(source domain.TermSource) string {
	switch source {
	case domain.TermsLegal:
		return "Legal Terms"
	case domain.TermsJargon:
		return "Jargon Terms"
	default:
		return "Keywords"
	}
}

// statsBody renders stats into display strings; confidence is a 0-1 fraction
// shown as a rounded percentage.
func statsBody(stats domain.Stats) map[string]string {
	body := map[string]string{}
	if stats.WordCount > 0 {
		body["Words"] = fmt.Sprintf("%d", stats.WordCount)
	}
	if stats.CharacterCount > 0 {
		body["Characters"] = fmt.Sprintf("%d", stats.CharacterCount)
	}
	if stats.PageCount > 0 {
		body["Pages"] = fmt.Sprintf("%d", stats.PageCount)
	}
	if stats.Confidence > 0 {
		body["Confidence"] = fmt.Sprintf("%d%%", int(math.Round(stats.Confidence*100)))
	}
	if stats.Language != "" {
		body["Language"] = stats.Language
	}
	return body
}

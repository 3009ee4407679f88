package classify

import "strings"

// filenamePatterns is the fixed, ordered substring table used when the
// classifier payload yields nothing usable. First match wins, so the more
// specific rows (lease, NDA) sit above the broad contract row.
var filenamePatterns = []struct {
	substrings []string
	label      string
}{
	{[]string{"lease", "rental", "tenancy"}, "Lease Agreement"},
	{[]string{"nda", "confidential", "non-disclosure"}, "NDA"},
	{[]string{"contract", "agreement", "terms"}, "Contract"},
	{[]string{"invoice", "bill", "receipt"}, "Invoice"},
	{[]string{"report", "analysis", "summary"}, "Report"},
	{[]string{"policy", "guideline", "procedure"}, "Policy Document"},
	{[]string{"proposal", "quote", "quotation", "estimate"}, "Proposal"},
	{[]string{"legal", "court", "lawsuit", "litigation"}, "Legal Document"},
	{[]string{"memo", "memorandum"}, "Memorandum"},
	{[]string{"letter", "correspondence"}, "Letter"},
	{[]string{"certificate", "certification"}, "Certificate"},
	{[]string{"permit", "license", "licence"}, "Permit/License"},
	{[]string{"manual", "guide", "handbook"}, "Manual/Guide"},
	{[]string{"presentation", "slides"}, "Presentation"},
}

var extensionDefaults = []struct {
	suffixes []string
	label    string
}{
	{[]string{".pdf"}, "PDF Document"},
	{[]string{".doc", ".docx"}, "Word Document"},
	{[]string{".xls", ".xlsx"}, "Spreadsheet"},
	{[]string{".ppt", ".pptx"}, "Presentation"},
	{[]string{".txt"}, "Text Document"},
}

// FromFilename derives a label from filename patterns, then extension
// defaults, then the generic "Document".
func FromFilename(filename string) string {
	if filename == "" {
		return "Document"
	}
	lower := strings.ToLower(filename)

	for _, row := range filenamePatterns {
		for _, sub := range row.substrings {
			if strings.Contains(lower, sub) {
				return row.label
			}
		}
	}
	for _, row := range extensionDefaults {
		for _, suffix := range row.suffixes {
			if strings.HasSuffix(lower, suffix) {
				return row.label
			}
		}
	}
	return "Document"
}

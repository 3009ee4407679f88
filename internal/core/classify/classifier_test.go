package classify

import (
	"regexp"
	"testing"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
)

func TestClassifyStructuredObject(t *testing.T) {
	got := Classify([]byte(`{"document_type":"employment contract","financial":"yes"}`), "x.pdf")
	want := domain.ClassificationResult{Label: "Employment Contract", IsFinancial: true}
	if got != want {
		t.Fatalf("Classify = %+v, want %+v", got, want)
	}
}

func TestClassifyAlternateTypeKeys(t *testing.T) {
	for _, raw := range []string{
		`{"documentType":"invoice"}`,
		`{"type":"invoice"}`,
	} {
		got := Classify([]byte(raw), "x.pdf")
		if got.Label != "Invoice" {
			t.Errorf("raw %s: Label = %q", raw, got.Label)
		}
	}
}

func TestClassifyEnvelopePayload(t *testing.T) {
	raw := []byte(`{"candidates":[{"content":{"parts":[{"text":"{\"document_type\":\"lease agreement\",\"financial\":\"no\"}"}]}}]}`)
	got := Classify(raw, "x.pdf")
	if got.Label != "Lease Agreement" {
		t.Fatalf("Label = %q", got.Label)
	}
	if got.IsFinancial {
		t.Fatalf("financial \"no\" must map to false")
	}
}

func TestClassifyMessyTextPayload(t *testing.T) {
	raw := []byte("```json\n{\"document_type\": \"rental **agreement**\", \"financial\": yes}\n```")
	got := Classify(raw, "fallback.pdf")
	if got.Label == "" || got.Label == "Undefined" || got.Label == "Null" {
		t.Fatalf("Label = %q", got.Label)
	}
	if regexp.MustCompile(`[{}"\[\]*]`).MatchString(got.Label) {
		t.Fatalf("label still carries serialization noise: %q", got.Label)
	}
}

func TestFinancialFlagStrictness(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{`{"document_type":"invoice","financial":"yes"}`, true},
		{`{"document_type":"invoice","financial":true}`, true},
		{`{"document_type":"invoice","financial":"Yes"}`, false},
		{`{"document_type":"invoice","financial":1}`, false},
		{`{"document_type":"invoice","financial":"true"}`, false},
		{`{"document_type":"invoice"}`, false},
	}
	for _, tc := range cases {
		if got := Classify([]byte(tc.raw), "x.pdf"); got.IsFinancial != tc.want {
			t.Errorf("raw %s: IsFinancial = %v, want %v", tc.raw, got.IsFinancial, tc.want)
		}
	}
}

func TestCleanLabelRejections(t *testing.T) {
	for _, text := range []string{"", "a", "undefined", "null", `{"":""}`, "yes no true false", "***"} {
		if got := CleanLabel(text); got != "" {
			t.Errorf("CleanLabel(%q) = %q, want rejection", text, got)
		}
	}
}

func TestLabelIsAlwaysTitleCase(t *testing.T) {
	titleCase := regexp.MustCompile(`^[A-Z][\w /-]*$`)
	inputs := [][2]string{
		{`{"document_type":"shareholder agreement"}`, "f.pdf"},
		{`"just some words"`, "f.pdf"},
		{``, "meeting_minutes.docx"},
		{``, ""},
	}
	for _, in := range inputs {
		got := Classify([]byte(in[0]), in[1])
		if got.Label == "" || !titleCase.MatchString(got.Label) {
			t.Errorf("inputs %q/%q: label %q not Title Case", in[0], in[1], got.Label)
		}
	}
}

func TestFromFilenameHeuristics(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"lease_agreement_2024.pdf", "Lease Agreement"},
		{"service_contract.docx", "Contract"},
		{"invoice-march.pdf", "Invoice"},
		{"quarterly_report.xlsx", "Report"},
		{"privacy_policy.txt", "Policy Document"},
		{"mutual_nda_signed.pdf", "NDA"},
		{"project_proposal.pptx", "Proposal"},
		{"court_filing.pdf", "Legal Document"},
		{"office_memo.doc", "Memorandum"},
		{"cover_letter.pdf", "Letter"},
		{"completion_certificate.pdf", "Certificate"},
		{"building_permit.pdf", "Permit/License"},
		{"user_manual.pdf", "Manual/Guide"},
		{"quarterly_slides.pptx", "Presentation"},
		{"untitled.pdf", "PDF Document"},
		{"notes.docx", "Word Document"},
		{"data.xlsx", "Spreadsheet"},
		{"deck.ppt", "Presentation"},
		{"readme.txt", "Text Document"},
		{"mystery.bin", "Document"},
		{"", "Document"},
	}
	for _, tc := range cases {
		if got := FromFilename(tc.filename); got != tc.want {
			t.Errorf("FromFilename(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}

func TestClassifyNilPayloadUsesFilename(t *testing.T) {
	got := Classify(nil, "lease_agreement_2024.pdf")
	want := domain.ClassificationResult{Label: "Lease Agreement", IsFinancial: false}
	if got != want {
		t.Fatalf("Classify = %+v, want %+v", got, want)
	}
}

func TestTitleCase(t *testing.T) {
	cases := [][2]string{
		{"employment contract", "Employment Contract"},
		{"non-disclosure agreement", "Non-Disclosure Agreement"},
		{"NDA", "NDA"},
	}
	for _, tc := range cases {
		if got := TitleCase(tc[0]); got != tc[1] {
			t.Errorf("TitleCase(%q) = %q, want %q", tc[0], got, tc[1])
		}
	}
}

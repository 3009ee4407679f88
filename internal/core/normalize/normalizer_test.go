package normalize

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
)

func envelope(t *testing.T, innerText string) []byte {
	t.Helper()
	payload := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": innerText}},
				},
			},
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return raw
}

func TestResultPlainTextFallback(t *testing.T) {
	got := Result([]byte("hello world"), domain.KindAnalysis)
	if got.MainText != "hello world" {
		t.Fatalf("MainText = %q, want %q", got.MainText, "hello world")
	}
	if !got.Stats.IsZero() || got.Summary != "" || len(got.Extras) != 0 {
		t.Fatalf("expected only MainText populated, got %+v", got)
	}
}

func TestResultEnvelopeWithInnerJSON(t *testing.T) {
	got := Result(envelope(t, `{"summary":"x"}`), domain.KindAnalysis)
	if got.Summary != "x" {
		t.Fatalf("Summary = %q, want %q", got.Summary, "x")
	}
	if got.MainText != "" || got.OriginalText != "" || len(got.KeyInformation) != 0 ||
		len(got.Terms) != 0 || len(got.Risks) != 0 || len(got.Definitions) != 0 ||
		!got.Stats.IsZero() || len(got.Extras) != 0 {
		t.Fatalf("expected all other fields absent, got %+v", got)
	}
}

func TestResultEnvelopeWithInnerText(t *testing.T) {
	got := Result(envelope(t, "this clause is unusual"), domain.KindTranslation)
	if got.MainText != "this clause is unusual" {
		t.Fatalf("MainText = %q", got.MainText)
	}
}

func TestResultJSONStringPayload(t *testing.T) {
	got := Result([]byte(`"{\"summary\":\"nested\"}"`), domain.KindAnalysis)
	if got.Summary != "nested" {
		t.Fatalf("Summary = %q, want nested", got.Summary)
	}
}

func TestMainContentPrecedenceByKind(t *testing.T) {
	raw := []byte(`{"result":"analysis main","translated_text":"translated main"}`)

	if got := Result(raw, domain.KindTranslation); got.MainText != "translated main" {
		t.Fatalf("translation MainText = %q", got.MainText)
	}
	if got := Result(raw, domain.KindExtraction); got.MainText != "analysis main" {
		t.Fatalf("extraction MainText = %q", got.MainText)
	}
}

func TestTermSourceIsPreserved(t *testing.T) {
	cases := []struct {
		raw    string
		source domain.TermSource
	}{
		{`{"legal_terms":["indemnity"]}`, domain.TermsLegal},
		{`{"jargon_terms":["per stirpes"]}`, domain.TermsJargon},
		{`{"keywords":["lease"]}`, domain.TermsKeywords},
		{`{"tags":["contract"]}`, domain.TermsTags},
	}
	for _, tc := range cases {
		got := Result([]byte(tc.raw), domain.KindExtraction)
		if got.TermSource != tc.source {
			t.Errorf("raw %s: TermSource = %q, want %q", tc.raw, got.TermSource, tc.source)
		}
		if len(got.Terms) != 1 {
			t.Errorf("raw %s: Terms = %v", tc.raw, got.Terms)
		}
	}
}

func TestTermObjectEntries(t *testing.T) {
	raw := []byte(`{"legal_terms":[{"term":"estoppel"},{"text":"lien"},"waiver"]}`)
	got := Result(raw, domain.KindExtraction)
	want := []string{"estoppel", "lien", "waiver"}
	if !reflect.DeepEqual(got.Terms, want) {
		t.Fatalf("Terms = %v, want %v", got.Terms, want)
	}
}

func TestScalarWrapping(t *testing.T) {
	raw := []byte(`{"key_information":"single fact","risks":"one risk"}`)
	got := Result(raw, domain.KindAnalysis)
	if !reflect.DeepEqual(got.KeyInformation, []string{"single fact"}) {
		t.Fatalf("KeyInformation = %v", got.KeyInformation)
	}
	if !reflect.DeepEqual(got.Risks, []string{"one risk"}) {
		t.Fatalf("Risks = %v", got.Risks)
	}
}

func TestDefinitionNormalization(t *testing.T) {
	raw := []byte(`{"definitions":[
		{"term":"force majeure","definition":"unforeseeable circumstances"},
		{"term":"arbitration","explanation":"private dispute resolution"},
		{"description":"a body without a term"},
		"bare string entry",
		{"unrelated":"object"}
	]}`)
	got := Result(raw, domain.KindAnalysis)
	want := []domain.Definition{
		{Term: "force majeure", Body: "unforeseeable circumstances"},
		{Term: "arbitration", Body: "private dispute resolution"},
		{Body: "a body without a term"},
		{Body: "bare string entry"},
	}
	if !reflect.DeepEqual(got.Definitions, want) {
		t.Fatalf("Definitions = %+v, want %+v", got.Definitions, want)
	}
}

func TestExplanationsFallback(t *testing.T) {
	raw := []byte(`{"explanations":[{"term":"lien","explanation":"a security interest"}]}`)
	got := Result(raw, domain.KindAnalysis)
	if len(got.Definitions) != 1 || got.Definitions[0].Term != "lien" {
		t.Fatalf("Definitions = %+v", got.Definitions)
	}
}

func TestStatsExtraction(t *testing.T) {
	raw := []byte(`{"word_count":1200,"character_count":"6400","page_count":3,"confidence":0.87,"language":"es"}`)
	got := Result(raw, domain.KindTranslation)
	want := domain.Stats{WordCount: 1200, CharacterCount: 6400, PageCount: 3, Confidence: 0.87, Language: "es"}
	if got.Stats != want {
		t.Fatalf("Stats = %+v, want %+v", got.Stats, want)
	}
}

func TestUnrecognizedKeysLandInExtras(t *testing.T) {
	raw := []byte(`{"summary":"s","source_language":"en","target_language":"es","model_version":"1.5"}`)
	got := Result(raw, domain.KindTranslation)
	if got.Summary != "s" {
		t.Fatalf("Summary = %q", got.Summary)
	}
	for _, key := range []string{"source_language", "target_language", "model_version"} {
		if _, ok := got.Extras[key]; !ok {
			t.Errorf("expected %q in Extras, got %v", key, got.Extras)
		}
	}
	if _, ok := got.Extras["summary"]; ok {
		t.Errorf("recognized key leaked into Extras")
	}
}

func TestMalformedFieldsDegradeSilently(t *testing.T) {
	raw := []byte(`{"summary":42,"risks":{"not":"a list"},"word_count":"many","definitions":17}`)
	got := Result(raw, domain.KindAnalysis)
	if got.Summary != "" {
		t.Fatalf("malformed summary should be omitted, got %q", got.Summary)
	}
	if got.Stats.WordCount != 0 {
		t.Fatalf("malformed word_count should be omitted, got %d", got.Stats.WordCount)
	}
	if len(got.Definitions) != 0 {
		t.Fatalf("malformed definitions should be omitted, got %+v", got.Definitions)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	payloads := [][]byte{
		[]byte("free text result"),
		[]byte(`{"summary":"s","legal_terms":["a","b"],"risks":["r"],"confidence":0.5,"custom_field":"kept"}`),
		envelope(t, `{"translated_text":"hola","original_text":"hello","word_count":2}`),
	}
	for _, raw := range payloads {
		for _, kind := range []domain.AnalysisKind{domain.KindTranslation, domain.KindAnalysis} {
			once := Result(raw, kind)
			encoded, err := json.Marshal(once)
			if err != nil {
				t.Fatalf("marshal canonical result: %v", err)
			}
			twice := Result(encoded, kind)
			if !reflect.DeepEqual(once, twice) {
				t.Fatalf("kind %s: normalize not idempotent\nonce:  %+v\ntwice: %+v", kind, once, twice)
			}
		}
	}
}

func TestNeverPanicsOnGarbage(t *testing.T) {
	garbage := [][]byte{
		nil,
		[]byte(""),
		[]byte("{"),
		[]byte(`{"candidates":[{}]}`),
		[]byte(`{"candidates":"nope"}`),
		[]byte(`{"candidates":[{"content":{"parts":[]}}]}`),
		[]byte(`[1,2,3]`),
		[]byte(`{"candidates":[{"content":{"parts":[{"text":""}]}}]}`),
	}
	for _, raw := range garbage {
		_ = Result(raw, domain.KindAnalysis)
	}
}

func TestVideosStructuredArray(t *testing.T) {
	got := Videos(envelope(t, `[{"title":"Intro to Leases","url":"https://youtu.be/abc"},{"title":"No URL Entry"}]`))
	if len(got) != 2 {
		t.Fatalf("videos = %+v", got)
	}
	if got[0].URL != "https://youtu.be/abc" {
		t.Fatalf("URL = %q", got[0].URL)
	}
	if got[1].URL == "" {
		t.Fatalf("missing URL should fall back to a search link")
	}
}

func TestVideosObjectWithVideosKey(t *testing.T) {
	got := Videos(envelope(t, `{"videos":[{"title":"T","url":"https://youtu.be/x"}]}`))
	if len(got) != 1 || got[0].Title != "T" {
		t.Fatalf("videos = %+v", got)
	}
}

func TestVideosPlainLines(t *testing.T) {
	got := Videos(envelope(t, "Understanding NDAs\nhttps://youtu.be/xyz\n\n"))
	if len(got) != 2 {
		t.Fatalf("videos = %+v", got)
	}
	if got[0].URL == "" || got[1].URL != "https://youtu.be/xyz" {
		t.Fatalf("videos = %+v", got)
	}
}

func TestVideosUnparseablePayload(t *testing.T) {
	if got := Videos([]byte("not json at all")); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

package domain

// AnalysisKind tags which provider operation produced a payload. The
// normalizer uses it to pick the main-content key precedence.
type AnalysisKind string

const (
	KindTranslation    AnalysisKind = "translation"
	KindExtraction     AnalysisKind = "extraction"
	KindAnalysis       AnalysisKind = "analysis"
	KindClassification AnalysisKind = "classification"
)

// TermSource records which raw key supplied the term list. It drives the
// section title and cannot be re-derived from the terms themselves.
type TermSource string

const (
	TermsLegal    TermSource = "legal_terms"
	TermsJargon   TermSource = "jargon_terms"
	TermsKeywords TermSource = "keywords"
	TermsTags     TermSource = "tags"
)

type Definition struct {
	Term string `json:"term,omitempty"`
	Body string `json:"body"`
}

type Stats struct {
	WordCount      int     `json:"wordCount,omitempty"`
	CharacterCount int     `json:"characterCount,omitempty"`
	PageCount      int     `json:"pageCount,omitempty"`
	Confidence     float64 `json:"confidence,omitempty"`
	Language       string  `json:"language,omitempty"`
}

func (s Stats) IsZero() bool {
	return s == Stats{}
}

// AnalysisResult is the canonical model every provider payload reduces to.
// Every populated field is a fully dereferenced primitive or slice; provider
// envelopes never survive normalization. Unrecognized top-level keys are
// retained verbatim in Extras for debug display only.
type AnalysisResult struct {
	MainText       string         `json:"mainText,omitempty"`
	OriginalText   string         `json:"originalText,omitempty"`
	Summary        string         `json:"summary,omitempty"`
	KeyInformation []string       `json:"keyInformation,omitempty"`
	Terms          []string       `json:"terms,omitempty"`
	TermSource     TermSource     `json:"termSource,omitempty"`
	Risks          []string       `json:"risks,omitempty"`
	Definitions    []Definition   `json:"definitions,omitempty"`
	Stats          Stats          `json:"stats,omitzero"`
	Extras         map[string]any `json:"extras,omitempty"`
}

func (r AnalysisResult) IsEmpty() bool {
	return r.MainText == "" && r.OriginalText == "" && r.Summary == "" &&
		len(r.KeyInformation) == 0 && len(r.Terms) == 0 && len(r.Risks) == 0 &&
		len(r.Definitions) == 0 && r.Stats.IsZero() && len(r.Extras) == 0
}

// ExtractedText is the local extraction result for a stored document.
type ExtractedText struct {
	Text      string
	PageCount int
}

// VideoResult is one entry of the video-search payload shape.
type VideoResult struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Section is a renderable descriptor produced by the presentation mapper.
// Body is either a string, []string, []Definition, Stats, or map[string]any
// depending on the section kind.
type Section struct {
	Title    string `json:"title"`
	IconKey  string `json:"iconKey"`
	ColorKey string `json:"colorKey"`
	Body     any    `json:"body"`
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
	"github.com/kucp1127/clarityvault-gateway/internal/core/ports"
	"github.com/kucp1127/clarityvault-gateway/internal/infrastructure/resilience"
)

type providerFake struct {
	payload []byte
	err     error
	calls   int
}

func (f *providerFake) respond() ([]byte, error) {
	f.calls++
	return f.payload, f.err
}

func (f *providerFake) TranslatePDF(context.Context, string, ports.FileParam, string) ([]byte, error) {
	return f.respond()
}

func (f *providerFake) TranslateText(context.Context, string, string, string) ([]byte, error) {
	return f.respond()
}

func (f *providerFake) ExtractJargon(context.Context, string, ports.FileParam, string) ([]byte, error) {
	return f.respond()
}

func (f *providerFake) AnalyzeText(context.Context, string, string, string, string) ([]byte, error) {
	return f.respond()
}

func (f *providerFake) ClassifyDocument(context.Context, string, ports.FileParam) ([]byte, error) {
	return f.respond()
}

func (f *providerFake) SearchVideos(context.Context, string, string, string) ([]byte, error) {
	return f.respond()
}

func newAnalyzeUseCase(provider ports.AnalysisProvider) *AnalyzeUseCase {
	return NewAnalyzeUseCase(provider, resilience.NewExecutor(resilience.Config{BreakerEnabled: false}))
}

func TestTranslateTextNormalizesAndMaps(t *testing.T) {
	provider := &providerFake{payload: []byte(`{"translated_text":"hola mundo","word_count":2}`)}
	uc := newAnalyzeUseCase(provider)

	view, err := uc.TranslateText(context.Background(), "tok", "hello world", "Spanish")
	if err != nil {
		t.Fatalf("TranslateText() error = %v", err)
	}
	if view.Result.MainText != "hola mundo" {
		t.Fatalf("MainText = %q", view.Result.MainText)
	}
	if len(view.Sections) == 0 {
		t.Fatalf("expected sections")
	}
	if view.Sections[0].Title != "Translated to Spanish" {
		t.Fatalf("first section title = %q", view.Sections[0].Title)
	}
}

func TestAnalyzeTextPropagatesProviderError(t *testing.T) {
	upstream := domain.WrapError(domain.ErrServer, "analyze_text", errors.New("boom"))
	provider := &providerFake{err: upstream}
	uc := newAnalyzeUseCase(provider)

	_, err := uc.AnalyzeText(context.Background(), "tok", "text", "English", "Contract")
	if !domain.IsKind(err, domain.ErrServer) {
		t.Fatalf("expected ErrServer, got %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("expected exactly 1 provider call, got %d", provider.calls)
	}
}

func TestExtractJargonHandlesEnvelopePayload(t *testing.T) {
	inner := `{\"jargon_terms\":[\"indemnification\"],\"summary\":\"short\"}`
	payload := fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":"%s"}]}}]}`, inner)
	provider := &providerFake{payload: []byte(payload)}
	uc := newAnalyzeUseCase(provider)

	view, err := uc.ExtractJargon(context.Background(), "tok", ports.FileParam{Name: "a.pdf"}, "English")
	if err != nil {
		t.Fatalf("ExtractJargon() error = %v", err)
	}
	if len(view.Result.Terms) != 1 || view.Result.Terms[0] != "indemnification" {
		t.Fatalf("Terms = %v", view.Result.Terms)
	}
	if view.Result.TermSource != domain.TermsJargon {
		t.Fatalf("TermSource = %q", view.Result.TermSource)
	}
}

func TestSearchVideosNormalizesList(t *testing.T) {
	provider := &providerFake{payload: []byte(`{"videos":[{"title":"Lease law basics","url":"https://youtu.be/x"}]}`)}
	uc := newAnalyzeUseCase(provider)

	videos, err := uc.SearchVideos(context.Background(), "tok", "lease law", "English")
	if err != nil {
		t.Fatalf("SearchVideos() error = %v", err)
	}
	if len(videos) != 1 || videos[0].Title != "Lease law basics" {
		t.Fatalf("videos = %+v", videos)
	}
}

package metrics

import (
	"context"
	"time"

	"github.com/kucp1127/clarityvault-gateway/internal/core/ports"
)

// InstrumentedProvider decorates an AnalysisProvider with per-operation call
// counters and latency histograms.
type InstrumentedProvider struct {
	next    ports.AnalysisProvider
	metrics *GatewayMetrics
	service string
}

func NewInstrumentedProvider(next ports.AnalysisProvider, m *GatewayMetrics, service string) *InstrumentedProvider {
	return &InstrumentedProvider{next: next, metrics: m, service: service}
}

func (p *InstrumentedProvider) observe(operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	p.metrics.RecordProviderCall(p.service, operation, outcome, time.Since(start))
}

func (p *InstrumentedProvider) TranslatePDF(ctx context.Context, token string, file ports.FileParam, language string) ([]byte, error) {
	start := time.Now()
	raw, err := p.next.TranslatePDF(ctx, token, file, language)
	p.observe("translate_pdf", start, err)
	return raw, err
}

func (p *InstrumentedProvider) TranslateText(ctx context.Context, token, text, language string) ([]byte, error) {
	start := time.Now()
	raw, err := p.next.TranslateText(ctx, token, text, language)
	p.observe("translate_text", start, err)
	return raw, err
}

func (p *InstrumentedProvider) ExtractJargon(ctx context.Context, token string, file ports.FileParam, language string) ([]byte, error) {
	start := time.Now()
	raw, err := p.next.ExtractJargon(ctx, token, file, language)
	p.observe("extract_jargon", start, err)
	return raw, err
}

func (p *InstrumentedProvider) AnalyzeText(ctx context.Context, token, text, language, documentType string) ([]byte, error) {
	start := time.Now()
	raw, err := p.next.AnalyzeText(ctx, token, text, language, documentType)
	p.observe("analyze_text", start, err)
	return raw, err
}

func (p *InstrumentedProvider) ClassifyDocument(ctx context.Context, token string, file ports.FileParam) ([]byte, error) {
	start := time.Now()
	raw, err := p.next.ClassifyDocument(ctx, token, file)
	p.observe("classify_document", start, err)
	return raw, err
}

func (p *InstrumentedProvider) SearchVideos(ctx context.Context, token, title, language string) ([]byte, error) {
	start := time.Now()
	raw, err := p.next.SearchVideos(ctx, token, title, language)
	p.observe("search_videos", start, err)
	return raw, err
}

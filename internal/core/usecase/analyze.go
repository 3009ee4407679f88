package usecase

import (
	"context"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
	"github.com/kucp1127/clarityvault-gateway/internal/core/normalize"
	"github.com/kucp1127/clarityvault-gateway/internal/core/ports"
	"github.com/kucp1127/clarityvault-gateway/internal/core/present"
	"github.com/kucp1127/clarityvault-gateway/internal/infrastructure/resilience"
)

// AnalysisView pairs the canonical result with its render-ready sections.
type AnalysisView struct {
	Result   domain.AnalysisResult `json:"result"`
	Sections []domain.Section      `json:"sections"`
}

type AnalyzeUseCase struct {
	provider ports.AnalysisProvider
	executor *resilience.Executor
}

func NewAnalyzeUseCase(provider ports.AnalysisProvider, executor *resilience.Executor) *AnalyzeUseCase {
	return &AnalyzeUseCase{provider: provider, executor: executor}
}

func (uc *AnalyzeUseCase) TranslatePDF(ctx context.Context, token string, file ports.FileParam, language string) (AnalysisView, error) {
	return uc.run(ctx, "translate_pdf", domain.KindTranslation, language, func(ctx context.Context) ([]byte, error) {
		return uc.provider.TranslatePDF(ctx, token, file, language)
	})
}

func (uc *AnalyzeUseCase) TranslateText(ctx context.Context, token, text, language string) (AnalysisView, error) {
	return uc.run(ctx, "translate_text", domain.KindTranslation, language, func(ctx context.Context) ([]byte, error) {
		return uc.provider.TranslateText(ctx, token, text, language)
	})
}

func (uc *AnalyzeUseCase) ExtractJargon(ctx context.Context, token string, file ports.FileParam, language string) (AnalysisView, error) {
	return uc.run(ctx, "extract_jargon", domain.KindExtraction, language, func(ctx context.Context) ([]byte, error) {
		return uc.provider.ExtractJargon(ctx, token, file, language)
	})
}

func (uc *AnalyzeUseCase) AnalyzeText(ctx context.Context, token, text, language, documentType string) (AnalysisView, error) {
	return uc.run(ctx, "analyze_text", domain.KindAnalysis, language, func(ctx context.Context) ([]byte, error) {
		return uc.provider.AnalyzeText(ctx, token, text, language, documentType)
	})
}

func (uc *AnalyzeUseCase) SearchVideos(ctx context.Context, token, title, language string) ([]domain.VideoResult, error) {
	var raw []byte
	err := uc.executor.Execute(ctx, "search_videos", func(ctx context.Context) error {
		var callErr error
		raw, callErr = uc.provider.SearchVideos(ctx, token, title, language)
		return callErr
	}, resilience.KindClassifier)
	if err != nil {
		return nil, err
	}
	return normalize.Videos(raw), nil
}

func (uc *AnalyzeUseCase) run(
	ctx context.Context,
	operation string,
	kind domain.AnalysisKind,
	language string,
	call func(context.Context) ([]byte, error),
) (AnalysisView, error) {
	var raw []byte
	err := uc.executor.Execute(ctx, operation, func(ctx context.Context) error {
		var callErr error
		raw, callErr = call(ctx)
		return callErr
	}, resilience.KindClassifier)
	if err != nil {
		return AnalysisView{}, err
	}

	result := normalize.Result(raw, kind)
	sections := present.ToSections(result, present.Context{TargetLanguage: language, Kind: kind})
	return AnalysisView{Result: result, Sections: sections}, nil
}

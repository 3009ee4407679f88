package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kucp1127/clarityvault-gateway/internal/core/classify"
	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
	"github.com/kucp1127/clarityvault-gateway/internal/core/ports"
	"github.com/kucp1127/clarityvault-gateway/internal/infrastructure/resilience"
)

type ClassifyUseCase struct {
	repo     ports.DocumentRepository
	storage  ports.ObjectStorage
	provider ports.AnalysisProvider
	executor *resilience.Executor

	// serviceToken authorizes worker-originated provider calls that have no
	// user session behind them.
	serviceToken string

	// OnFallback is invoked whenever the provider path fails and the label
	// comes from the filename heuristic instead.
	OnFallback func()
}

func NewClassifyUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	provider ports.AnalysisProvider,
	executor *resilience.Executor,
	serviceToken string,
) *ClassifyUseCase {
	return &ClassifyUseCase{
		repo:         repo,
		storage:      storage,
		provider:     provider,
		executor:     executor,
		serviceToken: serviceToken,
	}
}

// ClassifyUpload classifies a file the caller holds in hand, without storing
// it. Provider failure falls back to the filename heuristic so the caller
// always gets a usable label.
func (uc *ClassifyUseCase) ClassifyUpload(ctx context.Context, token string, file ports.FileParam) domain.ClassificationResult {
	var raw []byte
	err := uc.executor.Execute(ctx, "classify_document", func(ctx context.Context) error {
		var callErr error
		raw, callErr = uc.provider.ClassifyDocument(ctx, token, file)
		return callErr
	}, resilience.KindClassifier)
	if err != nil {
		slog.Warn("classify_provider_failed", "filename", file.Name, "error", err)
		raw = nil
		if uc.OnFallback != nil {
			uc.OnFallback()
		}
	}
	return classify.Classify(raw, file.Name)
}

// EnrichByID re-classifies a stored document from its content and saves the
// result. Concurrent enrichments of the same document are not serialized;
// the last response to arrive wins.
func (uc *ClassifyUseCase) EnrichByID(ctx context.Context, documentID string) error {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	if err := uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusAnalyzing, ""); err != nil {
		return fmt.Errorf("mark analyzing: %w", err)
	}

	result := uc.classifyStored(ctx, doc)
	if err := uc.repo.SaveClassification(ctx, doc.ID, result); err != nil {
		return fmt.Errorf("save classification: %w", err)
	}
	if err := uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusAnalyzed, ""); err != nil {
		return fmt.Errorf("mark analyzed: %w", err)
	}
	return nil
}

func (uc *ClassifyUseCase) classifyStored(ctx context.Context, doc *domain.Document) domain.ClassificationResult {
	reader, err := uc.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		slog.Warn("classify_open_failed", "document_id", doc.ID, "error", err)
		return classify.Classify(nil, doc.Filename)
	}
	defer func() { _ = reader.Close() }()

	return uc.ClassifyUpload(ctx, uc.serviceToken, ports.FileParam{Name: doc.Filename, Reader: reader})
}

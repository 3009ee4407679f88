package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
	"github.com/kucp1127/clarityvault-gateway/internal/core/ports"
)

type DocumentsUseCase struct {
	repo      ports.DocumentRepository
	storage   ports.ObjectStorage
	extractor ports.TextExtractor
}

func NewDocumentsUseCase(repo ports.DocumentRepository, storage ports.ObjectStorage, extractor ports.TextExtractor) *DocumentsUseCase {
	return &DocumentsUseCase{repo: repo, storage: storage, extractor: extractor}
}

func (uc *DocumentsUseCase) ListByUsername(ctx context.Context, username string) ([]domain.Document, error) {
	return uc.repo.ListByUsername(ctx, username)
}

func (uc *DocumentsUseCase) Find(ctx context.Context, id string) (*domain.Document, error) {
	return uc.repo.GetByID(ctx, id)
}

// Delete removes the metadata row first so a stored blob can never outlive
// its document without also being unreachable; blob removal is best-effort.
func (uc *DocumentsUseCase) Delete(ctx context.Context, id string) error {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := uc.storage.Delete(ctx, doc.StoragePath); err != nil {
		slog.Warn("blob_delete_failed", "document_id", id, "error", err)
	}
	return nil
}

// Preview extracts plain text locally so a caller can show document content
// without a provider round trip.
func (uc *DocumentsUseCase) Preview(ctx context.Context, id string) (*domain.Document, domain.ExtractedText, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ExtractedText{}, err
	}
	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return nil, domain.ExtractedText{}, domain.WrapError(domain.ErrValidation, "preview", err)
	}
	return doc, text, nil
}

// Download returns the document and an open reader over its bytes. The
// caller owns closing the reader.
func (uc *DocumentsUseCase) Download(ctx context.Context, id string) (*domain.Document, io.ReadCloser, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	reader, err := uc.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open stored document: %w", err)
	}
	return doc, reader, nil
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
	"github.com/kucp1127/clarityvault-gateway/internal/core/ports"
	"github.com/kucp1127/clarityvault-gateway/internal/infrastructure/resilience"
)

func seedDocument(t *testing.T, repo *repoFake, storage *storageFake, id, filename string) {
	t.Helper()
	now := time.Now().UTC()
	if err := storage.Save(context.Background(), id, strings.NewReader("contents")); err != nil {
		t.Fatalf("seed blob: %v", err)
	}
	if err := repo.Create(context.Background(), &domain.Document{
		ID:          id,
		Username:    "ada",
		Filename:    filename,
		MimeType:    "application/pdf",
		StoragePath: id,
		Status:      domain.StatusUploaded,
		UploadDate:  now,
		UpdatedAt:   now,
	}); err != nil {
		t.Fatalf("seed document: %v", err)
	}
}

func newClassifyUseCase(repo *repoFake, storage *storageFake, provider ports.AnalysisProvider) *ClassifyUseCase {
	executor := resilience.NewExecutor(resilience.Config{BreakerEnabled: false})
	return NewClassifyUseCase(repo, storage, provider, executor, "service-token")
}

func TestEnrichByIDSavesProviderClassification(t *testing.T) {
	repo := newRepoFake()
	storage := newStorageFake()
	seedDocument(t, repo, storage, "doc-1", "something.pdf")

	provider := &providerFake{payload: []byte(`{"document_type":"lease agreement","financial":"yes"}`)}
	uc := newClassifyUseCase(repo, storage, provider)

	if err := uc.EnrichByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("EnrichByID() error = %v", err)
	}

	doc, _ := repo.GetByID(context.Background(), "doc-1")
	if doc.DocumentType != "Lease Agreement" || !doc.IsFinancial {
		t.Fatalf("doc = %+v", doc)
	}
	if doc.Status != domain.StatusAnalyzed {
		t.Fatalf("Status = %q", doc.Status)
	}
}

func TestEnrichByIDFallsBackToFilenameOnProviderFailure(t *testing.T) {
	repo := newRepoFake()
	storage := newStorageFake()
	seedDocument(t, repo, storage, "doc-1", "invoice_march.pdf")

	provider := &providerFake{err: domain.WrapError(domain.ErrServer, "classify", errors.New("down"))}
	uc := newClassifyUseCase(repo, storage, provider)

	if err := uc.EnrichByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("EnrichByID() error = %v", err)
	}

	doc, _ := repo.GetByID(context.Background(), "doc-1")
	if doc.DocumentType != "Invoice" {
		t.Fatalf("DocumentType = %q", doc.DocumentType)
	}
	if doc.IsFinancial {
		t.Fatalf("fallback classification must not mark financial")
	}
}

func TestEnrichByIDUnknownDocument(t *testing.T) {
	uc := newClassifyUseCase(newRepoFake(), newStorageFake(), &providerFake{})
	if err := uc.EnrichByID(context.Background(), "ghost"); err == nil {
		t.Fatalf("expected error for unknown document")
	}
}

func TestEnrichByIDLastWriterWins(t *testing.T) {
	repo := newRepoFake()
	storage := newStorageFake()
	seedDocument(t, repo, storage, "doc-1", "something.pdf")

	first := &providerFake{payload: []byte(`{"document_type":"report"}`)}
	second := &providerFake{payload: []byte(`{"document_type":"contract"}`)}

	if err := newClassifyUseCase(repo, storage, first).EnrichByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("first EnrichByID() error = %v", err)
	}
	if err := newClassifyUseCase(repo, storage, second).EnrichByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("second EnrichByID() error = %v", err)
	}

	doc, _ := repo.GetByID(context.Background(), "doc-1")
	if doc.DocumentType != "Contract" {
		t.Fatalf("DocumentType = %q, want last writer's value", doc.DocumentType)
	}
	if len(repo.updates) != 2 {
		t.Fatalf("expected 2 classification writes, got %d", len(repo.updates))
	}
}

func TestClassifyUploadNeverReturnsEmptyLabel(t *testing.T) {
	provider := &providerFake{err: domain.WrapError(domain.ErrNetwork, "classify", errors.New("refused"))}
	uc := newClassifyUseCase(newRepoFake(), newStorageFake(), provider)

	result := uc.ClassifyUpload(context.Background(), "tok", ports.FileParam{
		Name: "mystery", Reader: strings.NewReader("x"),
	})
	if result.Label == "" {
		t.Fatalf("label must never be empty")
	}
	if result.Label != "Document" {
		t.Fatalf("Label = %q, want generic fallback", result.Label)
	}
}

package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kucp1127/clarityvault-gateway/internal/core/classify"
	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
	"github.com/kucp1127/clarityvault-gateway/internal/core/ports"
)

const DefaultMaxUploadBytes = 10 << 20

var allowedExtensions = map[string]struct{}{
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {},
	".ppt": {}, ".pptx": {}, ".txt": {},
}

type UploadFile struct {
	Filename string
	MimeType string
	Size     int64
	Body     io.Reader
}

// UploadOutcome is the per-file result of a batch. One file failing never
// aborts its siblings.
type UploadOutcome struct {
	Filename string           `json:"fileName"`
	Document *domain.Document `json:"document,omitempty"`
	Err      error            `json:"-"`
	Error    string           `json:"error,omitempty"`
}

type UploadUseCase struct {
	repo           ports.DocumentRepository
	storage        ports.ObjectStorage
	queue          ports.MessageQueue
	maxUploadBytes int64
}

func NewUploadUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
	maxUploadBytes int64,
) *UploadUseCase {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &UploadUseCase{
		repo:           repo,
		storage:        storage,
		queue:          queue,
		maxUploadBytes: maxUploadBytes,
	}
}

// UploadBatch uploads every file concurrently, one goroutine per file, and
// always returns one outcome per input in input order.
func (uc *UploadUseCase) UploadBatch(ctx context.Context, username string, files []UploadFile) []UploadOutcome {
	outcomes := make([]UploadOutcome, len(files))

	var wg sync.WaitGroup
	for i := range files {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc, err := uc.Upload(ctx, username, files[i])
			outcomes[i] = UploadOutcome{Filename: files[i].Filename, Document: doc, Err: err}
			if err != nil {
				outcomes[i].Error = err.Error()
			}
		}(i)
	}
	wg.Wait()
	return outcomes
}

func (uc *UploadUseCase) Upload(ctx context.Context, username string, file UploadFile) (*domain.Document, error) {
	if err := uc.validate(file); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(file.Filename))
	now := time.Now().UTC()

	body := io.LimitReader(file.Body, uc.maxUploadBytes+1)
	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	doc := &domain.Document{
		ID:          id,
		Username:    username,
		Filename:    file.Filename,
		MimeType:    file.MimeType,
		SizeBytes:   file.Size,
		StoragePath: storageKey,
		// Filename heuristic gives an immediate type; the worker refines it
		// asynchronously from the file content.
		DocumentType: classify.FromFilename(file.Filename),
		Status:       domain.StatusUploaded,
		UploadDate:   now,
		UpdatedAt:    now,
	}

	if err := uc.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document metadata: %w", err)
	}

	// Enrichment is best-effort: a dead queue leaves the filename-based
	// type in place instead of failing the upload.
	if err := uc.queue.PublishClassifyRequested(ctx, doc.ID); err != nil {
		slog.Warn("classify_publish_failed", "document_id", doc.ID, "error", err)
	}

	return doc, nil
}

func (uc *UploadUseCase) validate(file UploadFile) error {
	if strings.TrimSpace(file.Filename) == "" {
		return domain.WrapError(domain.ErrValidation, "upload", fmt.Errorf("missing filename"))
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return domain.WrapError(domain.ErrValidation, "upload", fmt.Errorf("unsupported file type %q", ext))
	}
	if file.Size > uc.maxUploadBytes {
		return domain.WrapError(domain.ErrValidation, "upload",
			fmt.Errorf("file %s exceeds %d byte limit", file.Filename, uc.maxUploadBytes))
	}
	return nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}

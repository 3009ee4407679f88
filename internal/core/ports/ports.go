package ports

import (
	"context"
	"io"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
)

// DocumentRepository persists and reads document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListByUsername(ctx context.Context, username string) ([]domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveClassification(ctx context.Context, id string, cls domain.ClassificationResult) error
	Delete(ctx context.Context, id string) error
}

// UserRepository persists registered users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// ObjectStorage stores uploaded file bytes.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// MessageQueue publishes/consumes classification-enrichment events.
type MessageQueue interface {
	PublishClassifyRequested(ctx context.Context, documentID string) error
	SubscribeClassifyRequested(ctx context.Context, handler func(context.Context, string) error) error
}

// SessionStore keeps issued sessions keyed by token. Backed by memory in
// tests and Redis in production.
type SessionStore interface {
	Get(ctx context.Context, token string) (*domain.Session, error)
	Set(ctx context.Context, session *domain.Session) error
	Clear(ctx context.Context, token string) error
}

// AnalysisProvider is the remote AI backend. Methods return the raw payload
// bytes; normalization happens in the caller. Calls are at-most-once: the
// provider client never retries.
type AnalysisProvider interface {
	TranslatePDF(ctx context.Context, token string, file FileParam, language string) ([]byte, error)
	TranslateText(ctx context.Context, token, text, language string) ([]byte, error)
	ExtractJargon(ctx context.Context, token string, file FileParam, language string) ([]byte, error)
	AnalyzeText(ctx context.Context, token, text, language, documentType string) ([]byte, error)
	ClassifyDocument(ctx context.Context, token string, file FileParam) ([]byte, error)
	SearchVideos(ctx context.Context, token, title, language string) ([]byte, error)
}

// FileParam is a file part of a multipart provider request.
type FileParam struct {
	Name   string
	Reader io.Reader
}

// TextExtractor pulls plain text and page counts out of stored documents.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (domain.ExtractedText, error)
}

package domain

import "time"

type DocumentStatus string

const (
	StatusUploaded  DocumentStatus = "uploaded"
	StatusAnalyzing DocumentStatus = "analyzing"
	StatusAnalyzed  DocumentStatus = "analyzed"
	StatusError     DocumentStatus = "error"
)

type Document struct {
	ID           string         `json:"id"`
	Username     string         `json:"username"`
	Filename     string         `json:"fileName"`
	MimeType     string         `json:"mimeType"`
	SizeBytes    int64          `json:"sizeBytes"`
	StoragePath  string         `json:"-"`
	DocumentType string         `json:"documentType,omitempty"`
	IsFinancial  bool           `json:"isFinancial"`
	Status       DocumentStatus `json:"status"`
	Error        string         `json:"error,omitempty"`
	UploadDate   time.Time      `json:"uploadDate"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// ClassificationResult is the cleaned output of the document-type classifier.
// Label is always non-empty Title Case; "Document" when nothing usable remains.
type ClassificationResult struct {
	Label       string `json:"documentType"`
	IsFinancial bool   `json:"financial"`
}

type User struct {
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	Role         string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is the authenticated state tracked per issued token.
type Session struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	IssuedAt time.Time `json:"issuedAt"`
	// ExpiresAt is zero when the token carries no expiry claim.
	ExpiresAt time.Time `json:"expiresAt"`
}

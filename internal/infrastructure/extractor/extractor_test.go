package extractor

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
)

type storageFake struct {
	blobs map[string][]byte
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.blobs[key] = raw
	return nil
}

func (f *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	raw, ok := f.blobs[key]
	if !ok {
		return nil, fmt.Errorf("no blob %s", key)
	}
	return io.NopCloser(strings.NewReader(string(raw))), nil
}

func (f *storageFake) Delete(_ context.Context, key string) error {
	delete(f.blobs, key)
	return nil
}

func TestExtractPlainText(t *testing.T) {
	storage := &storageFake{blobs: map[string][]byte{"doc-1": []byte("  hello vault  \n")}}
	ext := New(storage)

	got, err := ext.Extract(context.Background(), &domain.Document{
		Filename:    "notes.txt",
		StoragePath: "doc-1",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got.Text != "hello vault" || got.PageCount != 1 {
		t.Fatalf("got %+v", got)
	}
}

func TestExtractRejectsBinaryAsPlainText(t *testing.T) {
	storage := &storageFake{blobs: map[string][]byte{"doc-1": {0xff, 0xfe, 0x00, 0x01}}}
	ext := New(storage)

	_, err := ext.Extract(context.Background(), &domain.Document{
		Filename:    "blob.bin",
		StoragePath: "doc-1",
	})
	if err == nil {
		t.Fatalf("expected error for non-utf8 content")
	}
}

func TestExtractMalformedPDFFails(t *testing.T) {
	storage := &storageFake{blobs: map[string][]byte{"doc-1": []byte("not a pdf at all")}}
	ext := New(storage)

	_, err := ext.Extract(context.Background(), &domain.Document{
		Filename:    "broken.pdf",
		StoragePath: "doc-1",
	})
	if err == nil {
		t.Fatalf("expected error for malformed pdf")
	}
}

func TestExtractMissingBlobFails(t *testing.T) {
	storage := &storageFake{blobs: map[string][]byte{}}
	ext := New(storage)

	_, err := ext.Extract(context.Background(), &domain.Document{
		Filename:    "gone.txt",
		StoragePath: "missing",
	})
	if err == nil {
		t.Fatalf("expected error for missing blob")
	}
}

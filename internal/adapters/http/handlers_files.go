package httpadapter

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
	"github.com/kucp1127/clarityvault-gateway/internal/core/usecase"
)

const multipartMemoryLimit = 32 << 20

// saveFiles accepts one or more "file" parts and uploads them as a batch.
// Outcomes are per-file: one oversized file does not abort its siblings.
func (rt *Router) saveFiles(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}

	session := sessionFromContext(r.Context())
	username := r.FormValue("username")
	if username == "" {
		username = session.Username
	}

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}

	files := make([]usecase.UploadFile, 0, len(headers))
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()
	for _, header := range headers {
		part, err := header.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("open part %s", header.Filename)})
			return
		}
		closers = append(closers, part)
		files = append(files, usecase.UploadFile{
			Filename: header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Size:     header.Size,
			Body:     part,
		})
	}

	outcomes := rt.uploadUC.UploadBatch(r.Context(), username, files)
	for _, outcome := range outcomes {
		result := "ok"
		if outcome.Err != nil {
			result = "error"
		}
		if rt.metrics != nil {
			rt.metrics.RecordUpload(rt.service, result)
		}
	}

	if len(outcomes) == 1 {
		if outcomes[0].Err != nil {
			writeError(w, outcomes[0].Err)
			return
		}
		writeJSON(w, http.StatusOK, outcomes[0].Document)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": outcomes})
}

func (rt *Router) deleteFile(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodDelete) {
		return
	}
	doc, ok := rt.ownedDocument(w, r, "/api/files/delete/")
	if !ok {
		return
	}
	if err := rt.documentsUC.Delete(r.Context(), doc.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (rt *Router) findFile(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	doc, ok := rt.ownedDocument(w, r, "/api/files/find/")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) previewFile(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	doc, ok := rt.ownedDocument(w, r, "/api/files/preview/")
	if !ok {
		return
	}

	_, text, err := rt.documentsUC.Preview(r.Context(), doc.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":        doc.ID,
		"fileName":  doc.Filename,
		"text":      text.Text,
		"pageCount": text.PageCount,
	})
}

func (rt *Router) downloadFile(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	doc, ok := rt.ownedDocument(w, r, "/api/files/download/")
	if !ok {
		return
	}

	_, reader, err := rt.documentsUC.Download(r.Context(), doc.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	defer func() { _ = reader.Close() }()

	w.Header().Set("Content-Type", doc.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, reader)
}

func (rt *Router) listFiles(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	username := strings.TrimPrefix(r.URL.Path, "/api/files/findByUsername/")
	if username == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username is required"})
		return
	}

	docs, err := rt.documentsUC.ListByUsername(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": docs})
}

// ownedDocument loads the path-addressed document and hides other users'
// documents behind a 404.
func (rt *Router) ownedDocument(w http.ResponseWriter, r *http.Request, prefix string) (*domain.Document, bool) {
	id := strings.TrimPrefix(r.URL.Path, prefix)
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return nil, false
	}

	doc, err := rt.documentsUC.Find(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	session := sessionFromContext(r.Context())
	if session == nil || doc.Username != session.Username {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "document not found"})
		return nil, false
	}
	return doc, true
}

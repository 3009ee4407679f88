package httpadapter

import (
	"net/http"

	"github.com/kucp1127/clarityvault-gateway/internal/core/ports"
)

func (rt *Router) translatePDF(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	file, language, ok := fileAndLanguage(w, r)
	if !ok {
		return
	}
	defer func() { _ = file.closer.Close() }()

	view, err := rt.analyzeUC.TranslatePDF(r.Context(), tokenFromContext(r.Context()), file.param, language)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (rt *Router) translateText(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}
	text := r.FormValue("text")
	if text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	view, err := rt.analyzeUC.TranslateText(r.Context(), tokenFromContext(r.Context()), text, r.FormValue("language"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (rt *Router) extractJargon(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	file, language, ok := fileAndLanguage(w, r)
	if !ok {
		return
	}
	defer func() { _ = file.closer.Close() }()

	view, err := rt.analyzeUC.ExtractJargon(r.Context(), tokenFromContext(r.Context()), file.param, language)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (rt *Router) analyzeText(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}
	text := r.FormValue("text")
	if text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	view, err := rt.analyzeUC.AnalyzeText(
		r.Context(),
		tokenFromContext(r.Context()),
		text,
		r.FormValue("language"),
		r.FormValue("documentType"),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// classifyDocument always answers 200 with a usable label; provider failure
// degrades to the filename heuristic inside the usecase.
func (rt *Router) classifyDocument(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	part, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer func() { _ = part.Close() }()

	result := rt.classifyUC.ClassifyUpload(r.Context(), tokenFromContext(r.Context()), ports.FileParam{
		Name:   header.Filename,
		Reader: part,
	})
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) searchVideos(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	title := r.URL.Query().Get("title")
	if title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}

	videos, err := rt.analyzeUC.SearchVideos(
		r.Context(),
		tokenFromContext(r.Context()),
		title,
		r.URL.Query().Get("language"),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"videos": videos})
}

type filePart struct {
	param  ports.FileParam
	closer interface{ Close() error }
}

func fileAndLanguage(w http.ResponseWriter, r *http.Request) (filePart, string, bool) {
	part, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return filePart{}, "", false
	}
	return filePart{
		param:  ports.FileParam{Name: header.Filename, Reader: part},
		closer: part,
	}, r.FormValue("language"), true
}

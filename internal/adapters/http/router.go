// Package httpadapter exposes the gateway's HTTP surface. Route paths match
// the collaborator contract the web client already speaks.
package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kucp1127/clarityvault-gateway/internal/auth"
	"github.com/kucp1127/clarityvault-gateway/internal/core/usecase"
	"github.com/kucp1127/clarityvault-gateway/internal/observability/metrics"
)

type Router struct {
	auth        *auth.Manager
	uploadUC    *usecase.UploadUseCase
	analyzeUC   *usecase.AnalyzeUseCase
	classifyUC  *usecase.ClassifyUseCase
	documentsUC *usecase.DocumentsUseCase
	metrics     *metrics.GatewayMetrics
	service     string

	rateLimitRPS   float64
	rateLimitBurst int
	maxConcurrent  int
	queueWait      time.Duration
}

type RouterConfig struct {
	Service        string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxConcurrent  int
	QueueWait      time.Duration
}

func NewRouter(
	authManager *auth.Manager,
	uploadUC *usecase.UploadUseCase,
	analyzeUC *usecase.AnalyzeUseCase,
	classifyUC *usecase.ClassifyUseCase,
	documentsUC *usecase.DocumentsUseCase,
	gatewayMetrics *metrics.GatewayMetrics,
	cfg RouterConfig,
) *Router {
	service := cfg.Service
	if service == "" {
		service = "api"
	}
	return &Router{
		auth:           authManager,
		uploadUC:       uploadUC,
		analyzeUC:      analyzeUC,
		classifyUC:     classifyUC,
		documentsUC:    documentsUC,
		metrics:        gatewayMetrics,
		service:        service,
		rateLimitRPS:   cfg.RateLimitRPS,
		rateLimitBurst: cfg.RateLimitBurst,
		maxConcurrent:  cfg.MaxConcurrent,
		queueWait:      cfg.QueueWait,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	mux.HandleFunc("/login", rt.login)
	mux.HandleFunc("/register", rt.register)
	mux.HandleFunc("/logout", rt.authMiddleware(rt.logout))

	mux.HandleFunc("/api/files/save", rt.authMiddleware(rt.saveFiles))
	mux.HandleFunc("/api/files/delete/", rt.authMiddleware(rt.deleteFile))
	mux.HandleFunc("/api/files/find/", rt.authMiddleware(rt.findFile))
	mux.HandleFunc("/api/files/preview/", rt.authMiddleware(rt.previewFile))
	mux.HandleFunc("/api/files/download/", rt.authMiddleware(rt.downloadFile))
	mux.HandleFunc("/api/files/findByUsername/", rt.authMiddleware(rt.listFiles))

	mux.HandleFunc("/pdf_translation", rt.authMiddleware(rt.translatePDF))
	mux.HandleFunc("/text_translation", rt.authMiddleware(rt.translateText))
	mux.HandleFunc("/pdf_jargon_extraction", rt.authMiddleware(rt.extractJargon))
	mux.HandleFunc("/analyze_text", rt.authMiddleware(rt.analyzeText))
	mux.HandleFunc("/find_Document_type", rt.authMiddleware(rt.classifyDocument))
	mux.HandleFunc("/search", rt.authMiddleware(rt.searchVideos))

	mux.HandleFunc("/data/", rt.authMiddleware(rt.userProfile))

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.maxConcurrent, rt.queueWait)
	handler = rateLimitMiddleware(handler, rt.rateLimitRPS, rt.rateLimitBurst)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return false
	}
	return true
}

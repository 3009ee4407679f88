// Package provider is the HTTP client for the remote document-analysis
// backend. It returns raw payload bytes; normalization lives in
// core/normalize so that payload-shape handling stays testable without a
// network.
package provider

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kucp1127/clarityvault-gateway/internal/core/ports"
)

type Client struct {
	baseURL    string
	httpClient *http.Client

	processTimeout time.Duration
	queryTimeout   time.Duration
}

type Option func(*Client)

func WithTimeouts(process, query time.Duration) Option {
	return func(c *Client) {
		if process > 0 {
			c.processTimeout = process
		}
		if query > 0 {
			c.queryTimeout = query
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{},
		processTimeout: 60 * time.Second,
		queryTimeout:   15 * time.Second,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func (c *Client) TranslatePDF(ctx context.Context, token string, file ports.FileParam, language string) ([]byte, error) {
	return c.postMultipart(ctx, "translate_pdf", "/pdf_translation", c.processTimeout, token, []formField{
		{name: "file", file: &file},
		{name: "language", value: language},
	})
}

func (c *Client) TranslateText(ctx context.Context, token, text, language string) ([]byte, error) {
	return c.postMultipart(ctx, "translate_text", "/text_translation", c.processTimeout, token, []formField{
		{name: "text", value: text},
		{name: "language", value: language},
	})
}

func (c *Client) ExtractJargon(ctx context.Context, token string, file ports.FileParam, language string) ([]byte, error) {
	return c.postMultipart(ctx, "extract_jargon", "/pdf_jargon_extraction", c.processTimeout, token, []formField{
		{name: "file", file: &file},
		{name: "language", value: language},
	})
}

func (c *Client) AnalyzeText(ctx context.Context, token, text, language, documentType string) ([]byte, error) {
	return c.postMultipart(ctx, "analyze_text", "/analyze_text", c.processTimeout, token, []formField{
		{name: "text", value: text},
		{name: "language", value: language},
		{name: "documentType", value: documentType},
	})
}

func (c *Client) ClassifyDocument(ctx context.Context, token string, file ports.FileParam) ([]byte, error) {
	return c.postMultipart(ctx, "classify_document", "/find_Document_type", c.processTimeout, token, []formField{
		{name: "file", file: &file},
	})
}

func (c *Client) SearchVideos(ctx context.Context, token, title, language string) ([]byte, error) {
	query := url.Values{}
	query.Set("title", title)
	query.Set("language", language)
	return c.get(ctx, "search_videos", "/search", c.queryTimeout, token, query)
}

package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
	"github.com/kucp1127/clarityvault-gateway/internal/core/ports"
)

// formField is one part of a multipart request body. Exactly the fields the
// upstream expects, in insertion order.
type formField struct {
	name  string
	value string
	file  *ports.FileParam
}

func buildMultipart(fields []formField) (io.Reader, string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, field := range fields {
		if field.file != nil {
			part, err := writer.CreateFormFile(field.name, field.file.Name)
			if err != nil {
				return nil, "", fmt.Errorf("create form file %s: %w", field.name, err)
			}
			if _, err := io.Copy(part, field.file.Reader); err != nil {
				return nil, "", fmt.Errorf("copy form file %s: %w", field.name, err)
			}
			continue
		}
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", field.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &body, writer.FormDataContentType(), nil
}

// do issues a single request and maps the outcome onto the error taxonomy.
// There is no retry: the request is sent at most once.
func (c *Client) do(ctx context.Context, operation string, timeout time.Duration, req *http.Request, token string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req = req.WithContext(ctx)

	// The header is attached even when the token is empty; the upstream
	// decides whether to reject the call.
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, domain.WrapError(domain.ErrTimeout, operation, err)
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, domain.WrapError(domain.ErrNetwork, operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.WrapError(domain.ErrNetwork, operation, fmt.Errorf("read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.WrapError(domain.ErrAuth, operation, fmt.Errorf("status 401: %s", truncate(payload)))
	case resp.StatusCode == http.StatusBadRequest:
		return nil, domain.WrapError(domain.ErrValidation, operation, fmt.Errorf("status 400: %s", truncate(payload)))
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.WrapError(domain.ErrNotFound, operation, fmt.Errorf("status 404: %s", truncate(payload)))
	case resp.StatusCode >= 500:
		return nil, domain.WrapError(domain.ErrServer, operation, fmt.Errorf("status %d: %s", resp.StatusCode, truncate(payload)))
	case resp.StatusCode >= 400:
		return nil, domain.WrapError(domain.ErrValidation, operation, fmt.Errorf("status %d: %s", resp.StatusCode, truncate(payload)))
	}
	return payload, nil
}

func (c *Client) postMultipart(ctx context.Context, operation, path string, timeout time.Duration, token string, fields []formField) ([]byte, error) {
	body, contentType, err := buildMultipart(fields)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(ctx, operation, timeout, req, token)
}

func (c *Client) get(ctx context.Context, operation, path string, timeout time.Duration, token string, query url.Values) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return c.do(ctx, operation, timeout, req, token)
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(payload []byte) string {
	const maxBody = 512
	if len(payload) > maxBody {
		return string(payload[:maxBody]) + "..."
	}
	return string(payload)
}

// internal/renderer/renderer.go

// Package renderer is the client for the document render service, which
// turns populated ACORD forms into filled PDF documents. This service
// owns the PDF byte layout; the intake backend only ships it field maps
// and stores the document handles it returns.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	commonhttp "acord-intake/internal/common/http"
	"acord-intake/internal/common/logger"
	"acord-intake/internal/common/metrics"
	"acord-intake/internal/models"
)

// Error codes for render failures
var (
	ErrRenderFailed  = errors.New("RENDER_FAILED")
	ErrRenderTimeout = errors.New("RENDER_TIMEOUT")
)

// RenderResult is the handle the render service returns for a document.
type RenderResult struct {
	DocumentID string `json:"documentId"`
	URL        string `json:"url"`
	PageCount  int    `json:"pageCount,omitempty"`
}

type renderPayload struct {
	SubmissionID string            `json:"submissionId"`
	FormType     string            `json:"formType"`
	FormName     string            `json:"formName"`
	GeneratedAt  string            `json:"generatedAt"`
	Fields       map[string]string `json:"fields"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *commonhttp.Client
	logger     logger.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, log logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: commonhttp.NewClient(timeout),
		logger:     log.WithFields(map[string]interface{}{"component": "renderer"}),
	}
}

// Enabled reports whether a render service is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// RenderForm submits one populated form for PDF rendering and returns
// the stored document handle.
func (c *Client) RenderForm(ctx context.Context, form *models.GeneratedForm) (*RenderResult, error) {
	payload := renderPayload{
		SubmissionID: form.SubmissionID,
		FormType:     form.FormType,
		FormName:     form.FormName,
		GeneratedAt:  form.GeneratedAt,
		Fields:       form.Fields,
	}

	headers := map[string]string{}
	if c.apiKey != "" {
		headers["X-API-Key"] = c.apiKey
	}

	var result RenderResult
	if err := c.httpClient.PostJSON(ctx, c.baseURL+"/render", headers, payload, &result); err != nil {
		metrics.DocumentRenders.WithLabelValues("error").Inc()
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrRenderTimeout, err)
		}
		var statusErr *commonhttp.StatusError
		if errors.As(err, &statusErr) {
			return nil, fmt.Errorf("%w: render service returned %v", ErrRenderFailed, statusErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	if result.DocumentID == "" {
		metrics.DocumentRenders.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: response missing documentId", ErrRenderFailed)
	}

	metrics.DocumentRenders.WithLabelValues("success").Inc()
	c.logger.Debug("form rendered", map[string]interface{}{
		"submission_id": form.SubmissionID,
		"form_type":     form.FormType,
		"document_id":   result.DocumentID,
	})
	return &result, nil
}

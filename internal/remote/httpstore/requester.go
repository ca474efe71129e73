package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/thenoetrevino/boardsync/internal/models"
)

// requester owns the request lifecycle: building the request, executing it
// through the Client, closing the body and translating errors.
type requester struct {
	client *Client
	logger *slog.Logger
}

// do sends method to path. reqBody is marshaled for POST, PUT and PATCH;
// respBody, if non-nil, receives the decoded response.
func (r *requester) do(ctx context.Context, method, path string, wantStatus int, reqBody, respBody any) error {
	switch method {
	case http.MethodGet, http.MethodDelete:
		return r.noBody(ctx, method, path, wantStatus, respBody)
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return r.withBody(ctx, method, path, wantStatus, reqBody, respBody)
	default:
		return fmt.Errorf("unsupported HTTP method: %s", method)
	}
}

func (r *requester) noBody(ctx context.Context, method, path string, wantStatus int, respBody any) error {
	req, err := http.NewRequestWithContext(ctx, method, r.client.BaseURL()+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating %s request for %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")

	return r.execute(req, wantStatus, respBody)
}

func (r *requester) withBody(ctx context.Context, method, path string, wantStatus int, reqBody, respBody any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshaling %s body for %s: %w", method, path, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.client.BaseURL()+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating %s request for %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return r.execute(req, wantStatus, respBody)
}

// closeBody closes an HTTP response body and logs on failure.
func (r *requester) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "failed to close response body",
			slog.String("error", err.Error()),
		)
	}
}

// execute sends the request, checks the status code and decodes the body.
// Transport failures and breaker rejections become models.ErrUnavailable.
func (r *requester) execute(req *http.Request, wantStatus int, respBody any) error {
	ctx := req.Context()

	resp, err := r.client.Do(ctx, req)
	if err != nil {
		// Retries exhausted on a retryable status still carry a response
		if resp != nil {
			defer r.closeBody(ctx, resp)
			if resp.StatusCode != wantStatus {
				return TranslateHTTPError(resp)
			}
		}
		r.logger.ErrorContext(ctx, "request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Bool("breaker_open", isBreakerRejection(err)),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%s %s: %w: %w", req.Method, req.URL.Path, models.ErrUnavailable, err)
	}
	defer r.closeBody(ctx, resp)

	if resp.StatusCode != wantStatus {
		translateErr := TranslateHTTPError(resp)
		r.logger.DebugContext(ctx, "unexpected status",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Int("status", resp.StatusCode),
			slog.Int("want_status", wantStatus),
		)
		return translateErr
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return fmt.Errorf("decoding response from %s %s: %w", req.Method, req.URL.Path, err)
		}
	}

	return nil
}

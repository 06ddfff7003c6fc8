package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pubfindco/pubfind/pkg/search"
)

// Transport sends one chat request to the search service and decodes the
// reply. Implementations must return *TransportError for failures to reach
// the service or non-success statuses, and *DecodeError for unusable bodies.
type Transport interface {
	Chat(ctx context.Context, req *search.ChatRequest) (*search.Response, error)
}

// HTTPTransport talks to the search service over its documented HTTP
// contract (POST /api/chat).
type HTTPTransport struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPTransport creates a transport for the service at baseURL. A request
// that outlives timeout is abandoned and reported as a transport failure;
// the original client had no timeout at all, which could leave it busy
// forever on a hung request.
func NewHTTPTransport(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPTransport {
	return &HTTPTransport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Chat implements Transport.
func (t *HTTPTransport) Chat(ctx context.Context, req *search.ChatRequest) (*search.Response, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	url := t.baseURL + "/api/chat"
	t.logger.Debug("sending chat request",
		zap.String("url", url),
		zap.Int("history_len", len(req.ConversationHistory)),
		zap.Int("body_size", len(reqBody)),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("do request: %w", err)}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	// Any 2xx counts as success; everything else is a uniform failure.
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &TransportError{Err: fmt.Errorf("server returned %d: %s", httpResp.StatusCode, truncate(string(body), 200))}
	}

	resp, err := search.Decode(body)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	return resp, nil
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

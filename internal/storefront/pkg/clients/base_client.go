package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront_api/pkg/logger"
)

const (
	defaultTimeout  = 30 * time.Second
	maxErrorBodyLen = 2048
)

// StatusError is returned for any non-2xx upstream answer. Body is truncated.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("non-OK status: %d", e.Status)
}

type BaseClient struct {
	ApiURL string
	log    logger.Logger
	client *http.Client
	auth   AuthEngine
}

func NewBaseClient(apiURL string, auth AuthEngine, log logger.Logger) *BaseClient {
	return &BaseClient{
		ApiURL: strings.TrimRight(apiURL, "/"),
		log:    log,
		client: &http.Client{Timeout: defaultTimeout},
		auth:   auth,
	}
}

func (c *BaseClient) doJSON(ctx context.Context, method, endpoint string, requestBody interface{}, response interface{}) error {
	var body io.Reader
	if requestBody != nil {
		bodyBytes, err := json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(bodyBytes)
	}
	return c.doRequest(ctx, method, endpoint, body, "application/json", nil, response)
}

// doRequest performs exactly one HTTP exchange; it never retries.
func (c *BaseClient) doRequest(ctx context.Context, method, endpoint string, body io.Reader, contentType string,
	headers map[string]string, response interface{}) error {
	c.log.Log("%s %s", method, endpoint)

	req, err := http.NewRequestWithContext(ctx, method, c.ApiURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if c.auth != nil {
		c.auth.SetApiKey(req)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		select {
		case <-ctx.Done():
			return fmt.Errorf("request was cancelled: %w", ctx.Err())
		default:
			return fmt.Errorf("failed to execute request: %w", err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		c.log.Warn("%s %s answered %d", method, endpoint, resp.StatusCode)
		return &StatusError{Status: resp.StatusCode, Body: string(snippet)}
	}

	if response == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

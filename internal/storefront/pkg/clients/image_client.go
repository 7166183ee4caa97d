package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront_api/pkg/logger"
)

const defaultImageType = "image/jpeg"

// ImageResponse is an open upstream image. The caller closes Body.
type ImageResponse struct {
	Status      int
	ContentType string
	Body        io.ReadCloser
}

// ImageClient fetches allow-listed remote images for the proxy endpoint.
type ImageClient struct {
	client *http.Client
	log    logger.Logger
}

// NewImageClient returns a client that never follows redirects, so a 3xx from an
// allow-listed host is relayed as a plain status.
func NewImageClient(log logger.Logger) *ImageClient {
	return &ImageClient{
		client: &http.Client{Timeout: 20 * time.Second, CheckRedirect: noRedirect},
		log:    log,
	}
}

func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

func (c *ImageClient) Fetch(ctx context.Context, imageURL string) (*ImageResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("image fetch failed: %v", err)
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return &ImageResponse{Status: resp.StatusCode, Body: http.NoBody}, nil
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultImageType
	}
	return &ImageResponse{Status: http.StatusOK, ContentType: contentType, Body: resp.Body}, nil
}

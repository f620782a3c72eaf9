package feed

import (
	"context"
	"fmt"
	"net/http"

	"github.com/saravenpi/chatview/internal/models"
)

// HTTPSource issues a single GET per Load. It never retries.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{url: url, client: client}
}

func (s *HTTPSource) Name() string {
	return s.url
}

func (s *HTTPSource) Load(ctx context.Context) (*models.Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch chats: unexpected status %s", resp.Status)
	}

	payload, err := models.DecodePayload(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chats: %w", err)
	}
	return payload, nil
}

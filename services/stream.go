package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// ErrUpstream is returned when the stream provider is unreachable or answers
// with a non-success status. Proxy handlers translate it to 502.
var ErrUpstream = errors.New("stream provider unavailable")

// StreamService proxies requests to the third-party stream-search provider.
// Responses are passed through verbatim; this service never reshapes them.
type StreamService struct {
	baseURL string
	client  *http.Client
}

// NewStreamService creates a new stream search proxy client
func NewStreamService(baseURL string) *StreamService {
	return &StreamService{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Search looks up playable streams by title keyword
func (s *StreamService) Search(keyword, mediaType string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("keyword", keyword)
	if mediaType != "" {
		params.Set("type", mediaType)
	}
	return s.proxy("/search", params)
}

// Links looks up stream links for a provider-specific id
func (s *StreamService) Links(id, mediaType string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("id", id)
	if mediaType != "" {
		params.Set("type", mediaType)
	}
	return s.proxy("/links", params)
}

func (s *StreamService) proxy(path string, params url.Values) (json.RawMessage, error) {
	requestURL := fmt.Sprintf("%s%s?%s", s.baseURL, path, params.Encode())

	req, err := http.NewRequest(http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream request: %w", err)
	}

	// The provider rejects non-browser clients, so the proxy impersonates one.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", s.baseURL+"/")
	req.Header.Set("Origin", s.baseURL)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return json.RawMessage(body), nil
}

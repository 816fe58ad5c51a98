package facts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const (
	// DefaultEndpoint returns one random fact per request.
	DefaultEndpoint = "https://uselessfacts.jsph.pl/api/v2/facts/random"
	// DefaultLanguage is the only variant the widget asks for.
	DefaultLanguage = "en"

	maxBodyBytes = 64 << 10
)

// HTTPSource fetches facts from a JSON endpoint shaped like {"text": "..."}.
type HTTPSource struct {
	client   *http.Client
	endpoint string
	language string
}

// NewHTTPSource creates a source for endpoint. A nil client uses
// http.DefaultClient; an empty language uses DefaultLanguage.
func NewHTTPSource(client *http.Client, endpoint, language string) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if language == "" {
		language = DefaultLanguage
	}
	return &HTTPSource{
		client:   client,
		endpoint: endpoint,
		language: language,
	}
}

// httpFact mirrors the fields of the endpoint's response we care about.
type httpFact struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Source    string `json:"source"`
	Permalink string `json:"permalink"`
}

// Fetch issues a single uncached GET and decodes the body.
func (s *HTTPSource) Fetch(ctx context.Context) (Fact, error) {
	reqURL, err := s.requestURL()
	if err != nil {
		return Fact{}, &FetchError{Kind: KindNetwork, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Fact{}, &FetchError{Kind: KindNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := s.client.Do(req)
	if err != nil {
		return Fact{}, &FetchError{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return Fact{}, &FetchError{Kind: KindHTTPStatus, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Fact{}, &FetchError{Kind: KindNetwork, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	var payload httpFact
	if err := json.Unmarshal(body, &payload); err != nil {
		return Fact{}, &FetchError{Kind: KindParse, Err: err}
	}

	return Fact{
		Text:      payload.Text,
		ID:        payload.ID,
		Source:    payload.Source,
		Permalink: payload.Permalink,
	}, nil
}

func (s *HTTPSource) requestURL() (string, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", s.endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("endpoint must be an absolute URL")
	}
	q := u.Query()
	q.Set("language", s.language)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

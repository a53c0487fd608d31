package idp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"suichat/internal/domain"
	"suichat/internal/observability"
)

const maxResponseBytes = 64 << 10

// ErrMalformedResponse is returned when the salt service answers with a body
// that is not a salt response.
var ErrMalformedResponse = errors.New("malformed salt response")

// SaltClient fetches per-user salts from the salt service.
type SaltClient struct {
	URL     string
	HTTP    *http.Client
	Now     func() time.Time
	Metrics *observability.Metrics
}

// NewSaltClient returns a client posting to url with the given timeout.
func NewSaltClient(url string, timeout time.Duration) *SaltClient {
	return &SaltClient{
		URL:  url,
		HTTP: &http.Client{Timeout: timeout},
		Now:  time.Now,
	}
}

type saltRequest struct {
	Token string `json:"token"`
}

// FetchSalt validates idToken locally, then asks the salt service for the
// user's salt.
func (c *SaltClient) FetchSalt(ctx context.Context, idToken string) (out domain.SaltResponse, err error) {
	if _, err := ParseClaims(idToken, c.now()); err != nil {
		return out, err
	}

	ctx, span := observability.StartSpan(ctx, "idp.FetchSalt", attribute.String("url", c.URL))
	start := time.Now()
	defer func() {
		c.Metrics.RecordRequest("salt", "fetch_salt", err == nil, time.Since(start))
		observability.EndSpan(span, err)
	}()

	body, err := json.Marshal(saltRequest{Token: idToken})
	if err != nil {
		return out, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client().Do(req)
	if err != nil {
		return out, fmt.Errorf("%w: salt service: %w", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return out, fmt.Errorf("%w: salt service: %s", domain.ErrUnavailable, resp.Status)
	case resp.StatusCode == http.StatusUnauthorized:
		return out, fmt.Errorf("%w: salt service: %s", ErrTokenExpired, resp.Status)
	case resp.StatusCode/100 != 2:
		return out, fmt.Errorf("%w: salt service: %s", ErrMalformedToken, resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return out, fmt.Errorf("%w: salt service: read body: %w", domain.ErrUnavailable, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out.Salt == "" {
		return out, errors.New("salt service returned an empty salt")
	}
	return out, nil
}

func (c *SaltClient) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *SaltClient) client() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

var _ domain.SaltProvider = (*SaltClient)(nil)

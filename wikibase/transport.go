package wikibase

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/teranos/wikibase/errors"
	"github.com/teranos/wikibase/internal/httpclient"
	"github.com/teranos/wikibase/version"
)

// maxResponseSize limits response body reads
const maxResponseSize = 32 * 1024 * 1024

// Transport performs one HTTP exchange with the API endpoint. It returns the
// raw JSON body and the cookies the server set.
type Transport interface {
	Do(ctx context.Context, method, endpoint string, params url.Values, cookies []*http.Cookie) ([]byte, []*http.Cookie, error)
}

// HTTPTransport is the default Transport. GET parameters go in the query
// string, POST parameters in a form-encoded body.
type HTTPTransport struct {
	client    *httpclient.SaferClient
	userAgent string
}

// HTTPTransportOptions configures NewHTTPTransport
type HTTPTransportOptions struct {
	Timeout        time.Duration // Default: 60s
	MaxRedirects   int           // Default: 10
	BlockPrivateIP bool
	UserAgent      string // Default: version.Get().UserAgent()
}

// NewHTTPTransport creates a transport on top of a SaferClient
func NewHTTPTransport(opts HTTPTransportOptions) *HTTPTransport {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = 10
	}

	client := httpclient.NewSaferClient(opts.Timeout, httpclient.SaferClientOptions{
		MaxRedirects:   &opts.MaxRedirects,
		BlockPrivateIP: &opts.BlockPrivateIP,
	})
	return &HTTPTransport{client: client, userAgent: userAgentOrDefault(opts.UserAgent)}
}

// NewHTTPTransportWithClient wraps an existing http.Client (e.g. httptest's)
func NewHTTPTransportWithClient(client *http.Client, userAgent string) *HTTPTransport {
	return &HTTPTransport{client: httpclient.WrapClient(client), userAgent: userAgentOrDefault(userAgent)}
}

func userAgentOrDefault(ua string) string {
	if ua == "" {
		return version.Get().UserAgent()
	}
	return ua
}

// Do implements Transport
func (t *HTTPTransport) Do(ctx context.Context, method, endpoint string, params url.Values, cookies []*http.Cookie) ([]byte, []*http.Cookie, error) {
	var req *http.Request
	var err error

	switch method {
	case http.MethodGet:
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
		if err == nil {
			req.URL.RawQuery = params.Encode()
		}
	case http.MethodPost:
		req, err = http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	default:
		return nil, nil, errors.Newf("unsupported method %q", method)
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	respCookies := resp.Cookies()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, respCookies, errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, respCookies, errors.Newf("API request failed with status %d: %s", resp.StatusCode, truncate(string(body), 512))
	}

	return body, respCookies, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Package provider contains one HTTP client per external recipe source.
// Clients return provider-native payloads; normalization happens in the
// service layer.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pageza/recipe-nexus/backend/internal/metrics"
)

var (
	// ErrUpstream wraps every transport, status, or decoding failure.
	ErrUpstream = errors.New("upstream request failed")
	// ErrNotFound is returned when a provider has no record for an id.
	ErrNotFound = errors.New("upstream record not found")
)

// DefaultTimeout bounds a single upstream request when the caller passes no client.
const DefaultTimeout = 8 * time.Second

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 8 << 20

type client struct {
	name    string
	baseURL string
	http    *http.Client
}

func newClient(name, baseURL string, httpClient *http.Client) client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// getJSON issues a GET and decodes the body into out.
func (c client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	start := time.Now()
	err := c.fetch(ctx, path, query, out)
	metrics.ObserveUpstream(c.name, op, err, time.Since(start))
	return err
}

func (c client) fetch(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: build request: %v", ErrUpstream, c.name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUpstream, c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", c.name, path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s: status %d", ErrUpstream, c.name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %s: read body: %v", ErrUpstream, c.name, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: decode: %v", ErrUpstream, c.name, err)
	}
	return nil
}

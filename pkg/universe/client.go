// Package universe is the HTTP client for the external galaxy-generation
// service. The service is an opaque collaborator: StarChart submits
// generation parameters and reads back sector records; everything else
// (persistence, world simulation) stays on the other side of the wire.
package universe

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meridian/starchart/pkg/errors"
	"github.com/meridian/starchart/pkg/galaxy"
	"github.com/meridian/starchart/pkg/httputil"
	"github.com/meridian/starchart/pkg/observability"
	"github.com/meridian/starchart/pkg/sector"
)

const defaultTimeout = 10 * time.Second

// Client talks to the universe service's admin API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a Client for the service at baseURL. The token, if non-empty,
// is sent as a bearer token on every request.
func New(baseURL, token string) (*Client, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}, nil
}

// Generate submits a generation request and returns the created galaxy.
// The call is synchronous on the service side; large galaxies can take a
// few seconds, which the client timeout accommodates.
func (c *Client) Generate(ctx context.Context, cfg galaxy.GenerationConfig) (*GenerateResult, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var result GenerateResult
	err := c.do(ctx, http.MethodPost, "/api/v1/admin/galaxy/generate", cfg, &result)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "generate galaxy %q", cfg.Name)
	}
	return &result, nil
}

// Sectors fetches all sector records for a galaxy.
func (c *Client) Sectors(ctx context.Context, galaxyID uuid.UUID) ([]sector.Sector, error) {
	var page SectorPage
	path := fmt.Sprintf("/api/v1/admin/galaxy/%s/sectors", galaxyID)
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		if statusCode(err) == http.StatusNotFound {
			return nil, errors.Wrap(errors.ErrCodeGalaxyNotFound, err, "galaxy %s", galaxyID)
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch sectors for %s", galaxyID)
	}
	return page.Sectors, nil
}

// Status reports the service's current galaxy, if any.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var st Status
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/galaxy/status", nil, &st); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch status")
	}
	return &st, nil
}

// do performs a JSON request with retry on transient failures and decodes
// the response into out (when out is non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return err
		}
	}

	return httputil.RetryWithBackoff(ctx, func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		observability.HTTP().OnRequest(ctx, method, req.URL.Host, path)
		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			observability.HTTP().OnError(ctx, method, req.URL.Host, path, err)
			return &httputil.RetryableError{Err: err}
		}
		defer resp.Body.Close()
		observability.HTTP().OnResponse(ctx, method, req.URL.Host, path, resp.StatusCode, time.Since(start))

		if err := httputil.CheckStatus(resp.StatusCode); err != nil {
			return err
		}
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	})
}

// statusCode extracts the HTTP status from an error chain, or 0.
func statusCode(err error) int {
	var se *httputil.StatusError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return 0
}

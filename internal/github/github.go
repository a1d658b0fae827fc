// Package github fetches public repository listings from the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("no github profile found")

const userAgent = "devconnector"

// Client calls the GitHub API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient returns a client for baseURL. token is optional; when set it is sent as a bearer token.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		token:      token,
	}
}

// Repos returns the raw JSON list of the five oldest-created-first public repositories of username.
// Any upstream failure is reported as ErrNotFound.
func (c *Client) Repos(ctx context.Context, username string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created&direction=asc",
		c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("username", username).Msg("github request failed")
		return nil, ErrNotFound
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Ctx(ctx).Debug().Int("status", resp.StatusCode).Str("username", username).Msg("github returned non-200")
		return nil, ErrNotFound
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, ErrNotFound
	}
	if !json.Valid(body) {
		return nil, ErrNotFound
	}
	return json.RawMessage(body), nil
}

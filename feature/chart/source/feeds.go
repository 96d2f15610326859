package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"chart-catalog/feature/chart/models"
)

// Client fetches the upstream JSON feeds. Retrieval failures are
// surfaced to the caller; the pipeline itself never retries.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a feed client with strict connection timeouts.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}
}

// FetchSongs downloads the domestic song feed.
func (c *Client) FetchSongs(ctx context.Context) ([]models.RawSong, error) {
	return c.fetchSongs(ctx, c.cfg.SongsURL)
}

// FetchIntlSongs downloads the international song feed.
func (c *Client) FetchIntlSongs(ctx context.Context) ([]models.RawSong, error) {
	return c.fetchSongs(ctx, c.cfg.IntlSongsURL)
}

// FetchCommunity downloads the community difficulty dataset.
func (c *Client) FetchCommunity(ctx context.Context) ([]models.CommunityEntry, error) {
	var entries []models.CommunityEntry
	if err := c.getJSON(ctx, c.cfg.CommunityURL, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) fetchSongs(ctx context.Context, url string) ([]models.RawSong, error) {
	var songs []models.RawSong
	if err := c.getJSON(ctx, url, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}

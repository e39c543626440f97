package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3/"
	defaultTimeout = 10 * time.Second

	// maxPageSize is the upstream's documented per-request maximum for
	// list resources and for video detail lookups.
	maxPageSize = 50
)

// Config holds client configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client issues requests against the YouTube Data API: single-resource
// fetches by ID and cursor-driven multi-page fetches.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// NewClient creates a new API client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		logger:     logger.With("component", "youtube"),
	}
}

// request sends one request and validates the response envelope. The
// method is GET unless post parameters are supplied. The key parameter
// is always attached.
func (c *Client) request(ctx context.Context, resource Resource, args, postArgs url.Values) (*listEnvelope, error) {
	method := http.MethodGet
	var body *strings.Reader

	if args == nil {
		args = url.Values{}
	}
	if postArgs != nil {
		method = http.MethodPost
		postArgs.Set("key", c.apiKey)
		body = strings.NewReader(postArgs.Encode())
	} else {
		args.Set("key", c.apiKey)
	}

	reqURL := c.baseURL + string(resource)
	if encoded := args.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, reqURL, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, reqURL, nil)
	}
	if err != nil {
		return nil, &TransportError{Resource: resource, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	var env listEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &TransportError{Resource: resource, Err: fmt.Errorf("decode response: %w", err)}
	}

	if env.Error != nil {
		return nil, &UpstreamError{Resource: resource, Code: env.Error.Code, Message: env.Error.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Resource: resource, Code: resp.StatusCode, Message: resp.Status}
	}

	return &env, nil
}

// FetchByID issues a single non-paginated fetch for the given IDs. A
// zero-item result is not an error; callers decide how to treat it.
func (c *Client) FetchByID(ctx context.Context, resource Resource, ids IDList, parts []string) ([]json.RawMessage, error) {
	part, err := encodeParts(resource, parts)
	if err != nil {
		return nil, err
	}
	idParam, err := ids.encode("id", c.logger)
	if err != nil {
		return nil, err
	}

	args := url.Values{}
	args.Set("part", part)
	if idParam != "" {
		args.Set("id", idParam)
	}
	args.Set("maxResults", strconv.Itoa(maxPageSize))

	env, err := c.request(ctx, resource, args, nil)
	if err != nil {
		return nil, err
	}
	return env.Items, nil
}

// FetchPaginated drives a pageToken cursor loop, accumulating items
// until count is reached (count <= 0 means fetch everything) or the
// upstream stops returning a next cursor. Any request failure aborts
// the loop; pages already merged are not retried or resumed.
func (c *Client) FetchPaginated(ctx context.Context, resource Resource, args url.Values, count int) (*PagedResult, error) {
	result := &PagedResult{}

	for {
		env, err := c.request(ctx, resource, args, nil)
		if err != nil {
			return nil, err
		}

		result.Items = append(result.Items, env.Items...)
		result.NextPageToken = env.NextPageToken
		result.PrevPageToken = env.PrevPageToken

		c.logger.Debug("fetched page",
			"resource", resource,
			"items", len(env.Items),
			"total", len(result.Items),
		)

		if count > 0 && len(result.Items) >= count {
			result.Items = result.Items[:count]
			break
		}
		// No next-cursor token means the upstream has no more data.
		if env.NextPageToken == "" {
			break
		}
		args.Set("pageToken", env.NextPageToken)
	}

	return result, nil
}

// pageSize returns the maxResults value for the first request of a
// paginated fetch: the upstream cap, reduced when the caller wants
// fewer items than one full page.
func pageSize(count int) int {
	if count > 0 && count < maxPageSize {
		return count
	}
	return maxPageSize
}

// ChannelByID retrieves channel resources for the given IDs. Parts
// default to the channel whitelist when none are given.
func (c *Client) ChannelByID(ctx context.Context, ids IDList, parts ...string) ([]Channel, error) {
	items, err := c.FetchByID(ctx, ResourceChannels, ids, parts)
	if err != nil {
		return nil, err
	}
	return decodeItems[Channel](ResourceChannels, items)
}

// Playlists retrieves playlists owned by a channel, paginated. count <= 0
// fetches all of them.
func (c *Client) Playlists(ctx context.Context, channelID string, count int, parts ...string) ([]Playlist, error) {
	part, err := encodeParts(ResourcePlaylists, parts)
	if err != nil {
		return nil, err
	}

	args := url.Values{}
	args.Set("part", part)
	args.Set("channelId", channelID)
	args.Set("maxResults", strconv.Itoa(pageSize(count)))

	res, err := c.FetchPaginated(ctx, ResourcePlaylists, args, count)
	if err != nil {
		return nil, err
	}
	return decodeItems[Playlist](ResourcePlaylists, res.Items)
}

// PlaylistItems retrieves the items of a playlist, paginated. count <= 0
// fetches all of them.
func (c *Client) PlaylistItems(ctx context.Context, playlistID string, count int, parts ...string) ([]PlaylistItem, error) {
	part, err := encodeParts(ResourcePlaylistItems, parts)
	if err != nil {
		return nil, err
	}

	args := url.Values{}
	args.Set("part", part)
	args.Set("playlistId", playlistID)
	args.Set("maxResults", strconv.Itoa(pageSize(count)))

	res, err := c.FetchPaginated(ctx, ResourcePlaylistItems, args, count)
	if err != nil {
		return nil, err
	}
	return decodeItems[PlaylistItem](ResourcePlaylistItems, res.Items)
}

// VideosByID retrieves video resources for the given IDs in one
// request. Callers batch IDs to at most 50 per call.
func (c *Client) VideosByID(ctx context.Context, ids IDList, parts ...string) ([]Video, error) {
	items, err := c.FetchByID(ctx, ResourceVideos, ids, parts)
	if err != nil {
		return nil, err
	}
	return decodeItems[Video](ResourceVideos, items)
}

func decodeItems[T any](resource Resource, items []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, raw := range items {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("decode %s item: %w", resource, err)
		}
		out = append(out, item)
	}
	return out, nil
}

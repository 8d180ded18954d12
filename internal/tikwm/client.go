package tikwm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tikify/internal/entity"
	"tikify/pkg/logger"
)

const defaultBaseURL = "https://www.tikwm.com"

// The upstream rejects requests without a browser user agent, and compressed
// bodies break its media redirects.
var defaultHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	"Accept-Encoding": "identity",
}

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// Client talks to the tikwm.com API.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	logger     *logger.Logger
}

// NewClient creates a tikwm client. The timeout bounds each individual
// upstream call; it is not a budget for a whole pagination run.
func NewClient(log *logger.Logger, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetUserPosts fetches one page of a creator's listing at the given cursor.
func (c *Client) GetUserPosts(ctx context.Context, username string, pageSize int, cursor string) (*UserPostsPage, error) {
	endpoint := fmt.Sprintf("%s/api/user/posts?unique_id=%s&count=%d&cursor=%s",
		c.baseURL, url.QueryEscape(username), pageSize, url.QueryEscape(cursor))

	body, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var response userPostsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse user posts response: %w", err)
	}

	if response.Msg != "success" {
		return nil, fmt.Errorf("upstream returned %q for user %s", response.Msg, username)
	}

	return &UserPostsPage{
		Videos:  response.Data.Videos,
		HasMore: response.Data.HasMore,
		Cursor:  response.Data.Cursor.String(),
	}, nil
}

// FetchUserPosts drives the paginated listing for one creator until the
// upstream signals the end, a page fails, or maxItems items have been
// accumulated (maxItems <= 0 means unbounded). Page failures end the run
// early with whatever was collected: partial results are valid.
func (c *Client) FetchUserPosts(ctx context.Context, username string, pageSize, maxItems int) []RawVideo {
	var videos []RawVideo
	cursor := "0"

	for {
		page, err := c.GetUserPosts(ctx, username, pageSize, cursor)
		if err != nil {
			c.logger.Warn("pagination for %s stopped after %d items: %v", username, len(videos), err)
			break
		}
		if len(page.Videos) == 0 {
			break
		}

		videos = append(videos, page.Videos...)
		if maxItems > 0 && len(videos) >= maxItems {
			videos = videos[:maxItems]
			break
		}
		if !page.HasMore {
			break
		}
		cursor = page.Cursor
	}

	return videos
}

// Resolve follows a shared (possibly short) link to its final URL, pulls the
// content identifier out of the video/<id> path segments and derives the
// playback URLs. The gallery image list comes from a separate detail lookup
// whose failure degrades to an empty list.
func (c *Client) Resolve(ctx context.Context, rawURL string) (*entity.ResolvedLink, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrResolutionFailed, err)
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrResolutionFailed, err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	finalURL := resp.Request.URL
	contentID, ok := extractContentID(finalURL.Path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrIdentifierNotFound, finalURL.Path)
	}

	return &entity.ResolvedLink{
		ContentID: contentID,
		PlayURL:   PlayURL(contentID),
		HDPlayURL: HDPlayURL(contentID),
		Images:    c.fetchGallery(ctx, finalURL.String()),
	}, nil
}

// extractContentID scans path segments for the literal "video" token and
// returns the segment that follows it.
func extractContentID(path string) (string, bool) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := 0; i < len(segments)-1; i++ {
		if segments[i] == "video" && segments[i+1] != "" {
			return segments[i+1], true
		}
	}
	return "", false
}

// fetchGallery queries the detail endpoint for a resolved URL's gallery
// images. Best effort: any failure yields an empty list, never an error.
func (c *Client) fetchGallery(ctx context.Context, canonicalURL string) []string {
	endpoint := fmt.Sprintf("%s/api/?url=%s", c.baseURL, url.QueryEscape(canonicalURL))

	body, err := c.doRequest(ctx, endpoint)
	if err != nil {
		c.logger.Warn("gallery lookup failed for %s: %v", canonicalURL, err)
		return []string{}
	}

	var response detailResponse
	if err := json.Unmarshal(body, &response); err != nil {
		c.logger.Warn("gallery lookup returned malformed payload for %s: %v", canonicalURL, err)
		return []string{}
	}
	if response.Msg != "success" || response.Data.Images == nil {
		return []string{}
	}
	return response.Data.Images
}

func (c *Client) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return body, nil
}

package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/KovyD20/Video-games-database-project/internal/catalog"
)

const (
	// DefaultBaseURL is the public RAWG API root.
	DefaultBaseURL = "https://api.rawg.io/api"

	// DefaultPageSize is the page size the loader requests.
	DefaultPageSize = 24

	// maxBodyBytes bounds how much of a response is read.
	maxBodyBytes = 8 << 20
)

// Client fetches catalog pages over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
// Default: http.DefaultClient.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client for the API rooted at baseURL.
// An empty baseURL selects DefaultBaseURL.
func New(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    http.DefaultClient,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPage requests one page of items. Pages are 1-based.
// An empty, non-nil slice means the catalog has no items at that page.
func (c *Client) FetchPage(ctx context.Context, page, pageSize int) ([]catalog.Item, error) {
	u, err := c.pageURL(page, pageSize)
	if err != nil {
		return nil, &FetchError{Code: CodeTransport, Page: page, Message: "build request url", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{Code: CodeTransport, Page: page, Message: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching catalog page", "page", page, "page_size", pageSize)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Code: CodeTransport, Page: page, Message: "request failed", Err: redact(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &FetchError{
			Code:       CodeStatus,
			Page:       page,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{Code: CodeTransport, Page: page, Message: "read body", Err: err}
	}

	return decodePage(body, page)
}

func (c *Client) pageURL(page, pageSize int) (string, error) {
	u, err := url.Parse(c.baseURL + "/games")
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// decodePage extracts the "results" array from a page body.
func decodePage(body []byte, page int) ([]catalog.Item, error) {
	if !gjson.ValidBytes(body) {
		return nil, &FetchError{Code: CodeDecode, Page: page, Message: "malformed JSON body"}
	}
	if !gjson.ParseBytes(body).IsObject() {
		return nil, &FetchError{Code: CodeDecode, Page: page, Message: "body is not a JSON object"}
	}

	results := gjson.GetBytes(body, "results")
	if !results.Exists() || results.Type == gjson.Null {
		return []catalog.Item{}, nil
	}
	if !results.IsArray() {
		return nil, &FetchError{Code: CodeDecode, Page: page, Message: "results is not an array"}
	}

	var items []catalog.Item
	if err := json.Unmarshal([]byte(results.Raw), &items); err != nil {
		return nil, &FetchError{Code: CodeDecode, Page: page, Message: "decode results", Err: err}
	}
	if items == nil {
		items = []catalog.Item{}
	}
	return items, nil
}

// redact strips the request URL (which carries the API key) from
// transport errors.
func redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", strings.ToLower(ue.Op), ue.Err)
	}
	return err
}

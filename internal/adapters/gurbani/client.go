package gurbani

// Package gurbani talks to the upstream shabad search API and raag index page.
// Both upstreams are external collaborators; their failures surface as
// ErrUpstream so callers can answer 502 without leaking detail.

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

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/net/html"

	"github.com/gurmatacademy/portal/internal/domain/model"
	"github.com/gurmatacademy/portal/internal/observability/statsd"
)

// ErrUpstream wraps any upstream fetch/parse failure. The cause is attached
// for logging; handlers must not echo it to clients.
var ErrUpstream = errors.New("gurbani upstream failure")

const maxUpstreamBody = 4 << 20 // 4 MiB

// Config holds the upstream endpoints and request settings.
type Config struct {
	SearchBaseURL     string
	SearchResultsPath string // JMESPath expression selecting the results array
	RaagIndexURL      string
	Timeout           time.Duration
	UserAgent         string
	// Stats, when set, receives a count and duration per upstream round trip.
	Stats *statsd.Client
}

// Client fetches search results and the raag index from the upstreams.
type Client struct {
	cfg        Config
	httpClient *http.Client
	stats      *statsd.Client
}

// NewClient creates a Client, validating the results JMESPath expression once.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	if cfg.SearchBaseURL == "" {
		return nil, errors.New("search base URL is required")
	}
	if cfg.RaagIndexURL == "" {
		return nil, errors.New("raag index URL is required")
	}
	if _, err := jmespath.Compile(cfg.SearchResultsPath); err != nil {
		return nil, fmt.Errorf("compile results path %q: %w", cfg.SearchResultsPath, err)
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{cfg: cfg, httpClient: httpClient, stats: cfg.Stats}, nil
}

// Search forwards the query to the upstream search API and returns the
// results array selected by the configured JMESPath expression, unchanged.
func (c *Client) Search(ctx context.Context, query string) ([]json.RawMessage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is required")
	}

	u := c.cfg.SearchBaseURL + "/search/" + url.PathEscape(query)
	body, err := c.fetch(ctx, u, "application/json", "search")
	if err != nil {
		return nil, err
	}

	var payload any
	if jsonErr := json.Unmarshal(body, &payload); jsonErr != nil {
		return nil, fmt.Errorf("%w: decode search response: %w", ErrUpstream, jsonErr)
	}

	selected, err := jmespath.Search(c.cfg.SearchResultsPath, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: select results: %w", ErrUpstream, err)
	}
	arr, ok := selected.([]any)
	if !ok {
		// Upstream changed shape; treat as an upstream fault, not a client one.
		return nil, fmt.Errorf("%w: results path %q did not select an array", ErrUpstream, c.cfg.SearchResultsPath)
	}

	out := make([]json.RawMessage, 0, len(arr))
	for _, item := range arr {
		raw, marshalErr := json.Marshal(item)
		if marshalErr != nil {
			return nil, fmt.Errorf("%w: re-encode result: %w", ErrUpstream, marshalErr)
		}
		out = append(out, raw)
	}
	return out, nil
}

// FetchRaagIndex scrapes the upstream raag index page into structured entries.
// Entries are numbered in document order starting at 1.
func (c *Client) FetchRaagIndex(ctx context.Context) ([]model.RaagEntry, error) {
	body, err := c.fetch(ctx, c.cfg.RaagIndexURL, "text/html", "raag_index")
	if err != nil {
		return nil, err
	}

	doc, parseErr := html.Parse(strings.NewReader(string(body)))
	if parseErr != nil {
		return nil, fmt.Errorf("%w: parse raag index html: %w", ErrUpstream, parseErr)
	}

	entries := extractRaagEntries(doc)
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: raag index page yielded no entries", ErrUpstream)
	}
	return entries, nil
}

func (c *Client) fetch(ctx context.Context, rawURL, accept, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrUpstream, err)
	}
	req.Header.Set("Accept", accept)
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.emitUpstreamMetrics(endpoint, "error", start)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.emitUpstreamMetrics(endpoint, "error", start)
		return nil, fmt.Errorf("%w: upstream returned %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		c.emitUpstreamMetrics(endpoint, "error", start)
		return nil, fmt.Errorf("%w: read body: %w", ErrUpstream, err)
	}
	c.emitUpstreamMetrics(endpoint, "success", start)
	return body, nil
}

func (c *Client) emitUpstreamMetrics(endpoint, result string, start time.Time) {
	tags := map[string]string{"endpoint": endpoint, "result": result}
	c.stats.Count("gurbani.upstream.requests", 1, tags)
	c.stats.Timing("gurbani.upstream.duration", time.Since(start), tags)
}

// extractRaagEntries walks the parsed document collecting anchor elements that
// link into the raag index. Each anchor's text is the raag name; a page
// reference is read from a data-pages attribute or the anchor's title.
func extractRaagEntries(doc *html.Node) []model.RaagEntry {
	var entries []model.RaagEntry
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if entry, ok := raagEntryFromAnchor(n); ok {
				entry.ID = len(entries) + 1
				entries = append(entries, entry)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return entries
}

func raagEntryFromAnchor(n *html.Node) (model.RaagEntry, bool) {
	var href, pages, title string
	for _, attr := range n.Attr {
		switch attr.Key {
		case "href":
			href = attr.Val
		case "data-pages":
			pages = attr.Val
		case "title":
			title = attr.Val
		}
	}
	if !strings.Contains(href, "/raag") {
		return model.RaagEntry{}, false
	}

	name := strings.TrimSpace(nodeText(n))
	if name == "" {
		return model.RaagEntry{}, false
	}
	if pages == "" {
		pages = strings.TrimSpace(title)
	}
	return model.RaagEntry{
		RaagKey: raagKey(name),
		PageRef: pages,
	}, true
}

// nodeText returns the concatenated text content of a node.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}

// raagKey normalizes a display name into a stable lowercase key,
// e.g. "Raag Asa" -> "asa".
func raagKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimPrefix(key, "raag ")
	key = strings.ReplaceAll(key, " ", "-")
	return key
}

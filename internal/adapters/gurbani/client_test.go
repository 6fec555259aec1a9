package gurbani

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurmatacademy/portal/internal/observability/statsd"
)

func newTestClient(t *testing.T, searchURL, raagURL string) *Client {
	t.Helper()
	c, err := NewClient(Config{
		SearchBaseURL:     searchURL,
		SearchResultsPath: "verses",
		RaagIndexURL:      raagURL,
		Timeout:           2 * time.Second,
		UserAgent:         "portal-test",
	}, nil)
	require.NoError(t, err)
	return c
}

func TestClient_Search_PassesResultsThroughUnchanged(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/mool%20mantar", r.URL.EscapedPath())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"resultsInfo": {"totalResults": 2},
			"verses": [
				{"verseId": 1, "verse": {"unicode": "..."}},
				{"verseId": 2, "verse": {"unicode": "..."}}
			]
		}`))
	}))
	defer upstream.Close()

	c := newTestClient(t, upstream.URL, upstream.URL+"/index/raag")

	results, err := c.Search(context.Background(), "mool mantar")
	require.NoError(t, err)
	require.Len(t, results, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal(results[0], &first))
	assert.EqualValues(t, 1, first["verseId"])
}

func TestClient_Search_EmitsUpstreamMetrics(t *testing.T) {
	sink, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer sink.Close()

	stats, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: sink.LocalAddr().String(),
	})
	require.NoError(t, err)
	defer stats.Close()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"verses": [{"verseId": 1}]}`))
	}))
	defer upstream.Close()

	c, err := NewClient(Config{
		SearchBaseURL:     upstream.URL,
		SearchResultsPath: "verses",
		RaagIndexURL:      upstream.URL + "/index/raag",
		Timeout:           2 * time.Second,
		Stats:             stats,
	}, nil)
	require.NoError(t, err)

	_, err = c.Search(context.Background(), "anand")
	require.NoError(t, err)

	require.NoError(t, sink.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 1024)
	var lines []string
	for range 2 {
		n, _, readErr := sink.ReadFrom(buf)
		require.NoError(t, readErr)
		lines = append(lines, string(buf[:n]))
	}

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "portal.gurbani.upstream.requests:1|c")
	assert.Contains(t, joined, "portal.gurbani.upstream.duration:")
	assert.Contains(t, joined, "endpoint:search")
	assert.Contains(t, joined, "result:success")
}

func TestClient_Search_UpstreamErrorIsErrUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	c := newTestClient(t, upstream.URL, upstream.URL+"/index/raag")

	_, err := c.Search(context.Background(), "asa")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstream))
}

func TestClient_Search_NonArraySelectionIsErrUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"verses": {"unexpected": "object"}}`))
	}))
	defer upstream.Close()

	c := newTestClient(t, upstream.URL, upstream.URL+"/index/raag")

	_, err := c.Search(context.Background(), "asa")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstream))
}

func TestClient_Search_EmptyQueryRejected(t *testing.T) {
	c := newTestClient(t, "http://localhost:1", "http://localhost:1")
	_, err := c.Search(context.Background(), "  ")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUpstream))
}

func TestClient_FetchRaagIndex_ScrapesAnchors(t *testing.T) {
	page := `<html><body>
		<ul class="raag-index">
			<li><a href="/shabad/raag/asa" data-pages="347-488">Raag Asa</a></li>
			<li><a href="/shabad/raag/gujari" title="489-526">Raag Gujari</a></li>
			<li><a href="/about">About</a></li>
		</ul>
	</body></html>`
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer upstream.Close()

	c := newTestClient(t, upstream.URL, upstream.URL+"/index/raag")

	entries, err := c.FetchRaagIndex(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].ID)
	assert.Equal(t, "asa", entries[0].RaagKey)
	assert.Equal(t, "347-488", entries[0].PageRef)

	assert.Equal(t, 2, entries[1].ID)
	assert.Equal(t, "gujari", entries[1].RaagKey)
	assert.Equal(t, "489-526", entries[1].PageRef)
}

func TestClient_FetchRaagIndex_EmptyPageIsErrUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>maintenance</p></body></html>`))
	}))
	defer upstream.Close()

	c := newTestClient(t, upstream.URL, upstream.URL+"/index/raag")

	_, err := c.FetchRaagIndex(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstream))
}

func TestClient_FetchRaagIndex_FetchFailureIsErrUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	c := newTestClient(t, upstream.URL, upstream.URL+"/index/raag")

	_, err := c.FetchRaagIndex(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstream))
}

func TestNewClient_InvalidResultsPath(t *testing.T) {
	_, err := NewClient(Config{
		SearchBaseURL:     "http://localhost",
		SearchResultsPath: "][invalid",
		RaagIndexURL:      "http://localhost/index/raag",
	}, nil)
	require.Error(t, err)
}

func TestRaagKey(t *testing.T) {
	assert.Equal(t, "asa", raagKey("Raag Asa"))
	assert.Equal(t, "jaijavanti", raagKey(" Jaijavanti "))
	assert.Equal(t, "kalyan-bhopali", raagKey("Raag Kalyan Bhopali"))
}

package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KovyD20/Video-games-database-project/internal/catalog"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchPage_SendsContractQuery(t *testing.T) {
	var gotPath, gotKey, gotPage, gotSize string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		gotPage = r.URL.Query().Get("page")
		gotSize = r.URL.Query().Get("page_size")
		_, _ = w.Write([]byte(`{"results": [{"id": 1, "name": "Portal"}]}`))
	})

	c := New(srv.URL, "secret-key")
	items, err := c.FetchPage(context.Background(), 3, DefaultPageSize)
	require.NoError(t, err)

	assert.Equal(t, "/games", gotPath)
	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, "3", gotPage)
	assert.Equal(t, "24", gotSize)
	require.Len(t, items, 1)
	assert.Equal(t, catalog.ID("1"), items[0].ID)
	assert.Equal(t, "Portal", items[0].Name)
}

func TestFetchPage_TrailingSlashBaseURL(t *testing.T) {
	var gotPath string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"results": []}`))
	})

	_, err := New(srv.URL+"/", "k").FetchPage(context.Background(), 1, 24)
	require.NoError(t, err)
	assert.Equal(t, "/games", gotPath)
}

func TestFetchPage_EmptyResultsMeansEmptyPage(t *testing.T) {
	bodies := map[string]string{
		"empty array":     `{"results": []}`,
		"null results":    `{"results": null}`,
		"missing results": `{"count": 0}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			items, err := New(srv.URL, "k").FetchPage(context.Background(), 9, 24)
			require.NoError(t, err)
			require.NotNil(t, items)
			assert.Empty(t, items)
		})
	}
}

func TestFetchPage_Non2xxIsStatusError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	})

	_, err := New(srv.URL, "k").FetchPage(context.Background(), 2, 24)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.True(t, IsStatusError(err))

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusUnauthorized, fe.StatusCode)
	assert.Equal(t, 2, fe.Page)
}

func TestFetchPage_MalformedJSON(t *testing.T) {
	bodies := map[string]string{
		"truncated":         `{"results": [`,
		"not an object":     `[1, 2, 3]`,
		"results not array": `{"results": "nope"}`,
		"bad item":          `{"results": [{"id": null}]}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			_, err := New(srv.URL, "k").FetchPage(context.Background(), 1, 24)
			require.Error(t, err)

			var fe *FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, CodeDecode, fe.Code)
		})
	}
}

func TestFetchPage_TransportErrorHidesAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	_, err := New(base, "very-secret").FetchPage(context.Background(), 1, 24)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.NotContains(t, err.Error(), "very-secret")
}

func TestFetchPage_ContextCancelled(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL, "k").FetchPage(ctx, 1, 24)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNew_DefaultBaseURL(t *testing.T) {
	c := New("", "k")
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}

package omdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fym/proj/internal/lib/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{"Search":[{"Title":"Batman Begins","Year":"2005","imdbID":"tt0372784","Type":"movie","Poster":"https://img/bb.jpg"},
{"Title":"The Batman","Year":"2022","imdbID":"tt1877830","Type":"movie","Poster":"N/A"}],"totalResults":"2","Response":"True"}`

const detailsBody = `{"Title":"The Shawshank Redemption","Year":"1994","Runtime":"142 min","Genre":"Drama",
"imdbID":"tt0111161","imdbRating":"9.3","Type":"movie","Ratings":[{"Source":"Internet Movie Database","Value":"9.3/10"}],"Response":"True"}`

type lastQuery struct {
	mu sync.Mutex
	q  url.Values
}

func (l *lastQuery) Get(key string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.Get(key)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *atomic.Int32, *lastQuery) {
	t.Helper()
	var calls atomic.Int32
	last := &lastQuery{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		last.mu.Lock()
		last.q = r.URL.Query()
		last.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return New(logger.Discard(), srv.Client(), srv.URL+"/", "test-key"), &calls, last
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestSearch(t *testing.T) {
	c, calls, last := newTestClient(t, respond(searchBody))

	env, err := c.Search(context.Background(), SearchParams{Query: "  batman ", Type: "movie", Year: 2005})
	require.NoError(t, err)
	require.Len(t, env.Search, 2)
	assert.Equal(t, "tt0372784", env.Search[0].ImdbID)
	assert.Equal(t, "2", env.TotalResults)
	assert.Equal(t, int32(1), calls.Load())

	assert.Equal(t, "batman", last.Get("s"))
	assert.Equal(t, "movie", last.Get("type"))
	assert.Equal(t, "2005", last.Get("y"))
	assert.Equal(t, "1", last.Get("page"))
	assert.Equal(t, "test-key", last.Get("apikey"))
}

func TestSearchInputConstraints(t *testing.T) {
	c, calls, _ := newTestClient(t, respond(searchBody))
	_, err := c.Search(context.Background(), SearchParams{Query: "   "})
	assert.ErrorIs(t, err, ErrInvalidQuery)
	_, err = c.Search(context.Background(), SearchParams{Query: "x", Type: "episode"})
	assert.ErrorIs(t, err, ErrInvalidType)
	assert.Equal(t, int32(0), calls.Load())
}

func TestMissingAPIKey(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	for _, key := range []string{"", "  ", PlaceholderAPIKey} {
		c := New(logger.Discard(), srv.Client(), srv.URL, key)
		_, err := c.Search(context.Background(), SearchParams{Query: "batman"})
		assert.ErrorIs(t, err, ErrConfiguration)
		_, err = c.GetByID(context.Background(), "tt0111161")
		assert.ErrorIs(t, err, ErrConfiguration)
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestGetByID(t *testing.T) {
	c, _, last := newTestClient(t, respond(detailsBody))

	rec, err := c.GetByID(context.Background(), "tt0111161")
	require.NoError(t, err)
	assert.Equal(t, "The Shawshank Redemption", rec.Title)
	assert.Equal(t, "9.3", rec.ImdbRating)
	require.Len(t, rec.Ratings, 1)
	assert.Equal(t, "full", last.Get("plot"))
	assert.Equal(t, "tt0111161", last.Get("i"))

	for _, id := range []string{"", "0111161", "tt12", "tt0111161x"} {
		_, err := c.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, ErrInvalidID, id)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	t.Run("non-2xx is a request error", func(t *testing.T) {
		c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		_, err := c.Search(context.Background(), SearchParams{Query: "batman"})
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
	})

	t.Run("Response False is a provider error", func(t *testing.T) {
		c, _, _ := newTestClient(t, respond(`{"Response":"False","Error":"Movie not found!"}`))
		_, err := c.Search(context.Background(), SearchParams{Query: "zzzzzz"})
		var provErr *ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, "Movie not found!", provErr.Message)

		_, err = c.GetByID(context.Background(), "tt9999999")
		require.ErrorAs(t, err, &provErr)
	})

	t.Run("unreachable server is a request error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		c := New(logger.Discard(), srv.Client(), srv.URL+"/", "test-key")
		srv.Close()

		_, err := c.Search(context.Background(), SearchParams{Query: "batman"})
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Zero(t, reqErr.StatusCode)
		assert.Error(t, reqErr.Unwrap())
	})

	t.Run("non-json body is a request error", func(t *testing.T) {
		c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html>maintenance</html>"))
		})
		_, err := c.Search(context.Background(), SearchParams{Query: "batman"})
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Zero(t, reqErr.StatusCode)

		_, err = c.GetByID(context.Background(), "tt0372784")
		require.ErrorAs(t, err, &reqErr)
	})

	t.Run("caller deadline stays visible", func(t *testing.T) {
		block := make(chan struct{})
		c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-block:
			case <-r.Context().Done():
			}
		})
		defer close(block)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := c.Search(ctx, SearchParams{Query: "batman"})
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestTrendingAndTopRated(t *testing.T) {
	c, _, last := newTestClient(t, respond(searchBody))
	c.pick = func(n int) int { return n - 1 }

	_, err := c.Trending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "horror", last.Get("s"))
	assert.Equal(t, "movie", last.Get("type"))
	assert.Equal(t, "1", last.Get("page"))

	_, err = c.TopRated(context.Background(), "series")
	require.NoError(t, err)
	assert.Equal(t, "emmy winner", last.Get("s"))
	assert.Equal(t, "series", last.Get("type"))

	_, err = c.TopRated(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "academy award", last.Get("s"))
	assert.Equal(t, "movie", last.Get("type"))
}

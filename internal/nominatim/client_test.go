package nominatim

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relief-api/internal/geo"
	"relief-api/internal/geocode"
	"relief-api/internal/postal"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	base := []Option{WithBaseURL(srv.URL + "/search"), WithThrottle(NewThrottle(time.Millisecond))}
	return NewClient(append(base, opts...)...)
}

func TestFetchCoordinate(t *testing.T) {
	t.Run("sends the regional query and client header", func(t *testing.T) {
		reqs := make(chan *http.Request, 1)
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			reqs <- r.Clone(context.Background())
			_, _ = w.Write([]byte(`[{"lat":"43.5321","lon":"-80.2258","display_name":"Guelph"}]`))
		})

		coord, err := c.FetchCoordinate(context.Background(), "N1G 2W1")
		require.NoError(t, err)
		assert.Equal(t, geo.Coordinate{Lat: 43.5321, Lng: -80.2258}, coord)

		got := <-reqs
		assert.Equal(t, "/search", got.URL.Path)
		assert.Equal(t, "N1G 2W1,Ontario,Canada", got.URL.Query().Get("q"))
		assert.Equal(t, "json", got.URL.Query().Get("format"))
		assert.Equal(t, "1", got.URL.Query().Get("limit"))
		assert.Equal(t, DefaultUserAgent, got.Header.Get("User-Agent"))
	})

	t.Run("uses only the first result", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"lat":"1.5","lon":"2.5"},{"lat":"9","lon":"9"}]`))
		}, WithRegion("Quebec,Canada"), WithUserAgent("test-agent/0.1"))
		coord, err := c.FetchCoordinate(context.Background(), "H2X")
		require.NoError(t, err)
		assert.Equal(t, geo.Coordinate{Lat: 1.5, Lng: 2.5}, coord)
	})

	t.Run("non-success status is a request failure", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		_, err := c.FetchCoordinate(context.Background(), "N1G 2W1")
		var pe *ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, ReasonRequestFailed, pe.Reason)
		assert.Equal(t, http.StatusServiceUnavailable, pe.Status)
	})

	t.Run("transport failure is a request failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()
		c := NewClient(WithBaseURL(srv.URL), WithThrottle(NewThrottle(time.Millisecond)))
		_, err := c.FetchCoordinate(context.Background(), "N1G 2W1")
		var pe *ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, ReasonRequestFailed, pe.Reason)
		assert.NotNil(t, errors.Unwrap(err))
	})

	t.Run("empty result list is not found", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		})
		_, err := c.FetchCoordinate(context.Background(), "X0X 0X0")
		assert.True(t, IsNotFound(err))
	})

	t.Run("unparsable coordinates are a bad response", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"lat":"north","lon":"-80"}]`))
		})
		_, err := c.FetchCoordinate(context.Background(), "N1G 2W1")
		var pe *ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, ReasonBadResponse, pe.Reason)
	})

	t.Run("malformed body is a bad response", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>rate limited</html>`))
		})
		_, err := c.FetchCoordinate(context.Background(), "N1G 2W1")
		assert.False(t, IsNotFound(err))
		assert.ErrorContains(t, err, ReasonBadResponse)
	})
}

// recordingTransport 记录每次外呼的发起时刻
type recordingTransport struct {
	mu     sync.Mutex
	starts []time.Time
	next   http.RoundTripper
}

func (rt *recordingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	rt.mu.Lock()
	rt.starts = append(rt.starts, time.Now())
	rt.mu.Unlock()
	return rt.next.RoundTrip(r)
}

func TestResolverBackToBackProviderCallsAreSpaced(t *testing.T) {
	const interval = 150 * time.Millisecond
	const slack = 5 * time.Millisecond

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"43.55","lon":"-80.25"}]`))
	}))
	t.Cleanup(srv.Close)

	rt := &recordingTransport{next: http.DefaultTransport}
	client := NewClient(
		WithBaseURL(srv.URL),
		WithThrottle(NewThrottle(interval)),
		WithHTTPClient(&http.Client{Transport: rt}),
	)
	r := geocode.NewResolver(
		&geocode.StaticStage{Index: postal.NewTorontoIndex()},
		&geocode.CacheStage{Cache: geocode.NewCache(10, time.Hour)},
		&geocode.ProviderStage{Provider: client},
	)

	_, err := r.Resolve(context.Background(), "N1G 2W1")
	require.NoError(t, err)
	_, err = r.Resolve(context.Background(), "N1H 3A1")
	require.NoError(t, err)

	require.Len(t, rt.starts, 2)
	assert.GreaterOrEqual(t, rt.starts[1].Sub(rt.starts[0]), interval-slack)
}

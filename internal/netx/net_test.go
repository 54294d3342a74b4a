package netx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCheckReachable(t *testing.T) {
	t.Run("server answering 200 is reachable", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		require.NoError(t, CheckReachable(context.Background(), ts.URL, time.Second))
	})

	t.Run("server answering 503 still counts as reachable", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer ts.Close()

		require.NoError(t, CheckReachable(context.Background(), ts.URL, time.Second))
	})

	t.Run("closed server is unreachable", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := ts.URL
		ts.Close()

		require.Error(t, CheckReachable(context.Background(), url, time.Second))
	})

	t.Run("slow server times out", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer ts.Close()

		err := CheckReachable(context.Background(), ts.URL, 50*time.Millisecond)
		require.Error(t, err)
	})
}

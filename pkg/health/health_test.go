package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/aria/pkg/health"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("no checks is healthy", func(t *testing.T) {
		t.Parallel()

		resp := health.Run(context.Background(), nil)
		require.Equal(t, health.StatusHealthy, resp.Status)
		require.Empty(t, resp.Checks)
	})

	t.Run("all passing", func(t *testing.T) {
		t.Parallel()

		resp := health.Run(context.Background(), health.Checks{
			"db":    func(ctx context.Context) error { return nil },
			"cache": func(ctx context.Context) error { return nil },
		})
		require.Equal(t, health.StatusHealthy, resp.Status)
		require.Len(t, resp.Checks, 2)
		require.Equal(t, health.StatusHealthy, resp.Checks["db"].Status)
		require.Empty(t, resp.Checks["db"].Error)
	})

	t.Run("one failing marks the whole response", func(t *testing.T) {
		t.Parallel()

		resp := health.Run(context.Background(), health.Checks{
			"db":    func(ctx context.Context) error { return nil },
			"cache": func(ctx context.Context) error { return errors.New("connection refused") },
		})
		require.Equal(t, health.StatusUnhealthy, resp.Status)
		require.Equal(t, health.StatusHealthy, resp.Checks["db"].Status)
		require.Equal(t, health.StatusUnhealthy, resp.Checks["cache"].Status)
		require.Equal(t, "connection refused", resp.Checks["cache"].Error)
	})

	t.Run("checks run in parallel", func(t *testing.T) {
		t.Parallel()

		slow := func(ctx context.Context) error {
			select {
			case <-time.After(100 * time.Millisecond):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		start := time.Now()
		resp := health.Run(context.Background(), health.Checks{
			"a": slow,
			"b": slow,
			"c": slow,
		})
		require.Equal(t, health.StatusHealthy, resp.Status)
		require.Less(t, time.Since(start), 300*time.Millisecond)
	})

	t.Run("timeout fails slow checks", func(t *testing.T) {
		t.Parallel()

		resp := health.Run(context.Background(), health.Checks{
			"slow": func(ctx context.Context) error {
				select {
				case <-time.After(time.Second):
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			},
		}, health.WithTimeout(20*time.Millisecond))
		require.Equal(t, health.StatusUnhealthy, resp.Status)
		require.Contains(t, resp.Checks["slow"].Error, "context deadline exceeded")
	})
}

func TestWantsJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		accept string
		want   bool
	}{
		{"plain", "/health/ready", "", false},
		{"query param", "/health/ready?format=json", "", true},
		{"accept header", "/health/ready", "application/json", true},
		{"accept with params", "/health/ready", "application/json; charset=utf-8", true},
		{"html accept", "/health/ready", "text/html", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				r.Header.Set("Accept", tt.accept)
			}
			require.Equal(t, tt.want, health.WantsJSON(r))
		})
	}
}

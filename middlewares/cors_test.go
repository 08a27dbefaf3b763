package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/aria/middlewares"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("default configuration allows all origins", func(t *testing.T) {
		t.Parallel()

		handler := middlewares.CORS()(okHandler())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no CORS headers when Origin header is missing", func(t *testing.T) {
		t.Parallel()

		handler := middlewares.CORS()(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("specific origins list", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.CORS(
			middlewares.WithAllowOrigins("http://allowed.com", "http://also-allowed.com"),
		)

		t.Run("allows listed origin", func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", "http://allowed.com")
			rec := httptest.NewRecorder()
			mw(okHandler()).ServeHTTP(rec, req)

			require.Equal(t, "http://allowed.com", rec.Header().Get("Access-Control-Allow-Origin"))
		})

		t.Run("blocks unlisted origin", func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", "http://blocked.com")
			rec := httptest.NewRecorder()
			mw(okHandler()).ServeHTTP(rec, req)

			require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			require.Equal(t, http.StatusOK, rec.Code)
		})
	})

	t.Run("credentials echo the actual origin", func(t *testing.T) {
		t.Parallel()

		handler := middlewares.CORS(
			middlewares.WithAllowCredentials(),
		)(okHandler())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, "http://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("dynamic origin validator", func(t *testing.T) {
		t.Parallel()

		handler := middlewares.CORS(
			middlewares.WithAllowOriginFunc(func(origin string) bool {
				return strings.HasSuffix(origin, ".example.com")
			}),
		)(okHandler())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://app.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, "http://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.com")
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits with 204", func(t *testing.T) {
		t.Parallel()

		handlerCalled := false
		handler := middlewares.CORS(
			middlewares.WithAllowMethods(http.MethodGet, http.MethodPost),
			middlewares.WithAllowHeaders("Content-Type"),
			middlewares.WithMaxAge(time.Hour),
		)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		}))

		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "http://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.False(t, handlerCalled)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))
		require.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
		require.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("expose headers on actual requests", func(t *testing.T) {
		t.Parallel()

		handler := middlewares.CORS(
			middlewares.WithExposeHeaders("X-Total-Count", "Link"),
		)(okHandler())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, "X-Total-Count, Link", rec.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("vary headers set for caching", func(t *testing.T) {
		t.Parallel()

		handler := middlewares.CORS()(okHandler())

		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "http://example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		vary := rec.Header().Values("Vary")
		require.Contains(t, vary, "Origin")
		require.Contains(t, vary, "Access-Control-Request-Method")
		require.Contains(t, vary, "Access-Control-Request-Headers")
	})
}

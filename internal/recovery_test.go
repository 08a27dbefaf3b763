package internal_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/aria/internal"
)

func TestNotFoundRecovery(t *testing.T) {
	t.Parallel()

	t.Run("custom handler refines the canonical response", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.NotFound(func(c internal.Context) (any, error) {
				return "nothing here, sorry", nil
			})
		})

		rec := getPath(app, "/missing")
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "nothing here, sorry", rec.Body.String())
		require.Equal(t, "pass", rec.Header().Get("X-Cascade"))
	})

	t.Run("custom handler may change the status", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.NotFound(func(c internal.Context) (any, error) {
				return []any{http.StatusGone, "gone forever"}, nil
			})
		})

		rec := getPath(app, "/missing")
		require.Equal(t, http.StatusGone, rec.Code)
		require.Equal(t, "gone forever", rec.Body.String())
	})

	t.Run("handler returning the miss sentinel renders the 404", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.Get("/posts/:id", func(c internal.Context) (any, error) {
				return nil, internal.ErrNotFound
			})
		})

		rec := getPath(app, "/posts/7")
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "<h1>Not Found</h1>", rec.Body.String())
	})

	t.Run("kind handler catches the miss when no handler is set", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.Error(internal.ErrNotFound, func(c internal.Context) (any, error) {
				return "caught by kind", nil
			})
		})

		rec := getPath(app, "/missing")
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "caught by kind", rec.Body.String())
	})

	t.Run("dedicated handler wins over the kind handler", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.NotFound(func(c internal.Context) (any, error) {
				return "dedicated", nil
			})
			r.Error(internal.ErrNotFound, func(c internal.Context) (any, error) {
				return "kind", nil
			})
		})

		require.Equal(t, "dedicated", getPath(app, "/missing").Body.String())
	})
}

func TestFailureRecovery(t *testing.T) {
	t.Parallel()

	t.Run("plain failure renders a 500", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.Get("/", func(c internal.Context) (any, error) {
				return nil, errors.New("database exploded")
			})
		})

		rec := getPath(app, "/")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "<h1>Internal Server Error</h1>")
	})

	t.Run("development pages include the failure detail", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.Get("/", func(c internal.Context) (any, error) {
				return nil, errors.New("secret detail")
			})
		})

		require.Contains(t, getPath(app, "/").Body.String(), "secret detail")
	})

	t.Run("production pages hide the failure detail", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.Get("/", func(c internal.Context) (any, error) {
				return nil, errors.New("secret detail")
			})
		}, internal.WithEnvironment(internal.EnvProduction))

		body := getPath(app, "/").Body.String()
		require.Contains(t, body, "<h1>Internal Server Error</h1>")
		require.NotContains(t, body, "secret detail")
	})

	t.Run("failure detail is html escaped", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.Get("/", func(c internal.Context) (any, error) {
				return nil, errors.New("<script>alert(1)</script>")
			})
		})

		body := getPath(app, "/").Body.String()
		require.NotContains(t, body, "<script>")
		require.Contains(t, body, "&lt;script&gt;")
	})

	t.Run("http error status wins over the default", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.Get("/", func(c internal.Context) (any, error) {
				return nil, internal.ErrForbidden("members only")
			})
		})

		rec := getPath(app, "/")
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "<h1>members only</h1>")
	})

	t.Run("wrapped http error still resolves its status", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.Get("/", func(c internal.Context) (any, error) {
				return nil, fmt.Errorf("checking auth: %w", internal.ErrUnauthorized("login first"))
			})
		})

		require.Equal(t, http.StatusUnauthorized, getPath(app, "/").Code)
	})

	t.Run("kind handler recovers matching failures", func(t *testing.T) {
		t.Parallel()

		errDown := errors.New("backend down")
		var seen error
		app := newApp(func(r internal.Router) {
			r.Error(errDown, func(c internal.Context) (any, error) {
				seen = c.LastError()
				return []any{http.StatusBadGateway, "backend unavailable"}, nil
			})
			r.Get("/", func(c internal.Context) (any, error) {
				return nil, fmt.Errorf("fetch: %w", errDown)
			})
		})

		rec := getPath(app, "/")
		require.Equal(t, http.StatusBadGateway, rec.Code)
		require.Equal(t, "backend unavailable", rec.Body.String())
		require.ErrorIs(t, seen, errDown)
	})

	t.Run("status-only recovery keeps the staged body", func(t *testing.T) {
		t.Parallel()

		errDown := errors.New("backend down")
		app := newApp(func(r internal.Router) {
			r.Before(func(c internal.Context) error {
				c.Response().SetBodyString("upstream maintenance page")
				return nil
			})
			r.Error(errDown, func(c internal.Context) (any, error) {
				return http.StatusBadGateway, nil
			})
			r.Get("/", func(c internal.Context) (any, error) {
				return nil, errDown
			})
		})

		rec := getPath(app, "/")
		require.Equal(t, http.StatusBadGateway, rec.Code)
		require.Equal(t, "upstream maintenance page", rec.Body.String())
	})

	t.Run("unhandled failure drops the staged body", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.Before(func(c internal.Context) error {
				c.Response().SetBodyString("half-built page")
				return nil
			})
			r.Get("/", func(c internal.Context) (any, error) {
				return nil, errors.New("boom")
			})
		})

		rec := getPath(app, "/")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "<h1>Internal Server Error</h1>")
		require.NotContains(t, rec.Body.String(), "half-built page")
	})

	t.Run("most recent kind registration wins", func(t *testing.T) {
		t.Parallel()

		errKind := errors.New("kind")
		app := newApp(func(r internal.Router) {
			r.Error(errKind, func(c internal.Context) (any, error) { return "older", nil })
			r.Error(errKind, func(c internal.Context) (any, error) { return "newer", nil })
			r.Get("/", func(c internal.Context) (any, error) { return nil, errKind })
		})

		require.Equal(t, "newer", getPath(app, "/").Body.String())
	})

	t.Run("fallback handler catches unmatched failures", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.ErrorAny(func(c internal.Context) (any, error) {
				return "fallback caught it", nil
			})
			r.Get("/", func(c internal.Context) (any, error) {
				return nil, errors.New("unmatched")
			})
		})

		rec := getPath(app, "/")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "fallback caught it", rec.Body.String())
	})

	t.Run("kind handler is preferred over the fallback", func(t *testing.T) {
		t.Parallel()

		errKind := errors.New("kind")
		app := newApp(func(r internal.Router) {
			r.Error(errKind, func(c internal.Context) (any, error) { return "kind", nil })
			r.ErrorAny(func(c internal.Context) (any, error) { return "fallback", nil })
			r.Get("/", func(c internal.Context) (any, error) { return nil, errKind })
		})

		require.Equal(t, "kind", getPath(app, "/").Body.String())
	})
}

func TestStatusRecovery(t *testing.T) {
	t.Parallel()

	t.Run("runs when a handler sets the status", func(t *testing.T) {
		t.Parallel()

		var lastErr error
		app := newApp(func(r internal.Router) {
			r.ErrorStatus(http.StatusNotFound, func(c internal.Context) (any, error) {
				lastErr = c.LastError()
				return "styled 404 page", nil
			})
			r.Get("/hidden", func(c internal.Context) (any, error) {
				return 404, nil
			})
		})

		rec := getPath(app, "/hidden")
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "styled 404 page", rec.Body.String())
		require.NoError(t, lastErr)
	})

	t.Run("runs after a route miss", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.ErrorStatus(http.StatusNotFound, func(c internal.Context) (any, error) {
				return "styled 404 page", nil
			})
		})

		rec := getPath(app, "/missing")
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "styled 404 page", rec.Body.String())
	})

	t.Run("runs on top of failure recovery", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.ErrorStatus(http.StatusForbidden, func(c internal.Context) (any, error) {
				return "styled 403 page", nil
			})
			r.Get("/", func(c internal.Context) (any, error) {
				return nil, internal.ErrForbidden("nope")
			})
		})

		rec := getPath(app, "/")
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Equal(t, "styled 403 page", rec.Body.String())
	})

	t.Run("ignores success statuses", func(t *testing.T) {
		t.Parallel()

		ran := false
		app := newApp(func(r internal.Router) {
			r.ErrorStatus(http.StatusOK, func(c internal.Context) (any, error) {
				ran = true
				return "should never run", nil
			})
			r.Get("/", func(c internal.Context) (any, error) { return "fine", nil })
		})

		rec := getPath(app, "/")
		require.Equal(t, "fine", rec.Body.String())
		require.False(t, ran)
	})

	t.Run("only the exact status triggers", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.ErrorStatus(http.StatusNotFound, func(c internal.Context) (any, error) {
				return "404 page", nil
			})
			r.Get("/teapot", func(c internal.Context) (any, error) { return 418, nil })
		})

		rec := getPath(app, "/teapot")
		require.Equal(t, http.StatusTeapot, rec.Code)
		require.NotEqual(t, "404 page", rec.Body.String())
	})
}

func TestFatalRecovery(t *testing.T) {
	t.Parallel()

	t.Run("failing recovery handler forces a bare 500", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.NotFound(func(c internal.Context) (any, error) {
				return nil, errors.New("error page exploded too")
			})
		})

		rec := getPath(app, "/missing")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "<h1>Internal Server Error</h1>", rec.Body.String())
	})

	t.Run("panicking recovery handler forces a bare 500", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.ErrorAny(func(c internal.Context) (any, error) {
				panic("error page panic")
			})
			r.Get("/", func(c internal.Context) (any, error) {
				return nil, errors.New("original")
			})
		})

		rec := getPath(app, "/")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "<h1>Internal Server Error</h1>", rec.Body.String())
	})

	t.Run("dispatch reports the fatal error to embedders", func(t *testing.T) {
		t.Parallel()

		errPage := errors.New("error page exploded too")
		app := newApp(func(r internal.Router) {
			r.ErrorAny(func(c internal.Context) (any, error) {
				return nil, errPage
			})
			r.Get("/", func(c internal.Context) (any, error) {
				return nil, errors.New("original")
			})
		})

		rec := httptest.NewRecorder()
		err := app.Dispatch(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		var rerr *internal.RecoveryError
		require.ErrorAs(t, err, &rerr)
		require.ErrorIs(t, rerr.Recovery, errPage)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "<h1>Internal Server Error</h1>", rec.Body.String())
	})

	t.Run("dispatch returns nil on a recovered request", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.Get("/", func(c internal.Context) (any, error) {
				return "ok", nil
			})
		})

		rec := httptest.NewRecorder()
		err := app.Dispatch(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestPanicRecovery(t *testing.T) {
	t.Parallel()

	t.Run("handler panic becomes a 500", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.Get("/", func(c internal.Context) (any, error) {
				panic("boom")
			})
		})

		rec := getPath(app, "/")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "panic: boom")
	})

	t.Run("error panics keep their value", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.Error(internal.ErrNotFound, func(c internal.Context) (any, error) {
				return "translated to 404", nil
			})
			r.Get("/", func(c internal.Context) (any, error) {
				panic(internal.ErrNotFound)
			})
		})

		rec := getPath(app, "/")
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "translated to 404", rec.Body.String())
	})

	t.Run("abort sentinel propagates to the server", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.Get("/", func(c internal.Context) (any, error) {
				panic(http.ErrAbortHandler)
			})
		})

		require.PanicsWithValue(t, http.ErrAbortHandler, func() {
			getPath(app, "/")
		})
	})
}

func TestRaiseErrors(t *testing.T) {
	t.Parallel()

	t.Run("failures panic out of dispatch", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.Get("/", func(c internal.Context) (any, error) {
				return nil, errors.New("kaboom")
			})
		}, internal.WithRaiseErrors())

		require.PanicsWithError(t, "kaboom", func() {
			getPath(app, "/")
		})
	})

	t.Run("route misses are still served", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.Get("/known", func(c internal.Context) (any, error) { return "", nil })
		}, internal.WithRaiseErrors())

		rec := getPath(app, "/missing")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAfterFilterFailures(t *testing.T) {
	t.Parallel()

	t.Run("post-recovery failures are logged and dropped", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))

		app := newApp(func(r internal.Router) {
			r.ErrorAny(func(c internal.Context) (any, error) {
				return "recovered", nil
			})
			r.After(func(c internal.Context) error {
				return errors.New("cleanup failed")
			})
			r.Get("/", func(c internal.Context) (any, error) {
				return nil, errors.New("original failure")
			})
		}, internal.WithCustomLogger(log))

		rec := getPath(app, "/")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "recovered", rec.Body.String())
		require.Contains(t, buf.String(), "after filter failed post-recovery")
	})

	t.Run("filters keep running after one fails", func(t *testing.T) {
		t.Parallel()

		secondRan := false
		app := newApp(func(r internal.Router) {
			r.ErrorAny(func(c internal.Context) (any, error) {
				return "recovered", nil
			})
			r.After(func(c internal.Context) error {
				return errors.New("first cleanup failed")
			})
			r.After(func(c internal.Context) error {
				secondRan = true
				return nil
			})
			r.Get("/", func(c internal.Context) (any, error) { return "ok", nil })
		})

		getPath(app, "/")
		require.True(t, secondRan)
	})
}

func TestRecoveryErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("with original failure", func(t *testing.T) {
		t.Parallel()

		err := &internal.RecoveryError{
			Recovery: errors.New("render failed"),
			Original: errors.New("db failed"),
		}
		require.Equal(t, "aria: recovery failed: render failed (original failure: db failed)", err.Error())
		require.ErrorIs(t, err, err.Recovery)
	})

	t.Run("without original failure", func(t *testing.T) {
		t.Parallel()

		err := &internal.RecoveryError{Recovery: errors.New("render failed")}
		require.Equal(t, "aria: recovery failed: render failed", err.Error())
	})
}

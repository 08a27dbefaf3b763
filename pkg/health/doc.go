// Package health aggregates named health checks for liveness and
// readiness probes.
//
// Checks are plain func(context.Context) error closures, the signature
// database pools and cache clients already expose. Run executes them in
// parallel under a shared timeout and aggregates the result:
//
//	resp := health.Run(ctx, health.Checks{
//	    "postgres": pg.Healthcheck(pool),
//	    "redis":    redis.Healthcheck(client),
//	}, health.WithTimeout(3*time.Second), health.WithLogger(log))
//
//	if resp.Status == health.StatusUnhealthy {
//	    // respond 503
//	}
//
// The JSON shape of Response suits probe endpoints directly:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "postgres": {"status": "healthy"},
//	    "redis": {"status": "unhealthy", "error": "connection refused"}
//	  }
//	}
//
// WantsJSON implements the probe-friendly content negotiation used by
// the framework's health endpoints: plain text by default, JSON when the
// client sends Accept: application/json or ?format=json.
package health

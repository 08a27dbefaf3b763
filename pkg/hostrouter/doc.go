// Package hostrouter routes HTTP requests by the Host header.
//
// It supports exact host patterns ("api.example.com") and single-level
// wildcards ("*.example.com"), falling back to a default handler when
// nothing matches. Aria uses it to compose applications under one server
// and to back per-route host guards.
//
//	router := hostrouter.New(hostrouter.Routes{
//		"api.example.com": apiApp,
//		"*.example.com":   tenantApp,
//	}, landingApp)
//
//	http.ListenAndServe(":8080", router)
//
// Normalize and Match are exported for callers that need the same host
// handling outside the router, e.g. guard conditions:
//
//	hostrouter.Match("*.example.com", r.Host) // true for foo.example.com
package hostrouter

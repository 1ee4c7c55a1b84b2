package origin

import (
	"net/http"
	"regexp"
)

// FallbackOrigin is echoed whenever the request origin matches nothing.
// Reflecting an untrusted origin is never an option, so unknown and absent
// origins both degrade to the production app.
const FallbackOrigin = "https://smarttradetracker.app"

const (
	allowHeaders = "authorization, x-client-info, apikey, content-type"
	allowMethods = "POST, OPTIONS"
	maxAgeSecs   = "86400"
)

// Guard decides which origin to echo in Access-Control-Allow-Origin. Built
// once at startup and read-only afterwards, so it is safe for any number of
// concurrent requests.
type Guard struct {
	exact    map[string]struct{}
	patterns []*regexp.Regexp
	fallback string
}

// New returns the production guard: the explicit origin set, the two
// platform preview-hosting families, and localhost for development. Adding
// a trusted family is a code change on purpose; there is no dynamic
// registration.
func New() *Guard {
	return &Guard{
		exact: map[string]struct{}{
			"https://smarttradetracker.app":     {},
			"https://www.smarttradetracker.app": {},
			"http://localhost:5173":             {},
			"http://localhost:3000":             {},
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^https://[a-z0-9-]+\.lovable\.app$`),
			regexp.MustCompile(`^https://[a-z0-9-]+\.lovableproject\.com$`),
			regexp.MustCompile(`^http://localhost:\d+$`),
		},
		fallback: FallbackOrigin,
	}
}

// Resolve returns exactly one origin string for the given Origin header
// value. Exact matches first, then the patterns in declared order, then the
// fallback. Pure function, never fails.
func (g *Guard) Resolve(origin string) string {
	if origin == "" {
		return g.fallback
	}
	if _, ok := g.exact[origin]; ok {
		return origin
	}
	for _, p := range g.patterns {
		if p.MatchString(origin) {
			return origin
		}
	}
	return g.fallback
}

// Middleware applies CORS headers to every response and answers OPTIONS
// preflight with 204 and an empty body.
func (g *Guard) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", g.Resolve(r.Header.Get("Origin")))
		h.Set("Access-Control-Allow-Headers", allowHeaders)
		h.Set("Access-Control-Allow-Methods", allowMethods)
		h.Set("Access-Control-Max-Age", maxAgeSecs)
		h.Set("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

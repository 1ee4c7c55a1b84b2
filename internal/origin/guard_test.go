package origin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	g := New()

	tests := []struct {
		name   string
		origin string
		want   string
	}{
		{
			name:   "Production origin echoed verbatim",
			origin: "https://smarttradetracker.app",
			want:   "https://smarttradetracker.app",
		},
		{
			name:   "WWW origin echoed verbatim",
			origin: "https://www.smarttradetracker.app",
			want:   "https://www.smarttradetracker.app",
		},
		{
			name:   "Preview subdomain matches pattern",
			origin: "https://preview123.lovable.app",
			want:   "https://preview123.lovable.app",
		},
		{
			name:   "Project subdomain matches pattern",
			origin: "https://id-preview-abc.lovableproject.com",
			want:   "https://id-preview-abc.lovableproject.com",
		},
		{
			name:   "Localhost dev server echoed verbatim",
			origin: "http://localhost:5173",
			want:   "http://localhost:5173",
		},
		{
			name:   "Arbitrary localhost port matches pattern",
			origin: "http://localhost:8081",
			want:   "http://localhost:8081",
		},
		{
			name:   "Untrusted origin falls back",
			origin: "https://evil.com",
			want:   FallbackOrigin,
		},
		{
			name:   "Lookalike suffix is not a subdomain match",
			origin: "https://evil-lovable.app",
			want:   FallbackOrigin,
		},
		{
			name:   "Nested suffix attack falls back",
			origin: "https://preview.lovable.app.evil.com",
			want:   FallbackOrigin,
		},
		{
			name:   "HTTPS localhost does not match the http-only pattern",
			origin: "https://localhost:5173",
			want:   FallbackOrigin,
		},
		{
			name:   "Empty origin falls back",
			origin: "",
			want:   FallbackOrigin,
		},
		{
			name:   "Garbage input falls back without panic",
			origin: "not a url at all \x00",
			want:   FallbackOrigin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Resolve(tt.origin))
		})
	}
}

func TestMiddlewarePreflight(t *testing.T) {
	g := New()

	called := false
	handler := g.Middleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodOptions, "/validate-email", nil)
	req.Header.Set("Origin", "https://preview123.lovable.app")
	rec := httptest.NewRecorder()

	handler(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.False(t, called, "preflight must not reach the wrapped handler")
	assert.Equal(t, "https://preview123.lovable.app", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Headers"))
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Max-Age"))
}

func TestMiddlewareNeverReflectsUntrustedOrigin(t *testing.T) {
	g := New()

	handler := g.Middleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/validate-email", nil)
	req.Header.Set("Origin", "https://evil.com")
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, FallbackOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
}

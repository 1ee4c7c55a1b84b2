package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

const prefix = "trustgate"

// Root wraps all service configuration, populated from the environment with
// the TRUSTGATE_ prefix.
type Root struct {
	LogLevel  string `default:"info" desc:"zerolog level: debug, info, warn, error"`
	Server    Server
	DNS       DNS
	Database  Database
	Redis     Redis
	Audit     Audit
	RateLimit RateLimit
}

// Server holds the HTTP listener configuration.
type Server struct {
	Addr            string        `default:":8080" desc:"listen address"`
	ReadTimeout     time.Duration `default:"30s"`
	WriteTimeout    time.Duration `default:"30s"`
	IdleTimeout     time.Duration `default:"120s"`
	ShutdownTimeout time.Duration `default:"30s"`
}

// DNS configures the DNS-over-HTTPS resolver. No API token required, the
// public resolver is used.
type DNS struct {
	ResolverURL   string        `default:"https://dns.google/resolve" desc:"JSON DoH endpoint"`
	LookupTimeout time.Duration `default:"5s" desc:"per-lookup timeout, fail-open on expiry"`
	CacheTTL      time.Duration `default:"15m" desc:"per-domain DNS signal cache TTL"`
}

// Database holds the audit sink connection. Empty URL disables persistence
// and the audit sink degrades to a no-op.
type Database struct {
	URL string `desc:"postgres connection string for the audit log"`
}

// Redis holds the rate limiter backend. Empty Addr disables rate limiting.
type Redis struct {
	Addr string `desc:"redis host:port for rate limiting"`
}

// Audit configures the background audit writer.
type Audit struct {
	Buffer int `default:"256" desc:"pending audit entries before drops"`
}

// RateLimit caps validation calls per client IP.
type RateLimit struct {
	Requests int           `default:"30" desc:"requests per window per IP"`
	Window   time.Duration `default:"1m"`
}

// Load populates Root from the process environment.
func Load() (Root, error) {
	var root Root
	err := envconfig.Process(prefix, &root)
	return root, err
}

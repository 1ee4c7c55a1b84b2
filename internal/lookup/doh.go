package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Record type codes as they appear in DNS answers.
const (
	TypeA  = 1
	TypeMX = 15
)

// sharedClient is reused across all DoH lookups so the process keeps one
// connection pool to the resolver.
var sharedClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

// Resolver queries a JSON DNS-over-HTTPS endpoint (dns.google style:
// GET ?name=<domain>&type=<MX|A>, response carries an Answer array).
type Resolver struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

func NewResolver(baseURL string, timeout time.Duration) *Resolver {
	return &Resolver{
		baseURL: baseURL,
		timeout: timeout,
		client:  sharedClient,
	}
}

type dohAnswer struct {
	Type int    `json:"type"`
	Data string `json:"data"`
}

type dohResponse struct {
	Status int         `json:"Status"`
	Answer []dohAnswer `json:"Answer"`
}

// HasMX reports whether the domain publishes at least one MX record. A
// transport or decode error is returned to the caller, which is expected to
// fail open rather than reject the address.
func (r *Resolver) HasMX(ctx context.Context, domain string) (bool, error) {
	return r.hasRecords(ctx, domain, "MX", TypeMX)
}

// ResolvesA reports whether the domain has at least one A record.
func (r *Resolver) ResolvesA(ctx context.Context, domain string) (bool, error) {
	return r.hasRecords(ctx, domain, "A", TypeA)
}

func (r *Resolver) hasRecords(ctx context.Context, domain, typeName string, typeCode int) (bool, error) {
	// One attempt per lookup with a strict timeout. A slow resolver must not
	// hold up the validation response; the caller treats timeout like any
	// other resolver error.
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("name", domain)
	q.Set("type", typeName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return false, fmt.Errorf("build DNS query: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("DNS lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("resolver returned HTTP %d", resp.StatusCode)
	}

	var body dohResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("decode resolver response: %w", err)
	}

	// An answer section may carry CNAME chain entries; only count records of
	// the requested type. Empty or absent Answer means a clean "no records".
	for _, a := range body.Answer {
		if a.Type == typeCode {
			return true, nil
		}
	}
	return false, nil
}

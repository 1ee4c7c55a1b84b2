package validator

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"trustgate/internal/cache"
	"trustgate/internal/lookup"
	"trustgate/internal/models"
)

// RFC 5321 caps a complete address at 254 octets.
const maxEmailLength = 254

// Without a WHOIS source there is no real registration age. A domain that
// resolves gets this assumed age; one that does not gets none at all.
const assumedDomainAgeDays = 365

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// domainSignals is the cacheable slice of Details: everything that depends
// only on DNS state, not on the candidate.
type domainSignals struct {
	HasMX   bool
	AgeDays *int
}

// Evaluator classifies email addresses for registration-abuse prevention.
// Stateless across calls apart from the read-only lists and the DNS cache.
type Evaluator struct {
	hasMX     func(ctx context.Context, domain string) (bool, error)
	resolvesA func(ctx context.Context, domain string) (bool, error)
	dnsCache  *cache.Store
	cacheTTL  time.Duration
	log       zerolog.Logger
}

func NewEvaluator(resolver *lookup.Resolver, dnsCache *cache.Store, cacheTTL time.Duration, log zerolog.Logger) *Evaluator {
	return &Evaluator{
		hasMX:     resolver.HasMX,
		resolvesA: resolver.ResolvesA,
		dnsCache:  dnsCache,
		cacheTTL:  cacheTTL,
		log:       log,
	}
}

// NewEvaluatorWithLookups is a test-oriented constructor that overrides the
// DNS lookup functions.
func NewEvaluatorWithLookups(
	hasMX, resolvesA func(ctx context.Context, domain string) (bool, error),
	dnsCache *cache.Store, cacheTTL time.Duration, log zerolog.Logger,
) *Evaluator {
	return &Evaluator{
		hasMX:     hasMX,
		resolvesA: resolvesA,
		dnsCache:  dnsCache,
		cacheTTL:  cacheTTL,
		log:       log,
	}
}

// Evaluate runs the full check pipeline for one candidate. The format gate
// is the only short-circuit; every later check runs even when an earlier
// negative already decides the outcome, so the audit record carries the
// complete signal set.
func (e *Evaluator) Evaluate(ctx context.Context, cand models.Candidate) models.Result {
	email := strings.ToLower(strings.TrimSpace(cand.Email))

	details := models.Details{RiskFactors: []string{}}

	if len(email) > maxEmailLength || !emailPattern.MatchString(email) {
		return models.Result{
			Valid:   false,
			Score:   0,
			Status:  models.StatusRejected,
			Reason:  models.ReasonInvalidFormat,
			Details: details,
		}
	}
	details.FormatValid = true

	domain := email[strings.LastIndex(email, "@")+1:]

	details.IsTrustedProvider = lookup.IsTrustedProvider(domain)

	if lookup.IsDisposableDomain(domain) {
		details.IsDisposable = true
		details.RiskFactors = append(details.RiskFactors, models.RiskDisposableDetected)
	}

	signals := e.domainSignals(ctx, domain)

	details.HasMXRecord = signals.HasMX
	if !signals.HasMX {
		details.RiskFactors = append(details.RiskFactors, models.RiskNoMXRecord)
	}

	details.DomainAgeDays = signals.AgeDays
	if signals.AgeDays != nil && *signals.AgeDays < AgeThresholdNew {
		details.RiskFactors = append(details.RiskFactors, models.RiskDomainTooNew)
	}

	details.DomainExists = details.HasMXRecord || details.DomainAgeDays != nil

	score := Score(details)
	status, reason := Decide(details, score)

	// Admin elevation demands a stricter gate on top of the regular policy.
	// Appending the risk factor after scoring is deliberate: the flag marks
	// the attempt for the audit trail without re-penalizing the score.
	if cand.IsAdminAttempt && (details.IsDisposable || score < AdminScoreFloor) {
		status = models.StatusRejected
		if reason == "" {
			reason = models.ReasonInsufficientTrust
		}
		details.RiskFactors = append(details.RiskFactors, models.RiskAdminSuspiciousMail)
	}

	return models.Result{
		Valid:   status == models.StatusAccepted,
		Score:   score,
		Status:  status,
		Reason:  reason,
		Details: details,
	}
}

// domainSignals gathers the two DNS facts for a domain, serving from cache
// when possible. The MX and A lookups are independent and run concurrently;
// both must settle (or fail open on their own) before scoring.
func (e *Evaluator) domainSignals(ctx context.Context, domain string) domainSignals {
	cacheKey := "dns:" + domain
	if e.dnsCache != nil {
		if cached, ok := e.dnsCache.Get(cacheKey); ok {
			return cached.(domainSignals)
		}
	}

	var signals domainSignals
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		hasMX, err := e.hasMX(ctx, domain)
		if err != nil {
			// Fail open: a resolver hiccup must never lock out a real user.
			e.log.Warn().Err(err).Str("domain", domain).Msg("MX lookup failed, assuming present")
			hasMX = true
		}
		signals.HasMX = hasMX
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		resolves, err := e.resolvesA(ctx, domain)
		if err != nil {
			e.log.Warn().Err(err).Str("domain", domain).Msg("A lookup failed, assuming domain resolves")
			resolves = true
		}
		if resolves {
			age := assumedDomainAgeDays
			signals.AgeDays = &age
		}
	}()

	wg.Wait()

	if e.dnsCache != nil {
		e.dnsCache.Set(cacheKey, signals, e.cacheTTL)
	}
	return signals
}

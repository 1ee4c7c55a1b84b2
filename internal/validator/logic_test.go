package validator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustgate/internal/cache"
	"trustgate/internal/models"
)

type fakeDNS struct {
	hasMX    bool
	mxErr    error
	resolves bool
	aErr     error
	mxCalls  atomic.Int32
	aCalls   atomic.Int32
}

func (f *fakeDNS) lookupMX(ctx context.Context, domain string) (bool, error) {
	f.mxCalls.Add(1)
	return f.hasMX, f.mxErr
}

func (f *fakeDNS) lookupA(ctx context.Context, domain string) (bool, error) {
	f.aCalls.Add(1)
	return f.resolves, f.aErr
}

func newTestEvaluator(dns *fakeDNS, c *cache.Store) *Evaluator {
	return NewEvaluatorWithLookups(dns.lookupMX, dns.lookupA, c, time.Minute, zerolog.Nop())
}

func TestEvaluateInvalidFormat(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{"Missing at sign", "not-an-email"},
		{"Missing domain dot", "user@localhost"},
		{"Empty string", ""},
		{"Double at", "a@b@c.com"},
		{"Over length ceiling", "u@" + string(make([]byte, 260)) + ".com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dns := &fakeDNS{}
			e := newTestEvaluator(dns, nil)

			res := e.Evaluate(context.Background(), models.Candidate{Email: tt.email})

			assert.False(t, res.Valid)
			assert.Equal(t, models.StatusRejected, res.Status)
			assert.Equal(t, models.ReasonInvalidFormat, res.Reason)
			assert.Equal(t, 0, res.Score)
			assert.False(t, res.Details.FormatValid)

			// The format gate is the only short-circuit: no DNS traffic.
			assert.Zero(t, dns.mxCalls.Load())
			assert.Zero(t, dns.aCalls.Load())
		})
	}
}

func TestEvaluateTrustedProvider(t *testing.T) {
	dns := &fakeDNS{hasMX: true, resolves: true}
	e := newTestEvaluator(dns, nil)

	res := e.Evaluate(context.Background(), models.Candidate{Email: "trader@gmail.com"})

	assert.True(t, res.Valid)
	assert.Equal(t, models.StatusAccepted, res.Status)
	assert.Equal(t, 95, res.Score)
	assert.True(t, res.Details.IsTrustedProvider)
	assert.True(t, res.Details.HasMXRecord)
	assert.True(t, res.Details.DomainExists)
	require.NotNil(t, res.Details.DomainAgeDays)
	assert.Equal(t, 365, *res.Details.DomainAgeDays)
	assert.Empty(t, res.Details.RiskFactors)
}

func TestEvaluateDisposable(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{"Blocklisted domain", "x@guerrillamail.com"},
		{"Blocklisted domain with healthy DNS", "x@mailinator.com"},
		{"Lexical red flag on unlisted domain", "x@my-temp-mail.xyz"},
		{"Red flag token embedded", "x@totally-throwaway.io"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Healthy DNS on purpose: disposability must reject regardless.
			dns := &fakeDNS{hasMX: true, resolves: true}
			e := newTestEvaluator(dns, nil)

			res := e.Evaluate(context.Background(), models.Candidate{Email: tt.email})

			assert.False(t, res.Valid)
			assert.Equal(t, models.StatusRejected, res.Status)
			assert.Equal(t, models.ReasonDisposableEmail, res.Reason)
			assert.True(t, res.Details.IsDisposable)
			assert.Contains(t, res.Details.RiskFactors, models.RiskDisposableDetected)
		})
	}
}

func TestEvaluateNoMX(t *testing.T) {
	dns := &fakeDNS{hasMX: false, resolves: true}
	e := newTestEvaluator(dns, nil)

	res := e.Evaluate(context.Background(), models.Candidate{Email: "user@example-custom.com"})

	assert.False(t, res.Valid)
	assert.Equal(t, models.StatusRejected, res.Status)
	assert.Equal(t, models.ReasonNoMXRecord, res.Reason)
	assert.False(t, res.Details.HasMXRecord)
	assert.True(t, res.Details.DomainExists, "A-record resolution alone keeps domainExists true")
	assert.Contains(t, res.Details.RiskFactors, models.RiskNoMXRecord)
}

func TestEvaluateNonexistentDomain(t *testing.T) {
	dns := &fakeDNS{hasMX: false, resolves: false}
	e := newTestEvaluator(dns, nil)

	res := e.Evaluate(context.Background(), models.Candidate{Email: "user@no-such-domain-zzz.com"})

	assert.False(t, res.Valid)
	assert.Equal(t, models.StatusRejected, res.Status)
	assert.False(t, res.Details.DomainExists)
	assert.Nil(t, res.Details.DomainAgeDays)
	assert.Equal(t, 0, res.Score)
}

func TestEvaluateFailsOpenOnResolverErrors(t *testing.T) {
	dns := &fakeDNS{
		mxErr: errors.New("resolver timeout"),
		aErr:  errors.New("resolver timeout"),
	}
	e := newTestEvaluator(dns, nil)

	res := e.Evaluate(context.Background(), models.Candidate{Email: "user@slow-resolver.com"})

	// A transient DNS failure must never lock out a real user.
	assert.True(t, res.Details.HasMXRecord)
	require.NotNil(t, res.Details.DomainAgeDays)
	assert.True(t, res.Details.DomainExists)
	assert.Equal(t, models.StatusAccepted, res.Status)
}

func TestEvaluateCustomDomainAccepted(t *testing.T) {
	dns := &fakeDNS{hasMX: true, resolves: true}
	e := newTestEvaluator(dns, nil)

	res := e.Evaluate(context.Background(), models.Candidate{Email: "ops@well-run-company.com"})

	assert.True(t, res.Valid)
	assert.Equal(t, models.StatusAccepted, res.Status)
	assert.Equal(t, 65, res.Score)
	assert.False(t, res.Details.IsTrustedProvider)
}

func TestEvaluateAdminOverride(t *testing.T) {
	t.Run("Disposable admin attempt keeps the disposable reason", func(t *testing.T) {
		dns := &fakeDNS{hasMX: true, resolves: true}
		e := newTestEvaluator(dns, nil)

		res := e.Evaluate(context.Background(), models.Candidate{
			Email:          "x@mailinator.com",
			IsAdminAttempt: true,
		})

		assert.Equal(t, models.StatusRejected, res.Status)
		assert.Equal(t, models.ReasonDisposableEmail, res.Reason)
		assert.Contains(t, res.Details.RiskFactors, models.RiskAdminSuspiciousMail)
	})

	t.Run("Score at the admin floor stays accepted", func(t *testing.T) {
		// MX present, no A record: 50 + 10 = 60, exactly the floor.
		dns := &fakeDNS{hasMX: true, resolves: false}
		e := newTestEvaluator(dns, nil)

		res := e.Evaluate(context.Background(), models.Candidate{
			Email:          "ops@mx-only-domain.com",
			IsAdminAttempt: true,
		})

		assert.Equal(t, 60, res.Score)
		assert.Equal(t, models.StatusAccepted, res.Status)
		assert.NotContains(t, res.Details.RiskFactors, models.RiskAdminSuspiciousMail)
	})

	t.Run("Admin attempt on a low-trust address gets the admin reason", func(t *testing.T) {
		dns := &fakeDNS{hasMX: false, resolves: true}
		e := newTestEvaluator(dns, nil)

		plain := e.Evaluate(context.Background(), models.Candidate{Email: "user@weak-domain.com"})
		admin := e.Evaluate(context.Background(), models.Candidate{
			Email:          "user@weak-domain.com",
			IsAdminAttempt: true,
		})

		// Already rejected for no MX; the admin gate keeps that reason and
		// only adds the risk flag.
		assert.Equal(t, models.StatusRejected, plain.Status)
		assert.Equal(t, models.StatusRejected, admin.Status)
		assert.Equal(t, models.ReasonNoMXRecord, admin.Reason)
		assert.Contains(t, admin.Details.RiskFactors, models.RiskAdminSuspiciousMail)
	})
}

func TestEvaluateIdempotentWithCache(t *testing.T) {
	dns := &fakeDNS{hasMX: true, resolves: true}
	c := cache.New()
	e := newTestEvaluator(dns, c)

	first := e.Evaluate(context.Background(), models.Candidate{Email: "trader@yahoo.com"})
	second := e.Evaluate(context.Background(), models.Candidate{Email: "trader@yahoo.com"})

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Score, second.Score)

	// Second call was served from the domain cache.
	assert.Equal(t, int32(1), dns.mxCalls.Load())
	assert.Equal(t, int32(1), dns.aCalls.Load())
}

func TestEvaluateNormalizesCase(t *testing.T) {
	dns := &fakeDNS{hasMX: true, resolves: true}
	e := newTestEvaluator(dns, nil)

	res := e.Evaluate(context.Background(), models.Candidate{Email: "  Trader@GMAIL.com "})

	assert.True(t, res.Details.IsTrustedProvider)
	assert.Equal(t, models.StatusAccepted, res.Status)
}

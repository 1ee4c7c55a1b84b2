package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	"trustgate/internal/models"
)

// Entry is one append-only audit row. It never carries the raw address:
// the email is reduced to a one-way hash before the entry is built, so
// nothing downstream can reverse-identify a user from the log.
type Entry struct {
	ID              string
	EmailHash       string
	Domain          string
	ValidationScore int
	Status          models.Status
	RejectionReason *string
	IsDisposable    bool
	IsFreeProvider  bool
	HasMXRecord     bool
	DomainAgeDays   *int
	RiskFactors     []string
	IPAddress       string
	UserAgent       *string
	CreatedAt       time.Time
}

// HashEmail returns the SHA-256 hex digest of the lower-cased address.
func HashEmail(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

// NewEntry summarizes one evaluation into an audit row. The domain is kept
// in the clear (domains are not treated as sensitive); the address itself is
// hashed here and discarded.
func NewEntry(email string, res models.Result, ip, userAgent string) Entry {
	domain := ""
	if at := strings.LastIndex(email, "@"); at >= 0 {
		domain = strings.ToLower(email[at+1:])
	}

	e := Entry{
		ID:              uuid.New().String(),
		EmailHash:       HashEmail(email),
		Domain:          domain,
		ValidationScore: res.Score,
		Status:          res.Status,
		IsDisposable:    res.Details.IsDisposable,
		IsFreeProvider:  res.Details.IsTrustedProvider,
		HasMXRecord:     res.Details.HasMXRecord,
		DomainAgeDays:   res.Details.DomainAgeDays,
		RiskFactors:     res.Details.RiskFactors,
		IPAddress:       ip,
		CreatedAt:       time.Now().UTC(),
	}
	if res.Reason != "" {
		reason := res.Reason
		e.RejectionReason = &reason
	}
	if userAgent != "" {
		ua := userAgent
		e.UserAgent = &ua
	}
	return e
}

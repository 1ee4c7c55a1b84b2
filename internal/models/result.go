package models

type Status string

const (
	StatusAccepted            Status = "accepted"
	StatusRejected            Status = "rejected"
	StatusPendingConfirmation Status = "pending_confirmation"
)

// Rejection reason codes. Internal only: the HTTP layer maps every one of
// these to the same generic message so the scoring heuristics cannot be
// probed from outside.
const (
	ReasonInvalidFormat     = "invalid_format"
	ReasonDisposableEmail   = "disposable_email"
	ReasonNoMXRecord        = "no_mx_record"
	ReasonLowTrustScore     = "low_trust_score"
	ReasonInsufficientTrust = "insufficient_trust_for_admin"
)

// Risk factor labels, appended in check order during evaluation.
const (
	RiskDisposableDetected  = "disposable_email_detected"
	RiskNoMXRecord          = "no_mx_record"
	RiskDomainTooNew        = "domain_too_new"
	RiskAdminSuspiciousMail = "admin_attempt_with_suspicious_email"
)

// Candidate is the evaluator input. It lives only for the duration of a
// single validation call and is never persisted.
type Candidate struct {
	Email          string
	IsAdminAttempt bool
	UserAgent      string
}

// Details holds every signal gathered while evaluating one address. All
// checks after the format gate always run, so a rejected address still
// carries a fully populated Details for the audit trail.
type Details struct {
	FormatValid       bool     `json:"format_valid"`
	DomainExists      bool     `json:"domain_exists"`
	HasMXRecord       bool     `json:"has_mx_record"`
	IsDisposable      bool     `json:"is_disposable"`
	IsTrustedProvider bool     `json:"is_trusted_provider"`
	DomainAgeDays     *int     `json:"domain_age_days,omitempty"`
	RiskFactors       []string `json:"risk_factors"`
}

// Result is the full evaluator output. Constructed once per call, immutable
// afterwards. The HTTP layer exposes only Valid, Status and a generic
// message; everything else goes to the audit log.
type Result struct {
	Valid   bool    `json:"valid"`
	Score   int     `json:"score"`
	Status  Status  `json:"status"`
	Reason  string  `json:"reason,omitempty"`
	Details Details `json:"details"`
}

package validator

import "trustgate/internal/models"

// Scoring policy. The weights are a policy table: behavioural parity matters
// more than the individual numbers, so change them together or not at all.
const (
	BaselineScore = 50

	BoostTrustedProvider = 30
	BoostHasMX           = 10
	BoostAgeEstablished  = 10 // domain older than a year
	BoostAgeKnown        = 5  // domain older than a month

	PenaltyDisposable  = 80
	PenaltyNoMX        = 40
	PenaltyNoDomain    = 50
	PenaltyNewDomain   = 20
	PenaltyPerRiskFlag = 10

	// Age thresholds in days.
	AgeThresholdNew         = 30
	AgeThresholdEstablished = 365

	// Admin elevation requires materially higher trust than plain signup.
	AdminScoreFloor = 60
)

// Score collapses the gathered signals into a 0-100 trust score. Pure
// function of Details: two evaluations over identical signals always agree.
//
// Disposability and a missing MX are charged twice on purpose — once as a
// direct penalty and once through the per-risk-factor deduction — so clearly
// fake domains compound instead of bottoming out at a single penalty.
func Score(d models.Details) int {
	score := BaselineScore

	if d.IsTrustedProvider {
		score += BoostTrustedProvider
	}
	if d.HasMXRecord {
		score += BoostHasMX
	} else {
		score -= PenaltyNoMX
	}
	if d.IsDisposable {
		score -= PenaltyDisposable
	}
	if !d.DomainExists {
		score -= PenaltyNoDomain
	}

	if d.DomainAgeDays != nil {
		age := *d.DomainAgeDays
		switch {
		case age > AgeThresholdEstablished:
			score += BoostAgeEstablished + BoostAgeKnown
		case age > AgeThresholdNew:
			score += BoostAgeKnown
		case age < AgeThresholdNew:
			score -= PenaltyNewDomain
		}
	}

	score -= PenaltyPerRiskFlag * len(d.RiskFactors)

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Decide maps signals plus score onto a status. Fixed priority order, first
// match wins: hard negatives outrank the numeric score, and a middling score
// asks the caller for an extra confirmation step instead of blocking.
func Decide(d models.Details, score int) (models.Status, string) {
	switch {
	case d.IsDisposable:
		return models.StatusRejected, models.ReasonDisposableEmail
	case !d.HasMXRecord:
		return models.StatusRejected, models.ReasonNoMXRecord
	case score < 20:
		return models.StatusRejected, models.ReasonLowTrustScore
	case score < 50:
		return models.StatusPendingConfirmation, ""
	default:
		return models.StatusAccepted, ""
	}
}

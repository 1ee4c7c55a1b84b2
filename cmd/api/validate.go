package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"trustgate/internal/audit"
	"trustgate/internal/models"
)

// rejectionMessage is the only failure text callers ever see. One opaque
// string for every internal reason, so the endpoint cannot be probed to
// reverse-engineer the filter.
const rejectionMessage = "This email address cannot be used for registration. Please use a different address."

// ValidateRequest is the POST /validate-email body.
type ValidateRequest struct {
	Email          string `json:"email"`
	IsAdminAttempt bool   `json:"isAdminAttempt"`
	UserAgent      string `json:"userAgent"`
}

// ValidateResponse deliberately exposes only the decision. Scores, reasons
// and per-check details stay in the audit log.
type ValidateResponse struct {
	Valid   bool          `json:"valid"`
	Status  models.Status `json:"status"`
	Message string        `json:"message,omitempty"`
}

func (a *api) validateHandler(w http.ResponseWriter, r *http.Request) {
	// Top-level guard: whatever goes wrong inside the pipeline, the caller
	// gets a generic 500 with no internal detail.
	defer func() {
		if rec := recover(); rec != nil {
			a.log.Error().Interface("panic", rec).Msg("validation handler panicked")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Validation failed"})
		}
	}()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Email is required"})
		return
	}

	userAgent := req.UserAgent
	if userAgent == "" {
		userAgent = r.UserAgent()
	}

	cand := models.Candidate{
		Email:          req.Email,
		IsAdminAttempt: req.IsAdminAttempt,
		UserAgent:      userAgent,
	}

	result := a.evaluator.Evaluate(r.Context(), cand)

	// A syntactically invalid address never ran the checks, so there is no
	// signal set worth auditing.
	if result.Reason != models.ReasonInvalidFormat {
		a.writer.Record(audit.NewEntry(req.Email, result, clientIP(r), userAgent))
	}

	a.log.Info().
		Str("domain", domainOf(req.Email)).
		Str("status", string(result.Status)).
		Int("score", result.Score).
		Bool("admin_attempt", req.IsAdminAttempt).
		Msg("email validated")

	resp := ValidateResponse{Valid: result.Valid, Status: result.Status}
	if !result.Valid {
		resp.Message = rejectionMessage
	}
	writeJSON(w, http.StatusOK, resp)
}

// rateLimited gates a handler on the per-IP limiter. A nil limiter allows
// everything.
func (a *api) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.limiter.Allow(r.Context(), clientIP(r)) {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Too many requests"})
			return
		}
		next(w, r)
	}
}

// clientIP extracts the real client address from reverse-proxy headers.
// Absence is not an error, it degrades to "unknown".
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First hop is the client; later entries are proxies.
		if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); ip != "" {
			return ip
		}
	}
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	return "unknown"
}

func domainOf(email string) string {
	if at := strings.LastIndex(email, "@"); at >= 0 {
		return strings.ToLower(strings.TrimSpace(email[at+1:]))
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

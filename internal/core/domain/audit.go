package domain

import "time"

// Audit actions recorded for authentication activity.
const (
	AuditActionSignup = "signup"
	AuditActionLogin  = "login"
	AuditActionLogout = "logout"
)

// Audit outcomes.
const (
	AuditOutcomeSuccess  = "success"
	AuditOutcomeRejected = "rejected"
	AuditOutcomeError    = "error"
)

// AuditEvent records one authentication action for the portal's activity
// trail. Actor is the email or phone the action was attempted with.
type AuditEvent struct {
	Actor   string    `json:"actor"`
	Role    Role      `json:"role"`
	Action  string    `json:"action"`
	Outcome string    `json:"outcome"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}

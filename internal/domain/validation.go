package domain

import "time"

// ValidationCode binds a candidate forwarding number to the account that asked for it.
// At most one code exists per account.
type ValidationCode struct {
	ID               int64     `db:"id" json:"id"`
	AccountID        int64     `db:"account_id" json:"accountId"`
	Code             string    `db:"code" json:"code"`
	ForwardingNumber string    `db:"forwarding_number" json:"forwardingNumber"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// ValidationResult is the outcome of resolving an SMS reply against live codes.
type ValidationResult struct {
	// Found is true when a live code exists for the sender number.
	Found bool
	// Matched is true when the reply body equalled the stored code.
	Matched   bool
	AccountID int64
}

// ValidationEvent is published on validation:<account-id>.
type ValidationEvent struct {
	Matched          bool   `json:"matched"`
	ForwardingNumber string `json:"forwardingNumber,omitempty"`
	Body             string `json:"body,omitempty"`
	Prompt           string `json:"prompt,omitempty"`
	// Cleared is set when the account removed its forwarding number.
	Cleared bool `json:"cleared,omitempty"`
}

const (
	// ValidationInstructions is texted to the candidate number.
	ValidationInstructions = "To validate your number for threefactorauth, text back the 6 digit number on your screen."
	// ValidationRetryPrompt is shown after a wrong code.
	ValidationRetryPrompt = "You entered the wrong code!"
)

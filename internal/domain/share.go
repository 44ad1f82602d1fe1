package domain

import "time"

// ShareRequest is a directional invitation from one account to another.
// Completed=false is a pending invitation, Completed=true an active share.
type ShareRequest struct {
	ID            int64     `db:"id" json:"id"`
	FromAccountID int64     `db:"from_account_id" json:"fromAccountId"`
	ToAccountID   int64     `db:"to_account_id" json:"toAccountId"`
	Completed     bool      `db:"completed" json:"completed"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// Profile is the public part of an account shown to the other side of a share.
type Profile struct {
	ID    int64  `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
}

// ShareRequestWithProfile joins a request with its counterpart's profile
// (the sender for incoming requests, the recipient for outgoing ones).
type ShareRequestWithProfile struct {
	ShareRequest
	Counterpart Profile `db:"counterpart" json:"counterpart"`
}

// ShareOverview is everything a session needs to render the sharing section.
type ShareOverview struct {
	Incoming   []ShareRequestWithProfile `json:"incoming"`
	Outgoing   []ShareRequestWithProfile `json:"outgoing"`
	SharedByMe []Profile                 `json:"sharedByMe"`
	SharedToMe []Profile                 `json:"sharedToMe"`
}

type ShareAction string

const (
	ShareRequested ShareAction = "requested"
	ShareAccepted  ShareAction = "accepted"
	ShareRevoked   ShareAction = "revoked"
)

// ShareEvent is published on share:<account-id> for both parties of a change.
type ShareEvent struct {
	Action        ShareAction `json:"action"`
	FromAccountID int64       `json:"fromAccountId"`
	ToAccountID   int64       `json:"toAccountId"`
}

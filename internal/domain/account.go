package domain

import "time"

// Account is a registered user. Each account owns exactly one Telephone.
type Account struct {
	ID               int64     `db:"id" json:"id"`
	Email            string    `db:"email" json:"email"`
	ExternalID       string    `db:"external_id" json:"externalId"`
	ForwardingNumber *string   `db:"forwarding_number" json:"forwardingNumber,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

// HasForwardingNumber reports whether inbound messages should be relayed.
func (a *Account) HasForwardingNumber() bool {
	return a.ForwardingNumber != nil && *a.ForwardingNumber != ""
}

// Telephone is a provisioned number. Number is stored without a leading "+".
type Telephone struct {
	ID        int64     `db:"id" json:"id"`
	AccountID int64     `db:"account_id" json:"accountId"`
	Number    string    `db:"number" json:"number"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// TelephoneMessages is a telephone together with its messages, newest first.
type TelephoneMessages struct {
	Telephone
	Owned    bool      `json:"owned"`
	Messages []Message `json:"messages"`
}

// NewAccountResult is returned when an account is created and provisioned.
type NewAccountResult struct {
	Account   *Account   `json:"account"`
	Telephone *Telephone `json:"telephone,omitempty"`
	Token     string     `json:"token"`
}

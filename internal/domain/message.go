package domain

import (
	"strings"
	"time"
)

// Message is an inbound SMS persisted against the telephone it was sent to.
type Message struct {
	ID          int64     `db:"id" json:"id"`
	TelephoneID int64     `db:"telephone_id" json:"telephoneId"`
	From        string    `db:"from_number" json:"from"`
	Body        string    `db:"body" json:"body"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// InboundSMS is the carrier-neutral shape delivered to the router.
type InboundSMS struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

// InboundOutcome describes what the router did with an inbound SMS.
type InboundOutcome string

const (
	OutcomeDropped    InboundOutcome = "dropped"
	OutcomeValidation InboundOutcome = "validation"
	OutcomeStored     InboundOutcome = "stored"
	OutcomeFailed     InboundOutcome = "failed"
)

// NormalizeNumber strips surrounding whitespace and a single leading "+".
func NormalizeNumber(number string) string {
	return strings.TrimPrefix(strings.TrimSpace(number), "+")
}

type MessageAction string

const (
	MessageCreated MessageAction = "created"
	MessageDeleted MessageAction = "deleted"
)

// MessageEvent is published on message:<telephone-id>.
type MessageEvent struct {
	Action  MessageAction `json:"action"`
	Message Message       `json:"message"`
}

// SentSMS is the carrier's acknowledgement of an outbound message.
type SentSMS struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

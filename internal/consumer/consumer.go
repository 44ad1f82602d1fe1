package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/onurcolak/sms-relay/internal/domain"
	"github.com/onurcolak/sms-relay/pkg/logger"
	"github.com/onurcolak/sms-relay/pkg/messagebroker"
)

var ErrNotConfigured = errors.New("message broker is not configured")

type subscriber interface {
	QueueSubscribe(subject, queue string, handler func(messagebroker.Message)) (messagebroker.Subscription, error)
}

type inboundRouter interface {
	HandleInbound(ctx context.Context, sms domain.InboundSMS) domain.InboundOutcome
}

// ProviderSMS is the payload published on sms.incoming.raw.<provider>.
type ProviderSMS struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Text      string    `json:"text"`
	Body      string    `json:"body,omitempty"`
	MessageID string    `json:"message_id,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

func (p ProviderSMS) body() string {
	if p.Text != "" {
		return p.Text
	}
	return p.Body
}

// Consumer feeds inbound SMS from a NATS queue subscription into the router.
type Consumer struct {
	broker     subscriber
	router     inboundRouter
	subject    string
	queueGroup string

	// Internal state
	mu           sync.RWMutex
	running      bool
	ctx          context.Context
	subscription messagebroker.Subscription

	// Statistics
	startedAt     time.Time
	lastMessageAt time.Time
	received      int64
	invalid       int64
	outcomes      map[domain.InboundOutcome]int64
}

// NewConsumer builds a consumer. broker may be nil when NATS is disabled;
// Start then reports ErrNotConfigured.
func NewConsumer(broker subscriber, router inboundRouter, subject, queueGroup string) *Consumer {
	return &Consumer{
		broker:     broker,
		router:     router,
		subject:    subject,
		queueGroup: queueGroup,
		outcomes:   make(map[domain.InboundOutcome]int64),
	}
}

// Start subscribes. Messages are routed with ctx until Stop is called.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.broker == nil {
		return ErrNotConfigured
	}

	if c.running {
		logger.Warnf("Consumer is already running")
		return nil
	}

	c.ctx = ctx

	sub, err := c.broker.QueueSubscribe(c.subject, c.queueGroup, c.handle)
	if err != nil {
		return err
	}

	c.subscription = sub
	c.running = true
	c.startedAt = time.Now()

	logger.Infof("Consuming inbound SMS on %s (queue group %s)", c.subject, c.queueGroup)

	return nil
}

func (c *Consumer) Stop() error {
	c.mu.Lock()

	if !c.running {
		c.mu.Unlock()
		logger.Warnf("Consumer is not running")
		return nil
	}

	sub := c.subscription
	c.subscription = nil
	c.running = false
	c.mu.Unlock()

	if err := sub.Unsubscribe(); err != nil {
		return err
	}

	logger.Infof("Consumer stopped")
	return nil
}

func (c *Consumer) IsRunning() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.running
}

func (c *Consumer) GetStatus() ConsumerStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	outcomes := make(map[string]int64, len(c.outcomes))
	for outcome, n := range c.outcomes {
		outcomes[string(outcome)] = n
	}

	return ConsumerStatus{
		Enabled:       c.broker != nil,
		Running:       c.running,
		Subject:       c.subject,
		QueueGroup:    c.queueGroup,
		StartedAt:     c.startedAt,
		LastMessageAt: c.lastMessageAt,
		Received:      c.received,
		Invalid:       c.invalid,
		Outcomes:      outcomes,
	}
}

func (c *Consumer) handle(msg messagebroker.Message) {
	c.mu.Lock()
	c.received++
	c.lastMessageAt = time.Now()
	ctx := c.ctx
	c.mu.Unlock()

	provider := providerFromSubject(msg.Subject)

	var payload ProviderSMS
	if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.To == "" {
		c.mu.Lock()
		c.invalid++
		c.mu.Unlock()
		logger.Warnf("Discarding malformed inbound SMS from provider %q on %s: %v", provider, msg.Subject, err)
		return
	}

	outcome := c.router.HandleInbound(ctx, domain.InboundSMS{
		From: payload.From,
		To:   payload.To,
		Body: payload.body(),
	})

	c.mu.Lock()
	c.outcomes[outcome]++
	c.mu.Unlock()

	logger.Debugf("Inbound SMS %s from provider %q: %s", payload.MessageID, provider, outcome)
}

// providerFromSubject returns the last token of sms.incoming.raw.<provider>.
func providerFromSubject(subject string) string {
	parts := strings.Split(subject, ".")
	if len(parts) < 4 {
		return ""
	}
	return parts[len(parts)-1]
}

type ConsumerStatus struct {
	Enabled       bool             `json:"enabled"`
	Running       bool             `json:"running"`
	Subject       string           `json:"subject"`
	QueueGroup    string           `json:"queueGroup"`
	StartedAt     time.Time        `json:"startedAt,omitempty"`
	LastMessageAt time.Time        `json:"lastMessageAt,omitempty"`
	Received      int64            `json:"received"`
	Invalid       int64            `json:"invalid"`
	Outcomes      map[string]int64 `json:"outcomes"`
}

package consumer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/onurcolak/sms-relay/internal/domain"
	"github.com/onurcolak/sms-relay/pkg/messagebroker"
)

// fakeBroker records the subscription and lets tests deliver messages.
type fakeBroker struct {
	subscribeErr error

	subject string
	queue   string
	handler func(messagebroker.Message)
	sub     *fakeSubscription
}

type fakeSubscription struct {
	unsubscribed bool
}

func (s *fakeSubscription) Unsubscribe() error {
	s.unsubscribed = true
	return nil
}

func (b *fakeBroker) QueueSubscribe(subject, queue string, handler func(messagebroker.Message)) (messagebroker.Subscription, error) {
	if b.subscribeErr != nil {
		return nil, b.subscribeErr
	}
	b.subject = subject
	b.queue = queue
	b.handler = handler
	b.sub = &fakeSubscription{}
	return b.sub, nil
}

// fakeRouter is a simple test double for inboundRouter.
type fakeRouter struct {
	mu      sync.Mutex
	outcome domain.InboundOutcome
	calls   []domain.InboundSMS
}

func (r *fakeRouter) HandleInbound(ctx context.Context, sms domain.InboundSMS) domain.InboundOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, sms)
	return r.outcome
}

func TestConsumer_StartStop(t *testing.T) {
	broker := &fakeBroker{}
	c := NewConsumer(broker, &fakeRouter{}, "sms.incoming.raw.*", "sms-relay")

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if !c.IsRunning() {
		t.Fatalf("expected consumer to be running")
	}
	if broker.subject != "sms.incoming.raw.*" || broker.queue != "sms-relay" {
		t.Fatalf("unexpected subscription %q/%q", broker.subject, broker.queue)
	}

	// Starting twice keeps the first subscription.
	first := broker.sub
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("second Start returned error: %v", err)
	}
	if broker.sub != first {
		t.Fatalf("expected no second subscription")
	}

	if err := c.Stop(); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
	if c.IsRunning() {
		t.Fatalf("expected consumer to be stopped")
	}
	if !first.unsubscribed {
		t.Fatalf("expected subscription to be removed")
	}

	if err := c.Stop(); err != nil {
		t.Fatalf("second Stop returned error: %v", err)
	}
}

func TestConsumer_StartWithoutBroker(t *testing.T) {
	c := NewConsumer(nil, &fakeRouter{}, "sms.incoming.raw.*", "sms-relay")

	if err := c.Start(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if c.GetStatus().Enabled {
		t.Fatalf("expected Enabled=false")
	}
}

func TestConsumer_SubscribeError(t *testing.T) {
	broker := &fakeBroker{subscribeErr: errors.New("nats down")}
	c := NewConsumer(broker, &fakeRouter{}, "sms.incoming.raw.*", "sms-relay")

	if err := c.Start(context.Background()); err == nil {
		t.Fatalf("expected error, got nil")
	}
	if c.IsRunning() {
		t.Fatalf("expected consumer not to be running")
	}
}

func TestConsumer_RoutesMessages(t *testing.T) {
	broker := &fakeBroker{}
	router := &fakeRouter{outcome: domain.OutcomeStored}
	c := NewConsumer(broker, router, "sms.incoming.raw.*", "sms-relay")

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	broker.handler(messagebroker.Message{
		Subject: "sms.incoming.raw.signalwire",
		Data:    []byte(`{"from":"+15551234567","to":"+15550000001","text":"hello","message_id":"m1"}`),
	})
	broker.handler(messagebroker.Message{
		Subject: "sms.incoming.raw.signalwire",
		Data:    []byte(`not json`),
	})
	broker.handler(messagebroker.Message{
		Subject: "sms.incoming.raw.signalwire",
		Data:    []byte(`{"from":"+15551234567","body":"no recipient"}`),
	})

	if len(router.calls) != 1 {
		t.Fatalf("expected 1 routed message, got %d", len(router.calls))
	}
	want := domain.InboundSMS{From: "+15551234567", To: "+15550000001", Body: "hello"}
	if router.calls[0] != want {
		t.Fatalf("expected %+v, got %+v", want, router.calls[0])
	}

	status := c.GetStatus()
	if status.Received != 3 {
		t.Errorf("expected Received=3, got %d", status.Received)
	}
	if status.Invalid != 2 {
		t.Errorf("expected Invalid=2, got %d", status.Invalid)
	}
	if status.Outcomes["stored"] != 1 {
		t.Errorf("expected 1 stored outcome, got %d", status.Outcomes["stored"])
	}
}

func TestProviderFromSubject(t *testing.T) {
	cases := map[string]string{
		"sms.incoming.raw.signalwire": "signalwire",
		"sms.incoming":                "",
	}
	for subject, want := range cases {
		if got := providerFromSubject(subject); got != want {
			t.Errorf("providerFromSubject(%q) = %q, want %q", subject, got, want)
		}
	}
}

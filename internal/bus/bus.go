package bus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/onurcolak/sms-relay/pkg/logger"
)

// Event is delivered to every handler registered on Topic at publish time.
type Event struct {
	Topic       Topic     `json:"topic"`
	Payload     any       `json:"payload,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Handler receives events. Implementations must be comparable (pointer
// receivers) because subscribe and unsubscribe match handlers by identity.
// HandleEvent runs on the publisher's goroutine and must not block.
type Handler interface {
	HandleEvent(ctx context.Context, event Event) error
}

type funcHandler struct {
	id uuid.UUID
	fn func(ctx context.Context, event Event) error
}

// NewHandler wraps fn in a comparable Handler. Keep the returned value to
// unsubscribe later; two calls with the same fn yield distinct handlers.
func NewHandler(fn func(ctx context.Context, event Event) error) Handler {
	return &funcHandler{id: uuid.New(), fn: fn}
}

func (h *funcHandler) HandleEvent(ctx context.Context, event Event) error {
	return h.fn(ctx, event)
}

func (h *funcHandler) String() string {
	return "handler-" + h.id.String()
}

// Bus is a process-wide topic registry. Handler lists are copy-on-write so a
// publish iterates a stable snapshot while subscriptions change underneath it.
type Bus struct {
	mu     sync.RWMutex
	topics map[Topic][]Handler
	now    func() time.Time
}

func New() *Bus {
	return &Bus{
		topics: make(map[Topic][]Handler),
		now:    time.Now,
	}
}

// Subscribe registers h on topic. It reports false if h was already registered.
func (b *Bus) Subscribe(topic Topic, h Handler) bool {
	if h == nil {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	current := b.topics[topic]
	for _, existing := range current {
		if existing == h {
			return false
		}
	}

	next := make([]Handler, len(current), len(current)+1)
	copy(next, current)
	b.topics[topic] = append(next, h)

	return true
}

// Unsubscribe removes h from topic. It reports false if h was not registered.
func (b *Bus) Unsubscribe(topic Topic, h Handler) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := b.topics[topic]
	idx := -1
	for i, existing := range current {
		if existing == h {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	if len(current) == 1 {
		delete(b.topics, topic)
		return true
	}

	next := make([]Handler, 0, len(current)-1)
	next = append(next, current[:idx]...)
	next = append(next, current[idx+1:]...)
	b.topics[topic] = next

	return true
}

// Publish delivers payload to the handlers registered on topic, in
// registration order. Handler errors and panics are logged and do not stop
// delivery to the remaining handlers. It returns the number of handlers that
// completed without error.
func (b *Bus) Publish(ctx context.Context, topic Topic, payload any) int {
	b.mu.RLock()
	handlers := b.topics[topic]
	b.mu.RUnlock()

	busPublishedCounter.WithLabelValues(topic.Kind()).Inc()

	if len(handlers) == 0 {
		logger.Debugf("No subscribers for %s", topic)
		return 0
	}

	event := Event{
		Topic:       topic,
		Payload:     payload,
		PublishedAt: b.now(),
	}

	delivered := 0
	for _, h := range handlers {
		if err := invoke(ctx, h, event); err != nil {
			busHandlerFailedCounter.WithLabelValues(topic.Kind()).Inc()
			logger.Warnf("Handler %v failed on %s: %v", h, topic, err)
			continue
		}
		delivered++
	}

	return delivered
}

// Subscribers returns the number of handlers currently registered on topic.
func (b *Bus) Subscribers(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}

func invoke(ctx context.Context, h Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.HandleEvent(ctx, event)
}

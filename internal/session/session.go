// Package session keeps one connected account's bus subscriptions in step
// with the telephones it is entitled to view.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/onurcolak/sms-relay/internal/bus"
	"github.com/onurcolak/sms-relay/internal/domain"
	"github.com/onurcolak/sms-relay/pkg/logger"
)

var ErrClosed = errors.New("session closed")

type registry interface {
	Subscribe(topic bus.Topic, h bus.Handler) bool
	Unsubscribe(topic bus.Topic, h bus.Handler) bool
}

type entitlements interface {
	EntitledTelephones(ctx context.Context, accountID int64) ([]domain.Telephone, error)
}

// Session forwards bus events for one account to Events. It watches
// share:<account> and re-derives its message:<telephone> subscriptions
// whenever the sharing graph changes.
type Session struct {
	accountID int64
	bus       registry
	source    entitlements
	handler   bus.Handler

	events  chan bus.Event
	refresh chan struct{}
	done    chan struct{}

	mu      sync.Mutex
	started bool
	closed  bool
	topics  map[bus.Topic]struct{}
	dropped int
}

// New creates a session with room for buffer undelivered events. Events
// published while the buffer is full are dropped and counted.
func New(accountID int64, b registry, source entitlements, buffer int) *Session {
	if buffer <= 0 {
		buffer = 1
	}

	s := &Session{
		accountID: accountID,
		bus:       b,
		source:    source,
		events:    make(chan bus.Event, buffer),
		refresh:   make(chan struct{}, 1),
		done:      make(chan struct{}),
		topics:    make(map[bus.Topic]struct{}),
	}
	s.handler = bus.NewHandler(s.handle)

	return s
}

// Start subscribes the account topics and the initial message topics.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	s.bus.Subscribe(bus.ShareTopic(s.accountID), s.handler)
	s.bus.Subscribe(bus.ValidationTopic(s.accountID), s.handler)

	return s.Refresh(ctx)
}

// Run applies refresh requests until ctx is done or the session is closed.
func (s *Session) Run(ctx context.Context) {
	for {
		select {
		case <-s.refresh:
			if err := s.Refresh(ctx); err != nil && !errors.Is(err, ErrClosed) {
				logger.Errorf("Session for account %d failed to refresh subscriptions: %v", s.accountID, err)
			}
		case <-ctx.Done():
			return
		case <-s.done:
			return
		}
	}
}

// Refresh recomputes the entitled telephone set and diffs it against the
// current subscriptions: stale topics are dropped before new ones are added.
func (s *Session) Refresh(ctx context.Context) error {
	telephones, err := s.source.EntitledTelephones(ctx, s.accountID)
	if err != nil {
		return fmt.Errorf("failed to load entitled telephones: %w", err)
	}

	desired := make(map[bus.Topic]struct{}, len(telephones))
	for _, t := range telephones {
		desired[bus.MessageTopic(t.ID)] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	var removed, added int
	for topic := range s.topics {
		if _, keep := desired[topic]; !keep {
			s.bus.Unsubscribe(topic, s.handler)
			delete(s.topics, topic)
			removed++
		}
	}
	for topic := range desired {
		if _, have := s.topics[topic]; !have {
			s.bus.Subscribe(topic, s.handler)
			s.topics[topic] = struct{}{}
			added++
		}
	}

	if removed > 0 || added > 0 {
		logger.Debugf("Session for account %d: -%d +%d message topics", s.accountID, removed, added)
	}

	return nil
}

// Events delivers bus events in publish order. The channel is never closed;
// select on Done as well.
func (s *Session) Events() <-chan bus.Event {
	return s.events
}

func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Topics returns the message topics currently subscribed, sorted.
func (s *Session) Topics() []bus.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()

	topics := make([]bus.Topic, 0, len(s.topics))
	for topic := range s.topics {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i] < topics[j] })

	return topics
}

// Dropped returns how many events were discarded because the buffer was full.
func (s *Session) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Close removes every subscription. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.done)

	for topic := range s.topics {
		s.bus.Unsubscribe(topic, s.handler)
	}
	s.topics = map[bus.Topic]struct{}{}

	s.bus.Unsubscribe(bus.ShareTopic(s.accountID), s.handler)
	s.bus.Unsubscribe(bus.ValidationTopic(s.accountID), s.handler)
}

// handle runs on the publisher's goroutine, so it only enqueues.
func (s *Session) handle(_ context.Context, event bus.Event) error {
	select {
	case <-s.done:
		return nil
	default:
	}

	if event.Topic.Kind() == "share" {
		select {
		case s.refresh <- struct{}{}:
		default:
			// A refresh is already pending.
		}
	}

	select {
	case s.events <- event:
	default:
		s.mu.Lock()
		s.dropped++
		s.mu.Unlock()
		logger.Warnf("Session for account %d dropped event on %s: buffer full", s.accountID, event.Topic)
	}

	return nil
}

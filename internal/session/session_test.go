package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onurcolak/sms-relay/internal/bus"
	"github.com/onurcolak/sms-relay/internal/domain"
)

type fakeEntitlements struct {
	mu         sync.Mutex
	telephones []domain.Telephone
	err        error
}

func (f *fakeEntitlements) EntitledTelephones(ctx context.Context, accountID int64) ([]domain.Telephone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Telephone(nil), f.telephones...), nil
}

func (f *fakeEntitlements) set(telephones ...domain.Telephone) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.telephones = telephones
}

func tel(id int64) domain.Telephone {
	return domain.Telephone{ID: id, AccountID: id * 10, Number: fmt.Sprintf("155500000%02d", id)}
}

func TestStart_SubscribesEntitledTopics(t *testing.T) {
	b := bus.New()
	source := &fakeEntitlements{}
	source.set(tel(1), tel(2))

	s := New(7, b, source, 8)
	require.NoError(t, s.Start(context.Background()))
	defer s.Close()

	assert.Equal(t, []bus.Topic{bus.MessageTopic(1), bus.MessageTopic(2)}, s.Topics())
	assert.Equal(t, 1, b.Subscribers(bus.ShareTopic(7)))
	assert.Equal(t, 1, b.Subscribers(bus.ValidationTopic(7)))

	// Starting twice does not double-subscribe.
	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, 1, b.Subscribers(bus.MessageTopic(1)))
}

func TestStart_EntitlementError(t *testing.T) {
	s := New(7, bus.New(), &fakeEntitlements{err: errors.New("db down")}, 8)
	require.Error(t, s.Start(context.Background()))
	s.Close()
}

func TestRefresh_DiffsSubscriptions(t *testing.T) {
	b := bus.New()
	source := &fakeEntitlements{}
	source.set(tel(1), tel(2))

	s := New(7, b, source, 8)
	require.NoError(t, s.Start(context.Background()))
	defer s.Close()

	source.set(tel(1), tel(3))
	require.NoError(t, s.Refresh(context.Background()))

	assert.Equal(t, []bus.Topic{bus.MessageTopic(1), bus.MessageTopic(3)}, s.Topics())
	assert.Equal(t, 0, b.Subscribers(bus.MessageTopic(2)))
	assert.Equal(t, 1, b.Subscribers(bus.MessageTopic(1)), "kept topic is not re-subscribed")
	assert.Equal(t, 1, b.Subscribers(bus.MessageTopic(3)))
}

func TestShareEvent_TriggersRefresh(t *testing.T) {
	b := bus.New()
	source := &fakeEntitlements{}
	source.set(tel(1))

	s := New(7, b, source, 8)
	require.NoError(t, s.Start(context.Background()))
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	source.set(tel(1), tel(2))
	b.Publish(context.Background(), bus.ShareTopic(7), domain.ShareEvent{Action: domain.ShareAccepted})

	require.Eventually(t, func() bool {
		return b.Subscribers(bus.MessageTopic(2)) == 1
	}, time.Second, 5*time.Millisecond)

	// The share event itself is forwarded too.
	select {
	case event := <-s.Events():
		assert.Equal(t, bus.ShareTopic(7), event.Topic)
	case <-time.After(time.Second):
		t.Fatal("share event not delivered")
	}
}

func TestEvents_ForwardedInOrder(t *testing.T) {
	b := bus.New()
	source := &fakeEntitlements{}
	source.set(tel(1))

	s := New(7, b, source, 8)
	require.NoError(t, s.Start(context.Background()))
	defer s.Close()

	b.Publish(context.Background(), bus.MessageTopic(1), "first")
	b.Publish(context.Background(), bus.ValidationTopic(7), "second")
	b.Publish(context.Background(), bus.MessageTopic(99), "not entitled")

	first := <-s.Events()
	second := <-s.Events()
	assert.Equal(t, "first", first.Payload)
	assert.Equal(t, "second", second.Payload)

	select {
	case event := <-s.Events():
		t.Fatalf("unexpected event %v", event)
	default:
	}
}

func TestEvents_DroppedWhenBufferFull(t *testing.T) {
	b := bus.New()
	source := &fakeEntitlements{}
	source.set(tel(1))

	s := New(7, b, source, 2)
	require.NoError(t, s.Start(context.Background()))
	defer s.Close()

	for i := 0; i < 5; i++ {
		// The publisher is never blocked by a slow session.
		assert.Equal(t, 1, b.Publish(context.Background(), bus.MessageTopic(1), i))
	}

	assert.Len(t, s.Events(), 2)
	assert.Equal(t, 3, s.Dropped())
}

func TestClose_RemovesAllSubscriptions(t *testing.T) {
	b := bus.New()
	source := &fakeEntitlements{}
	source.set(tel(1), tel(2))

	s := New(7, b, source, 8)
	require.NoError(t, s.Start(context.Background()))

	s.Close()
	s.Close()

	for _, topic := range []bus.Topic{
		bus.MessageTopic(1), bus.MessageTopic(2), bus.ShareTopic(7), bus.ValidationTopic(7),
	} {
		assert.Zero(t, b.Subscribers(topic), "topic %s", topic)
	}
	assert.Empty(t, s.Topics())
	assert.ErrorIs(t, s.Refresh(context.Background()), ErrClosed)
	assert.ErrorIs(t, s.Start(context.Background()), ErrClosed)

	select {
	case <-s.Done():
	default:
		t.Fatal("Done not closed")
	}
}

func TestTwoSessionsSameAccount(t *testing.T) {
	b := bus.New()
	source := &fakeEntitlements{}
	source.set(tel(1))

	first := New(7, b, source, 8)
	second := New(7, b, source, 8)
	require.NoError(t, first.Start(context.Background()))
	require.NoError(t, second.Start(context.Background()))
	defer second.Close()

	assert.Equal(t, 2, b.Publish(context.Background(), bus.MessageTopic(1), "x"))

	first.Close()
	assert.Equal(t, 1, b.Publish(context.Background(), bus.MessageTopic(1), "y"))
}

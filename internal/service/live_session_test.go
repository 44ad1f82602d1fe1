package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onurcolak/sms-relay/internal/bus"
	"github.com/onurcolak/sms-relay/internal/domain"
	"github.com/onurcolak/sms-relay/internal/session"
)

// Share, observe, revoke: the viewer's session follows the sharing graph.
func TestLiveSession_FollowsShareLifecycle(t *testing.T) {
	store := newMemStore()
	sms := &fakeSMSSender{}
	b := bus.New()

	shares := NewShareService(memShares{store}, memAccounts{store}, memTelephones{store}, b)
	validation := NewValidationService(memCodes{store}, memTelephones{store}, sms, b)
	router := NewInboundRouter(
		memTelephones{store}, memAccounts{store}, memMessages{store}, validation, sms, nil, b,
	)

	alice, aliceTel := store.addAccount("alice@example.com", "15550000001")
	bob, _ := store.addAccount("bob@example.com", "15550000002")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bobSession := session.New(bob.ID, b, shares, 16)
	require.NoError(t, bobSession.Start(ctx))
	defer bobSession.Close()
	go bobSession.Run(ctx)

	aliceTopic := bus.MessageTopic(aliceTel.ID)

	_, err := shares.RequestShare(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, shares.AcceptShare(ctx, alice.ID, bob.ID))

	require.Eventually(t, func() bool {
		return b.Subscribers(aliceTopic) == 1
	}, time.Second, 5*time.Millisecond)

	drain(bobSession)

	outcome := router.HandleInbound(ctx, domain.InboundSMS{From: "15551234567", To: aliceTel.Number, Body: "for alice"})
	require.Equal(t, domain.OutcomeStored, outcome)

	event := nextMessageEvent(t, bobSession, aliceTopic)
	assert.Equal(t, "for alice", event.Message.Body)

	require.NoError(t, shares.RevokeShare(ctx, alice.ID, bob.ID))

	require.Eventually(t, func() bool {
		return b.Subscribers(aliceTopic) == 0
	}, time.Second, 5*time.Millisecond)

	drain(bobSession)

	outcome = router.HandleInbound(ctx, domain.InboundSMS{From: "15551234567", To: aliceTel.Number, Body: "private"})
	require.Equal(t, domain.OutcomeStored, outcome)

	select {
	case e := <-bobSession.Events():
		t.Fatalf("revoked viewer received %v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func drain(s *session.Session) {
	for {
		select {
		case <-s.Events():
		default:
			return
		}
	}
}

func nextMessageEvent(t *testing.T, s *session.Session, topic bus.Topic) domain.MessageEvent {
	t.Helper()

	for {
		select {
		case e := <-s.Events():
			if e.Topic != topic {
				continue
			}
			return e.Payload.(domain.MessageEvent)
		case <-time.After(time.Second):
			t.Fatalf("no event on %s", topic)
			return domain.MessageEvent{}
		}
	}
}

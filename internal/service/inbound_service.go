package service

import (
	"context"
	"sync"
	"time"

	"github.com/onurcolak/sms-relay/internal/bus"
	"github.com/onurcolak/sms-relay/internal/domain"
	"github.com/onurcolak/sms-relay/pkg/logger"
)

type messageRepository interface {
	Create(ctx context.Context, telephoneID int64, from, body string, receivedAt time.Time) (*domain.Message, error)
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	ListByTelephoneIDs(ctx context.Context, telephoneIDs []int64) ([]domain.Message, error)
	ListPage(ctx context.Context, telephoneID int64, page, pageSize int) ([]domain.Message, int64, error)
	Delete(ctx context.Context, id int64) error
}

// TelephoneCache is an optional read-through cache of telephones by number.
type TelephoneCache interface {
	CacheTelephone(ctx context.Context, telephone *domain.Telephone) error
	GetCachedTelephone(ctx context.Context, number string) (*domain.Telephone, error)
}

type replyResolver interface {
	ResolveInboundReply(ctx context.Context, fromNumber, body string) (domain.ValidationResult, error)
}

// InboundRouter classifies each inbound SMS as a validation reply or an
// ordinary message, relays ordinary messages to the owner's forwarding
// number and stores them.
type InboundRouter struct {
	telephones telephoneRepository
	accounts   accountRepository
	messages   messageRepository
	validation replyResolver
	sms        smsSender
	cache      TelephoneCache
	bus        publisher
	now        func() time.Time

	locks telephoneLocks
}

// NewInboundRouter builds a router. cache may be nil.
func NewInboundRouter(
	telephones telephoneRepository,
	accounts accountRepository,
	messages messageRepository,
	validation replyResolver,
	sms smsSender,
	cache TelephoneCache,
	bus publisher,
) *InboundRouter {
	return &InboundRouter{
		telephones: telephones,
		accounts:   accounts,
		messages:   messages,
		validation: validation,
		sms:        sms,
		cache:      cache,
		bus:        bus,
		now:        time.Now,
		locks:      telephoneLocks{locks: make(map[int64]*telephoneLock)},
	}
}

// HandleInbound routes one inbound SMS. It never fails: every problem is
// logged and reflected in the returned outcome only. Messages to the same
// telephone are processed one at a time, in arrival order.
func (r *InboundRouter) HandleInbound(ctx context.Context, sms domain.InboundSMS) domain.InboundOutcome {
	outcome := r.route(ctx, sms)
	inboundCounter.WithLabelValues(string(outcome)).Inc()
	return outcome
}

func (r *InboundRouter) route(ctx context.Context, sms domain.InboundSMS) domain.InboundOutcome {
	from := domain.NormalizeNumber(sms.From)
	to := domain.NormalizeNumber(sms.To)
	receivedAt := r.now()

	if to == "" {
		logger.Warnf("Dropping inbound SMS from %s without a recipient", from)
		return domain.OutcomeDropped
	}

	telephone, err := r.resolveTelephone(ctx, to)
	if err != nil {
		logger.Errorf("Failed to resolve telephone %s: %v", to, err)
		return domain.OutcomeFailed
	}
	if telephone == nil {
		logger.Warnf("Dropping inbound SMS to unknown number %s", to)
		return domain.OutcomeDropped
	}

	unlock := r.locks.lock(telephone.ID)
	defer unlock()

	result, err := r.validation.ResolveInboundReply(ctx, from, sms.Body)
	if err != nil {
		// A pending code may exist; storing the body could leak it into the conversation.
		logger.Errorf("Failed to check validation codes for %s: %v", from, err)
		return domain.OutcomeFailed
	}
	if result.Found {
		logger.Infof("Inbound SMS from %s handled as validation reply (matched: %t)", from, result.Matched)
		return domain.OutcomeValidation
	}

	r.relay(ctx, telephone, from, sms.Body)

	message, err := r.messages.Create(ctx, telephone.ID, from, sms.Body, receivedAt)
	if err != nil {
		logger.Errorf("Failed to store inbound SMS for telephone %d: %v", telephone.ID, err)
		return domain.OutcomeFailed
	}

	r.bus.Publish(ctx, bus.MessageTopic(telephone.ID), domain.MessageEvent{
		Action:  domain.MessageCreated,
		Message: *message,
	})

	logger.Debugf("Stored message %d for telephone %d", message.ID, telephone.ID)

	return domain.OutcomeStored
}

// relay forwards the body verbatim when the owner has a forwarding number.
// Failures are logged and never retried.
func (r *InboundRouter) relay(ctx context.Context, telephone *domain.Telephone, from, body string) {
	account, err := r.accounts.GetByID(ctx, telephone.AccountID)
	if err != nil {
		relayFailedCounter.Inc()
		logger.Errorf("Failed to load account %d for relay: %v", telephone.AccountID, err)
		return
	}
	if account == nil || !account.HasForwardingNumber() {
		return
	}

	if _, err := r.sms.SendMessage(ctx, telephone.Number, *account.ForwardingNumber, body); err != nil {
		relayFailedCounter.Inc()
		logger.Errorf("Failed to relay SMS from %s on telephone %d: %v", from, telephone.ID, err)
		return
	}

	logger.Debugf("Relayed SMS on telephone %d to forwarding number", telephone.ID)
}

// resolveTelephone reads through the cache; numbers never change once
// provisioned, so cached entries cannot go stale.
func (r *InboundRouter) resolveTelephone(ctx context.Context, number string) (*domain.Telephone, error) {
	if r.cache != nil {
		cached, err := r.cache.GetCachedTelephone(ctx, number)
		switch {
		case err != nil:
			telephoneCacheCounter.WithLabelValues("error").Inc()
			logger.Warnf("Telephone cache lookup failed for %s: %v", number, err)
		case cached != nil:
			telephoneCacheCounter.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			telephoneCacheCounter.WithLabelValues("miss").Inc()
		}
	}

	telephone, err := r.telephones.GetByNumber(ctx, number)
	if err != nil || telephone == nil {
		return telephone, err
	}

	if r.cache != nil {
		if err := r.cache.CacheTelephone(ctx, telephone); err != nil {
			logger.Warnf("Failed to cache telephone %d: %v", telephone.ID, err)
		}
	}

	return telephone, nil
}

type telephoneLock struct {
	sync.Mutex
	refs int
}

// telephoneLocks hands out one mutex per telephone id and frees it once no
// goroutine holds or waits on it.
type telephoneLocks struct {
	mu    sync.Mutex
	locks map[int64]*telephoneLock
}

func (l *telephoneLocks) lock(id int64) func() {
	l.mu.Lock()
	lk, ok := l.locks[id]
	if !ok {
		lk = &telephoneLock{}
		l.locks[id] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.Lock()

	return func() {
		lk.Unlock()

		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

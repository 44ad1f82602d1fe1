package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/onurcolak/sms-relay/internal/bus"
	"github.com/onurcolak/sms-relay/internal/domain"
	"github.com/onurcolak/sms-relay/pkg/logger"
)

type shareRepository interface {
	Create(ctx context.Context, fromID, toID int64) (*domain.ShareRequest, error)
	Get(ctx context.Context, fromID, toID int64) (*domain.ShareRequest, error)
	MarkCompleted(ctx context.Context, fromID, toID int64) (bool, error)
	Delete(ctx context.Context, fromID, toID int64) (int64, error)

	ListPendingIncoming(ctx context.Context, toID int64) ([]domain.ShareRequestWithProfile, error)
	ListPendingOutgoing(ctx context.Context, fromID int64) ([]domain.ShareRequestWithProfile, error)
	ListSharingWith(ctx context.Context, toID int64) ([]domain.Profile, error)
	ListSharedBy(ctx context.Context, fromID int64) ([]domain.Profile, error)
}

type accountRepository interface {
	Create(ctx context.Context, email, externalID string) (*domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	SetForwardingNumber(ctx context.Context, id int64, number *string) error
}

type telephoneRepository interface {
	Create(ctx context.Context, accountID int64, number string) (*domain.Telephone, error)
	GetByID(ctx context.Context, id int64) (*domain.Telephone, error)
	GetByNumber(ctx context.Context, number string) (*domain.Telephone, error)
	GetByAccountID(ctx context.Context, accountID int64) (*domain.Telephone, error)
	ListByAccountIDs(ctx context.Context, accountIDs []int64) ([]domain.Telephone, error)
}

type publisher interface {
	Publish(ctx context.Context, topic bus.Topic, payload any) int
}

// ShareService maintains the sharing graph between accounts and derives
// which telephones an account may view.
type ShareService struct {
	shares     shareRepository
	accounts   accountRepository
	telephones telephoneRepository
	bus        publisher
}

func NewShareService(
	shares shareRepository,
	accounts accountRepository,
	telephones telephoneRepository,
	bus publisher,
) *ShareService {
	return &ShareService{
		shares:     shares,
		accounts:   accounts,
		telephones: telephones,
		bus:        bus,
	}
}

// RequestShare creates a pending request from one account to another.
func (s *ShareService) RequestShare(ctx context.Context, fromID, toID int64) (*domain.ShareRequest, error) {
	if fromID == toID {
		return nil, domain.ErrSelfShare
	}

	to, err := s.accounts.GetByID(ctx, toID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}
	if to == nil {
		return nil, fmt.Errorf("account %d: %w", toID, domain.ErrNotFound)
	}

	existing, err := s.shares.Get(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, alreadySharedError(existing)
	}

	// The unique (from, to) key still catches a request created concurrently.
	request, err := s.shares.Create(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}

	logger.Infof("Account %d requested to share with account %d", fromID, toID)
	s.notify(ctx, domain.ShareRequested, fromID, toID)

	return request, nil
}

// RequestShareByEmail resolves the recipient by e-mail and calls RequestShare.
func (s *ShareService) RequestShareByEmail(ctx context.Context, fromID int64, email string) (*domain.ShareRequest, error) {
	to, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}
	if to == nil {
		return nil, fmt.Errorf("no account registered for %s: %w", email, domain.ErrNotFound)
	}

	return s.RequestShare(ctx, fromID, to.ID)
}

// AcceptShare completes the pending request sent by fromID to toID.
func (s *ShareService) AcceptShare(ctx context.Context, fromID, toID int64) error {
	ok, err := s.shares.MarkCompleted(ctx, fromID, toID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no pending share request from %d to %d: %w", fromID, toID, domain.ErrNotFound)
	}

	logger.Infof("Account %d accepted share from account %d", toID, fromID)
	s.notify(ctx, domain.ShareAccepted, fromID, toID)

	return nil
}

// RevokeShare deletes the request for the pair in any state. Revoking a
// missing request succeeds; both parties are notified either way so stale
// sessions converge.
func (s *ShareService) RevokeShare(ctx context.Context, fromID, toID int64) error {
	rows, err := s.shares.Delete(ctx, fromID, toID)
	if err != nil {
		return err
	}

	if rows > 0 {
		logger.Infof("Share from account %d to account %d removed", fromID, toID)
	}
	s.notify(ctx, domain.ShareRevoked, fromID, toID)

	return nil
}

func (s *ShareService) PendingIncoming(ctx context.Context, accountID int64) ([]domain.ShareRequestWithProfile, error) {
	return s.shares.ListPendingIncoming(ctx, accountID)
}

func (s *ShareService) PendingOutgoing(ctx context.Context, accountID int64) ([]domain.ShareRequestWithProfile, error) {
	return s.shares.ListPendingOutgoing(ctx, accountID)
}

// ActiveSharedToMe returns the accounts whose messages accountID may view.
func (s *ShareService) ActiveSharedToMe(ctx context.Context, accountID int64) ([]domain.Profile, error) {
	return s.shares.ListSharingWith(ctx, accountID)
}

// ActiveSharedByMe returns the accounts that may view accountID's messages.
func (s *ShareService) ActiveSharedByMe(ctx context.Context, accountID int64) ([]domain.Profile, error) {
	return s.shares.ListSharedBy(ctx, accountID)
}

// Overview loads all four sharing lists concurrently.
func (s *ShareService) Overview(ctx context.Context, accountID int64) (*domain.ShareOverview, error) {
	var overview domain.ShareOverview

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		overview.Incoming, err = s.PendingIncoming(gctx, accountID)
		return err
	})
	g.Go(func() error {
		var err error
		overview.Outgoing, err = s.PendingOutgoing(gctx, accountID)
		return err
	})
	g.Go(func() error {
		var err error
		overview.SharedByMe, err = s.ActiveSharedByMe(gctx, accountID)
		return err
	})
	g.Go(func() error {
		var err error
		overview.SharedToMe, err = s.ActiveSharedToMe(gctx, accountID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load share overview: %w", err)
	}

	return &overview, nil
}

// EntitledTelephones returns every telephone accountID may view: its own
// first, then those of accounts with an active share to it.
func (s *ShareService) EntitledTelephones(ctx context.Context, accountID int64) ([]domain.Telephone, error) {
	own, err := s.telephones.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	sharing, err := s.shares.ListSharingWith(ctx, accountID)
	if err != nil {
		return nil, err
	}

	telephones := make([]domain.Telephone, 0, len(sharing)+1)
	if own != nil {
		telephones = append(telephones, *own)
	}

	if len(sharing) == 0 {
		return telephones, nil
	}

	ownerIDs := make([]int64, 0, len(sharing))
	for _, p := range sharing {
		ownerIDs = append(ownerIDs, p.ID)
	}

	shared, err := s.telephones.ListByAccountIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	return append(telephones, shared...), nil
}

// IsEntitled reports whether accountID may view telephone's messages.
func (s *ShareService) IsEntitled(ctx context.Context, accountID int64, telephone domain.Telephone) (bool, error) {
	if telephone.AccountID == accountID {
		return true, nil
	}

	request, err := s.shares.Get(ctx, telephone.AccountID, accountID)
	if err != nil {
		return false, err
	}

	return request != nil && request.Completed, nil
}

func (s *ShareService) notify(ctx context.Context, action domain.ShareAction, fromID, toID int64) {
	event := domain.ShareEvent{
		Action:        action,
		FromAccountID: fromID,
		ToAccountID:   toID,
	}

	s.bus.Publish(ctx, bus.ShareTopic(fromID), event)
	s.bus.Publish(ctx, bus.ShareTopic(toID), event)
}

func alreadySharedError(existing *domain.ShareRequest) error {
	if existing.Completed {
		return fmt.Errorf("you are already sharing with this account: %w", domain.ErrAlreadyShared)
	}
	return fmt.Errorf("a share request to this account is still pending: %w", domain.ErrAlreadyShared)
}

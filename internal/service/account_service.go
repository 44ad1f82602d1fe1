package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/onurcolak/sms-relay/internal/bus"
	"github.com/onurcolak/sms-relay/internal/domain"
	"github.com/onurcolak/sms-relay/pkg/logger"
)

type numberProvisioner interface {
	BuyPhoneNumber(ctx context.Context) (string, error)
}

type tokenIssuer interface {
	Issue(accountID int64) (string, error)
}

type entitlementSource interface {
	EntitledTelephones(ctx context.Context, accountID int64) ([]domain.Telephone, error)
	Overview(ctx context.Context, accountID int64) (*domain.ShareOverview, error)
	IsEntitled(ctx context.Context, accountID int64, telephone domain.Telephone) (bool, error)
}

// Dashboard is everything a signed-in account sees on its main page.
type Dashboard struct {
	Account    *domain.Account            `json:"account"`
	Telephones []domain.TelephoneMessages `json:"telephones"`
	Shares     *domain.ShareOverview      `json:"shares"`
}

type AccountService struct {
	accounts    accountRepository
	telephones  telephoneRepository
	messages    messageRepository
	provisioner numberProvisioner
	tokens      tokenIssuer
	shares      entitlementSource
	bus         publisher
}

func NewAccountService(
	accounts accountRepository,
	telephones telephoneRepository,
	messages messageRepository,
	provisioner numberProvisioner,
	tokens tokenIssuer,
	shares entitlementSource,
	bus publisher,
) *AccountService {
	return &AccountService{
		accounts:    accounts,
		telephones:  telephones,
		messages:    messages,
		provisioner: provisioner,
		tokens:      tokens,
		shares:      shares,
		bus:         bus,
	}
}

// CreateAccount registers an account and provisions its telephone. Signing
// up again with a known e-mail returns the existing account with a new token.
func (s *AccountService) CreateAccount(ctx context.Context, email, externalID string) (*domain.NewAccountResult, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if account == nil {
		account, err = s.accounts.Create(ctx, email, externalID)
		if err != nil {
			return nil, err
		}
		logger.Infof("Created account %d", account.ID)
	}

	telephone, err := s.telephones.GetByAccountID(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	if telephone == nil {
		telephone, err = s.provision(ctx, account.ID)
		if err != nil {
			return nil, err
		}
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &domain.NewAccountResult{
		Account:   account,
		Telephone: telephone,
		Token:     token,
	}, nil
}

func (s *AccountService) provision(ctx context.Context, accountID int64) (*domain.Telephone, error) {
	number, err := s.provisioner.BuyPhoneNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to buy phone number: %v: %w", err, domain.ErrExternalService)
	}

	telephone, err := s.telephones.Create(ctx, accountID, domain.NormalizeNumber(number))
	if err != nil {
		return nil, err
	}

	logger.Infof("Provisioned telephone %d for account %d", telephone.ID, accountID)

	return telephone, nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account %d: %w", accountID, domain.ErrNotFound)
	}
	return account, nil
}

// TelephoneMessages returns every telephone the account may view, its own
// first, each with its messages newest first.
func (s *AccountService) TelephoneMessages(ctx context.Context, accountID int64) ([]domain.TelephoneMessages, error) {
	telephones, err := s.shares.EntitledTelephones(ctx, accountID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(telephones))
	for _, t := range telephones {
		ids = append(ids, t.ID)
	}

	messages, err := s.messages.ListByTelephoneIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byTelephone := make(map[int64][]domain.Message, len(telephones))
	for _, m := range messages {
		byTelephone[m.TelephoneID] = append(byTelephone[m.TelephoneID], m)
	}

	result := make([]domain.TelephoneMessages, 0, len(telephones))
	for _, t := range telephones {
		list := byTelephone[t.ID]
		if list == nil {
			list = []domain.Message{}
		}
		result = append(result, domain.TelephoneMessages{
			Telephone: t,
			Owned:     t.AccountID == accountID,
			Messages:  list,
		})
	}

	return result, nil
}

// MessagePage returns one page of a single telephone's messages, newest
// first. Telephones the account may not view are reported as not found.
func (s *AccountService) MessagePage(
	ctx context.Context,
	accountID, telephoneID int64,
	page, pageSize int,
) ([]domain.Message, int64, error) {
	telephone, err := s.telephones.GetByID(ctx, telephoneID)
	if err != nil {
		return nil, 0, err
	}
	if telephone == nil {
		return nil, 0, fmt.Errorf("telephone %d: %w", telephoneID, domain.ErrNotFound)
	}

	entitled, err := s.shares.IsEntitled(ctx, accountID, *telephone)
	if err != nil {
		return nil, 0, err
	}
	if !entitled {
		return nil, 0, fmt.Errorf("telephone %d: %w", telephoneID, domain.ErrNotFound)
	}

	return s.messages.ListPage(ctx, telephoneID, page, pageSize)
}

// Dashboard loads the account, its visible messages and its sharing lists concurrently.
func (s *AccountService) Dashboard(ctx context.Context, accountID int64) (*Dashboard, error) {
	var dashboard Dashboard

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		dashboard.Account, err = s.GetAccount(gctx, accountID)
		return err
	})
	g.Go(func() error {
		var err error
		dashboard.Telephones, err = s.TelephoneMessages(gctx, accountID)
		return err
	})
	g.Go(func() error {
		var err error
		dashboard.Shares, err = s.shares.Overview(gctx, accountID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard, nil
}

// DeleteMessage removes a message from the account's own telephone. Messages
// on telephones shared with the account are reported as not found.
func (s *AccountService) DeleteMessage(ctx context.Context, accountID, messageID int64) error {
	message, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	telephone, err := s.telephones.GetByAccountID(ctx, accountID)
	if err != nil {
		return err
	}

	if message == nil || telephone == nil || message.TelephoneID != telephone.ID {
		return fmt.Errorf("message %d: %w", messageID, domain.ErrNotFound)
	}

	if err := s.messages.Delete(ctx, messageID); err != nil {
		return err
	}

	s.bus.Publish(ctx, bus.MessageTopic(telephone.ID), domain.MessageEvent{
		Action:  domain.MessageDeleted,
		Message: *message,
	})

	return nil
}

// RemoveForwardingNumber stops relaying inbound SMS for the account.
func (s *AccountService) RemoveForwardingNumber(ctx context.Context, accountID int64) error {
	if err := s.accounts.SetForwardingNumber(ctx, accountID, nil); err != nil {
		return err
	}

	logger.Infof("Forwarding number removed for account %d", accountID)

	s.bus.Publish(ctx, bus.ValidationTopic(accountID), domain.ValidationEvent{Cleared: true})

	return nil
}

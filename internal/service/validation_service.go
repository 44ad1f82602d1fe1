package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/onurcolak/sms-relay/internal/bus"
	"github.com/onurcolak/sms-relay/internal/domain"
	"github.com/onurcolak/sms-relay/pkg/logger"
)

const (
	codeMin = 100000
	codeMax = 999999 // exclusive
)

var forwardingNumberPattern = regexp.MustCompile(`^\d{11}$`)

type validationRepository interface {
	Replace(ctx context.Context, accountID int64, code, forwardingNumber string) (*domain.ValidationCode, error)
	ListByForwardingNumber(ctx context.Context, number string) ([]domain.ValidationCode, error)
	DeleteByAccountID(ctx context.Context, accountID int64) (int64, error)
	Consume(ctx context.Context, code domain.ValidationCode) error
}

type smsSender interface {
	SendMessage(ctx context.Context, from, to, body string) (*domain.SentSMS, error)
}

// ValidationService runs the one-time code exchange that proves possession
// of a candidate forwarding number.
type ValidationService struct {
	codes      validationRepository
	telephones telephoneRepository
	sms        smsSender
	bus        publisher
	generate   func() (string, error)
}

func NewValidationService(
	codes validationRepository,
	telephones telephoneRepository,
	sms smsSender,
	bus publisher,
) *ValidationService {
	return &ValidationService{
		codes:      codes,
		telephones: telephones,
		sms:        sms,
		bus:        bus,
		generate:   generateCode,
	}
}

// BeginValidation texts instructions to candidate from the account's own
// telephone and stores a fresh code, superseding any previous one. The code
// is returned for display and is never sent to the candidate number.
func (s *ValidationService) BeginValidation(ctx context.Context, accountID int64, candidate string) (_ string, err error) {
	// A failed attempt never leaves the previous code live.
	defer func() {
		if err != nil {
			s.discard(ctx, accountID)
		}
	}()

	candidate = domain.NormalizeNumber(candidate)

	if !forwardingNumberPattern.MatchString(candidate) {
		return "", domain.ErrInvalidFormat
	}

	telephone, err := s.telephones.GetByAccountID(ctx, accountID)
	if err != nil {
		return "", err
	}
	if telephone == nil {
		return "", fmt.Errorf("telephone for account %d: %w", accountID, domain.ErrNotFound)
	}

	if _, err := s.sms.SendMessage(ctx, telephone.Number, candidate, domain.ValidationInstructions); err != nil {
		return "", fmt.Errorf("failed to send validation instructions: %v: %w", err, domain.ErrExternalService)
	}

	code, err := s.generate()
	if err != nil {
		return "", fmt.Errorf("failed to generate validation code: %w", err)
	}

	if _, err := s.codes.Replace(ctx, accountID, code, candidate); err != nil {
		return "", err
	}

	logger.Infof("Validation started for account %d", accountID)

	return code, nil
}

// ResolveInboundReply checks whether an SMS from fromNumber answers a live
// validation code. Found is false when no code awaits that number; the caller
// must then treat the SMS as an ordinary message.
func (s *ValidationService) ResolveInboundReply(ctx context.Context, fromNumber, body string) (domain.ValidationResult, error) {
	fromNumber = domain.NormalizeNumber(fromNumber)

	codes, err := s.codes.ListByForwardingNumber(ctx, fromNumber)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	if len(codes) == 0 {
		return domain.ValidationResult{}, nil
	}

	reply := strings.TrimSpace(body)

	for _, code := range codes {
		if code.Code != reply {
			continue
		}

		if err := s.codes.Consume(ctx, code); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Superseded between lookup and consume.
				continue
			}
			return domain.ValidationResult{Found: true, AccountID: code.AccountID}, err
		}

		logger.Infof("Forwarding number validated for account %d", code.AccountID)

		s.bus.Publish(ctx, bus.ValidationTopic(code.AccountID), domain.ValidationEvent{
			Matched:          true,
			ForwardingNumber: code.ForwardingNumber,
			Body:             reply,
		})

		return domain.ValidationResult{Found: true, Matched: true, AccountID: code.AccountID}, nil
	}

	// A mismatch keeps the code live so a correct retry still succeeds.
	for _, code := range codes {
		logger.Warnf("Wrong validation code received for account %d", code.AccountID)

		s.bus.Publish(ctx, bus.ValidationTopic(code.AccountID), domain.ValidationEvent{
			Matched: false,
			Body:    reply,
			Prompt:  domain.ValidationRetryPrompt,
		})
	}

	return domain.ValidationResult{Found: true, AccountID: codes[0].AccountID}, nil
}

// CancelValidation drops the account's live code, if any.
func (s *ValidationService) CancelValidation(ctx context.Context, accountID int64) error {
	_, err := s.codes.DeleteByAccountID(ctx, accountID)
	return err
}

func (s *ValidationService) discard(ctx context.Context, accountID int64) {
	if _, err := s.codes.DeleteByAccountID(ctx, accountID); err != nil {
		logger.Warnf("Failed to discard validation code for account %d: %v", accountID, err)
	}
}

// generateCode returns a uniformly random integer in [codeMin, codeMax).
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}

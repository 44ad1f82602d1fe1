package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/onurcolak/sms-relay/internal/bus"
	"github.com/onurcolak/sms-relay/internal/domain"
)

//
// In-memory store shared by the fakes below. Each repository view is its
// own type because the real repositories reuse method names.
//

type memStore struct {
	mu         sync.Mutex
	nextID     int64
	accounts   map[int64]*domain.Account
	telephones map[int64]*domain.Telephone
	messages   map[int64]*domain.Message
	shares     map[[2]int64]*domain.ShareRequest
	codes      map[int64]*domain.ValidationCode
}

func newMemStore() *memStore {
	return &memStore{
		accounts:   make(map[int64]*domain.Account),
		telephones: make(map[int64]*domain.Telephone),
		messages:   make(map[int64]*domain.Message),
		shares:     make(map[[2]int64]*domain.ShareRequest),
		codes:      make(map[int64]*domain.ValidationCode),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

// addAccount creates an account with a telephone and returns both.
func (s *memStore) addAccount(email, number string) (*domain.Account, *domain.Telephone) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := &domain.Account{ID: s.id(), Email: email, ExternalID: "ext-" + email}
	s.accounts[account.ID] = account

	telephone := &domain.Telephone{ID: s.id(), AccountID: account.ID, Number: number}
	s.telephones[telephone.ID] = telephone

	return account, telephone
}

func (s *memStore) messageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func (s *memStore) liveCodes(accountID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.codes[accountID]; ok {
		return 1
	}
	return 0
}

func (s *memStore) forwardingNumber(accountID int64) *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[accountID].ForwardingNumber
}

type memAccounts struct{ *memStore }

func (r memAccounts) Create(ctx context.Context, email, externalID string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account := &domain.Account{ID: r.id(), Email: email, ExternalID: externalID}
	r.accounts[account.ID] = account
	copied := *account
	return &copied, nil
}

func (r memAccounts) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	copied := *account
	return &copied, nil
}

func (r memAccounts) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, nil
}

func (r memAccounts) SetForwardingNumber(ctx context.Context, id int64, number *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	account.ForwardingNumber = number
	return nil
}

type memTelephones struct{ *memStore }

func (r memTelephones) Create(ctx context.Context, accountID int64, number string) (*domain.Telephone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	telephone := &domain.Telephone{ID: r.id(), AccountID: accountID, Number: number}
	r.telephones[telephone.ID] = telephone
	copied := *telephone
	return &copied, nil
}

func (r memTelephones) GetByID(ctx context.Context, id int64) (*domain.Telephone, error) {
	return r.find(func(t *domain.Telephone) bool { return t.ID == id }), nil
}

func (r memTelephones) GetByNumber(ctx context.Context, number string) (*domain.Telephone, error) {
	return r.find(func(t *domain.Telephone) bool { return t.Number == number }), nil
}

func (r memTelephones) GetByAccountID(ctx context.Context, accountID int64) (*domain.Telephone, error) {
	return r.find(func(t *domain.Telephone) bool { return t.AccountID == accountID }), nil
}

func (r memTelephones) ListByAccountIDs(ctx context.Context, accountIDs []int64) ([]domain.Telephone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[int64]bool, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = true
	}

	result := []domain.Telephone{}
	for _, t := range r.telephones {
		if wanted[t.AccountID] {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r memTelephones) find(match func(*domain.Telephone) bool) *domain.Telephone {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.telephones {
		if match(t) {
			copied := *t
			return &copied
		}
	}
	return nil
}

type memMessages struct{ *memStore }

func (r memMessages) Create(
	ctx context.Context,
	telephoneID int64,
	from, body string,
	receivedAt time.Time,
) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	message := &domain.Message{ID: r.id(), TelephoneID: telephoneID, From: from, Body: body, CreatedAt: receivedAt}
	r.messages[message.ID] = message
	copied := *message
	return &copied, nil
}

func (r memMessages) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	message, ok := r.messages[id]
	if !ok {
		return nil, nil
	}
	copied := *message
	return &copied, nil
}

func (r memMessages) ListByTelephoneIDs(ctx context.Context, telephoneIDs []int64) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[int64]bool, len(telephoneIDs))
	for _, id := range telephoneIDs {
		wanted[id] = true
	}

	result := []domain.Message{}
	for _, m := range r.messages {
		if wanted[m.TelephoneID] {
			result = append(result, *m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r memMessages) ListPage(ctx context.Context, telephoneID int64, page, pageSize int) ([]domain.Message, int64, error) {
	all, _ := r.ListByTelephoneIDs(ctx, []int64{telephoneID})

	start := (page - 1) * pageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r memMessages) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.messages[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.messages, id)
	return nil
}

type memShares struct{ *memStore }

func (r memShares) Create(ctx context.Context, fromID, toID int64) (*domain.ShareRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := [2]int64{fromID, toID}
	if _, ok := r.shares[key]; ok {
		return nil, domain.ErrAlreadyShared
	}

	request := &domain.ShareRequest{ID: r.id(), FromAccountID: fromID, ToAccountID: toID}
	r.shares[key] = request
	copied := *request
	return &copied, nil
}

func (r memShares) Get(ctx context.Context, fromID, toID int64) (*domain.ShareRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.shares[[2]int64{fromID, toID}]
	if !ok {
		return nil, nil
	}
	copied := *request
	return &copied, nil
}

func (r memShares) MarkCompleted(ctx context.Context, fromID, toID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.shares[[2]int64{fromID, toID}]
	if !ok || request.Completed {
		return false, nil
	}
	request.Completed = true
	return true, nil
}

func (r memShares) Delete(ctx context.Context, fromID, toID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := [2]int64{fromID, toID}
	if _, ok := r.shares[key]; !ok {
		return 0, nil
	}
	delete(r.shares, key)
	return 1, nil
}

func (r memShares) ListPendingIncoming(ctx context.Context, toID int64) ([]domain.ShareRequestWithProfile, error) {
	return r.withProfiles(func(sr *domain.ShareRequest) (bool, int64) {
		return !sr.Completed && sr.ToAccountID == toID, sr.FromAccountID
	}), nil
}

func (r memShares) ListPendingOutgoing(ctx context.Context, fromID int64) ([]domain.ShareRequestWithProfile, error) {
	return r.withProfiles(func(sr *domain.ShareRequest) (bool, int64) {
		return !sr.Completed && sr.FromAccountID == fromID, sr.ToAccountID
	}), nil
}

func (r memShares) ListSharingWith(ctx context.Context, toID int64) ([]domain.Profile, error) {
	return profilesOf(r.withProfiles(func(sr *domain.ShareRequest) (bool, int64) {
		return sr.Completed && sr.ToAccountID == toID, sr.FromAccountID
	})), nil
}

func (r memShares) ListSharedBy(ctx context.Context, fromID int64) ([]domain.Profile, error) {
	return profilesOf(r.withProfiles(func(sr *domain.ShareRequest) (bool, int64) {
		return sr.Completed && sr.FromAccountID == fromID, sr.ToAccountID
	})), nil
}

func (r memShares) withProfiles(
	match func(*domain.ShareRequest) (bool, int64),
) []domain.ShareRequestWithProfile {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []domain.ShareRequestWithProfile{}
	for _, sr := range r.shares {
		ok, counterpartID := match(sr)
		if !ok {
			continue
		}
		counterpart := r.accounts[counterpartID]
		result = append(result, domain.ShareRequestWithProfile{
			ShareRequest: *sr,
			Counterpart:  domain.Profile{ID: counterpart.ID, Email: counterpart.Email},
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func profilesOf(requests []domain.ShareRequestWithProfile) []domain.Profile {
	profiles := make([]domain.Profile, 0, len(requests))
	for _, r := range requests {
		profiles = append(profiles, r.Counterpart)
	}
	return profiles
}

type memCodes struct{ *memStore }

func (r memCodes) Replace(ctx context.Context, accountID int64, code, forwardingNumber string) (*domain.ValidationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.codes[accountID]
	if !ok {
		existing = &domain.ValidationCode{ID: r.id(), AccountID: accountID}
		r.codes[accountID] = existing
	}
	existing.Code = code
	existing.ForwardingNumber = forwardingNumber

	copied := *existing
	return &copied, nil
}

func (r memCodes) ListByForwardingNumber(ctx context.Context, number string) ([]domain.ValidationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []domain.ValidationCode{}
	for _, code := range r.codes {
		if code.ForwardingNumber == number {
			result = append(result, *code)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r memCodes) DeleteByAccountID(ctx context.Context, accountID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.codes[accountID]; !ok {
		return 0, nil
	}
	delete(r.codes, accountID)
	return 1, nil
}

func (r memCodes) Consume(ctx context.Context, code domain.ValidationCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	live, ok := r.codes[code.AccountID]
	if !ok || live.ID != code.ID || live.Code != code.Code || live.ForwardingNumber != code.ForwardingNumber {
		return domain.ErrNotFound
	}
	delete(r.codes, code.AccountID)

	number := code.ForwardingNumber
	r.accounts[code.AccountID].ForwardingNumber = &number
	return nil
}

//
// Collaborator fakes.
//

type sentSMS struct {
	from, to, body string
}

type fakeSMSSender struct {
	mu   sync.Mutex
	err  error
	sent []sentSMS
}

func (f *fakeSMSSender) SendMessage(ctx context.Context, from, to, body string) (*domain.SentSMS, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, sentSMS{from: from, to: to, body: body})
	return &domain.SentSMS{SID: "SM123", Status: "queued"}, nil
}

func (f *fakeSMSSender) sentMessages() []sentSMS {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentSMS(nil), f.sent...)
}

type published struct {
	topic   bus.Topic
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(ctx context.Context, topic bus.Topic, payload any) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{topic: topic, payload: payload})
	return 0
}

func (p *recordingPublisher) on(topic bus.Topic) []published {
	p.mu.Lock()
	defer p.mu.Unlock()

	var result []published
	for _, e := range p.events {
		if e.topic == topic {
			result = append(result, e)
		}
	}
	return result
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type fakeTelephoneCache struct {
	mu      sync.Mutex
	entries map[string]domain.Telephone
	hits    int
}

func newFakeTelephoneCache() *fakeTelephoneCache {
	return &fakeTelephoneCache{entries: make(map[string]domain.Telephone)}
}

func (c *fakeTelephoneCache) CacheTelephone(ctx context.Context, telephone *domain.Telephone) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[telephone.Number] = *telephone
	return nil
}

func (c *fakeTelephoneCache) GetCachedTelephone(ctx context.Context, number string) (*domain.Telephone, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	telephone, ok := c.entries[number]
	if !ok {
		return nil, nil
	}
	c.hits++
	return &telephone, nil
}

type fakeProvisioner struct {
	number string
	err    error
}

func (f *fakeProvisioner) BuyPhoneNumber(ctx context.Context) (string, error) {
	return f.number, f.err
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Issue(accountID int64) (string, error) {
	return "token-for-account", nil
}

//
// Wiring helpers.
//

type fixture struct {
	store      *memStore
	sms        *fakeSMSSender
	pub        *recordingPublisher
	shares     *ShareService
	validation *ValidationService
	router     *InboundRouter
	accounts   *AccountService
}

func newFixture() *fixture {
	store := newMemStore()
	sms := &fakeSMSSender{}
	pub := &recordingPublisher{}

	shares := NewShareService(memShares{store}, memAccounts{store}, memTelephones{store}, pub)
	validation := NewValidationService(memCodes{store}, memTelephones{store}, sms, pub)
	router := NewInboundRouter(
		memTelephones{store},
		memAccounts{store},
		memMessages{store},
		validation,
		sms,
		nil,
		pub,
	)
	accounts := NewAccountService(
		memAccounts{store},
		memTelephones{store},
		memMessages{store},
		&fakeProvisioner{number: "+15559990000"},
		fakeTokenIssuer{},
		shares,
		pub,
	)

	return &fixture{
		store:      store,
		sms:        sms,
		pub:        pub,
		shares:     shares,
		validation: validation,
		router:     router,
		accounts:   accounts,
	}
}

package testutil

import (
	"context"
	"sync"

	"github.com/blazern/recipe-calculator-server-sub000/internal/domain"
	"github.com/google/uuid"
)

// ==================== MockUserRepository ====================

type MockUserRepository struct {
	mu    sync.RWMutex
	users map[int64]*domain.AppUser
	next  int64

	CreateError error
	GetError    error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[int64]*domain.AppUser),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.AppUser) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	user.ID = m.next
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.AppUser, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *MockUserRepository) GetByExternalUID(ctx context.Context, externalUID uuid.UUID) (*domain.AppUser, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.ExternalUID == externalUID {
			cp := *user
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepository) UpdateClientToken(ctx context.Context, id int64, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.ClientToken = token
	return nil
}

// AddUser adds a user to the mock (for test setup)
func (m *MockUserRepository) AddUser(user *domain.AppUser) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == 0 {
		m.next++
		user.ID = m.next
	}
	m.users[user.ID] = user
}

// ==================== MockPairingRequestRepository ====================

type MockPairingRequestRepository struct {
	mu       sync.RWMutex
	requests map[domain.PairingRequestID]*domain.PairingRequest

	CreateError error
	GetError    error
	UpdateError error
}

func NewMockPairingRequestRepository() *MockPairingRequestRepository {
	return &MockPairingRequestRepository{
		requests: make(map[domain.PairingRequestID]*domain.PairingRequest),
	}
}

func (m *MockPairingRequestRepository) Create(ctx context.Context, req *domain.PairingRequest) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *req
	m.requests[req.ID] = &cp
	return nil
}

func (m *MockPairingRequestRepository) GetByID(ctx context.Context, id domain.PairingRequestID) (*domain.PairingRequest, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (m *MockPairingRequestRepository) Update(ctx context.Context, req *domain.PairingRequest) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[req.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *req
	m.requests[req.ID] = &cp
	return nil
}

func (m *MockPairingRequestRepository) ListExpiredPending(ctx context.Context, asOf int64, limit int) ([]*domain.PairingRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.PairingRequest
	for _, req := range m.requests {
		if req.State == domain.PairingRequestStatePending && req.ExpiresAt.Unix() <= asOf {
			result = append(result, req)
			if len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

func (m *MockPairingRequestRepository) ListPairedForUser(ctx context.Context, userID int64) ([]*domain.PairingRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.PairingRequest
	for _, req := range m.requests {
		if req.State == domain.PairingRequestStatePaired && (req.RequesterUserID == userID || req.TargetUserID == userID) {
			result = append(result, req)
		}
	}
	return result, nil
}

// AddRequest adds a pairing request to the mock (for test setup)
func (m *MockPairingRequestRepository) AddRequest(req *domain.PairingRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.ID] = req
}

// ==================== MockDirectMessageRepository ====================

type MockDirectMessageRepository struct {
	mu       sync.RWMutex
	messages map[domain.DirectMessageID]*domain.DirectMessage

	CreateError error
}

func NewMockDirectMessageRepository() *MockDirectMessageRepository {
	return &MockDirectMessageRepository{
		messages: make(map[domain.DirectMessageID]*domain.DirectMessage),
	}
}

func (m *MockDirectMessageRepository) Create(ctx context.Context, msg *domain.DirectMessage) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *msg
	m.messages[msg.ID] = &cp
	return nil
}

func (m *MockDirectMessageRepository) ListForRecipient(ctx context.Context, recipientUserID int64, limit int) ([]*domain.DirectMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.DirectMessage
	for _, msg := range m.messages {
		if msg.RecipientUserID == recipientUserID {
			result = append(result, msg)
			if len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

func (m *MockDirectMessageRepository) MarkDelivered(ctx context.Context, id domain.DirectMessageID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[id]
	if !ok {
		return domain.ErrNotFound
	}
	msg.MarkDelivered()
	return nil
}

// AddMessage adds a direct message to the mock (for test setup)
func (m *MockDirectMessageRepository) AddMessage(msg *domain.DirectMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[msg.ID] = msg
}

// ==================== MockPushSender ====================

// MockPushSender records pushes instead of delivering them, for assertions
// in service-layer tests.
type MockPushSender struct {
	mu    sync.Mutex
	Sent  []MockPush
	Error error
}

type MockPush struct {
	RecipientUserID int64
	Title           string
	Body            string
}

func NewMockPushSender() *MockPushSender {
	return &MockPushSender{}
}

func (m *MockPushSender) Send(ctx context.Context, recipientUserID int64, title, body string) error {
	if m.Error != nil {
		return m.Error
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, MockPush{RecipientUserID: recipientUserID, Title: title, Body: body})
	return nil
}

package testutil

import (
	"bytes"
	"context"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/dokugo-server/internal/model"
)

// UserStore is an in-memory model.UserStore enforcing unique email and username.
type UserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uuid.UUID]model.User)}
}

func (s *UserStore) find(match func(model.User) bool) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	return s.find(func(u model.User) bool { return u.Email == email })
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	return s.find(func(u model.User) bool { return u.Username == username })
}

func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	return s.find(func(u model.User) bool { return u.ID == id })
}

func (s *UserStore) conflicts(user model.User) bool {
	for _, u := range s.users {
		if u.ID != user.ID && (u.Email == user.Email || u.Username == user.Username) {
			return true
		}
	}
	return false
}

func (s *UserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok || s.conflicts(user) {
		return model.User{}, model.ErrConflict
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *UserStore) Update(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.users[user.ID]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	if s.conflicts(user) {
		return model.User{}, model.ErrConflict
	}
	user.PasswordHash = old.PasswordHash
	user.Photo = old.Photo
	user.UpdatedAt = time.Now()
	s.users[user.ID] = user
	return user, nil
}

func (s *UserStore) modify(id uuid.UUID, fn func(*model.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.ErrNotFound
	}
	fn(&u)
	s.users[id] = u
	return nil
}

func (s *UserStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	return s.modify(id, func(u *model.User) { u.PasswordHash = passwordHash })
}

func (s *UserStore) UpdatePhoto(_ context.Context, id uuid.UUID, photo string) error {
	return s.modify(id, func(u *model.User) { u.Photo = photo })
}

func (s *UserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// RevocationStore is an in-memory model.RevocationStore.
type RevocationStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{entries: make(map[string]time.Time)}
}

func (s *RevocationStore) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[token]; !ok {
		s.entries[token] = expiresAt
	}
	return nil
}

func (s *RevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[token]
	return ok, nil
}

func (s *RevocationStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for token, exp := range s.entries {
		if exp.Before(now) {
			delete(s.entries, token)
			n++
		}
	}
	return n, nil
}

// TransactionStore is an in-memory model.TransactionStore.
type TransactionStore struct {
	mu           sync.Mutex
	transactions map[uuid.UUID]model.Transaction
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{transactions: make(map[uuid.UUID]model.Transaction)}
}

func (s *TransactionStore) Create(_ context.Context, t model.Transaction) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[t.ID]; ok {
		return model.Transaction{}, model.ErrConflict
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	s.transactions[t.ID] = t
	return t, nil
}

func (s *TransactionStore) GetByID(_ context.Context, id uuid.UUID) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok {
		return model.Transaction{}, model.ErrNotFound
	}
	return t, nil
}

func (s *TransactionStore) GetByOwnerID(_ context.Context, ownerID uuid.UUID) ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Transaction, 0)
	for _, t := range s.transactions {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b model.Transaction) int { return b.Date.Compare(a.Date) })
	return out, nil
}

func (s *TransactionStore) Update(_ context.Context, t model.Transaction) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.transactions[t.ID]
	if !ok {
		return model.Transaction{}, model.ErrNotFound
	}
	t.CreatedAt = old.CreatedAt
	t.UpdatedAt = time.Now()
	s.transactions[t.ID] = t
	return t, nil
}

func (s *TransactionStore) SetReceiptKey(_ context.Context, id uuid.UUID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok {
		return model.ErrNotFound
	}
	t.ReceiptKey = key
	s.transactions[id] = t
	return nil
}

func (s *TransactionStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

// Storage is an in-memory model.Storage.
type Storage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewStorage() *Storage {
	return &Storage{objects: make(map[string][]byte)}
}

func (s *Storage) Upload(_ context.Context, key string, reader io.Reader, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *Storage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, model.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *Storage) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}

// Mailer records sent messages instead of delivering them.
type Mailer struct {
	mu   sync.Mutex
	sent []Mail
	Err  error
}

// Mail is one recorded message.
type Mail struct {
	To, Subject, Body string
}

func (m *Mailer) Send(_ context.Context, to, subject, htmlBody string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, Mail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

// Last returns the latest message sent to addr.
func (m *Mailer) Last(addr string) (Mail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].To == addr {
			return m.sent[i], true
		}
	}
	return Mail{}, false
}

var (
	_ model.UserStore        = (*UserStore)(nil)
	_ model.RevocationStore  = (*RevocationStore)(nil)
	_ model.TransactionStore = (*TransactionStore)(nil)
	_ model.Storage          = (*Storage)(nil)
	_ model.Mailer           = (*Mailer)(nil)
)

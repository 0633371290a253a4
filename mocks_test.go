package backend_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	backend "github.com/bendright/backend"
	"github.com/bendright/backend/store"
)

// testConfig implements backend.Config for tests
type testConfig struct {
	signingKey string
	lifetime   time.Duration
	issuer     string
	audience   []string
}

func newTestConfig() testConfig {
	return testConfig{
		signingKey: "test-signing-key",
		lifetime:   time.Hour,
		issuer:     "bendright-test",
	}
}

func (c testConfig) GetSigningKey() string           { return c.signingKey }
func (c testConfig) GetTokenLifetime() time.Duration { return c.lifetime }
func (c testConfig) GetIssuer() string               { return c.issuer }
func (c testConfig) GetAudience() []string           { return c.audience }
func (c testConfig) GetAuthScheme() string           { return "Bearer" }
func (c testConfig) GetContextKey() string           { return "actor" }

// testIdentity implements backend.Identity for tests
type testIdentity struct {
	id       string
	username string
	email    string
}

func (i testIdentity) ID() string       { return i.id }
func (i testIdentity) Username() string { return i.username }
func (i testIdentity) Email() string    { return i.email }
func (i testIdentity) Role() string     { return backend.RoleUser }

// MockIdentityProvider implements backend.IdentityProvider for testing
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (backend.Identity, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(backend.Identity), args.Error(1)
}

// fakeUsers is an in-memory store.Users used where a database would be noise
type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*store.User
}

var _ store.Users = (*fakeUsers)(nil)

func newFakeUsers() *fakeUsers {
	return &fakeUsers{nextID: 1, users: map[int64]*store.User{}}
}

func (f *fakeUsers) Create(ctx context.Context, record *store.User) (*store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record.ID = f.nextID
	f.nextID++
	f.users[record.ID] = record
	return record, nil
}

func (f *fakeUsers) ByID(ctx context.Context, id int64) (*store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) ByEmail(ctx context.Context, email string) (*store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

// fakeSessions is an in-memory store.Sessions
type fakeSessions struct {
	mu       sync.Mutex
	nextID   int64
	sessions []*store.Session
}

var _ store.Sessions = (*fakeSessions)(nil)

func newFakeSessions() *fakeSessions {
	return &fakeSessions{nextID: 1}
}

func (f *fakeSessions) Create(ctx context.Context, record *store.Session) (*store.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record.ID = f.nextID
	f.nextID++
	f.sessions = append(f.sessions, record)
	return record, nil
}

func (f *fakeSessions) ByUser(ctx context.Context, userID int64) ([]*store.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*store.Session
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

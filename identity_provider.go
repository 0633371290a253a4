package backend

import (
	"context"
	"errors"

	"github.com/bendright/backend/store"
)

// StoreIdentityProvider verifies credentials against the user store. Both an
// unknown email and a wrong password surface as ErrInvalidCredentials; the
// distinction never leaves this type.
type StoreIdentityProvider struct {
	users  store.Users
	logger Logger
}

var _ IdentityProvider = (*StoreIdentityProvider)(nil)

// NewStoreIdentityProvider returns an IdentityProvider backed by the given repository.
func NewStoreIdentityProvider(users store.Users) *StoreIdentityProvider {
	return &StoreIdentityProvider{
		users:  users,
		logger: defLogger{},
	}
}

// WithLogger sets the logger used for diagnostic output.
func (p *StoreIdentityProvider) WithLogger(logger Logger) *StoreIdentityProvider {
	p.logger = logger
	return p
}

// VerifyIdentity checks an email/password pair. It is a pure check: no login
// state is mutated and the stored hash never leaves the provider.
func (p *StoreIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := p.users.ByEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			p.logger.Debug("VerifyIdentity unknown identifier", "identifier", identifier)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			p.logger.Debug("VerifyIdentity password mismatch", "identifier", identifier)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return NewIdentityFromUser(user), nil
}

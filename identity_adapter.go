package backend

import (
	"strconv"

	"github.com/bendright/backend/store"
)

// UserIdentity adapts a store.User into the Identity interface for token generation.
type UserIdentity struct {
	user *store.User
}

// NewIdentityFromUser returns an Identity adapter for the provided user.
func NewIdentityFromUser(user *store.User) Identity {
	if user == nil {
		return nil
	}
	return UserIdentity{user: user}
}

// ID returns the user's ID as a string.
func (u UserIdentity) ID() string {
	if u.user == nil {
		return ""
	}
	return strconv.FormatInt(u.user.ID, 10)
}

// Username returns the user's display name.
func (u UserIdentity) Username() string {
	if u.user == nil {
		return ""
	}
	return u.user.Name
}

// Email returns the user's email address.
func (u UserIdentity) Email() string {
	if u.user == nil {
		return ""
	}
	return u.user.Email
}

// Role returns the single implicit role.
func (u UserIdentity) Role() string {
	return RoleUser
}

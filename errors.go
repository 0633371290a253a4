package backend

import "errors"

// ErrTokenMalformed is returned when a token cannot be parsed at all
var ErrTokenMalformed = errors.New("token is malformed")

// ErrTokenSignature is returned for tampered or foreign-key tokens
var ErrTokenSignature = errors.New("token signature is invalid")

// ErrTokenExpired is returned once expiresAt is in the past
var ErrTokenExpired = errors.New("token is expired")

// ErrSubjectNotFound means the token verified but its subject no longer exists
var ErrSubjectNotFound = errors.New("token subject not found")

// ErrInvalidCredentials covers both unknown email and wrong password so the
// response carries no enumeration signal
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrDuplicateEmail is the signup conflict for an already registered email
var ErrDuplicateEmail = errors.New("email already registered")

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found")

// ErrNoEmptyString rejects empty input where a value is required
var ErrNoEmptyString = errors.New("value must not be an empty string")

// ErrMismatchedHashAndPassword is returned when a password does not match its hash
var ErrMismatchedHashAndPassword = errors.New("mismatched password and hash")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	return errors.Is(err, ErrTokenExpired)
}

// IsMalformedError will check for unparsable tokens
func IsMalformedError(err error) bool {
	return errors.Is(err, ErrTokenMalformed)
}

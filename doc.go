// Package backend implements the bendright practice-log API: stateless JWT
// authentication plus the session endpoints that consume the authenticated
// identity.
//
// Token issuance and verification:
//   - TokenService signs HS256 tokens carrying the user id and display name
//     as claims. Validate returns typed failures (ErrTokenMalformed,
//     ErrTokenSignature, ErrTokenExpired) so callers handle each kind
//     explicitly instead of catching a generic auth error.
//
// Request authentication:
//   - The middleware/authware gate extracts the bearer token, validates it,
//     and resolves the subject against the user store before any handler
//     runs. A token whose subject no longer exists is rejected; a request
//     without a bearer credential passes through only on routes that opted
//     into optional auth. The resolved Actor travels as an explicit context
//     value, never as ambient global state.
//
// Credential checks:
//   - Login collapses "no such user" and "wrong password" into a single
//     ErrInvalidCredentials so responses carry no enumeration signal.
package backend

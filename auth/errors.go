package auth

import "errors"

// Every gate failure is terminal for the request. Callers match with errors.Is.
var (
	ErrUnauthenticated = errors.New("unauthenticated") // no credential, or no token in it
	ErrUnauthorized    = errors.New("unauthorized")    // bad signature or expired token
	ErrForbidden       = errors.New("forbidden")       // authenticated but not permitted
)

// policy.go - Authorization policies
//
// Both policies return nil to allow and ErrForbidden to deny. They never
// write a response themselves; the caller must stop on a non-nil result.

package auth

import (
	"context"
	"fmt"

	"bistro-backend/models"
)

// IdentityStore finds user records by email. A miss is reported as an error.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// SelfAccess allows the caller to act only on the resource identified by
// their own email. The comparison is exact: no case folding or trimming.
func SelfAccess(claims *Claims, email string) error {
	if claims == nil || claims.Email == "" || claims.Email != email {
		return ErrForbidden
	}
	return nil
}

// RequireAdmin allows the caller only if their user record has the admin
// role. Lookup failures deny.
func RequireAdmin(ctx context.Context, users IdentityStore, claims *Claims) error {
	if claims == nil || claims.Email == "" {
		return ErrForbidden
	}
	user, err := users.FindByEmail(ctx, claims.Email)
	if err != nil {
		return fmt.Errorf("%w: lookup %q: %w", ErrForbidden, claims.Email, err)
	}
	if !user.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

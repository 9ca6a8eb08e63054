package permissions

import "errors"

var (
	// ErrUnauthenticated means no acting identity was presented. Raised
	// before any policy runs.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden means the identity is known but the policy denies the
	// action.
	ErrForbidden = errors.New("permission denied")
)

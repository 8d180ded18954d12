package entity

import "errors"

var (
	// ErrNotFound is returned when no post with the requested content ID
	// exists in any creator's catalog.
	ErrNotFound = errors.New("post not found")

	// ErrIdentifierNotFound is returned when a resolved URL carries no
	// video/<id> path segment pair.
	ErrIdentifierNotFound = errors.New("content identifier not found in url")

	// ErrResolutionFailed is returned when the redirect-following request
	// for a shared link cannot complete.
	ErrResolutionFailed = errors.New("url resolution failed")

	// ErrInviteInvalid is returned for unknown or already-used invite codes.
	ErrInviteInvalid = errors.New("invalid or used invite code")

	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already registered")

	// ErrInvalidCredentials is returned on failed login.
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

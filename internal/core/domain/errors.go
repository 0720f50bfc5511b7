package domain

import "errors"

// Sentinel errors. The API layer maps these to stable HTTP status codes; the
// message strings are client-visible.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authorized, no token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrForbidden          = errors.New("access denied, super admin only")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists with that email or username")
	ErrSelfDemotion = errors.New("cannot change your own role")
	ErrSelfDeletion = errors.New("cannot delete your own account")
	ErrWeakPassword = errors.New("password must be at least 6 characters")

	ErrBookNotFound  = errors.New("book not found")
	ErrPostNotFound  = errors.New("post not found")
	ErrDuplicateISBN = errors.New("a book with that ISBN already exists")
)

package service

import "errors"

var (
	// ErrValidation is returned when a submission lacks required fields.
	ErrValidation = errors.New("missing fields")
	// ErrNotFound is returned when a local or upstream record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the actor is not the record's author.
	ErrForbidden = errors.New("not the author")
	// ErrNotLocal is returned when a local lookup is given an upstream id.
	ErrNotLocal = errors.New("use external route for upstream recipes")
	// ErrBadFilter is returned when a filter names neither category nor area.
	ErrBadFilter = errors.New("category or area required")
	// ErrUserExists is returned on duplicate registration.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned on failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUpstream is returned when a passthrough provider call fails.
	ErrUpstream = errors.New("upstream request failed")
	// ErrInvalidToken is returned for unparseable or expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

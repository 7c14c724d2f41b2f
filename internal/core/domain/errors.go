package domain

import "errors"

var (
	ErrParcelNotFound    = errors.New("parcel not found")
	ErrForbidden         = errors.New("access forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")

	ErrCourierNotFound   = errors.New("courier not found")
	ErrZoneNotFound      = errors.New("zone not found")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrClientNotFound    = errors.New("client not found")
	ErrProductNotFound   = errors.New("product not found")
)

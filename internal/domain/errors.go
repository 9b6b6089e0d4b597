package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrLoginRequired     = errors.New("login required")
	ErrForbidden         = errors.New("forbidden")
	ErrBusy              = errors.New("operation already in flight")
	ErrSuperseded        = errors.New("superseded by a newer request")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrUnknownView       = errors.New("unknown view")
	ErrNoCredential      = errors.New("ai credential is not configured")
	ErrRelayRejected     = errors.New("booking relay rejected submission")
	ErrMalformed         = errors.New("malformed ai response")
	ErrEmptyReply        = errors.New("ai returned no text")
)

package gate

import "errors"

// Denial reasons returned in Access.Reason and by Gate.Authorize.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoCompany    = errors.New("no company for account")
	ErrPending      = errors.New("company pending approval")
	ErrRejected     = errors.New("company rejected")
)

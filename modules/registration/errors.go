package registration

import "errors"

var (
	ErrUnknownField       = errors.New("unknown form field")
	ErrInvalidSignal      = errors.New("unsupported signal value")
	ErrSessionNotFound    = errors.New("registration session not found")
	ErrUnknownDriver      = errors.New("unknown storage driver")
	ErrStorageUnavailable = errors.New("registration storage unavailable")
	ErrFailedToSave       = errors.New("failed to save registration")
	ErrDuplicateRecord    = errors.New("registration already stored")
	ErrRecordNotFound     = errors.New("registration not found")
	ErrInvalidRecord      = errors.New("cannot build registration from form values")
	ErrFailedToNotify     = errors.New("failed to send registration confirmation")
	ErrInvalidCountries   = errors.New("invalid country catalogue")
)

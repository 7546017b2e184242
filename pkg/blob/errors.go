package blob

import "errors"

var (
	ErrInvalidConfig      = errors.New("invalid blob store config")
	ErrFailedToLoadConfig = errors.New("failed to load aws config")
	ErrInvalidKey         = errors.New("invalid object key")
	ErrNotFound           = errors.New("object not found")
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrServiceUnavailable = errors.New("storage service unavailable")
	ErrOperationTimeout   = errors.New("storage operation timed out")
	ErrOperationCanceled  = errors.New("storage operation canceled")
	ErrWriteFailed        = errors.New("failed to write object")
	ErrReadFailed         = errors.New("failed to read object")
)

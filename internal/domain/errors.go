package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyShared   = errors.New("already shared")
	ErrSelfShare       = errors.New("cannot share with yourself")
	ErrInvalidFormat   = errors.New("numbers should be 11 digits and all numeric")
	ErrExternalService = errors.New("external service failure")
)

package domain

import "errors"

var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	// Validation errors
	ErrInvalidUserID            = errors.New("invalid user id")
	ErrInvalidPairingRequestID  = errors.New("invalid pairing request id")
	ErrInvalidDirectMessageID   = errors.New("invalid direct message id")
	ErrInvalidStateTransition   = errors.New("invalid state transition")

	// Business logic errors
	ErrPairingCodeUnknown    = errors.New("pairing code does not belong to any user")
	ErrCannotPairWithSelf    = errors.New("a user cannot pair with themselves")
	ErrAlreadyPaired         = errors.New("users are already paired")
	ErrPairingRequestExpired = errors.New("pairing request has expired")
)

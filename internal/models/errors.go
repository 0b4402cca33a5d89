package models

import "errors"

// Authorization errors
var (
	ErrUnauthenticated  = errors.New("no verified principal")
	ErrPermissionDenied = errors.New("operator role required")
)

// Validation errors
var (
	ErrNoSelections      = errors.New("bet selections are required")
	ErrTooManySelections = errors.New("too many selections on ticket")
	ErrInvalidStake      = errors.New("stake outside allowed bounds")
	ErrMarketNotFound    = errors.New("market not offered for match")
	ErrInvalidOdd        = errors.New("selection or its odd is invalid")
	ErrOddsChanged       = errors.New("odds changed since slip was built")
)

// Precondition errors
var (
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrMatchNotBetable   = errors.New("match not open for betting")
	ErrMatchNotFinished  = errors.New("match not finished")
)

// Repository errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrMatchNotFound     = errors.New("match not found")
	ErrBetNotFound       = errors.New("bet not found")
	ErrBetAlreadySettled = errors.New("bet no longer pending")
)

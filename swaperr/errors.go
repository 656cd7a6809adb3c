// Package swaperr defines the closed set of engine errors.
// The numeric codes are a stable external contract; cross-system
// callers parse them, so they must not be renumbered.
package swaperr

import "fmt"

type Code uint32

const (
	// general errors
	CodeInvalidAmount     Code = 1
	CodeInvalidTimelock   Code = 2
	CodeInvalidSecretHash Code = 3
	CodeInvalidAddress    Code = 4

	// swap state errors
	CodeSwapNotFound         Code = 10
	CodeSwapAlreadyExists    Code = 11
	CodeSwapAlreadyCompleted Code = 12
	CodeSwapAlreadyRefunded  Code = 13
	CodeSwapExpired          Code = 14
	CodeInvalidSwapState     Code = 15

	// secret and proof errors
	CodeInvalidSecret      Code = 20
	CodeSecretAlreadyUsed  Code = 21
	CodeInvalidMerkleProof Code = 22

	// partial fill errors
	CodePartialFillsNotEnabled Code = 30
	CodeInvalidFillAmount      Code = 31
	CodeExceedsSwapAmount      Code = 32

	// authorization errors
	CodeUnauthorized       Code = 40
	CodeUnauthorizedRefund Code = 41
	CodeNotActiveResolver  Code = 42

	// timelock errors
	CodeTimelockNotExpired Code = 50
	CodeTimelockTooShort   Code = 51
	CodeTimelockTooLong    Code = 52

	// resolver errors
	CodeResolverNotFound          Code = 60
	CodeResolverAlreadyRegistered Code = 61
	CodeInsufficientStake         Code = 62
	CodeResolverNotActive         Code = 63

	// token errors
	CodeInsufficientBalance Code = 70
	CodeTransferFailed      Code = 71
	CodeTokenNotSupported   Code = 72

	// system errors
	CodeContractPaused      Code = 80
	CodeSystemError         Code = 81
	CodeStorageError        Code = 82
	CodeCalculationOverflow Code = 83
)

// Error is one member of the closed enumeration. The predeclared
// values below are the only instances; errors.Is works by identity.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (code=%d)", e.Message, e.Code)
}

// IsCritical reports whether the error should page rather than
// surface as a caller mistake.
func (e *Error) IsCritical() bool {
	switch e.Code {
	case CodeSystemError, CodeStorageError, CodeCalculationOverflow:
		return true
	}
	return false
}

// IsUserError reports whether the error is a plain input-validation
// rejection.
func (e *Error) IsUserError() bool {
	switch e.Code {
	case CodeInvalidAmount, CodeInvalidTimelock, CodeInvalidSecretHash,
		CodeInvalidAddress, CodeInvalidSecret, CodeInvalidFillAmount:
		return true
	}
	return false
}

var (
	ErrInvalidAmount     = &Error{CodeInvalidAmount, "Amount must be positive"}
	ErrInvalidTimelock   = &Error{CodeInvalidTimelock, "Timelock must be between min and max values"}
	ErrInvalidSecretHash = &Error{CodeInvalidSecretHash, "Secret hash cannot be empty"}
	ErrInvalidAddress    = &Error{CodeInvalidAddress, "Invalid address provided"}

	ErrSwapNotFound         = &Error{CodeSwapNotFound, "Swap does not exist"}
	ErrSwapAlreadyExists    = &Error{CodeSwapAlreadyExists, "Swap already exists"}
	ErrSwapAlreadyCompleted = &Error{CodeSwapAlreadyCompleted, "Swap already completed"}
	ErrSwapAlreadyRefunded  = &Error{CodeSwapAlreadyRefunded, "Swap already refunded"}
	ErrSwapExpired          = &Error{CodeSwapExpired, "Swap has expired"}
	ErrInvalidSwapState     = &Error{CodeInvalidSwapState, "Invalid swap state for this operation"}

	ErrInvalidSecret      = &Error{CodeInvalidSecret, "Invalid secret provided"}
	ErrSecretAlreadyUsed  = &Error{CodeSecretAlreadyUsed, "Secret has already been used"}
	ErrInvalidMerkleProof = &Error{CodeInvalidMerkleProof, "Invalid Merkle proof"}

	ErrPartialFillsNotEnabled = &Error{CodePartialFillsNotEnabled, "Partial fills not enabled for this swap"}
	ErrInvalidFillAmount      = &Error{CodeInvalidFillAmount, "Fill amount must be positive"}
	ErrExceedsSwapAmount      = &Error{CodeExceedsSwapAmount, "Fill amount exceeds remaining swap amount"}

	ErrUnauthorized       = &Error{CodeUnauthorized, "Unauthorized operation"}
	ErrUnauthorizedRefund = &Error{CodeUnauthorizedRefund, "Only initiator can refund"}
	ErrNotActiveResolver  = &Error{CodeNotActiveResolver, "Not an active resolver"}

	ErrTimelockNotExpired = &Error{CodeTimelockNotExpired, "Timelock has not expired"}
	ErrTimelockTooShort   = &Error{CodeTimelockTooShort, "Timelock too short"}
	ErrTimelockTooLong    = &Error{CodeTimelockTooLong, "Timelock too long"}

	ErrResolverNotFound          = &Error{CodeResolverNotFound, "Resolver not found"}
	ErrResolverAlreadyRegistered = &Error{CodeResolverAlreadyRegistered, "Resolver already registered"}
	ErrInsufficientStake         = &Error{CodeInsufficientStake, "Insufficient stake amount"}
	ErrResolverNotActive         = &Error{CodeResolverNotActive, "Resolver is not active"}

	ErrInsufficientBalance = &Error{CodeInsufficientBalance, "Insufficient token balance"}
	ErrTransferFailed      = &Error{CodeTransferFailed, "Token transfer failed"}
	ErrTokenNotSupported   = &Error{CodeTokenNotSupported, "Token not supported"}

	ErrContractPaused      = &Error{CodeContractPaused, "Contract is paused"}
	ErrSystemError         = &Error{CodeSystemError, "System error occurred"}
	ErrStorageError        = &Error{CodeStorageError, "Storage error occurred"}
	ErrCalculationOverflow = &Error{CodeCalculationOverflow, "Calculation overflow"}
)

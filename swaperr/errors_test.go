package swaperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	assert.True(t, ErrInvalidAmount.IsUserError())
	assert.True(t, ErrSystemError.IsCritical())
	assert.False(t, ErrSwapNotFound.IsCritical())
	assert.False(t, ErrSystemError.IsUserError())
	assert.True(t, ErrCalculationOverflow.IsCritical())
}

func TestErrorCodesStable(t *testing.T) {
	// the numeric codes are an external contract
	assert.Equal(t, Code(1), ErrInvalidAmount.Code)
	assert.Equal(t, Code(10), ErrSwapNotFound.Code)
	assert.Equal(t, Code(21), ErrSecretAlreadyUsed.Code)
	assert.Equal(t, Code(22), ErrInvalidMerkleProof.Code)
	assert.Equal(t, Code(41), ErrUnauthorizedRefund.Code)
	assert.Equal(t, Code(50), ErrTimelockNotExpired.Code)
	assert.Equal(t, Code(83), ErrCalculationOverflow.Code)
}

func TestErrorIs(t *testing.T) {
	var err error = ErrSwapExpired
	assert.True(t, errors.Is(err, ErrSwapExpired))
	assert.False(t, errors.Is(err, ErrSwapNotFound))

	var se *Error
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, CodeSwapExpired, se.Code)
}

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCode(t *testing.T) {
	err := NotFound("booking", nil)
	assert.True(t, IsCode(err, ErrNotFound))
	assert.False(t, IsCode(err, ErrConflict))

	// Codes survive wrapping.
	wrapped := fmt.Errorf("lookup failed: %w", err)
	assert.True(t, IsCode(wrapped, ErrNotFound))

	assert.False(t, IsCode(errors.New("plain"), ErrNotFound))
	assert.False(t, IsCode(nil, ErrNotFound))
}

func TestErrorMessage(t *testing.T) {
	err := Conflict("slot already booked", errors.New("duplicate key"))
	assert.Equal(t, "slot already booked: duplicate key", err.Error())

	bare := InvalidState("case is already completed", nil)
	assert.Equal(t, "case is already completed", bare.Error())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("no rows")
	err := NotFound("patient", cause)
	assert.True(t, errors.Is(err, cause))
}

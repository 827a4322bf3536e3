package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrConfiguration, "bad theme entry", "check your theme file")
	msg := err.Error()
	assert.Contains(t, msg, "✗ bad theme entry")
	assert.Contains(t, msg, "check your theme file")
}

func TestWrapDefaultsToInternal(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, "state inconsistent")
	assert.Equal(t, ErrInternal, err.Code)
	assert.Contains(t, err.Error(), "boom")
}

func TestIsCode(t *testing.T) {
	err := WrapWithCode(errors.New("enoent"), ErrEnvironment, "missing procfs", "")
	require.True(t, IsCode(err, ErrEnvironment))
	assert.False(t, IsCode(err, ErrTransient))
	assert.False(t, IsCode(nil, ErrTransient))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(cause, "wrapped")
	require.ErrorIs(t, err, cause)
}

package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		msg  string
	}{
		{"validation", Validation("full name must not be empty"), ErrValidation, "full name must not be empty"},
		{"conflict", Conflict("user %q already exists", "alice"), ErrConflict, `user "alice" already exists`},
		{"not found", NotFound("training %d does not exist", 7), ErrNotFound, "training 7 does not exist"},
		{"domain", Domain("date is in the past"), ErrDomain, "date is in the past"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.Equal(t, tt.msg, tt.err.Error())

			wrapped := fmt.Errorf("create: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.kind)
			assert.Equal(t, tt.msg, Message(wrapped))
		})
	}
}

func TestKindsDoNotOverlap(t *testing.T) {
	err := Conflict("dup")
	assert.False(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrDomain))
}

func TestMessage_PlainError(t *testing.T) {
	assert.Equal(t, "boom", Message(errors.New("boom")))
}

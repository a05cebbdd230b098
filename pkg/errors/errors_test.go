package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("submit: %w", NewValidationError("location", "title"))

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"location", "title"}, verr.Fields)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "location, title")
}

func TestInsufficientCreditsError(t *testing.T) {
	err := &InsufficientCreditsError{Required: 16, Available: 10}

	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assert.Equal(t, int64(6), err.Shortage())
}

func TestMessage(t *testing.T) {
	t.Run("known sentinel", func(t *testing.T) {
		err := fmt.Errorf("republish: %w", ErrClosingDateNotInFuture)
		assert.Equal(t, "De sluitingsdatum moet in de toekomst liggen.", Message(err))
	})

	t.Run("typed error", func(t *testing.T) {
		assert.Equal(t, "Onvoldoende credits.", Message(&InsufficientCreditsError{Required: 2}))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Empty(t, Message(nil))
	})
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"timeout", context.DeadlineExceeded, "De server reageerde niet op tijd. Probeer het opnieuw."},
		{"rate limit", errors.New("upstream: Rate limit exceeded"), "Te veel verzoeken. Probeer het later opnieuw."},
		{"dns", errors.New("dial tcp: lookup api.example.com: no such host"), "Een externe dienst is tijdelijk onbereikbaar."},
		{"other", errors.New("boom"), genericMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.err))
		})
	}
}

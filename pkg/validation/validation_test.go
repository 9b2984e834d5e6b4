package validation_test

import (
	"testing"

	"easein-studio-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name   string `validate:"required,not_blank"`
	Email  string `validate:"required,email"`
	Budget string `validate:"max=5"`
}

func TestFormatValidationErrors(t *testing.T) {
	v := validation.Validator()

	t.Run("Blank name and bad email keep field order", func(t *testing.T) {
		err := v.Struct(form{Name: "   ", Email: "not-an-email"})
		require.Error(t, err)

		msgs := validation.FormatValidationErrors(err)
		assert.Equal(t, []string{"Name is required.", "A valid email is required."}, msgs)
	})

	t.Run("Unknown field falls back to label", func(t *testing.T) {
		err := v.Struct(form{Name: "Ana", Email: "ana@example.com", Budget: "1234567"})
		require.Error(t, err)

		assert.Equal(t, []string{"Budget must be at most 5 characters."}, validation.FormatValidationErrors(err))
	})

	t.Run("Valid struct", func(t *testing.T) {
		assert.NoError(t, v.Struct(form{Name: "Ana", Email: "ana@example.com"}))
	})
}

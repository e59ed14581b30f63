package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTerm(t *testing.T) {
	valid := func() *Term {
		return &Term{
			Key:             "décret",
			DisplayVariants: []string{"Décret"},
			Frequency:       1.0,
			LastUsedAt:      time.Now(),
		}
	}

	t.Run("valid term", func(t *testing.T) {
		require.NoError(t, ValidateTerm(valid()))
	})

	t.Run("nil term", func(t *testing.T) {
		err := ValidateTerm(nil)
		assert.ErrorIs(t, err, ErrInvalidTerm)
	})

	t.Run("short key", func(t *testing.T) {
		term := valid()
		term.Key = "d"
		err := ValidateTerm(term)
		assert.ErrorIs(t, err, ErrInvalidTerm)
		assert.ErrorIs(t, err, ErrKeyTooShort)
	})

	t.Run("two rune accented key is long enough", func(t *testing.T) {
		term := valid()
		term.Key = "ét"
		assert.NoError(t, ValidateTerm(term))
	})

	t.Run("no variants", func(t *testing.T) {
		term := valid()
		term.DisplayVariants = nil
		assert.ErrorIs(t, ValidateTerm(term), ErrNoVariants)
	})

	t.Run("zero frequency", func(t *testing.T) {
		term := valid()
		term.Frequency = 0
		assert.ErrorIs(t, ValidateTerm(term), ErrNonPositiveFrequency)
	})
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(0.5))
	assert.ErrorIs(t, ValidateAmount(0), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(-1), ErrInvalidAmount)
}

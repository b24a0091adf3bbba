package validator_test

import (
	"errors"
	"fmt"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/pos-backoffice/pkg/validator"
)

type color string

func (c color) Validate() error {
	if c != "red" && c != "blue" {
		return errors.New("invalid color")
	}
	return nil
}

type sample struct {
	Name  string          `validate:"required,alphanumspace"`
	Price decimal.Decimal `validate:"gte=0"`
	Color color           `validate:"enum"`
	Qty   int             `validate:"gt=0"`
}

func TestDefaultValidator(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	t.Run("Should accept a valid struct", func(t *testing.T) {
		err := v.Validate(sample{Name: "Coffee 1", Price: decimal.RequireFromString("3.50"), Color: "red", Qty: 1})
		assert.NoError(t, err)
	})

	t.Run("Should reject negative decimal", func(t *testing.T) {
		err := v.Validate(sample{Name: "Coffee", Price: decimal.RequireFromString("-0.01"), Color: "red", Qty: 1})
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(fmt.Errorf("wrapped: %w", err)))

		var vErrs govalidator.ValidationErrors
		require.ErrorAs(t, err, &vErrs)
		require.Len(t, vErrs, 1)
		assert.Equal(t, "Price", vErrs[0].Field())
		assert.Equal(t, "must be greater than or equal to 0", validator.ValidationErrorMessage(vErrs[0]))
	})

	t.Run("Should reject invalid enum and characters", func(t *testing.T) {
		err := v.Validate(sample{Name: "Coffee!", Color: "green", Qty: 0})

		var vErrs govalidator.ValidationErrors
		require.ErrorAs(t, err, &vErrs)
		assert.Len(t, vErrs, 3)
	})
}

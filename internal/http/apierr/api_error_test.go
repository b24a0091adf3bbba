package apierr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/apperr"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/http/apierr"
	"github.com/tuanvumaihuynh/pos-backoffice/pkg/validator"
)

func TestNew(t *testing.T) {
	t.Run("Should map wrapped zerrors to their status", func(t *testing.T) {
		err := fmt.Errorf("db with tx: %w", apperr.InsufficientStockErr.WithMsgf("insufficient stock for product 3"))

		res := apierr.New(err)

		assert.Equal(t, http.StatusConflict, res.StatusCode)
		assert.Equal(t, apperr.InsufficientStockCode, res.Code)
		assert.Equal(t, "insufficient stock for product 3", res.Message)
	})

	t.Run("Should map validator errors to field details", func(t *testing.T) {
		v, err := validator.NewDefaultValidator()
		require.NoError(t, err)

		type body struct {
			Email string `json:"email" validate:"required,email"`
		}
		res := apierr.New(v.Validate(body{Email: "nope"}))

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		require.NotNil(t, res.Details)
		assert.Equal(t, "Email", (*res.Details)[0].Field)
	})

	t.Run("Should map parameter errors to bad request", func(t *testing.T) {
		res := apierr.New(&apierr.ParamError{ParamName: "orderID", Err: errors.New("not a number")})

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Contains(t, res.Message, "orderID")
	})

	t.Run("Should hide unknown errors", func(t *testing.T) {
		res := apierr.New(errors.New("connection reset"))

		assert.Equal(t, apierr.InternalServerErr, res)
	})
}

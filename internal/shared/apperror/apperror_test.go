package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and code", func(t *testing.T) {
		err := New(CodeConflict, "Already checked in today", http.StatusConflict)

		got := ToHTTP(fmt.Errorf("check in: %w", err))

		assert.Equal(t, http.StatusConflict, got.Status)
		assert.Equal(t, CodeConflict, got.Code)
		assert.Equal(t, "Already checked in today", got.Message)
	})

	t.Run("unknown error is hidden", func(t *testing.T) {
		got := ToHTTP(errors.New("pq: connection reset"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, CodeInternalError, got.Code)
		assert.NotContains(t, got.Message, "pq")
	})
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, CodeInternalError, "x", 500))

	cause := errors.New("smtp: 421")
	err := Degraded("mail", cause)
	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, CodeUpstreamDegraded))
	assert.Equal(t, "mail unavailable: smtp: 421", err.Error())
}

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func TestMapValidationError(t *testing.T) {
	v := validator.New()

	err := MapValidationError(v.Struct(loginPayload{}))
	assert.Equal(t, "Username is required", err.Error())

	err = MapValidationError(v.Struct(loginPayload{Username: "a", Email: "nope"}))
	assert.Equal(t, "Email is invalid", err.Error())

	err = MapValidationError(errors.New("EOF"))
	assert.Equal(t, "Invalid input", err.Error())
}

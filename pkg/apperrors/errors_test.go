package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_WrapAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := InternalError(cause)

	assert.True(t, Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")

	var appErr *AppError
	require.True(t, As(err, &appErr))
	assert.Equal(t, CodeInternalError, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
}

func TestAppError_SentinelIdentity(t *testing.T) {
	// errors.Is по указателю на сентинел
	assert.True(t, Is(ErrOrderAlreadySettled, ErrOrderAlreadySettled))
	assert.False(t, Is(ErrOrderAlreadySettled, ErrInvalidCredentials))

	// завернутая доменная ошибка сохраняет идентичность
	wrapped := fmt.Errorf("refresh: %w", ErrInvalidToken)
	assert.True(t, Is(wrapped, ErrInvalidToken))
}

func TestAppError_MarshalHidesInternals(t *testing.T) {
	err := Wrap(errors.New("pq: duplicate key"), CodeEmailAlreadyExists, "user", "Email already exists", http.StatusConflict)

	raw, jsonErr := json.Marshal(err)
	require.NoError(t, jsonErr)

	assert.Contains(t, string(raw), "EMAIL_ALREADY_EXISTS")
	// Внутренняя причина не попадает в ответ клиенту
	assert.NotContains(t, string(raw), "duplicate key")
}

func TestHandleError_WritesStatusAndBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleError(c, NewForbiddenError("order", "not your order"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
	assert.Contains(t, w.Body.String(), "not your order")
}

func TestValidationError_CarriesDetails(t *testing.T) {
	err := ValidationError(map[string]string{"amount": "must be greater than 0"})

	assert.Equal(t, http.StatusBadRequest, err.HTTPCode)

	raw, jsonErr := json.Marshal(err)
	require.NoError(t, jsonErr)
	assert.Contains(t, string(raw), "must be greater than 0")
}

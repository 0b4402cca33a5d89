package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/betstack/bet-engine/internal/models"
	"github.com/betstack/bet-engine/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *BetHandler {
	gin.SetMode(gin.TestMode)
	return NewBetHandler(nil, zerolog.Nop())
}

func recordError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/bets", nil)

	newTestHandler().writeError(c, err)
	return w
}

func TestWriteError_ValidationErrorsMapToBadRequest(t *testing.T) {
	// A request with a nil selections slice fails struct validation inside the
	// service; the wrapped validator error must surface as a 400, not a 500.
	err := validator.New().Struct(&service.PlaceBetRequest{})
	require.Error(t, err)
	wrapped := fmt.Errorf("validation failed: %w", err)

	w := recordError(t, wrapped)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWriteError_SentinelMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unauthenticated", models.ErrUnauthenticated, http.StatusUnauthorized},
		{"permission denied", models.ErrPermissionDenied, http.StatusForbidden},
		{"bet not found", models.ErrBetNotFound, http.StatusNotFound},
		{"match not found", fmt.Errorf("%w: m-1", models.ErrMatchNotFound), http.StatusNotFound},
		{"invalid stake", fmt.Errorf("%w: 100", models.ErrInvalidStake), http.StatusBadRequest},
		{"insufficient funds", models.ErrInsufficientFunds, http.StatusConflict},
		{"odds changed", fmt.Errorf("%w: m-1", models.ErrOddsChanged), http.StatusConflict},
		{"match not finished", models.ErrMatchNotFinished, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := recordError(t, tc.err)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestWriteError_UnexpectedErrorIsOpaque(t *testing.T) {
	w := recordError(t, errors.New("connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

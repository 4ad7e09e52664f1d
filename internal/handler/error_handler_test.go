package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-stockledger/pkg/apperror"
)

func newErrorApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zerolog.Nop())})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return err
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandlerStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    *apperror.Error
		status int
	}{
		{"validation", apperror.New(apperror.CodeValidation, "bad input"), http.StatusBadRequest},
		{"stock", apperror.New(apperror.CodeStock, "insufficient stock"), http.StatusBadRequest},
		{"conflict", apperror.New(apperror.CodeConflict, "already exists"), http.StatusBadRequest},
		{"not found", apperror.New(apperror.CodeNotFound, "missing"), http.StatusNotFound},
		{"auth", apperror.New(apperror.CodeAuth, "no token"), http.StatusUnauthorized},
		{"internal", apperror.New(apperror.CodeInternal, "boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doRequest(t, newErrorApp(tc.err))
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.err.Message, body["message"])
		})
	}
}

func TestErrorHandlerValidationDetails(t *testing.T) {
	err := apperror.Validation(
		apperror.FieldError{Field: "name", Message: "name is required"},
		apperror.FieldError{Field: "price", Message: "price must be greater than 0"},
	)

	status, body := doRequest(t, newErrorApp(err))
	assert.Equal(t, http.StatusBadRequest, status)

	details, ok := body["details"].([]any)
	require.True(t, ok)
	assert.Len(t, details, 2)
}

func TestErrorHandlerHidesInternals(t *testing.T) {
	status, body := doRequest(t, newErrorApp(errors.New("pq: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal Server Error", body["message"])
	assert.NotContains(t, body["message"], "connection refused")
}

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dormlife/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=student staff admin"`
}

func bindAndFormat(t *testing.T, body string) dto.Response {
	t.Helper()

	gin.SetMode(gin.TestMode)
	SetupValidator()

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = req

	var payload registerPayload
	err := c.ShouldBindJSON(&payload)
	require.Error(t, err)
	return FormatBindingError(err)
}

func detailFields(resp dto.Response) map[string]string {
	fields := make(map[string]string)
	details, _ := resp.Error.Details.([]dto.ValidationDetail)
	for _, d := range details {
		fields[d.Field] = d.Message
	}
	return fields
}

func TestFormatBindingError(t *testing.T) {
	t.Run("reports fields by their json names", func(t *testing.T) {
		resp := bindAndFormat(t, `{"email": "not-an-email", "password": "short"}`)

		require.NotNil(t, resp.Error)
		assert.False(t, resp.Success)
		assert.Equal(t, dto.CodeValidationError, resp.Error.Code)

		fields := detailFields(resp)
		assert.Equal(t, "Invalid email format", fields["email"])
		assert.Equal(t, "Must be at least 8 characters", fields["password"])
	})

	t.Run("missing required fields", func(t *testing.T) {
		resp := bindAndFormat(t, `{}`)

		fields := detailFields(resp)
		assert.Equal(t, "This field is required", fields["email"])
		assert.Equal(t, "This field is required", fields["password"])
	})

	t.Run("oneof lists the allowed values", func(t *testing.T) {
		resp := bindAndFormat(t, `{"email": "a@b.edu", "password": "longenough", "role": "janitor"}`)

		fields := detailFields(resp)
		assert.Equal(t, "Must be one of: student staff admin", fields["role"])
	})

	t.Run("malformed json keeps the raw message", func(t *testing.T) {
		resp := bindAndFormat(t, `{"email": `)

		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.CodeValidationError, resp.Error.Code)
		assert.Nil(t, resp.Error.Details)
	})

	t.Run("non-validator errors pass through", func(t *testing.T) {
		resp := FormatBindingError(errors.New("unexpected EOF"))

		require.NotNil(t, resp.Error)
		assert.Equal(t, "unexpected EOF", resp.Error.Message)
	})
}

package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB(t *testing.T) {
	mockDB := NewMockDB(t)
	defer mockDB.Close()

	assert.NotNil(t, mockDB.DB)
	assert.NotNil(t, mockDB.Mock)
	assert.NotNil(t, mockDB.SqlDB)

	// No expectations set, should pass
	mockDB.ExpectationsWereMet(t)
}

func TestNewTestContext(t *testing.T) {
	tc := NewTestContext(t)

	assert.NotNil(t, tc.Context)
	assert.NotNil(t, tc.Recorder)
	assert.NotNil(t, tc.Engine)
	assert.Equal(t, http.MethodGet, tc.Context.Request.Method)
}

func TestSetBearerToken(t *testing.T) {
	tc := NewTestContext(t)
	tc.SetBearerToken("abc")

	assert.Equal(t, "Bearer abc", tc.Context.Request.Header.Get("Authorization"))
}

func TestNewTestUUID(t *testing.T) {
	first := NewTestUUID("seed")
	second := NewTestUUID("seed")
	other := NewTestUUID("other")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.NotEqual(t, TestSchoolID(), TestUserID())
}

func TestRunHTTPTestCases(t *testing.T) {
	handler := func(c *gin.Context) {
		var payload struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": "VALIDATION_ERROR", "message": err.Error()}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"name": payload.Name}})
	}

	RunHTTPTestCases(t, handler, []HTTPTestCase{
		{
			Name:           "valid payload",
			Method:         http.MethodPost,
			Path:           "/echo",
			Body:           map[string]string{"name": "maple"},
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   map[string]interface{}{"success": true},
			Validate: func(t *testing.T, tc *TestContext) {
				AssertSuccessResponse(t, tc)
			},
		},
		{
			Name:           "malformed payload",
			Method:         http.MethodPost,
			Path:           "/echo",
			ExpectedStatus: http.StatusBadRequest,
			Validate: func(t *testing.T, tc *TestContext) {
				AssertErrorResponse(t, tc, "VALIDATION_ERROR")
			},
		},
	})
}

func TestAssertEventually(t *testing.T) {
	start := time.Now()
	calls := 0

	AssertEventually(t, func() bool {
		calls++
		return calls >= 3
	}, time.Second, time.Millisecond)

	require.GreaterOrEqual(t, calls, 3)
	assert.Less(t, time.Since(start), time.Second)
}

package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appValidator "github.com/larder-io/larder/pkg/validator"
)

func testContext(t *testing.T, path string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", path, nil)
	return c
}

func TestParseIntQuery(t *testing.T) {
	c := testContext(t, "/api/items?skip=5&limit=abc&empty=")

	require.Equal(t, 5, parseIntQuery(c, "skip", 0))
	require.Equal(t, 20, parseIntQuery(c, "limit", 20))
	require.Equal(t, 7, parseIntQuery(c, "empty", 7))
	require.Equal(t, 7, parseIntQuery(c, "missing", 7))
}

func TestParseIDParam(t *testing.T) {
	c := testContext(t, "/api/items/42")
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	id, ok := parseIDParam(c, "id")
	require.True(t, ok)
	require.Equal(t, uint(42), id)

	for _, raw := range []string{"abc", "-1", "1.5", "", "99999999999999999999"} {
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, ok := parseIDParam(c, "id")
		require.False(t, ok, raw)
	}
}

func TestFormatValidationError(t *testing.T) {
	type payload struct {
		Name    string `json:"name" validate:"required,max=5"`
		Content string `json:"content" validate:"required"`
	}

	err := appValidator.ValidateStruct(&payload{})
	require.Error(t, err)

	msg := formatValidationError(err)
	require.Contains(t, msg, "name is required")
	require.Contains(t, msg, "content is required")

	err = appValidator.ValidateStruct(&payload{Name: "too long", Content: "x"})
	require.Error(t, err)
	require.Contains(t, formatValidationError(err), "name must be at most 5 characters")

	require.Equal(t, "invalid request payload", formatValidationError(nil))
}

package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)

	return c
}

func TestParseCSVQuery(t *testing.T) {
	t.Run("SplitsAndTrims", func(t *testing.T) {
		c := newQueryContext(t, "areas=10,20%20,%2030")
		assert.Equal(t, []string{"10", "20", "30"}, ParseCSVQuery(c, "areas"))
	})

	t.Run("AbsentReturnsNil", func(t *testing.T) {
		c := newQueryContext(t, "")
		assert.Nil(t, ParseCSVQuery(c, "areas"))
	})

	t.Run("OnlySeparatorsReturnsNil", func(t *testing.T) {
		c := newQueryContext(t, "areas=,%20,")
		assert.Nil(t, ParseCSVQuery(c, "areas"))
	})
}

func TestParseTimeQuery(t *testing.T) {
	t.Run("ParsesRFC3339", func(t *testing.T) {
		c := newQueryContext(t, "since=2026-08-30T10%3A00%3A00Z")
		got, err := ParseTimeQuery(c, "since")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC), got.UTC())
	})

	t.Run("AbsentReturnsNil", func(t *testing.T) {
		c := newQueryContext(t, "")
		got, err := ParseTimeQuery(c, "since")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("InvalidFormatErrors", func(t *testing.T) {
		c := newQueryContext(t, "since=yesterday")
		_, err := ParseTimeQuery(c, "since")
		assert.Error(t, err)
	})
}

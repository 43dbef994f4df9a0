package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	return w
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(c *gin.Context)
		status int
		code   int
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "x") }, http.StatusBadRequest, -1},
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "x") }, http.StatusUnauthorized, -1001},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "x") }, http.StatusForbidden, -1002},
		{"not found", func(c *gin.Context) { NotFound(c, "x") }, http.StatusNotFound, -1003},
		{"conflict", func(c *gin.Context) { Conflict(c, "x") }, http.StatusConflict, -1004},
		{"internal", func(c *gin.Context) { InternalError(c, "x") }, http.StatusInternalServerError, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := record(tt.fn)
			assert.Equal(t, tt.status, w.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, "x", resp.Message)
			assert.Nil(t, resp.Data)
		})
	}
}

func TestSuccessPaginatedRoundsPagesUp(t *testing.T) {
	w := record(func(c *gin.Context) { SuccessPaginated(c, []int{1, 2}, 21, 3, 10) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":0,"message":"success","data":{"items":[1,2],"total":21,"page":3,"page_size":10,"total_pages":3}}`, w.Body.String())
}

func TestErrorAbortsChain(t *testing.T) {
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	reached := false
	r.GET("/", func(c *gin.Context) { Forbidden(c, "no") }, func(c *gin.Context) { reached = true })

	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, reached)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 10))
	assert.Equal(t, 1, totalPages(10, 10))
	assert.Equal(t, 2, totalPages(11, 10))
	assert.Equal(t, 0, totalPages(5, 0))
}

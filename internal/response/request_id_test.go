package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func requestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRequestIDEchoesWellFormedHeader(t *testing.T) {
	r := requestIDRouter()
	id := uuid.New().String()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", id)
	r.ServeHTTP(w, req)

	require.Equal(t, id, w.Header().Get("X-Request-ID"))
}

func TestRequestIDReplacesInvalidHeader(t *testing.T) {
	r := requestIDRouter()

	for _, bad := range []string{"", "not-a-uuid", "<script>alert(1)</script>"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if bad != "" {
			req.Header.Set("X-Request-ID", bad)
		}
		r.ServeHTTP(w, req)

		got := w.Header().Get("X-Request-ID")
		require.NotEqual(t, bad, got)
		_, err := uuid.Parse(got)
		require.NoError(t, err, "response must always carry a valid UUID")
	}
}

//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tablebook/internal/handler/httperr"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("renders the public response left on the context", func(t *testing.T) {
		engine := gin.New()
		engine.Use(middleware.ErrorHandler())
		engine.GET("/boom", func(c *gin.Context) {
			resp := httperr.Response{Status: http.StatusConflict}
			resp.Error.Message = "already taken"
			_ = c.Error(gin.Error{
				Err:  http.ErrBodyNotAllowed,
				Type: gin.ErrorTypePublic,
				Meta: resp,
			})
			c.Abort()
		})

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		require.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already taken")
	})

	t.Run("written responses pass through untouched", func(t *testing.T) {
		engine := gin.New()
		engine.Use(middleware.ErrorHandler())
		engine.GET("/ok", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ok")
	})
}

func TestCustomRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(middleware.CustomRecovery())
	engine.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("assigns a request id readable by handlers", func(t *testing.T) {
		cfg := config.NewTestConfig()

		engine := gin.New()
		engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))

		var seen string
		engine.GET("/ping", func(c *gin.Context) {
			seen = middleware.GetRequestID(c)
			c.Status(http.StatusNoContent)
		})

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		require.Equal(t, http.StatusNoContent, w.Code)
		assert.NotEmpty(t, seen)
	})

	t.Run("request id is absent outside the middleware", func(t *testing.T) {
		engine := gin.New()

		var seen string
		engine.GET("/ping", func(c *gin.Context) {
			seen = middleware.GetRequestID(c)
			c.Status(http.StatusNoContent)
		})

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Empty(t, seen)
	})
}

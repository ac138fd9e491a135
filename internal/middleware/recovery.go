package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Recovery returns a gin middleware that recovers from panics, logs the error
// with stack trace using slog, and returns a JSON error response:
//
//	{"code": 500, "message": "internal server error", "data": null}
//
// This middleware replaces gin.Recovery() so panics show up in the
// application's structured logs.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()

				logger.ErrorContext(c.Request.Context(), "panic recovered",
					slog.Any("panic", err),
					slog.String("method", c.Request.Method),
					slog.String("path", c.Request.URL.Path),
					slog.String("stack", string(stack)),
				)

				c.Abort()
				c.JSON(500, gin.H{
					"code":    500,
					"message": "internal server error",
					"data":    nil,
				})
			}
		}()
		c.Next()
	}
}

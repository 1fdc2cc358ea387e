package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the error body shared by every endpoint
type ErrorResponse struct {
	Message string `json:"message"`
}

// Recovery turns a panic in a handler into a 500 with a JSON message body
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				panicRecoveries.Inc()
				log.Error().
					Interface("error", err).
					Str("request_id", c.GetString(RequestIDKey)).
					Str("stack", string(debug.Stack())).
					Msg("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
			}
		}()

		c.Next()
	}
}

// NoRoute answers unknown paths with the JSON message body
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Message: "Not Found"})
}

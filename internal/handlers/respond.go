package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobly/internal/apperrors"
)

func errorBody(status int, message string) gin.H {
	return gin.H{"error": gin.H{"message": message, "status": status}}
}

// respondError writes err with the status apperrors assigns to it. Internal
// errors are logged and their details kept out of the response.
func respondError(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.Printf("❌ %s %s [%s]: %v", c.Request.Method, c.Request.URL.Path, c.GetString(requestIDKey), err)
		message = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, errorBody(status, message))
}

// badRequest reports a body that failed JSON binding.
func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody(http.StatusBadRequest, "Invalid request body: "+err.Error()))
}

// requestContext bounds a handler's storage calls by timeout.
func requestContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

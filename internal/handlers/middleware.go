package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/justsurfingit/jobly/internal/apperrors"
	"github.com/justsurfingit/jobly/internal/auth"
)

const (
	claimsKey       = "claims"
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"
)

// RequestID echoes the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Authenticate stores the claims of a valid bearer token on the context.
// A missing or invalid token is not an error here.
func Authenticate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if ok && token != "" {
			if claims, err := auth.ParseToken(secret, strings.TrimSpace(token)); err == nil {
				c.Set(claimsKey, claims)
			}
		}
		c.Next()
	}
}

func currentClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func unauthorized(c *gin.Context) {
	respondError(c, &apperrors.UnauthorizedError{})
}

// EnsureLoggedIn rejects requests without a valid token.
func EnsureLoggedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentClaims(c); !ok {
			unauthorized(c)
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests whose token is not an admin's.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok || !claims.IsAdmin {
			unauthorized(c)
			return
		}
		c.Next()
	}
}

// EnsureRightUser lets through admins and the user named by the :username
// path parameter.
func EnsureRightUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok || !(claims.IsAdmin || claims.Username == c.Param("username")) {
			unauthorized(c)
			return
		}
		c.Next()
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/coachify/internal/models"
	"github.com/yoockh/coachify/internal/utils"
)

const (
	CtxUser   = "user"
	CtxUserID = "user_id"
)

type apiError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*models.User, error)
}

// Auth rejects requests without a valid bearer token and stores the caller
// under CtxUser. WebSocket routes pass allowQuery so browsers can send
// ?token= instead of a header.
func Auth(a Authenticator, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c, allowQuery)
		if raw == "" {
			abortUnauthorized(c)
			return
		}
		u, err := a.Authenticate(c.Request.Context(), raw)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		setUser(c, u)
		c.Next()
	}
}

// OptionalAuth loads the caller when a token is present. A missing token is
// allowed; a bad one is still rejected.
func OptionalAuth(a Authenticator, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c, allowQuery)
		if raw == "" {
			c.Next()
			return
		}
		u, err := a.Authenticate(c.Request.Context(), raw)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		setUser(c, u)
		c.Next()
	}
}

func bearerToken(c *gin.Context, allowQuery bool) string {
	auth := c.GetHeader("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	if allowQuery {
		return strings.TrimSpace(c.Query("token"))
	}
	return ""
}

func setUser(c *gin.Context, u *models.User) {
	c.Set(CtxUser, u)
	c.Set(CtxUserID, u.Email)
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
		Code:    utils.CodeUnauthorized,
		Message: "Could not validate credentials",
	})
}

package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"registration-service/internal/services"
	"registration-service/utils"

	"github.com/gin-gonic/gin"
)

const sessionIDKey = "session_id"

// Every authenticated response carries a fresh token so an active session is
// never locked out by the token outliving its first issue.
const (
	SessionTokenHeader          = "X-Session-Token"
	SessionTokenExpiresAtHeader = "X-Session-Token-Expires-At"
)

type Middleware struct {
	tokenService *services.TokenService
}

func NewMiddleware(tokenService *services.TokenService) *Middleware {
	return &Middleware{
		tokenService: tokenService,
	}
}

// RequireSessionToken accepts only a bearer token issued for the session
// named by the route parameter param.
func (m *Middleware) RequireSessionToken(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				utils.CreateErrorResponse("MISSING_TOKEN", "authorization header required"))
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := m.tokenService.VerifyToken(tokenString)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				utils.CreateErrorResponse("INVALID_TOKEN", "token validation failed"))
			return
		}

		if claims.SessionID != c.Param(param) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				utils.CreateErrorResponse("SESSION_MISMATCH", "token was not issued for this session"))
			return
		}

		token, expiresAt, err := m.tokenService.GenerateSessionToken(claims.SessionID)
		if err != nil {
			log.Printf("Token refresh failed for session %s: %v", claims.SessionID, err)
		} else {
			c.Header(SessionTokenHeader, token)
			c.Header(SessionTokenExpiresAtHeader, expiresAt.UTC().Format(time.RFC3339))
		}

		c.Set(sessionIDKey, claims.SessionID)
		c.Next()
	}
}

// sessionIDFrom returns the session id verified by RequireSessionToken.
func sessionIDFrom(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

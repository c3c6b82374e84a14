package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tiffin-inc/tiffin/internal/infrastructure/auth"
	"github.com/tiffin-inc/tiffin/internal/shared/constants"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
	"github.com/tiffin-inc/tiffin/internal/shared/utils"
)

// TokenVerifier is satisfied by auth.JWTService.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the identity when a valid token is present and lets the
// request through either way.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := extractToken(c); ok && token != "" {
			if claims, err := m.verifier.Verify(token); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// extractToken reads the access token cookie, then the bearer header.
// ok is false when neither is present; an empty token with ok set means the
// header was malformed.
func extractToken(c *gin.Context) (string, bool) {
	if cookie, err := c.Cookie(constants.AccessTokenCookie); err == nil && cookie != "" {
		return cookie, true
	}

	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", true
	}
	return parts[1], true
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set(constants.ContextKeyUserID, claims.UserID)
	c.Set(constants.ContextKeyUserRole, claims.Role)
	c.Set(constants.ContextKeyUserEmail, claims.Email)
}

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"fahasa-storefront/internal/domain/user"
	"fahasa-storefront/internal/handler/httperr"
	"fahasa-storefront/internal/pkg/cookie"
	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	tokenValidator TokenValidator
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

func NewAuthMiddleware(tokenValidator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// OptionalAuth authenticates the request if a valid access token for this session is present,
// and otherwise lets it through as a guest.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := m.authenticate(c, token); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); ok {
			c.Next()
			return
		}

		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrNotAuthenticated, "Access token required", nil)
			return
		}

		claims, err := m.authenticate(c, token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context, token string) (*jwt.Claims, error) {
	claims, err := m.tokenValidator.ValidateToken(token)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrTokenValidation)
	}
	if claims.TokenType != jwt.TokenTypeAccess {
		return nil, errs.Mark(errs.New("not an access token"), errs.ErrTokenValidation)
	}
	// tokens are bound to the browser session they were issued for
	if sid := GetSessionID(c); sid != "" && claims.SessionID.String() != sid {
		return nil, errs.Mark(errs.New("token issued for another session"), errs.ErrTokenValidation)
	}
	return claims, nil
}

func bearerToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func setClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set(ctxUserIDKey, claims.UserID)
	c.Set(ctxUserRoleKey, user.RoleOrDefault(claims.Role))
	c.Set("jwt_claims", map[string]any{
		"user_id": claims.UserID,
		"role":    claims.Role,
	})
}

func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	return id, ok && id != ""
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

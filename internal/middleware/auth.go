package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
	"github.com/GabrielHenriqueHE/sinapse/internal/response"
)

// Context keys set by the auth middleware
const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
	ContextToken    = "jwtToken"
)

// BlacklistChecker reports whether a token was revoked by a logout
type BlacklistChecker interface {
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

// Auth returns a middleware that validates JWT tokens and rejects
// blacklisted ones. The checker may be nil, in which case only the
// signature and expiry are verified.
func Auth(jwtSecret string, blacklist BlacklistChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, tokenString, ok := authenticate(c, jwtSecret, blacklist)
		if !ok {
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)
		c.Set(ContextToken, tokenString)
		c.Next()
	}
}

// OptionalAuth authenticates the request when an Authorization header is
// present but lets anonymous requests through untouched
func OptionalAuth(jwtSecret string, blacklist BlacklistChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		userID, role, tokenString, ok := authenticate(c, jwtSecret, blacklist)
		if !ok {
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)
		c.Set(ContextToken, tokenString)
		c.Next()
	}
}

// RequireRole returns a middleware that rejects callers without the given
// role. Must run after Auth.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserRole)
		if !exists {
			abortUnauthorized(c, "É necessário estar autenticado.")
			return
		}
		if value.(domain.Role) != role {
			response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden,
				"Você não tem permissão para acessar este recurso.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// authenticate parses and validates the bearer token, aborting the request
// on failure
func authenticate(c *gin.Context, jwtSecret string, blacklist BlacklistChecker) (uuid.UUID, domain.Role, string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		abortUnauthorized(c, "É necessário estar autenticado.")
		return uuid.Nil, "", "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		abortUnauthorized(c, "Cabeçalho de autenticação inválido.")
		return uuid.Nil, "", "", false
	}
	tokenString := parts[1]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		abortUnauthorized(c, "Sessão inválida ou expirada. Faça login novamente.")
		return uuid.Nil, "", "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		abortUnauthorized(c, "Sessão inválida ou expirada. Faça login novamente.")
		return uuid.Nil, "", "", false
	}

	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		abortUnauthorized(c, "Sessão inválida ou expirada. Faça login novamente.")
		return uuid.Nil, "", "", false
	}

	roleStr, _ := claims["role"].(string)
	role := domain.Role(roleStr)

	if blacklist != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		revoked, err := blacklist.IsBlacklisted(ctx, tokenString)
		if err == nil && revoked {
			abortUnauthorized(c, "Sessão encerrada. Faça login novamente.")
			return uuid.Nil, "", "", false
		}
	}

	return userID, role, tokenString, true
}

func abortUnauthorized(c *gin.Context, message string) {
	response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, message)
	c.Abort()
}

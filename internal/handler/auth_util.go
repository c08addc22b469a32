package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
	"github.com/GabrielHenriqueHE/sinapse/internal/middleware"
)

// currentUserID extracts the authenticated user ID set by the auth middleware.
// Returns uuid.Nil for anonymous requests.
func currentUserID(c *gin.Context) uuid.UUID {
	value, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return uuid.Nil
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// currentUserRole extracts the authenticated user's role, empty for
// anonymous requests
func currentUserRole(c *gin.Context) domain.Role {
	value, exists := c.Get(middleware.ContextUserRole)
	if !exists {
		return ""
	}
	role, ok := value.(domain.Role)
	if !ok {
		return ""
	}
	return role
}

package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/middleware"
)

// TenantID returns the authenticated tenant from the request context.
func TenantID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.GetString(middleware.ContextTenantID))
	if err != nil {
		return uuid.Nil, fmt.Errorf("missing tenant in context: %w", err)
	}
	return id, nil
}

// ClinicianID returns the authenticated clinician from the request context.
func ClinicianID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.GetString(middleware.ContextClinicianID))
	if err != nil {
		return uuid.Nil, fmt.Errorf("missing clinician in context: %w", err)
	}
	return id, nil
}

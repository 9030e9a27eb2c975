package theater

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/handler"
	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/service/theater"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
	"github.com/jwalitptl/hms-api/pkg/httputil"
	"github.com/jwalitptl/hms-api/pkg/validator"
)

type Handler struct {
	service  *theater.Service
	validate *validator.Validator
}

func NewHandler(service *theater.Service, validate *validator.Validator) *Handler {
	return &Handler{service: service, validate: validate}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	theaters := r.Group("/theaters")
	{
		theaters.POST("", h.CreateTheater)
		theaters.GET("", h.ListTheaters)
		theaters.GET("/:id", h.GetTheater)
		theaters.PUT("/:id", h.UpdateTheater)
		theaters.DELETE("/:id", h.DeleteTheater)
	}
}

func (h *Handler) CreateTheater(c *gin.Context) {
	tenantID, err := handler.TenantID(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(err))
		return
	}

	var req model.CreateTheaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	created, err := h.service.CreateTheater(c.Request.Context(), tenantID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, created)
}

func (h *Handler) GetTheater(c *gin.Context) {
	tenantID, err := handler.TenantID(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(err))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid theater ID", err))
		return
	}

	found, err := h.service.GetTheater(c.Request.Context(), tenantID, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) ListTheaters(c *gin.Context) {
	tenantID, err := handler.TenantID(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(err))
		return
	}

	theaters, err := h.service.ListTheaters(c.Request.Context(), tenantID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, theaters)
}

func (h *Handler) UpdateTheater(c *gin.Context) {
	tenantID, err := handler.TenantID(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(err))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid theater ID", err))
		return
	}

	var req model.UpdateTheaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	updated, err := h.service.UpdateTheater(c.Request.Context(), tenantID, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) DeleteTheater(c *gin.Context) {
	tenantID, err := handler.TenantID(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(err))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid theater ID", err))
		return
	}

	if err := h.service.DeleteTheater(c.Request.Context(), tenantID, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, nil)
}

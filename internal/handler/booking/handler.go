package booking

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/handler"
	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/service/booking"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
	"github.com/jwalitptl/hms-api/pkg/httputil"
	"github.com/jwalitptl/hms-api/pkg/validator"
)

type Handler struct {
	service  *booking.Service
	validate *validator.Validator
}

func NewHandler(service *booking.Service, validate *validator.Validator) *Handler {
	return &Handler{service: service, validate: validate}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id", h.UpdateBooking)
		bookings.POST("/:id/complete", h.CompleteCase)
		bookings.POST("/:id/cancel", h.CancelBooking)
	}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	tenantID, err := handler.TenantID(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(err))
		return
	}
	clinicianID, err := handler.ClinicianID(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(err))
		return
	}

	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), tenantID, clinicianID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, created)
}

func (h *Handler) GetBooking(c *gin.Context) {
	tenantID, err := handler.TenantID(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(err))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid booking ID", err))
		return
	}

	found, err := h.service.GetBooking(c.Request.Context(), tenantID, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) ListBookings(c *gin.Context) {
	tenantID, err := handler.TenantID(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(err))
		return
	}

	filters := &model.BookingFilters{
		Theater: c.Query("theater"),
		Date:    c.Query("date"),
		Status:  model.BookingStatus(c.Query("status")),
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), tenantID, filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, bookings)
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	tenantID, err := handler.TenantID(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(err))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid booking ID", err))
		return
	}

	var req model.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	updated, err := h.service.UpdateBooking(c.Request.Context(), tenantID, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) CompleteCase(c *gin.Context) {
	tenantID, err := handler.TenantID(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(err))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid booking ID", err))
		return
	}

	var req model.CompleteBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	completed, err := h.service.CompleteCase(c.Request.Context(), tenantID, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, completed)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	tenantID, err := handler.TenantID(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(err))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid booking ID", err))
		return
	}

	cancelled, err := h.service.CancelBooking(c.Request.Context(), tenantID, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, cancelled)
}

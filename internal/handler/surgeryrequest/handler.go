package surgeryrequest

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/hms-api/internal/handler"
	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/service/scheduler"
	"github.com/jwalitptl/hms-api/internal/service/surgeryrequest"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
	"github.com/jwalitptl/hms-api/pkg/httputil"
	"github.com/jwalitptl/hms-api/pkg/validator"
)

type Handler struct {
	service   *surgeryrequest.Service
	scheduler *scheduler.Service
	validate  *validator.Validator
}

func NewHandler(service *surgeryrequest.Service, scheduler *scheduler.Service, validate *validator.Validator) *Handler {
	return &Handler{service: service, scheduler: scheduler, validate: validate}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/surgery-requests")
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", h.ListRequests)
		requests.GET("/:id", h.GetRequest)
		requests.GET("/:id/availability", h.GetAvailability)
	}
}

func (h *Handler) CreateRequest(c *gin.Context) {
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

	var req model.CreateSurgeryRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	created, err := h.service.CreateRequest(c.Request.Context(), tenantID, clinicianID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, created)
}

func (h *Handler) GetRequest(c *gin.Context) {
	tenantID, err := handler.TenantID(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(err))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request ID", err))
		return
	}

	found, err := h.service.GetRequest(c.Request.Context(), tenantID, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, found)
}

// ListRequests lists a tenant's surgery requests, optionally narrowed to
// one requesting clinician via ?clinician_id=.
func (h *Handler) ListRequests(c *gin.Context) {
	tenantID, err := handler.TenantID(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(err))
		return
	}

	if raw := c.Query("clinician_id"); raw != "" {
		clinicianID, err := uuid.Parse(raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid clinician ID", err))
			return
		}
		requests, err := h.service.ListRequestsForClinician(c.Request.Context(), tenantID, clinicianID)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, requests)
		return
	}

	requests, err := h.service.ListRequests(c.Request.Context(), tenantID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, requests)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	tenantID, err := handler.TenantID(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Unauthorized(err))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request ID", err))
		return
	}

	availability, err := h.scheduler.FindAvailability(c.Request.Context(), tenantID, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, availability)
}

package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/servquick/household-services/internal/httperr"
	"github.com/servquick/household-services/internal/httpresp"
	"github.com/servquick/household-services/internal/middleware"
	"github.com/servquick/household-services/internal/models"
	ucRequest "github.com/servquick/household-services/internal/usecase/request"
)

// ======================================================
// HANDLER
// ======================================================

type RequestHandler struct {
	db     *gorm.DB
	create *ucRequest.CreateRequest
	edit   *ucRequest.EditRequest
	cancel *ucRequest.CancelRequest
	close  *ucRequest.CloseRequest
	list   *ucRequest.ListRequests
}

func NewRequestHandler(
	db *gorm.DB,
	create *ucRequest.CreateRequest,
	edit *ucRequest.EditRequest,
	cancel *ucRequest.CancelRequest,
	close *ucRequest.CloseRequest,
	list *ucRequest.ListRequests,
) *RequestHandler {
	return &RequestHandler{
		db:     db,
		create: create,
		edit:   edit,
		cancel: cancel,
		close:  close,
		list:   list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ServiceSelectionRequest struct {
	Service string `json:"service" binding:"required"`
}

type CreateServiceRequestBody struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	Remarks        string `json:"remarks" binding:"required"`
	DateRequested  string `json:"date_requested" binding:"required"`
}

type EditServiceRequestBody struct {
	Action        string `json:"action"`
	Remarks       string `json:"remarks"`
	DateOfRequest string `json:"date_of_request"`
}

type CloseServiceRequestBody struct {
	Rating int    `json:"rating" binding:"required"`
	Review string `json:"review"`
}

// ======================================================
// HELPERS
// ======================================================

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid identifier.")
		return 0, false
	}
	return uint(id), true
}

// writeBusiness maps use-case error codes to HTTP statuses.
func writeBusiness(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {
	case "unknown_service":
		httperr.BadRequest(c, code, "Selected service does not exist.")
	case "invalid_professional":
		httperr.BadRequest(c, code, "Professional is not an approved provider of this service.")
	case "invalid_date":
		httperr.BadRequest(c, code, "Date must be YYYY-MM-DD.")
	case "invalid_rating":
		httperr.BadRequest(c, code, "Rating must be between 1 and 5.")
	case "invalid_action":
		httperr.BadRequest(c, code, "Unknown action.")
	case "request_not_found":
		httperr.NotFound(c, code, "Service request not found.")
	case "invalid_state":
		httperr.Conflict(c, code, "Operation not allowed in the request's current state.")
	default:
		httperr.Internal(c, "internal_error", "Something went wrong.")
	}
}

// ======================================================
// SERVICE SELECTION
// ======================================================

// SelectService resolves a catalog name, the first step of placing a request.
func (h *RequestHandler) SelectService(c *gin.Context) {
	var req ServiceSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please choose a service.")
		return
	}

	var svc models.Service
	if err := h.db.Where("name = ?", req.Service).First(&svc).Error; err != nil {
		httperr.NotFound(c, "unknown_service", "Service not found.")
		return
	}

	httpresp.OK(c, gin.H{"service": svc})
}

// ListProfessionals returns the approved professionals offering the named
// service, for the customer to pick from.
func (h *RequestHandler) ListProfessionals(c *gin.Context) {
	serviceName := c.Param("service_name")

	var svc models.Service
	if err := h.db.Where("name = ?", serviceName).First(&svc).Error; err != nil {
		httperr.NotFound(c, "unknown_service", "Service not found.")
		return
	}

	var professionals []models.ProfessionalProfile
	if err := h.db.
		Preload("User").
		Where("service_id = ? AND is_approved = ?", svc.ID, true).
		Order("id ASC").
		Find(&professionals).Error; err != nil {
		httperr.Internal(c, "list_failed", "Failed to list professionals.")
		return
	}

	httpresp.OK(c, gin.H{
		"service":       svc,
		"professionals": professionals,
	})
}

// ======================================================
// LIFECYCLE (CUSTOMER)
// ======================================================

func (h *RequestHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	customerID := c.MustGet(middleware.ContextProfileID).(uint)

	var req CreateServiceRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please fill out all the fields.")
		return
	}

	sr, err := h.create.Execute(c, ucRequest.CreateRequestInput{
		UserID:         userID,
		CustomerID:     customerID,
		ServiceName:    c.Param("service_name"),
		ProfessionalID: req.ProfessionalID,
		Remarks:        req.Remarks,
		RequestedDate:  req.DateRequested,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.Created(c, sr)
}

func (h *RequestHandler) Get(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextProfileID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var sr models.ServiceRequest
	if err := h.db.
		Preload("Service").
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&sr).Error; err != nil {
		httperr.NotFound(c, "request_not_found", "Service request not found.")
		return
	}

	httpresp.OK(c, sr)
}

// Edit updates remarks/date, or cancels the request when action=delete.
// Either way the request must still be in the requested state.
func (h *RequestHandler) Edit(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	customerID := c.MustGet(middleware.ContextProfileID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req EditServiceRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.Action == "delete" {
		err := h.cancel.Execute(c, ucRequest.CancelRequestInput{
			UserID:     userID,
			CustomerID: customerID,
			RequestID:  id,
		})
		if err != nil {
			writeBusiness(c, err)
			return
		}
		httpresp.OK(c, gin.H{"message": "Service request cancelled successfully."})
		return
	}

	sr, err := h.edit.Execute(c, ucRequest.EditRequestInput{
		CustomerID:    customerID,
		RequestID:     id,
		Remarks:       req.Remarks,
		RequestedDate: req.DateOfRequest,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, sr)
}

func (h *RequestHandler) Close(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	customerID := c.MustGet(middleware.ContextProfileID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req CloseServiceRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please provide a rating.")
		return
	}

	sr, err := h.close.Execute(c, ucRequest.CloseRequestInput{
		UserID:     userID,
		CustomerID: customerID,
		RequestID:  id,
		Rating:     req.Rating,
		Review:     req.Review,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, sr)
}

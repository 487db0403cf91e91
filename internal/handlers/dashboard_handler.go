package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/servquick/household-services/internal/httperr"
	"github.com/servquick/household-services/internal/httpresp"
	"github.com/servquick/household-services/internal/middleware"
	"github.com/servquick/household-services/internal/models"
	ucRequest "github.com/servquick/household-services/internal/usecase/request"
)

type DashboardHandler struct {
	db      *gorm.DB
	list    *ucRequest.ListRequests
	respond *ucRequest.RespondToRequest
}

func NewDashboardHandler(
	db *gorm.DB,
	list *ucRequest.ListRequests,
	respond *ucRequest.RespondToRequest,
) *DashboardHandler {
	return &DashboardHandler{
		db:      db,
		list:    list,
		respond: respond,
	}
}

// --------- Requests ---------

type RespondActionRequest struct {
	Action    string `json:"action" binding:"required"`
	RequestID uint   `json:"request_id" binding:"required"`
}

// --------- Handlers ---------

// Customer shows the customer's own requests plus the catalog to order from.
func (h *DashboardHandler) Customer(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextProfileID).(uint)

	requests, err := h.list.ForCustomer(c, customerID)
	if err != nil {
		httperr.Internal(c, "list_failed", "Failed to load dashboard.")
		return
	}

	var services []models.Service
	if err := h.db.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "list_failed", "Failed to load dashboard.")
		return
	}

	httpresp.OK(c, gin.H{
		"requests": requests,
		"services": services,
	})
}

// Professional lists the requests assigned to this professional.
func (h *DashboardHandler) Professional(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfileID).(uint)

	requests, err := h.list.ForProfessional(c, professionalID)
	if err != nil {
		httperr.Internal(c, "list_failed", "Failed to load dashboard.")
		return
	}

	httpresp.List(c, requests)
}

// ProfessionalAction accepts or rejects an assigned pending request.
func (h *DashboardHandler) ProfessionalAction(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	professionalID := c.MustGet(middleware.ContextProfileID).(uint)

	var req RespondActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please provide an action and a request id.")
		return
	}

	sr, err := h.respond.Execute(c, ucRequest.RespondInput{
		UserID:         userID,
		ProfessionalID: professionalID,
		RequestID:      req.RequestID,
		Decision:       req.Action,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	httpresp.OK(c, sr)
}

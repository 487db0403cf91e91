package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/servquick/household-services/internal/audit"
	"github.com/servquick/household-services/internal/httperr"
	"github.com/servquick/household-services/internal/httpresp"
	"github.com/servquick/household-services/internal/middleware"
	"github.com/servquick/household-services/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

// --------- Requests ---------

type AddServiceRequest struct {
	Name         string   `json:"name" binding:"required"`
	Price        *float64 `json:"price" binding:"required"`
	TimeRequired string   `json:"time_required"`
	Description  string   `json:"description"`
}

type EditServiceRequest struct {
	Action       string   `json:"action"`
	Name         *string  `json:"name,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	TimeRequired *string  `json:"time_required,omitempty"`
	Description  *string  `json:"description,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "list_failed", "Failed to list services.")
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Add(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please fill out all the required fields.")
		return
	}

	if *req.Price < 0 {
		httperr.BadRequest(c, "invalid_price", "Price must be a non-negative number.")
		return
	}

	name := strings.TrimSpace(req.Name)

	var count int64
	h.db.Model(&models.Service{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "service_exists", "A service with this name already exists.")
		return
	}

	svc := models.Service{
		Name:         name,
		Price:        *req.Price,
		TimeRequired: req.TimeRequired,
		Description:  req.Description,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "create_failed", "Failed to add service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorUserID: &adminID,
		Action:      "service_added",
		Entity:      "service",
		EntityID:    &svc.ID,
	})

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	var svc models.Service
	if err := h.db.First(&svc, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}
	httpresp.OK(c, svc)
}

// Edit updates a catalog entry, or deletes it when action=delete. Deletion is
// restricted: a service still referenced by professionals or requests stays.
func (h *ServiceHandler) Edit(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var svc models.Service
	if err := h.db.First(&svc, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req EditServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.Action == "delete" {
		var professionals, requests int64
		h.db.Model(&models.ProfessionalProfile{}).Where("service_id = ?", svc.ID).Count(&professionals)
		h.db.Model(&models.ServiceRequest{}).Where("service_id = ?", svc.ID).Count(&requests)
		if professionals > 0 || requests > 0 {
			httperr.Conflict(c, "service_in_use", "Service is referenced by professionals or requests.")
			return
		}

		if err := h.db.Delete(&svc).Error; err != nil {
			httperr.Internal(c, "delete_failed", "Failed to delete service.")
			return
		}

		h.audit.Dispatch(audit.Event{
			ActorUserID: &adminID,
			Action:      "service_deleted",
			Entity:      "service",
			EntityID:    &svc.ID,
		})

		httpresp.OK(c, gin.H{"message": "Service deleted successfully."})
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "Price must be a non-negative number.")
			return
		}
		svc.Price = *req.Price
	}
	if req.TimeRequired != nil {
		svc.TimeRequired = *req.TimeRequired
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "update_failed", "Failed to update service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorUserID: &adminID,
		Action:      "service_updated",
		Entity:      "service",
		EntityID:    &svc.ID,
	})

	httpresp.OK(c, svc)
}

package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/servquick/household-services/internal/httperr"
	"github.com/servquick/household-services/internal/httpresp"
	"github.com/servquick/household-services/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns the most recent audit entries, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit < 1 || limit > 500 {
		limit = 100
	}

	var logs []models.AuditLog
	if err := h.db.
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "list_failed", "Failed to list audit logs.")
		return
	}

	httpresp.List(c, logs)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/servquick/household-services/internal/httperr"
	"github.com/servquick/household-services/internal/httpresp"
	"github.com/servquick/household-services/internal/middleware"
	"github.com/servquick/household-services/internal/models"
	"github.com/servquick/household-services/internal/summary"
)

type SummaryHandler struct {
	svc *summary.Service
}

func NewSummaryHandler(svc *summary.Service) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

// Summary returns the aggregate counts for the caller's role; the rendering
// of charts from them is the client's concern.
func (h *SummaryHandler) Summary(c *gin.Context) {
	role := c.MustGet(middleware.ContextUserRole).(models.Role)
	profileID := c.MustGet(middleware.ContextProfileID).(uint)

	switch role {
	case models.RoleCustomer:
		out, err := h.svc.ForCustomer(c, profileID)
		if err != nil {
			httperr.Internal(c, "summary_failed", "Failed to compute summary.")
			return
		}
		httpresp.OK(c, out)

	case models.RoleProfessional:
		out, err := h.svc.ForProfessional(c, profileID)
		if err != nil {
			httperr.Internal(c, "summary_failed", "Failed to compute summary.")
			return
		}
		httpresp.OK(c, out)

	default:
		httperr.Forbidden(c, "forbidden", "Use the admin summary.")
	}
}

func (h *SummaryHandler) AdminSummary(c *gin.Context) {
	out, err := h.svc.ForAdmin(c)
	if err != nil {
		httperr.Internal(c, "summary_failed", "Failed to compute summary.")
		return
	}
	httpresp.OK(c, out)
}

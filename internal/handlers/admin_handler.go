package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/servquick/household-services/internal/audit"
	"github.com/servquick/household-services/internal/httperr"
	"github.com/servquick/household-services/internal/httpresp"
	"github.com/servquick/household-services/internal/middleware"
	"github.com/servquick/household-services/internal/models"
	ucRequest "github.com/servquick/household-services/internal/usecase/request"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	list  *ucRequest.ListRequests
}

func NewAdminHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	list *ucRequest.ListRequests,
) *AdminHandler {
	return &AdminHandler{
		db:    db,
		audit: auditDispatcher,
		list:  list,
	}
}

// --------- Requests ---------

type ProfessionalActionRequest struct {
	Action         string `json:"action" binding:"required"`
	ProfessionalID uint   `json:"professional_id" binding:"required"`
}

type professionalRow struct {
	models.ProfessionalProfile
	AvgRating float64 `json:"avg_rating"`
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *AdminHandler) Dashboard(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	var services []models.Service
	if err := h.db.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "list_failed", "Failed to load dashboard.")
		return
	}

	var pending []models.ProfessionalProfile
	if err := h.db.
		Preload("User").
		Preload("Service").
		Where("is_approved = ?", false).
		Order("id ASC").
		Find(&pending).Error; err != nil {
		httperr.Internal(c, "list_failed", "Failed to load dashboard.")
		return
	}

	var customers []models.User
	if err := h.db.
		Where("role = ?", models.RoleCustomer).
		Order("id ASC").
		Find(&customers).Error; err != nil {
		httperr.Internal(c, "list_failed", "Failed to load dashboard.")
		return
	}

	requests, total, err := h.list.All(c, page, limit)
	if err != nil {
		httperr.Internal(c, "list_failed", "Failed to load dashboard.")
		return
	}

	httpresp.OK(c, gin.H{
		"services":              services,
		"pending_professionals": pending,
		"customers":             customers,
		"requests": gin.H{
			"data":  requests,
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// DashboardAction approves a pending professional or rejects one. Rejection
// removes both the profile and the owning user account.
func (h *AdminHandler) DashboardAction(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req ProfessionalActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please provide an action and a professional id.")
		return
	}

	var profile models.ProfessionalProfile
	if err := h.db.First(&profile, req.ProfessionalID).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Professional not found.")
		return
	}

	switch req.Action {
	case "approve":
		profile.IsApproved = true
		if err := h.db.Save(&profile).Error; err != nil {
			httperr.Internal(c, "update_failed", "Failed to approve professional.")
			return
		}

		h.audit.Dispatch(audit.Event{
			ActorUserID: &adminID,
			Action:      "professional_approved",
			Entity:      "professional",
			EntityID:    &profile.ID,
		})

		httpresp.OK(c, gin.H{"message": "Professional approved successfully."})

	case "reject":
		err := h.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&models.ProfessionalProfile{}, profile.ID).Error; err != nil {
				return err
			}
			return tx.Delete(&models.User{}, profile.UserID).Error
		})
		if err != nil {
			httperr.Internal(c, "delete_failed", "Failed to reject professional.")
			return
		}

		h.audit.Dispatch(audit.Event{
			ActorUserID: &adminID,
			Action:      "professional_rejected",
			Entity:      "professional",
			EntityID:    &profile.ID,
		})

		httpresp.OK(c, gin.H{"message": "Professional rejected and account removed."})

	default:
		httperr.BadRequest(c, "invalid_action", "Unknown action.")
	}
}

// ======================================================
// BLOCK / UNBLOCK
// ======================================================

func (h *AdminHandler) toggleBlock(c *gin.Context, user *models.User, entity string, entityID uint) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	user.IsBlocked = !user.IsBlocked
	if err := h.db.Save(user).Error; err != nil {
		httperr.Internal(c, "update_failed", "Failed to update block status.")
		return
	}

	action := entity + "_unblocked"
	if user.IsBlocked {
		action = entity + "_blocked"
	}

	h.audit.Dispatch(audit.Event{
		ActorUserID: &adminID,
		Action:      action,
		Entity:      entity,
		EntityID:    &entityID,
	})

	httpresp.OK(c, gin.H{
		"id":         entityID,
		"is_blocked": user.IsBlocked,
	})
}

// ProfessionalProfile shows a professional with their requests; POST toggles
// the block flag.
func (h *AdminHandler) ProfessionalProfile(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var profile models.ProfessionalProfile
	if err := h.db.Preload("User").Preload("Service").First(&profile, id).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Professional not found.")
		return
	}

	if c.Request.Method == "POST" {
		h.toggleBlock(c, &profile.User, "professional", profile.ID)
		return
	}

	requests, err := h.list.ForProfessional(c, profile.ID)
	if err != nil {
		httperr.Internal(c, "list_failed", "Failed to load requests.")
		return
	}

	httpresp.OK(c, gin.H{
		"professional": profile,
		"requests":     requests,
	})
}

func (h *AdminHandler) CustomerProfile(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var profile models.CustomerProfile
	if err := h.db.Preload("User").First(&profile, id).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "Customer not found.")
		return
	}

	if c.Request.Method == "POST" {
		h.toggleBlock(c, &profile.User, "customer", profile.ID)
		return
	}

	requests, err := h.list.ForCustomer(c, profile.ID)
	if err != nil {
		httperr.Internal(c, "list_failed", "Failed to load requests.")
		return
	}

	httpresp.OK(c, gin.H{
		"customer": profile,
		"requests": requests,
	})
}

// ======================================================
// USERS
// ======================================================

// Users lists every customer and professional, annotating professionals with
// their average rating across closed requests.
func (h *AdminHandler) Users(c *gin.Context) {
	var customers []models.CustomerProfile
	if err := h.db.Preload("User").Order("id ASC").Find(&customers).Error; err != nil {
		httperr.Internal(c, "list_failed", "Failed to list users.")
		return
	}

	var professionals []models.ProfessionalProfile
	if err := h.db.Preload("User").Preload("Service").Order("id ASC").Find(&professionals).Error; err != nil {
		httperr.Internal(c, "list_failed", "Failed to list users.")
		return
	}

	rows := make([]professionalRow, 0, len(professionals))
	for _, p := range professionals {
		var avg *float64
		if err := h.db.
			Model(&models.ServiceRequest{}).
			Select("AVG(rating)").
			Where("professional_id = ? AND rating IS NOT NULL", p.ID).
			Scan(&avg).Error; err != nil {
			httperr.Internal(c, "list_failed", "Failed to list users.")
			return
		}

		row := professionalRow{ProfessionalProfile: p}
		if avg != nil {
			row.AvgRating = *avg
		}
		rows = append(rows, row)
	}

	httpresp.OK(c, gin.H{
		"customers":     customers,
		"professionals": rows,
	})
}

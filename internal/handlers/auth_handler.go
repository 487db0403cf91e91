package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/servquick/household-services/internal/httperr"
	"github.com/servquick/household-services/internal/httpresp"
	"github.com/servquick/household-services/internal/middleware"
	"github.com/servquick/household-services/internal/models"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please fill out all the fields.")
		return
	}

	role := models.Role(strings.ToLower(strings.TrimSpace(req.Role)))
	if !role.Valid() {
		httperr.BadRequest(c, "invalid_role", "Unknown login role.")
		return
	}

	username := strings.TrimSpace(req.Username)

	var user models.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "No account with this username.")
			return
		}
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	// A block refuses authentication regardless of credential validity.
	if user.IsBlocked {
		httperr.Forbidden(c, "account_blocked", "You are blocked by admin.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials. Please try again.")
		return
	}

	// The login form's role must match the account. No admin-as-professional
	// conflation: the admin logs in only as admin.
	if user.Role != role {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials. Please try again.")
		return
	}

	var profileID uint
	switch user.Role {
	case models.RoleCustomer:
		var profile models.CustomerProfile
		if err := h.db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			httperr.Internal(c, "internal_error", "Something went wrong.")
			return
		}
		profileID = profile.ID

	case models.RoleProfessional:
		var profile models.ProfessionalProfile
		if err := h.db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			httperr.Internal(c, "internal_error", "Something went wrong.")
			return
		}
		if !profile.IsApproved {
			httperr.Forbidden(c, "pending_approval", "You are yet to be approved by admin.")
			return
		}
		profileID = profile.ID
	}

	if err := middleware.SaveSession(c, &user, profileID); err != nil {
		httperr.Internal(c, "session_error", "Failed to create session.")
		return
	}

	httpresp.OK(c, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
			"role":     user.Role,
		},
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.ClearSession(c); err != nil {
		httperr.Internal(c, "session_error", "Failed to clear session.")
		return
	}
	httpresp.OK(c, gin.H{"message": "Logged out successfully."})
}

// Home reports where the session's role lands, the JSON stand-in for the
// role-based root redirect.
func (h *AuthHandler) Home(c *gin.Context) {
	role := c.MustGet(middleware.ContextUserRole).(models.Role)

	dashboard := "/dashboard"
	switch role {
	case models.RoleProfessional:
		dashboard = "/professional/dashboard"
	case models.RoleAdmin:
		dashboard = "/admin/dashboard"
	}

	httpresp.OK(c, gin.H{
		"role":      role,
		"dashboard": dashboard,
	})
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/servquick/household-services/internal/httperr"
	"github.com/servquick/household-services/internal/httpresp"
	"github.com/servquick/household-services/internal/middleware"
	"github.com/servquick/household-services/internal/models"
)

type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

type UpdateProfileRequest struct {
	Name            string `json:"name"`
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Failed to load profile.")
		return
	}

	httpresp.OK(c, user)
}

// Update changes display name and password. A password change always requires
// the current password.
func (h *ProfileHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please fill out all the required fields.")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Failed to load profile.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		httperr.BadRequest(c, "incorrect_password", "Current password is incorrect.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "hash_error", "Failed to hash password.")
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	user.PasswordHash = string(hashed)

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "update_failed", "Failed to update profile.")
		return
	}

	httpresp.OK(c, gin.H{"message": "Profile updated successfully."})
}

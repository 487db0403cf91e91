package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/servquick/household-services/internal/httperr"
	"github.com/servquick/household-services/internal/httpresp"
	"github.com/servquick/household-services/internal/models"
	"github.com/servquick/household-services/internal/validators"
)

type SignupHandler struct {
	db *gorm.DB
}

func NewSignupHandler(db *gorm.DB) *SignupHandler {
	return &SignupHandler{db: db}
}

// --------- Requests ---------

type RegisterCustomerRequest struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Name            string `json:"name"`
	Address         string `json:"address" binding:"required"`
	Pincode         string `json:"pincode" binding:"required"`
}

type RegisterProfessionalRequest struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Address         string `json:"address" binding:"required"`
	Pincode         string `json:"pincode" binding:"required"`
	ServiceType     string `json:"service_type" binding:"required"`
	Experience      string `json:"experience" binding:"required"`
	Description     string `json:"description"`
}

// --------- Helpers ---------

// Usernames are unique across the whole User namespace, not per role.
func (h *SignupHandler) usernameTaken(username string) (bool, error) {
	var count int64
	err := h.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (h *SignupHandler) validateCommon(c *gin.Context, username, password, confirm, pincode string) bool {
	if password != confirm {
		httperr.BadRequest(c, "password_mismatch", "Passwords do not match.")
		return false
	}
	if !validators.IsUsernameValid(username) {
		httperr.BadRequest(c, "invalid_username", "Username must be 3-50 letters, digits or ._-")
		return false
	}
	if !validators.IsPincodeValid(pincode) {
		httperr.BadRequest(c, "invalid_pincode", "Pincode must be 4-10 digits.")
		return false
	}

	taken, err := h.usernameTaken(username)
	if err != nil {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return false
	}
	if taken {
		httperr.Conflict(c, "username_taken", "Username is already taken.")
		return false
	}
	return true
}

// --------- Handlers ---------

func (h *SignupHandler) RegisterCustomer(c *gin.Context) {
	var req RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please fill out all the fields.")
		return
	}

	username := strings.TrimSpace(req.Username)
	if !h.validateCommon(c, username, req.Password, req.ConfirmPassword, req.Pincode) {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "hash_error", "Failed to hash password.")
		return
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hashed),
		Name:         req.Name,
		Address:      req.Address,
		Pincode:      strings.TrimSpace(req.Pincode),
		Role:         models.RoleCustomer,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.CustomerProfile{UserID: user.ID}).Error
	})
	if err != nil {
		httperr.Internal(c, "signup_failed", "Failed to create account.")
		return
	}

	httpresp.Created(c, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *SignupHandler) RegisterProfessional(c *gin.Context) {
	var req RegisterProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please fill out all the fields.")
		return
	}

	username := strings.TrimSpace(req.Username)
	if !h.validateCommon(c, username, req.Password, req.ConfirmPassword, req.Pincode) {
		return
	}

	var svc models.Service
	if err := h.db.Where("name = ?", strings.TrimSpace(req.ServiceType)).First(&svc).Error; err != nil {
		httperr.BadRequest(c, "unknown_service", "Selected service type does not exist.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "hash_error", "Failed to hash password.")
		return
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hashed),
		Name:         req.Name,
		Address:      req.Address,
		Pincode:      strings.TrimSpace(req.Pincode),
		Role:         models.RoleProfessional,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.ProfessionalProfile{
			UserID:      user.ID,
			ServiceID:   svc.ID,
			Experience:  req.Experience,
			Description: req.Description,
			IsApproved:  false,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		httperr.Internal(c, "signup_failed", "Failed to create account.")
		return
	}

	httpresp.Created(c, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
		"approved": false,
	})
}

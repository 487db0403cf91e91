package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/servquick/household-services/internal/httperr"
	"github.com/servquick/household-services/internal/httpresp"
	"github.com/servquick/household-services/internal/middleware"
	"github.com/servquick/household-services/internal/models"
)

type SearchHandler struct {
	db *gorm.DB
}

func NewSearchHandler(db *gorm.DB) *SearchHandler {
	return &SearchHandler{db: db}
}

// --------- Requests ---------

type SearchRequest struct {
	SearchType string `json:"search_type" form:"search_type"`
	SearchTerm string `json:"search_term" form:"search_term"`
}

// ProfessionalListing is the grouped row for the customer-facing service
// search: one entry per (professional, service), with review aggregates.
type ProfessionalListing struct {
	ProfessionalID   uint     `json:"professional_id"`
	ProfessionalName string   `json:"professional_name"`
	Pincode          string   `json:"pincode"`
	ServiceName      string   `json:"service_name"`
	AverageRating    *float64 `json:"average_rating"`
	TotalRequests    int64    `json:"total_requests"`
}

// --------- Helpers ---------

func bindSearch(c *gin.Context) (SearchRequest, string) {
	var req SearchRequest
	if c.Request.Method == "POST" {
		_ = c.ShouldBindJSON(&req)
	} else {
		_ = c.ShouldBindQuery(&req)
	}
	like := "%" + strings.ToLower(strings.TrimSpace(req.SearchTerm)) + "%"
	return req, like
}

// --------- Handlers ---------

// Search is role-scoped: customers look up services and professionals,
// professionals look up their own customers.
func (h *SearchHandler) Search(c *gin.Context) {
	role := c.MustGet(middleware.ContextUserRole).(models.Role)

	switch role {
	case models.RoleCustomer:
		h.customerSearch(c)
	case models.RoleProfessional:
		h.professionalSearch(c)
	default:
		httperr.Forbidden(c, "forbidden", "Use the admin search.")
	}
}

func (h *SearchHandler) customerSearch(c *gin.Context) {
	req, like := bindSearch(c)

	switch req.SearchType {
	case "services":
		var listings []ProfessionalListing
		err := h.db.
			Model(&models.ProfessionalProfile{}).
			Joins("JOIN services ON services.id = professional_profiles.service_id").
			Joins("JOIN users ON users.id = professional_profiles.user_id").
			Joins("LEFT JOIN service_requests ON service_requests.professional_id = professional_profiles.id").
			Select(
				"professional_profiles.id AS professional_id, " +
					"users.name AS professional_name, " +
					"users.pincode AS pincode, " +
					"services.name AS service_name, " +
					"AVG(service_requests.rating) AS average_rating, " +
					"COUNT(service_requests.id) AS total_requests").
			Where("LOWER(services.name) LIKE ? AND professional_profiles.is_approved = ?", like, true).
			Group("professional_profiles.id, users.name, users.pincode, services.name").
			Scan(&listings).Error
		if err != nil {
			httperr.Internal(c, "search_failed", "Search failed.")
			return
		}
		httpresp.OK(c, gin.H{"search_type": req.SearchType, "listings": listings})

	case "service_professionals":
		var professionals []models.ProfessionalProfile
		err := h.db.
			Preload("User").
			Preload("Service").
			Joins("JOIN users ON users.id = professional_profiles.user_id").
			Where("LOWER(users.name) LIKE ? AND professional_profiles.is_approved = ?", like, true).
			Find(&professionals).Error
		if err != nil {
			httperr.Internal(c, "search_failed", "Search failed.")
			return
		}
		httpresp.OK(c, gin.H{"search_type": req.SearchType, "professionals": professionals})

	default:
		httperr.BadRequest(c, "invalid_search_type", "Unknown search type.")
	}
}

// professionalSearch only surfaces customers already related to this
// professional through a service request.
func (h *SearchHandler) professionalSearch(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfileID).(uint)
	_, like := bindSearch(c)

	var customers []models.CustomerProfile
	err := h.db.
		Preload("User").
		Joins("JOIN users ON users.id = customer_profiles.user_id").
		Joins("JOIN service_requests ON service_requests.customer_id = customer_profiles.id").
		Where(
			"(LOWER(users.name) LIKE ? OR users.pincode LIKE ? OR LOWER(users.address) LIKE ?) AND service_requests.professional_id = ?",
			like, like, like, professionalID,
		).
		Distinct("customer_profiles.*").
		Find(&customers).Error
	if err != nil {
		httperr.Internal(c, "search_failed", "Search failed.")
		return
	}

	httpresp.List(c, customers)
}

// AdminSearch covers customers, professionals and catalog entries.
func (h *SearchHandler) AdminSearch(c *gin.Context) {
	req, like := bindSearch(c)

	switch req.SearchType {
	case "customers":
		var customers []models.CustomerProfile
		err := h.db.
			Preload("User").
			Joins("JOIN users ON users.id = customer_profiles.user_id").
			Where("LOWER(users.name) LIKE ? OR users.pincode LIKE ? OR LOWER(users.address) LIKE ?", like, like, like).
			Find(&customers).Error
		if err != nil {
			httperr.Internal(c, "search_failed", "Search failed.")
			return
		}
		httpresp.OK(c, gin.H{"search_type": req.SearchType, "customers": customers})

	case "service_professionals":
		var professionals []models.ProfessionalProfile
		err := h.db.
			Preload("User").
			Preload("Service").
			Joins("JOIN users ON users.id = professional_profiles.user_id").
			Joins("JOIN services ON services.id = professional_profiles.service_id").
			Where(
				"LOWER(users.name) LIKE ? OR users.pincode LIKE ? OR LOWER(users.address) LIKE ? OR LOWER(services.name) LIKE ?",
				like, like, like, like,
			).
			Find(&professionals).Error
		if err != nil {
			httperr.Internal(c, "search_failed", "Search failed.")
			return
		}
		httpresp.OK(c, gin.H{"search_type": req.SearchType, "professionals": professionals})

	case "services":
		var services []models.Service
		err := h.db.
			Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like).
			Find(&services).Error
		if err != nil {
			httperr.Internal(c, "search_failed", "Search failed.")
			return
		}
		httpresp.OK(c, gin.H{"search_type": req.SearchType, "services": services})

	default:
		httperr.BadRequest(c, "invalid_search_type", "Unknown search type.")
	}
}

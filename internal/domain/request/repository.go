package request

import (
	"context"

	"github.com/servquick/household-services/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetServiceByName(
		ctx context.Context,
		name string,
	) (*models.Service, error)

	// -------- Professional --------
	GetApprovedProfessional(
		ctx context.Context,
		professionalID uint,
		serviceID uint,
	) (*models.ProfessionalProfile, error)

	// -------- Request (create) --------
	CreateRequest(
		ctx context.Context,
		sr *models.ServiceRequest,
	) error

	// -------- Request (ownership-scoped reads) --------
	GetRequestForCustomer(
		ctx context.Context,
		requestID uint,
		customerID uint,
	) (*models.ServiceRequest, error)

	GetRequestForProfessional(
		ctx context.Context,
		requestID uint,
		professionalID uint,
	) (*models.ServiceRequest, error)

	// -------- Request (state change) --------
	UpdateRequest(
		ctx context.Context,
		sr *models.ServiceRequest,
	) error

	DeleteRequest(
		ctx context.Context,
		sr *models.ServiceRequest,
	) error

	// -------- Listings --------
	ListByCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.ServiceRequest, error)

	ListByProfessional(
		ctx context.Context,
		professionalID uint,
	) ([]models.ServiceRequest, error)

	ListAll(
		ctx context.Context,
		page int,
		limit int,
	) ([]models.ServiceRequest, int64, error)

	// InTx runs fn against a repository bound to a single transaction, so an
	// ownership check and the write that follows it commit atomically.
	InTx(
		ctx context.Context,
		fn func(Repository) error,
	) error
}

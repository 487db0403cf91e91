package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/servquick/household-services/internal/domain/request"
	"github.com/servquick/household-services/internal/models"
)

type RequestGormRepository struct {
	db *gorm.DB
}

func NewRequestGormRepository(db *gorm.DB) *RequestGormRepository {
	return &RequestGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *RequestGormRepository) GetServiceByName(
	ctx context.Context,
	name string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Professional
// --------------------------------------------------

func (r *RequestGormRepository) GetApprovedProfessional(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
) (*models.ProfessionalProfile, error) {

	var prof models.ProfessionalProfile
	if err := r.db.WithContext(ctx).
		Where("id = ? AND service_id = ? AND is_approved = ?", professionalID, serviceID, true).
		First(&prof).Error; err != nil {
		return nil, err
	}
	return &prof, nil
}

// --------------------------------------------------
// Request
// --------------------------------------------------

func (r *RequestGormRepository) CreateRequest(
	ctx context.Context,
	sr *models.ServiceRequest,
) error {
	return r.db.WithContext(ctx).Create(sr).Error
}

func (r *RequestGormRepository) GetRequestForCustomer(
	ctx context.Context,
	requestID uint,
	customerID uint,
) (*models.ServiceRequest, error) {

	var sr models.ServiceRequest
	if err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", requestID, customerID).
		First(&sr).Error; err != nil {
		return nil, err
	}
	return &sr, nil
}

func (r *RequestGormRepository) GetRequestForProfessional(
	ctx context.Context,
	requestID uint,
	professionalID uint,
) (*models.ServiceRequest, error) {

	var sr models.ServiceRequest
	if err := r.db.WithContext(ctx).
		Where("id = ? AND professional_id = ?", requestID, professionalID).
		First(&sr).Error; err != nil {
		return nil, err
	}
	return &sr, nil
}

func (r *RequestGormRepository) UpdateRequest(
	ctx context.Context,
	sr *models.ServiceRequest,
) error {
	return r.db.WithContext(ctx).Save(sr).Error
}

func (r *RequestGormRepository) DeleteRequest(
	ctx context.Context,
	sr *models.ServiceRequest,
) error {
	return r.db.WithContext(ctx).Delete(sr).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *RequestGormRepository) ListByCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.ServiceRequest, error) {

	var requests []models.ServiceRequest
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *RequestGormRepository) ListByProfessional(
	ctx context.Context,
	professionalID uint,
) ([]models.ServiceRequest, error) {

	var requests []models.ServiceRequest
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Customer.User").
		Where("professional_id = ?", professionalID).
		Order("id ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *RequestGormRepository) ListAll(
	ctx context.Context,
	page int,
	limit int,
) ([]models.ServiceRequest, int64, error) {

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.ServiceRequest
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Order("id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *RequestGormRepository) InTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RequestGormRepository{db: tx})
	})
}

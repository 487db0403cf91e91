package request

import (
	"context"

	domain "github.com/servquick/household-services/internal/domain/request"
	"github.com/servquick/household-services/internal/models"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// ListRequests provides the role-scoped listings. Ordering is id ascending,
// i.e. stable insertion order.
type ListRequests struct {
	repo domain.Repository
}

func NewListRequests(repo domain.Repository) *ListRequests {
	return &ListRequests{repo: repo}
}

func (uc *ListRequests) ForCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.ServiceRequest, error) {
	return uc.repo.ListByCustomer(ctx, customerID)
}

func (uc *ListRequests) ForProfessional(
	ctx context.Context,
	professionalID uint,
) ([]models.ServiceRequest, error) {
	return uc.repo.ListByProfessional(ctx, professionalID)
}

func (uc *ListRequests) All(
	ctx context.Context,
	page int,
	limit int,
) ([]models.ServiceRequest, int64, error) {

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return uc.repo.ListAll(ctx, page, limit)
}

package summary

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/servquick/household-services/internal/domain/request"
	"github.com/servquick/household-services/internal/models"
)

type StatusCounts struct {
	Requested int64 `json:"requested"`
	Accepted  int64 `json:"accepted"`
	Rejected  int64 `json:"rejected"`
	Closed    int64 `json:"closed"`
}

type CustomerSummary struct {
	Requests StatusCounts `json:"requests"`
}

type ProfessionalSummary struct {
	Requests StatusCounts `json:"requests"`
	// Ratings[i] counts closed requests rated i+1 stars.
	Ratings [5]int64 `json:"ratings"`
}

type AdminSummary struct {
	Customers     int64        `json:"customers"`
	Professionals int64        `json:"professionals"`
	Requests      StatusCounts `json:"requests"`
}

// Service computes the reporting aggregates. Pure reads; results are cached
// per scope for a short window.
type Service struct {
	db    *gorm.DB
	cache *Cache
}

func NewService(db *gorm.DB, cache *Cache) *Service {
	return &Service{db: db, cache: cache}
}

func (s *Service) statusCounts(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (StatusCounts, error) {
	var counts StatusCounts

	for _, st := range []struct {
		status domain.Status
		dest   *int64
	}{
		{domain.StatusRequested, &counts.Requested},
		{domain.StatusAccepted, &counts.Accepted},
		{domain.StatusRejected, &counts.Rejected},
		{domain.StatusClosed, &counts.Closed},
	} {
		q := scope(s.db.WithContext(ctx).Model(&models.ServiceRequest{}))
		if err := q.Where("status = ?", string(st.status)).Count(st.dest).Error; err != nil {
			return counts, err
		}
	}

	return counts, nil
}

func (s *Service) ForCustomer(ctx context.Context, customerID uint) (*CustomerSummary, error) {
	key := fmt.Sprintf("summary:customer:%d", customerID)

	var cached CustomerSummary
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	counts, err := s.statusCounts(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("customer_id = ?", customerID)
	})
	if err != nil {
		return nil, err
	}

	out := &CustomerSummary{Requests: counts}
	s.cache.Set(ctx, key, out)
	return out, nil
}

func (s *Service) ForProfessional(ctx context.Context, professionalID uint) (*ProfessionalSummary, error) {
	key := fmt.Sprintf("summary:professional:%d", professionalID)

	var cached ProfessionalSummary
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	counts, err := s.statusCounts(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("professional_id = ?", professionalID)
	})
	if err != nil {
		return nil, err
	}

	out := &ProfessionalSummary{Requests: counts}
	for star := 1; star <= 5; star++ {
		if err := s.db.WithContext(ctx).
			Model(&models.ServiceRequest{}).
			Where("professional_id = ? AND rating = ?", professionalID, star).
			Count(&out.Ratings[star-1]).Error; err != nil {
			return nil, err
		}
	}

	s.cache.Set(ctx, key, out)
	return out, nil
}

func (s *Service) ForAdmin(ctx context.Context) (*AdminSummary, error) {
	key := "summary:admin"

	var cached AdminSummary
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	out := &AdminSummary{}

	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleCustomer).
		Count(&out.Customers).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleProfessional).
		Count(&out.Professionals).Error; err != nil {
		return nil, err
	}

	counts, err := s.statusCounts(ctx, func(q *gorm.DB) *gorm.DB { return q })
	if err != nil {
		return nil, err
	}
	out.Requests = counts

	s.cache.Set(ctx, key, out)
	return out, nil
}

package request

import (
	"context"
	"time"

	"github.com/servquick/household-services/internal/audit"
	domain "github.com/servquick/household-services/internal/domain/request"
	"github.com/servquick/household-services/internal/httperr"
	"github.com/servquick/household-services/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateRequestInput struct {
	UserID     uint
	CustomerID uint

	ServiceName    string
	ProfessionalID uint

	Remarks       string
	RequestedDate string
}

// ======================================================
// USE CASE
// ======================================================

type CreateRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateRequest {
	return &CreateRequest{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateRequest) Execute(
	ctx context.Context,
	in CreateRequestInput,
) (*models.ServiceRequest, error) {

	svc, err := uc.repo.GetServiceByName(ctx, in.ServiceName)
	if err != nil {
		return nil, httperr.ErrBusiness("unknown_service")
	}

	// The professional must be approved and must offer this exact service.
	prof, err := uc.repo.GetApprovedProfessional(ctx, in.ProfessionalID, svc.ID)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_professional")
	}

	date, err := time.Parse("2006-01-02", in.RequestedDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	sr := &models.ServiceRequest{
		ServiceID:      svc.ID,
		CustomerID:     in.CustomerID,
		ProfessionalID: &prof.ID,
		DateOfRequest:  date,
		Status:         string(domain.InitialStatus()),
		Remarks:        in.Remarks,
	}

	if err := uc.repo.CreateRequest(ctx, sr); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorUserID: &in.UserID,
		Action:      "request_created",
		Entity:      "service_request",
		EntityID:    &sr.ID,
	})

	return sr, nil
}

package request

import (
	"context"
	"time"

	domain "github.com/servquick/household-services/internal/domain/request"
	"github.com/servquick/household-services/internal/httperr"
	"github.com/servquick/household-services/internal/models"
)

type EditRequestInput struct {
	CustomerID    uint
	RequestID     uint
	Remarks       string
	RequestedDate string
}

// EditRequest updates remarks and the requested date while the request is
// still waiting for the professional.
type EditRequest struct {
	repo domain.Repository
}

func NewEditRequest(repo domain.Repository) *EditRequest {
	return &EditRequest{repo: repo}
}

func (uc *EditRequest) Execute(
	ctx context.Context,
	in EditRequestInput,
) (*models.ServiceRequest, error) {

	date, err := time.Parse("2006-01-02", in.RequestedDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	var sr *models.ServiceRequest
	err = uc.repo.InTx(ctx, func(tx domain.Repository) error {
		var err error
		sr, err = tx.GetRequestForCustomer(ctx, in.RequestID, in.CustomerID)
		if err != nil {
			return httperr.ErrBusiness("request_not_found")
		}

		if err := domain.Edit(sr, in.Remarks, date); err != nil {
			return err
		}

		return tx.UpdateRequest(ctx, sr)
	})
	if err != nil {
		return nil, err
	}

	return sr, nil
}

package request

import (
	"context"
	"time"

	"github.com/servquick/household-services/internal/audit"
	domain "github.com/servquick/household-services/internal/domain/request"
	"github.com/servquick/household-services/internal/httperr"
	"github.com/servquick/household-services/internal/models"
)

type CloseRequestInput struct {
	UserID     uint
	CustomerID uint
	RequestID  uint
	Rating     int
	Review     string
}

// CloseRequest finishes an accepted request: status closed, completion
// timestamp set, rating and review stored.
type CloseRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCloseRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CloseRequest {
	return &CloseRequest{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CloseRequest) Execute(
	ctx context.Context,
	in CloseRequestInput,
) (*models.ServiceRequest, error) {

	var sr *models.ServiceRequest
	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		var err error
		sr, err = tx.GetRequestForCustomer(ctx, in.RequestID, in.CustomerID)
		if err != nil {
			return httperr.ErrBusiness("request_not_found")
		}

		if err := domain.Close(sr, time.Now().UTC(), in.Rating, in.Review); err != nil {
			return err
		}

		return tx.UpdateRequest(ctx, sr)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorUserID: &in.UserID,
		Action:      "request_closed",
		Entity:      "service_request",
		EntityID:    &sr.ID,
	})

	return sr, nil
}

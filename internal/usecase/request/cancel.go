package request

import (
	"context"

	"github.com/servquick/household-services/internal/audit"
	domain "github.com/servquick/household-services/internal/domain/request"
	"github.com/servquick/household-services/internal/httperr"
)

type CancelRequestInput struct {
	UserID     uint
	CustomerID uint
	RequestID  uint
}

// CancelRequest removes a still-open request. The ledger row is deleted, not
// soft-closed, matching how customers withdraw an unanswered request.
type CancelRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelRequest {
	return &CancelRequest{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelRequest) Execute(
	ctx context.Context,
	in CancelRequestInput,
) error {

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		sr, err := tx.GetRequestForCustomer(ctx, in.RequestID, in.CustomerID)
		if err != nil {
			return httperr.ErrBusiness("request_not_found")
		}

		if err := domain.CanEdit(domain.Status(sr.Status)); err != nil {
			return err
		}

		return tx.DeleteRequest(ctx, sr)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorUserID: &in.UserID,
		Action:      "request_cancelled",
		Entity:      "service_request",
		EntityID:    &in.RequestID,
	})

	return nil
}

package request

import (
	"context"

	"github.com/servquick/household-services/internal/audit"
	domain "github.com/servquick/household-services/internal/domain/request"
	"github.com/servquick/household-services/internal/httperr"
	"github.com/servquick/household-services/internal/models"
)

const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

type RespondInput struct {
	UserID         uint
	ProfessionalID uint
	RequestID      uint
	Decision       string
}

// RespondToRequest lets the assigned professional accept or reject a pending
// request. The ownership check and the status write share one transaction.
type RespondToRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRespondToRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RespondToRequest {
	return &RespondToRequest{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RespondToRequest) Execute(
	ctx context.Context,
	in RespondInput,
) (*models.ServiceRequest, error) {

	if in.Decision != DecisionAccept && in.Decision != DecisionReject {
		return nil, httperr.ErrBusiness("invalid_action")
	}

	var sr *models.ServiceRequest
	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		var err error
		sr, err = tx.GetRequestForProfessional(ctx, in.RequestID, in.ProfessionalID)
		if err != nil {
			return httperr.ErrBusiness("request_not_found")
		}

		if in.Decision == DecisionAccept {
			if err := domain.Accept(sr); err != nil {
				return err
			}
		} else {
			if err := domain.Reject(sr); err != nil {
				return err
			}
		}

		return tx.UpdateRequest(ctx, sr)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorUserID: &in.UserID,
		Action:      "request_" + sr.Status,
		Entity:      "service_request",
		EntityID:    &sr.ID,
	})

	return sr, nil
}

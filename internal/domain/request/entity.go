package request

import (
	"time"

	"github.com/servquick/household-services/internal/httperr"
	"github.com/servquick/household-services/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Accept(sr *models.ServiceRequest) error {
	if err := CanAccept(Status(sr.Status)); err != nil {
		return err
	}

	sr.Status = string(StatusAccepted)
	return nil
}

func Reject(sr *models.ServiceRequest) error {
	if err := CanReject(Status(sr.Status)); err != nil {
		return err
	}

	sr.Status = string(StatusRejected)
	return nil
}

// Close sets the terminal closed state together with the completion timestamp
// and the customer's rating/review. Rating must be within 1..5.
func Close(sr *models.ServiceRequest, now time.Time, rating int, review string) error {
	if err := CanClose(Status(sr.Status)); err != nil {
		return err
	}
	if rating < 1 || rating > 5 {
		return httperr.ErrBusiness("invalid_rating")
	}

	sr.Status = string(StatusClosed)
	sr.DateOfCompletion = &now
	sr.Rating = &rating
	sr.Review = review
	return nil
}

func Edit(sr *models.ServiceRequest, remarks string, date time.Time) error {
	if err := CanEdit(Status(sr.Status)); err != nil {
		return err
	}

	sr.Remarks = remarks
	sr.DateOfRequest = date
	return nil
}

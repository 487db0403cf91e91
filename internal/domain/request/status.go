package request

import "github.com/servquick/household-services/internal/httperr"

// ===============================
// Service Request Status
// ===============================

type Status string

const (
	StatusRequested Status = "requested"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusClosed    Status = "closed"
)

// Transitions are monotonic: requested to accepted or rejected, accepted to
// closed. rejected and closed are terminal.

func InitialStatus() Status {
	return StatusRequested
}

func CanAccept(current Status) error {
	if current != StatusRequested {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReject(current Status) error {
	if current != StatusRequested {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanClose(current Status) error {
	if current != StatusAccepted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanEdit also governs cancellation: the owning customer may touch a request
// only while it is still waiting for the professional.
func CanEdit(current Status) error {
	if current != StatusRequested {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func IsTerminal(current Status) bool {
	return current == StatusRejected || current == StatusClosed
}

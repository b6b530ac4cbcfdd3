package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the canonical lifecycle state of a request.
// Stored and serialized as a string; display wording per role is derived by
// StatusForViewer, never by branching business logic on a display string.
type Status string

const (
	StatusDraft            Status = "Draft"
	StatusSubmitted        Status = "Submitted"
	StatusWaitingQuotes    Status = "WaitingQuotes"
	StatusWaitingSelection Status = "WaitingSelection"
	StatusWaitingApproval  Status = "WaitingApproval"
	StatusApproved         Status = "Approved"
	StatusRejected         Status = "Rejected"
	StatusCanceled         Status = "Canceled"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusWaitingQuotes, StatusWaitingSelection,
		StatusWaitingApproval, StatusApproved, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition can leave s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// CanCancel reports whether a traveler may cancel a request in state s.
// Requests already in front of the manager cannot be canceled.
func (s Status) CanCancel() bool {
	return !s.IsTerminal() && s != StatusWaitingApproval
}

// Request is the workflow subject: a traveler's trip proposal moving through
// quoting, selection, and approval.
type Request struct {
	ID              uuid.UUID  `json:"id"`
	RequestCode     string     `json:"requestCode"`
	TravelerID      uuid.UUID  `json:"travelerId"`
	ProjectID       uuid.UUID  `json:"projectId"`
	Description     string     `json:"description,omitempty"`
	OriginCity      string     `json:"originCity"`
	DestinationCity string     `json:"destinationCity"`
	StartDate       time.Time  `json:"startDate"`
	IsRound         bool       `json:"isRound"`
	EndDate         *time.Time `json:"endDate,omitempty"` // required when IsRound
	NeedHotel       bool       `json:"needHotel"`
	CheckInDate     *time.Time `json:"checkInDate,omitempty"`  // required when NeedHotel
	CheckOutDate    *time.Time `json:"checkOutDate,omitempty"` // required when NeedHotel
	Status          Status     `json:"status"`
	SelectedQuoteID *uuid.UUID `json:"selectedQuoteId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ValidateNew enforces the creation rules. Returns FieldErrors listing every
// violated rule so the client can surface all of them at once.
func (r Request) ValidateNew() error {
	var errs FieldErrors

	if strings.TrimSpace(r.OriginCity) == "" {
		errs.Add("originCity", "origin city is required")
	}
	if strings.TrimSpace(r.DestinationCity) == "" {
		errs.Add("destinationCity", "destination city is required")
	}
	if r.ProjectID == uuid.Nil {
		errs.Add("projectId", "project is required")
	}
	if r.StartDate.IsZero() {
		errs.Add("startDate", "start date is required")
	}

	if r.IsRound {
		switch {
		case r.EndDate == nil:
			errs.Add("endDate", "end date is required for a round trip")
		case r.EndDate.Before(r.StartDate):
			errs.Add("endDate", "end date cannot be before start date")
		}
	}

	if r.NeedHotel {
		if r.CheckInDate == nil || r.CheckOutDate == nil {
			errs.Add("checkInDate", "check-in and check-out dates are required when a hotel is needed")
		} else {
			if r.CheckInDate.Before(r.StartDate) {
				errs.Add("checkInDate", "hotel check-in date cannot be before trip start date")
			}
			if r.CheckOutDate.Before(*r.CheckInDate) {
				errs.Add("checkOutDate", "hotel check-out date cannot be before check-in date")
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateTransition checks whether a request may move from one status to
// another through the generic update entry point. Guards that need data
// beyond the two statuses (quote existence, quote ownership) are enforced by
// the service on top of this.
func ValidateTransition(from, to Status) error {
	if !to.Valid() {
		var errs FieldErrors
		errs.Add("status", "unknown status")
		return errs
	}
	if from.IsTerminal() {
		return fmt.Errorf("request is already %s: %w", from, ErrConflict)
	}

	ok := false
	switch to {
	case StatusSubmitted:
		ok = from == StatusDraft
	case StatusWaitingQuotes:
		ok = from == StatusSubmitted
	case StatusWaitingSelection:
		ok = from == StatusWaitingQuotes
	case StatusWaitingApproval:
		ok = from == StatusWaitingSelection
	case StatusCanceled:
		ok = from.CanCancel()
	case StatusApproved, StatusRejected:
		return fmt.Errorf("approval decisions go through the manager-decision operation: %w", ErrConflict)
	}
	if !ok {
		return fmt.Errorf("cannot move request from %s to %s: %w", from, to, ErrConflict)
	}
	return nil
}

// NextRequestCode builds the human-facing code for the next request created
// in the given year: CD-<year>-<seq>, sequence zero-padded to three digits.
// countThisYear is the number of existing requests whose start date falls in
// that year. Codes are not guaranteed unique under concurrent creation.
func NextRequestCode(year int, countThisYear int) string {
	return fmt.Sprintf("CD-%d-%03d", year, countThisYear+1)
}

// StatusForViewer maps the canonical status to the wording shown to a given
// role. Travelers see the pre-quoting pipeline collapsed into "Submitted";
// everyone else sees the stored stage names spelled out.
// This is display only; never branch business logic on the result.
func StatusForViewer(s Status, viewer Role) string {
	if viewer == RoleTraveler {
		switch s {
		case StatusWaitingQuotes:
			return "Submitted"
		case StatusWaitingSelection:
			return "Waiting for Selection"
		case StatusWaitingApproval:
			return "Waiting for Approval"
		}
		return string(s)
	}
	switch s {
	case StatusWaitingQuotes:
		return "Waiting for Quotes"
	case StatusWaitingSelection:
		return "Waiting for Selection"
	case StatusWaitingApproval:
		return "Waiting for Approval"
	}
	return string(s)
}

package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Agency is a travel agency that submits quotes against requests.
// Agency names are globally unique.
type Agency struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Validate enforces agency business rules. Only the name is mandatory;
// contact details are optional.
func (a Agency) Validate() error {
	var errs FieldErrors
	if strings.TrimSpace(a.Name) == "" {
		errs.Add("name", "name is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

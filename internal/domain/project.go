package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Project is a budget envelope requests are charged against.
// Managers create and edit projects; there is no lifecycle beyond that.
type Project struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Budget    decimal.Decimal `json:"budget"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Validate enforces the project business rules shared by create and update.
func (p Project) Validate() error {
	var errs FieldErrors
	if p.Code == "" {
		errs.Add("code", "code is required")
	}
	if p.Name == "" {
		errs.Add("name", "name is required")
	}
	if p.Budget.IsNegative() {
		errs.Add("budget", "budget cannot be negative")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

package finance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/financehub-dev/financehub/internal/currency"
	"github.com/financehub-dev/financehub/internal/model"
)

var minAmount = decimal.RequireFromString("0.01")

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is every problem found in one record. A non-empty list blocks the write.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether field was rejected.
func (errs ValidationErrors) Has(field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

// errOrNil keeps a nil ValidationErrors from becoming a non-nil error.
func (errs ValidationErrors) errOrNil() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateTransaction checks a transaction about to be written.
func ValidateTransaction(t model.Transaction) ValidationErrors {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if !t.Type.Valid() {
		add("type", fmt.Sprintf("unknown type %q", t.Type))
	}
	if t.Amount.LessThan(minAmount) {
		add("amount", "must be at least 0.01")
	}
	if strings.TrimSpace(t.Description) == "" {
		add("description", "is required")
	}
	if t.CategoryID == "" {
		add("categoryId", "is required")
	}
	if t.CostCenterID == "" {
		add("costCenterId", "is required")
	}
	if t.Date.IsZero() {
		add("date", "is required")
	}
	if t.DueDate.IsZero() {
		add("dueDate", "is required")
	}
	if !t.PaymentMethod.Valid() {
		add("paymentMethod", fmt.Sprintf("unknown payment method %q", t.PaymentMethod))
	}
	if !t.Status.Valid() {
		add("status", fmt.Sprintf("unknown status %q", t.Status))
	}
	return errs
}

// ValidateCategory checks a category about to be written.
func ValidateCategory(c model.Category) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "is required"})
	}
	if !c.Type.Valid() {
		errs = append(errs, ValidationError{Field: "type", Message: fmt.Sprintf("unknown type %q", c.Type)})
	}
	return errs
}

// ValidateCostCenter checks a cost center about to be written.
func ValidateCostCenter(c model.CostCenter) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "is required"})
	}
	return errs
}

// ValidateSettings checks settings about to be written.
func ValidateSettings(s model.Settings) ValidationErrors {
	var errs ValidationErrors
	if !currency.Known(s.Currency) {
		errs = append(errs, ValidationError{Field: "currency", Message: fmt.Sprintf("unknown currency %q", s.Currency)})
	}
	if s.WeekStartsOn < 0 || s.WeekStartsOn > 6 {
		errs = append(errs, ValidationError{Field: "weekStartsOn", Message: "must be between 0 (Sunday) and 6 (Saturday)"})
	}
	if !s.Theme.Valid() {
		errs = append(errs, ValidationError{Field: "theme", Message: fmt.Sprintf("unknown theme %q", s.Theme)})
	}
	if s.Email != "" && !strings.Contains(s.Email, "@") {
		errs = append(errs, ValidationError{Field: "email", Message: "is not an email address"})
	}
	return errs
}

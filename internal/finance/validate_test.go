package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/financehub-dev/financehub/internal/catalog"
	"github.com/financehub-dev/financehub/internal/model"
)

func TestValidateTransaction(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Transaction)
		fields []string
	}{
		{"valid", func(*model.Transaction) {}, nil},
		{"smallest amount", func(tx *model.Transaction) { tx.Amount = decimal.RequireFromString("0.01") }, nil},
		{"below minimum", func(tx *model.Transaction) { tx.Amount = decimal.RequireFromString("0.009") }, []string{"amount"}},
		{"negative", func(tx *model.Transaction) { tx.Amount = decimal.RequireFromString("-5") }, []string{"amount"}},
		{"unknown type", func(tx *model.Transaction) { tx.Type = "transfer" }, []string{"type"}},
		{"unknown status", func(tx *model.Transaction) { tx.Status = "void" }, []string{"status"}},
		{"missing dates", func(tx *model.Transaction) { tx.Date = model.Date{}; tx.DueDate = model.Date{} }, []string{"date", "dueDate"}},
		{"missing refs", func(tx *model.Transaction) { tx.CategoryID = ""; tx.CostCenterID = "" }, []string{"categoryId", "costCenterId"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := sampleTx("a", "Rent")
			tt.mutate(&tx)
			errs := ValidateTransaction(tx)
			assert.Len(t, errs, len(tt.fields))
			for _, f := range tt.fields {
				assert.True(t, errs.Has(f), "expected %s to be rejected", f)
			}
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "amount", Message: "must be at least 0.01"},
		{Field: "description", Message: "is required"},
	}
	assert.Equal(t, "validation failed: amount: must be at least 0.01; description: is required", errs.Error())
	assert.NoError(t, ValidationErrors(nil).errOrNil())
}

func TestValidateCatalogAndSettings(t *testing.T) {
	assert.Empty(t, ValidateCategory(catalog.DefaultCategories()[0]))
	assert.True(t, ValidateCategory(model.Category{Name: "x", Type: "both"}).Has("type"))
	assert.True(t, ValidateCostCenter(model.CostCenter{}).Has("name"))

	s := catalog.DefaultSettings()
	assert.Empty(t, ValidateSettings(s))
	s.Currency = "REAL"
	s.Email = "nobody"
	s.Theme = "blue"
	errs := ValidateSettings(s)
	assert.True(t, errs.Has("currency"))
	assert.True(t, errs.Has("email"))
	assert.True(t, errs.Has("theme"))
}

package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.January, 10)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-10"`, string(data))

	var got Date
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, got.Equal(d))

	// Browser builds sometimes stored full ISO timestamps.
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-10T15:04:05Z"`), &got))
	assert.Equal(t, "2024-01-10", got.String())

	require.NoError(t, json.Unmarshal([]byte(`null`), &got))
	assert.True(t, got.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"10/01/2024"`), &got))
}

func TestDateArithmetic(t *testing.T) {
	d := MustDate("2024-01-31")
	assert.Equal(t, "2024-02-01", d.AddDays(1).String())
	assert.Equal(t, "2024-01-21", d.AddDays(-10).String())
	assert.True(t, d.Between(MustDate("2024-01-01"), MustDate("2024-01-31")))
	assert.False(t, d.Between(MustDate("2024-02-01"), MustDate("2024-02-29")))
	assert.Equal(t, "2024-03-01", NewDate(2024, time.February, 30).String())
}

func TestEffectiveDate(t *testing.T) {
	tx := Transaction{Date: MustDate("2024-01-10")}
	assert.Equal(t, "2024-01-10", tx.EffectiveDate().String())

	paid := MustDate("2024-01-12")
	tx.PaidAt = &paid
	assert.Equal(t, "2024-01-12", tx.EffectiveDate().String())
}

func TestSigned(t *testing.T) {
	in := Transaction{Type: TypeIncome, Amount: decimal.RequireFromString("10.50")}
	out := Transaction{Type: TypeExpense, Amount: decimal.RequireFromString("10.50")}
	assert.True(t, in.Signed().Equal(decimal.RequireFromString("10.50")))
	assert.True(t, out.Signed().Equal(decimal.RequireFromString("-10.50")))
}

func TestTransactionPatchApply(t *testing.T) {
	orig := Transaction{
		ID:          "abc",
		Type:        TypeExpense,
		Amount:      decimal.RequireFromString("50"),
		Description: "Rent",
		Status:      StatusPending,
	}
	desc := "Office rent"
	got := TransactionPatch{Description: &desc}.Apply(orig)

	assert.Equal(t, "Office rent", got.Description)
	assert.Equal(t, orig.ID, got.ID)
	assert.Equal(t, orig.Status, got.Status)
	assert.True(t, orig.Amount.Equal(got.Amount))
	assert.Equal(t, "Rent", orig.Description, "original must not change")

	assert.True(t, TransactionPatch{}.IsEmpty())
	assert.False(t, TransactionPatch{Description: &desc}.IsEmpty())
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, TypeIncome.Valid())
	assert.False(t, TransactionType("transfer").Valid())
	assert.True(t, StatusOverdue.Valid())
	assert.False(t, TransactionStatus("void").Valid())
	assert.True(t, PaymentBoleto.Valid())
	assert.False(t, PaymentMethod("cash").Valid())
	assert.True(t, ThemeSystem.Valid())
	assert.False(t, Theme("blue").Valid())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Overdue", StatusOverdue.Label())
	assert.Equal(t, "PIX", PaymentPix.Label())
	assert.Equal(t, "cash", PaymentMethod("cash").Label())
}

func TestWeekStart(t *testing.T) {
	assert.Equal(t, time.Monday, Settings{WeekStartsOn: 1}.WeekStart())
	assert.Equal(t, time.Sunday, Settings{WeekStartsOn: 9}.WeekStart())
}

func TestTransactionJSONShape(t *testing.T) {
	tx := Transaction{
		ID:          "t1",
		Type:        TypeIncome,
		Amount:      decimal.RequireFromString("100.00"),
		Date:        MustDate("2024-01-10"),
		DueDate:     MustDate("2024-01-10"),
		Status:      StatusPaid,
		Attachments: []string{},
	}
	data, err := json.Marshal(tx)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "2024-01-10", raw["dueDate"])
	assert.NotContains(t, raw, "paidAt")
	assert.Equal(t, []any{}, raw["attachments"])

	// Amounts written by the browser build are plain numbers.
	var back Transaction
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","amount":1234.5,"date":"2024-01-10"}`), &back))
	assert.True(t, back.Amount.Equal(decimal.RequireFromString("1234.5")))
}

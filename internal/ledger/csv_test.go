package ledger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financehub-dev/financehub/internal/model"
)

func sample() []model.Transaction {
	paid := model.MustDate("2024-03-05")
	return []model.Transaction{
		{
			ID:            "k3j9x0a1b2c3d",
			Type:          model.TypeExpense,
			Amount:        decimal.RequireFromString("1500.5"),
			CategoryID:    "cat-9",
			CostCenterID:  "cc-2",
			Date:          model.MustDate("2024-03-01"),
			DueDate:       model.MustDate("2024-03-05"),
			PaymentMethod: model.PaymentBoleto,
			Description:   `Rent, "main" office`,
			Status:        model.StatusPaid,
			IsRecurring:   true,
			PaidAt:        &paid,
			Attachments:   []string{},
			CreatedAt:     model.MustDate("2024-03-01"),
			UpdatedAt:     model.MustDate("2024-03-05"),
		},
		{
			ID:            "p0q9r8s7t6u5v",
			Type:          model.TypeIncome,
			Amount:        decimal.RequireFromString("99.99"),
			CategoryID:    "cat-1",
			CostCenterID:  "cc-3",
			Date:          model.MustDate("2024-03-10"),
			DueDate:       model.MustDate("2024-03-20"),
			PaymentMethod: model.PaymentPix,
			Description:   "Venda online",
			Status:        model.StatusPending,
			Attachments:   []string{},
			CreatedAt:     model.MustDate("2024-03-10"),
			UpdatedAt:     model.MustDate("2024-03-10"),
		},
	}
}

func TestRoundTrip(t *testing.T) {
	txs := sample()

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txs))
	assert.True(t, strings.HasPrefix(buf.String(), "id,type,amount,"))

	got, err := ReadTransactions(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i := range txs {
		assert.Equal(t, txs[i].ID, got[i].ID)
		assert.True(t, txs[i].Amount.Equal(got[i].Amount), "amount mismatch row %d", i)
		assert.Equal(t, txs[i].Description, got[i].Description)
		assert.Equal(t, txs[i].Date, got[i].Date)
		assert.Equal(t, txs[i].DueDate, got[i].DueDate)
		assert.Equal(t, txs[i].Status, got[i].Status)
		assert.Equal(t, txs[i].IsRecurring, got[i].IsRecurring)
		assert.Equal(t, txs[i].PaidAt, got[i].PaidAt)
		assert.Equal(t, txs[i].UpdatedAt, got[i].UpdatedAt)
	}
	assert.Nil(t, got[1].PaidAt)
}

func TestMarshalTransaction(t *testing.T) {
	row := MarshalTransaction(sample()[0])
	require.Len(t, row, numFields)
	assert.Equal(t, "1500.50", row[colAmount])
	assert.Equal(t, "true", row[colRecurring])
	assert.Equal(t, "2024-03-05", row[colPaidAt])
	assert.Empty(t, MarshalTransaction(sample()[1])[colPaidAt])
}

func TestUnmarshalErrors(t *testing.T) {
	good := MarshalTransaction(sample()[0])

	_, err := UnmarshalTransaction(good[:5])
	assert.ErrorContains(t, err, "expected 14 fields")

	bad := append([]string(nil), good...)
	bad[colAmount] = "lots"
	_, err = UnmarshalTransaction(bad)
	assert.ErrorContains(t, err, "parsing amount")

	bad = append([]string(nil), good...)
	bad[colDueDate] = "05/03/2024"
	_, err = UnmarshalTransaction(bad)
	assert.ErrorContains(t, err, "parsing date")

	bad = append([]string(nil), good...)
	bad[colRecurring] = "sometimes"
	_, err = UnmarshalTransaction(bad)
	assert.ErrorContains(t, err, "is_recurring")
}

func TestReadTransactionsHeaderAndBOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, sample()))

	got, err := ReadTransactions(strings.NewReader("\ufeff" + buf.String()))
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = ReadTransactions(strings.NewReader(strings.Replace(buf.String(), "id,type", "uid,type", 1)))
	assert.ErrorContains(t, err, "unexpected header")

	got, err = ReadTransactions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBackupRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.csv")
	require.NoError(t, Backup(path, sample()))

	got, err := Restore(path)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = Restore(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

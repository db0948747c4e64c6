// Package ledger is the lossless CSV codec used to back up and restore the
// transaction list.
package ledger

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/financehub-dev/financehub/internal/model"
)

// Header is the first row of a backup file.
const Header = "id,type,amount,category_id,cost_center_id,date,due_date,payment_method,description,status,is_recurring,paid_at,created_at,updated_at"

const (
	numFields     = 14
	colID         = 0
	colType       = 1
	colAmount     = 2
	colCategory   = 3
	colCostCenter = 4
	colDate       = 5
	colDueDate    = 6
	colMethod     = 7
	colDesc       = 8
	colStatus     = 9
	colRecurring  = 10
	colPaidAt     = 11
	colCreatedAt  = 12
	colUpdatedAt  = 13
)

const bom = "\ufeff"

// ReadTransactions reads every transaction from a backup. A leading UTF-8 BOM is skipped.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && string(head) == bom {
		_, _ = br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading backup CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	if strings.Join(records[0], ",") != Header {
		return nil, fmt.Errorf("unexpected header %q", strings.Join(records[0], ","))
	}

	txs := make([]model.Transaction, 0, len(records)-1)
	for i, rec := range records[1:] {
		tx, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// WriteTransactions writes txs to w, header included.
func WriteTransactions(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range txs {
		if err := cw.Write(MarshalTransaction(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = tx.ID
	row[colType] = string(tx.Type)
	row[colAmount] = tx.Amount.StringFixed(2)
	row[colCategory] = tx.CategoryID
	row[colCostCenter] = tx.CostCenterID
	row[colDate] = tx.Date.String()
	row[colDueDate] = tx.DueDate.String()
	row[colMethod] = string(tx.PaymentMethod)
	row[colDesc] = tx.Description
	row[colStatus] = string(tx.Status)
	row[colRecurring] = strconv.FormatBool(tx.IsRecurring)
	if tx.PaidAt != nil {
		row[colPaidAt] = tx.PaidAt.String()
	}
	row[colCreatedAt] = tx.CreatedAt.String()
	row[colUpdatedAt] = tx.UpdatedAt.String()
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	recurring, err := strconv.ParseBool(record[colRecurring])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing is_recurring %q: %w", record[colRecurring], err)
	}

	dates := make(map[int]model.Date, 5)
	for _, col := range []int{colDate, colDueDate, colPaidAt, colCreatedAt, colUpdatedAt} {
		if record[col] == "" {
			continue
		}
		d, err := model.ParseDate(record[col])
		if err != nil {
			return model.Transaction{}, err
		}
		dates[col] = d
	}

	tx := model.Transaction{
		ID:            record[colID],
		Type:          model.TransactionType(record[colType]),
		Amount:        amount,
		CategoryID:    record[colCategory],
		CostCenterID:  record[colCostCenter],
		Date:          dates[colDate],
		DueDate:       dates[colDueDate],
		PaymentMethod: model.PaymentMethod(record[colMethod]),
		Description:   record[colDesc],
		Status:        model.TransactionStatus(record[colStatus]),
		IsRecurring:   recurring,
		Attachments:   []string{},
		CreatedAt:     dates[colCreatedAt],
		UpdatedAt:     dates[colUpdatedAt],
	}
	if paid, ok := dates[colPaidAt]; ok {
		tx.PaidAt = &paid
	}
	return tx, nil
}

// Backup writes txs to the file at path.
func Backup(path string, txs []model.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating backup: %w", err)
	}
	if err := WriteTransactions(f, txs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Restore reads the transactions saved in the file at path.
func Restore(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening backup: %w", err)
	}
	defer f.Close()
	return ReadTransactions(f)
}

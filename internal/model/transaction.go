package model

import (
	"github.com/shopspring/decimal"
)

// TransactionType separates money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	StatusPending TransactionStatus = "pending"
	StatusPaid    TransactionStatus = "paid"
	StatusOverdue TransactionStatus = "overdue"
)

// Valid reports whether s is a known status.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// Label returns the display name of the status.
func (s TransactionStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusPaid:
		return "Paid"
	case StatusOverdue:
		return "Overdue"
	}
	return string(s)
}

// PaymentMethod is how a transaction is settled.
type PaymentMethod string

const (
	PaymentPix      PaymentMethod = "pix"
	PaymentBoleto   PaymentMethod = "boleto"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// PaymentMethods lists every method in display order.
var PaymentMethods = []PaymentMethod{PaymentPix, PaymentBoleto, PaymentCard, PaymentTransfer}

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// Label returns the display name of the payment method.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentPix:
		return "PIX"
	case PaymentBoleto:
		return "Boleto"
	case PaymentCard:
		return "Card"
	case PaymentTransfer:
		return "Transfer"
	}
	return string(m)
}

// Transaction is a single income or expense ledger entry.
type Transaction struct {
	ID            string            `json:"id"`
	Type          TransactionType   `json:"type"`
	Amount        decimal.Decimal   `json:"amount"`
	CategoryID    string            `json:"categoryId"`
	CostCenterID  string            `json:"costCenterId"`
	Date          Date              `json:"date"`
	DueDate       Date              `json:"dueDate"`
	PaymentMethod PaymentMethod     `json:"paymentMethod"`
	Description   string            `json:"description"`
	Status        TransactionStatus `json:"status"`
	IsRecurring   bool              `json:"isRecurring"`
	PaidAt        *Date             `json:"paidAt,omitempty"`
	Attachments   []string          `json:"attachments"`
	CreatedAt     Date              `json:"createdAt"`
	UpdatedAt     Date              `json:"updatedAt"`
}

// EffectiveDate is the day the money moved: paidAt when known, else date.
func (t Transaction) EffectiveDate() Date {
	if t.PaidAt != nil && !t.PaidAt.IsZero() {
		return *t.PaidAt
	}
	return t.Date
}

// Signed returns the amount with expenses negated.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionPatch carries the fields of a partial update. Nil fields are left untouched.
type TransactionPatch struct {
	Type          *TransactionType   `json:"type,omitempty"`
	Amount        *decimal.Decimal   `json:"amount,omitempty"`
	CategoryID    *string            `json:"categoryId,omitempty"`
	CostCenterID  *string            `json:"costCenterId,omitempty"`
	Date          *Date              `json:"date,omitempty"`
	DueDate       *Date              `json:"dueDate,omitempty"`
	PaymentMethod *PaymentMethod     `json:"paymentMethod,omitempty"`
	Description   *string            `json:"description,omitempty"`
	Status        *TransactionStatus `json:"status,omitempty"`
	IsRecurring   *bool              `json:"isRecurring,omitempty"`
	PaidAt        *Date              `json:"paidAt,omitempty"`
}

// Apply returns a copy of t with the patch's non-nil fields merged in.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.CostCenterID != nil {
		t.CostCenterID = *p.CostCenterID
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.PaymentMethod != nil {
		t.PaymentMethod = *p.PaymentMethod
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.IsRecurring != nil {
		t.IsRecurring = *p.IsRecurring
	}
	if p.PaidAt != nil {
		paid := *p.PaidAt
		t.PaidAt = &paid
	}
	return t
}

// IsEmpty reports whether the patch changes nothing.
func (p TransactionPatch) IsEmpty() bool {
	return p == TransactionPatch{}
}

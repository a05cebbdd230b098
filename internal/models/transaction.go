package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Wallet struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"owner_id"`
	Balance        int64     `json:"balance"`
	TotalPurchased int64     `json:"total_purchased"`
	TotalSpent     int64     `json:"total_spent"`
	Version        int64     `json:"-"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Transaction struct {
	ID            string           `json:"id"`
	WalletID      string           `json:"wallet_id"`
	EmployerID    string           `json:"employer_id"`
	VacancyID     string           `json:"vacancy_id,omitempty"`
	Type          TransactionType  `json:"type"`
	Status        StatusType       `json:"status"`
	CreditsAmount int64            `json:"credits_amount"`
	MoneyAmount   *decimal.Decimal `json:"money_amount,omitempty"`
	Description   string           `json:"description,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

type TransactionType string

const (
	TypePurchase   TransactionType = "purchase"
	TypeSpend      TransactionType = "spend"
	TypeRefund     TransactionType = "refund"
	TypeAdjustment TransactionType = "adjustment"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypePurchase, TypeSpend, TypeRefund, TypeAdjustment:
		return true
	}
	return false
}

type StatusType string

const (
	StatusPending   StatusType = "pending"
	StatusCompleted StatusType = "completed"
	StatusFailed    StatusType = "failed"
)

func (s StatusType) Valid() bool {
	return s == StatusPending || s == StatusCompleted || s == StatusFailed
}

type PurchaseResult struct {
	TransactionID string `json:"transaction_id"`
	CreditsAdded  int64  `json:"credits_added"`
	Balance       int64  `json:"balance"`
}

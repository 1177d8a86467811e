package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CashTxnType string

const (
	CashInflow  CashTxnType = "Inflow"
	CashOutflow CashTxnType = "Outflow"
)

// CashTxn is one row of the derived cash ledger. Rows linked to an expense or
// capital entry are owned by the ledger sync and carry the back-reference in a
// unique column, so "at most one cash row per source" is a schema constraint
// rather than query-time first-match. Rows without a back-reference are
// manually entered and never touched by sync.
type CashTxn struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// EntryRef is a stable external token for statements, independent of the
	// serial primary key.
	EntryRef string `gorm:"size:36;not null;uniqueIndex"`

	Date     time.Time       `gorm:"not null;index"`
	Type     CashTxnType     `gorm:"size:10;not null;index"`
	Category string          `gorm:"size:50;not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Method   string          `gorm:"size:50"`
	Notes    string          `gorm:"size:255"`

	RelatedVehicleID *uint    `gorm:"index"`
	RelatedVehicle   *Vehicle `gorm:"constraint:OnDelete:SET NULL"`
	RelatedRentalID  *uint    `gorm:"index"`
	RelatedRental    *Rental  `gorm:"constraint:OnDelete:SET NULL"`

	RelatedExpenseID *uint `gorm:"uniqueIndex"`
	RelatedCapitalID *uint `gorm:"uniqueIndex"`
}

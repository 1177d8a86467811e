package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CapitalType string

const (
	CapitalContribution CapitalType = "Contribution"
	CapitalWithdrawal   CapitalType = "Withdrawal"
)

// CapitalEntry records a partner putting money in or taking it out. Every
// create/update/delete also refreshes the derived cash ledger row. The partner
// reference is RESTRICT: history cannot be orphaned by deleting a partner.
type CapitalEntry struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	PartnerID uint     `gorm:"not null;index"`
	Partner   *Partner `gorm:"constraint:OnDelete:RESTRICT"`

	Date   time.Time       `gorm:"not null"`
	Type   CapitalType     `gorm:"size:15;not null"`
	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes  string          `gorm:"size:255"`
}

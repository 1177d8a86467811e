package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseCategory string

const (
	ExpenseParts      ExpenseCategory = "Parts"
	ExpenseRepair     ExpenseCategory = "Repair"
	ExpenseTowing     ExpenseCategory = "Towing"
	ExpenseDocs       ExpenseCategory = "Docs"
	ExpenseAuctionFee ExpenseCategory = "AuctionFee"
	ExpenseTransfer   ExpenseCategory = "Transfer"
	ExpenseInspection ExpenseCategory = "Inspection"
	ExpenseOther      ExpenseCategory = "Other"
)

// ValidExpenseCategory reports whether c is one of the enumerated categories.
func ValidExpenseCategory(c ExpenseCategory) bool {
	switch c {
	case ExpenseParts, ExpenseRepair, ExpenseTowing, ExpenseDocs,
		ExpenseAuctionFee, ExpenseTransfer, ExpenseInspection, ExpenseOther:
		return true
	}
	return false
}

// Expense belongs to exactly one vehicle. Every create/update/delete also
// refreshes the vehicle status and the derived cash ledger row.
type Expense struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	VehicleID uint     `gorm:"not null;index:idx_expense_vehicle_date"`
	Vehicle   *Vehicle `gorm:"constraint:OnDelete:CASCADE"`
	Date      time.Time `gorm:"not null;index:idx_expense_vehicle_date"`
	VendorID  *uint
	Vendor    *Vendor `gorm:"constraint:OnDelete:SET NULL"`

	Category    ExpenseCategory `gorm:"size:20;not null"`
	Description string          `gorm:"size:255;not null"`
	InvoiceNo   string          `gorm:"size:50"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaidWith    string          `gorm:"size:50"`
	Notes       string          `gorm:"size:255"`
}

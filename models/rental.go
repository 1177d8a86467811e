package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingDay is the weekday a rental charges rent.
type BillingDay string

const (
	BillingMon BillingDay = "Mon"
	BillingTue BillingDay = "Tue"
	BillingWed BillingDay = "Wed"
	BillingThu BillingDay = "Thu"
	BillingFri BillingDay = "Fri"
	BillingSat BillingDay = "Sat"
	BillingSun BillingDay = "Sun"
)

var weekdayBilling = map[time.Weekday]BillingDay{
	time.Monday:    BillingMon,
	time.Tuesday:   BillingTue,
	time.Wednesday: BillingWed,
	time.Thursday:  BillingThu,
	time.Friday:    BillingFri,
	time.Saturday:  BillingSat,
	time.Sunday:    BillingSun,
}

// BillingDayFromWeekday maps a calendar weekday to its billing-day value.
func BillingDayFromWeekday(w time.Weekday) BillingDay {
	return weekdayBilling[w]
}

type RentalStatus string

const (
	RentalActive RentalStatus = "Active"
	RentalPaused RentalStatus = "Paused"
	RentalClosed RentalStatus = "Closed"
)

// Rental pairs a vehicle with a driver for a weekly rate. It exclusively owns
// its RentPayments: deleting a rental deletes them.
type Rental struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	VehicleID uint     `gorm:"not null;index"`
	Vehicle   *Vehicle `gorm:"constraint:OnDelete:CASCADE"`
	DriverID  uint     `gorm:"not null;index"`
	Driver    *Driver  `gorm:"constraint:OnDelete:CASCADE"`

	StartDate  time.Time `gorm:"not null"`
	EndDate    *time.Time
	WeeklyRate decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Deposit    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	BillingDay BillingDay      `gorm:"size:3;not null"`
	Status     RentalStatus    `gorm:"size:10;not null;default:Active;index"`
	Notes      string          `gorm:"size:255"`

	Payments []RentPayment `gorm:"constraint:OnDelete:CASCADE"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"

	"frota/pkg/money"
)

// RentPayment covers one inclusive billing period of a rental. WeeklyRate is a
// snapshot taken at creation time, so later rate changes never rewrite
// historical periods.
type RentPayment struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	RentalID uint    `gorm:"not null;index;uniqueIndex:idx_rent_payment_period"`
	Rental   *Rental `gorm:"constraint:OnDelete:CASCADE"`

	PeriodStart time.Time `gorm:"not null;uniqueIndex:idx_rent_payment_period"`
	PeriodEnd   time.Time `gorm:"not null;uniqueIndex:idx_rent_payment_period"`

	WeeklyRate decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Weeks      int             `gorm:"not null;default:1"`
	DueAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaidAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	PaymentDate *time.Time
	LateFee     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Method      string          `gorm:"size:50"`
	Notes       string          `gorm:"size:255"`
}

// PeriodDays is the inclusive length of the period in calendar days. Only the
// dates count; clock times and DST shifts in caller-supplied locations don't
// change the result.
func (p *RentPayment) PeriodDays() int {
	start := time.Date(p.PeriodStart.Year(), p.PeriodStart.Month(), p.PeriodStart.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(p.PeriodEnd.Year(), p.PeriodEnd.Month(), p.PeriodEnd.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

// RecomputeTotals derives weeks and due amount from the period and rate, and
// canonicalizes the stored amounts. Must run once at creation and again after
// any change to the period, rate, paid amount or late fee.
func (p *RentPayment) RecomputeTotals() {
	days := p.PeriodDays()
	weeks := (days + 6) / 7
	if weeks < 1 {
		weeks = 1
	}
	p.Weeks = weeks
	p.WeeklyRate = money.Round(p.WeeklyRate)
	p.DueAmount = money.Round(p.WeeklyRate.Mul(decimal.NewFromInt(int64(weeks))))
	p.PaidAmount = money.Round(p.PaidAmount)
	p.LateFee = money.Round(p.LateFee)
}

// Balance is due + late fee - paid.
func (p *RentPayment) Balance() decimal.Decimal {
	return money.Round(p.DueAmount.Add(p.LateFee).Sub(p.PaidAmount))
}

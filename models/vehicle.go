package models

import (
	"time"

	"github.com/shopspring/decimal"

	"frota/pkg/money"
)

// VehicleStatus is derived from the vehicle's current data, never set directly.
type VehicleStatus string

const (
	VehicleStock  VehicleStatus = "STOCK"
	VehicleRented VehicleStatus = "RENTED"
	VehicleSold   VehicleStatus = "SOLD"
)

// AllVehicleStatuses lists every status in a stable order, used by reports
// that must emit zero-count buckets.
func AllVehicleStatuses() []VehicleStatus {
	return []VehicleStatus{VehicleStock, VehicleRented, VehicleSold}
}

// Vehicle is a fleet unit. It exclusively owns its Expenses and Rentals:
// deleting a vehicle deletes both.
type Vehicle struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Plate           string `gorm:"size:10;not null;uniqueIndex"`
	Renavam         string `gorm:"size:20;not null;uniqueIndex"`
	VIN             string `gorm:"size:20;not null;uniqueIndex"`
	Make            string `gorm:"size:50;not null;index:idx_vehicle_make_model"`
	Model           string `gorm:"size:50;not null;index:idx_vehicle_make_model"`
	ModelYear       int    `gorm:"not null"`
	ManufactureYear int    `gorm:"not null"`
	Color           string `gorm:"size:30"`

	AcquisitionDate  time.Time       `gorm:"not null"`
	AcquisitionPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	SaleDate  *time.Time
	SalePrice *decimal.Decimal `gorm:"type:decimal(12,2)"`
	SaleFees  *decimal.Decimal `gorm:"type:decimal(12,2)"`

	CurrentDriverID *uint   `gorm:"index"`
	CurrentDriver   *Driver `gorm:"constraint:OnDelete:SET NULL"`
	OdometerIn      *int
	Notes           string `gorm:"size:255"`

	// Status is a cached copy of ComputeStatus, refreshed by SyncStatus on
	// every mutation path before the row is read or persisted.
	Status VehicleStatus `gorm:"size:10;not null;default:STOCK;index"`

	Expenses []Expense `gorm:"constraint:OnDelete:CASCADE"`
	Rentals  []Rental  `gorm:"constraint:OnDelete:CASCADE"`
}

// ComputeStatus derives the status from current data: SOLD once a sale date
// exists (regardless of driver assignment), RENTED while a driver is assigned,
// STOCK otherwise.
func (v *Vehicle) ComputeStatus() VehicleStatus {
	if v.SaleDate != nil {
		return VehicleSold
	}
	if v.CurrentDriverID != nil {
		return VehicleRented
	}
	return VehicleStock
}

// SyncStatus writes the derived status back into the column.
func (v *Vehicle) SyncStatus() {
	v.Status = v.ComputeStatus()
}

// TotalExpenses sums the loaded expense amounts, rounding the total once.
// Zero when no expenses are loaded.
func (v *Vehicle) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for i := range v.Expenses {
		total = total.Add(v.Expenses[i].Amount)
	}
	return money.Round(total)
}

// TotalCost is acquisition price plus total expenses.
func (v *Vehicle) TotalCost() decimal.Decimal {
	return money.Round(v.AcquisitionPrice.Add(v.TotalExpenses()))
}

// SaleNet is sale price minus sale fees, or nil while the vehicle is unsold.
func (v *Vehicle) SaleNet() *decimal.Decimal {
	if v.SalePrice == nil {
		return nil
	}
	net := money.Round(v.SalePrice.Sub(money.FromNull(v.SaleFees)))
	return &net
}

// Profit is sale net minus total cost, or nil while the vehicle is unsold.
func (v *Vehicle) Profit() *decimal.Decimal {
	net := v.SaleNet()
	if net == nil {
		return nil
	}
	p := money.Round(net.Sub(v.TotalCost()))
	return &p
}

// ROI is profit over total cost. Nil when there is no profit figure or the
// total cost is zero; a zero-cost vehicle has no meaningful ROI and must not
// trip a division error.
func (v *Vehicle) ROI() *decimal.Decimal {
	profit := v.Profit()
	if profit == nil {
		return nil
	}
	cost := v.TotalCost()
	if cost.IsZero() {
		return nil
	}
	r := money.Round(profit.Div(cost))
	return &r
}

// VehicleFinancials carries the derived rollup values. Optional figures are
// nil for unsold vehicles.
type VehicleFinancials struct {
	TotalExpenses decimal.Decimal  `json:"total_expenses"`
	TotalCost     decimal.Decimal  `json:"total_cost"`
	SaleNet       *decimal.Decimal `json:"sale_net"`
	Profit        *decimal.Decimal `json:"profit"`
	ROI           *decimal.Decimal `json:"roi"`
}

// Financials recomputes the status and returns the full rollup. Never stored;
// computed on every read.
func (v *Vehicle) Financials() VehicleFinancials {
	v.SyncStatus()
	return VehicleFinancials{
		TotalExpenses: v.TotalExpenses(),
		TotalCost:     v.TotalCost(),
		SaleNet:       v.SaleNet(),
		Profit:        v.Profit(),
		ROI:           v.ROI(),
	}
}

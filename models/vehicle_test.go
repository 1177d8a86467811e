package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestComputeStatus(t *testing.T) {
	driverID := uint(4)

	v := Vehicle{}
	if got := v.ComputeStatus(); got != VehicleStock {
		t.Fatalf("no sale, no driver: status = %s, want STOCK", got)
	}

	v.CurrentDriverID = &driverID
	if got := v.ComputeStatus(); got != VehicleRented {
		t.Fatalf("driver assigned: status = %s, want RENTED", got)
	}

	// Sale wins over driver assignment.
	v.SaleDate = datePtr(2024, time.June, 1)
	if got := v.ComputeStatus(); got != VehicleSold {
		t.Fatalf("sale date set: status = %s, want SOLD", got)
	}

	v.SyncStatus()
	if v.Status != VehicleSold {
		t.Fatalf("SyncStatus did not write the derived value")
	}
}

func TestFinancialsUnsold(t *testing.T) {
	v := Vehicle{AcquisitionPrice: dec("30000.00")}
	fin := v.Financials()
	if !fin.TotalCost.Equal(dec("30000.00")) {
		t.Fatalf("total_cost = %s, want 30000.00", fin.TotalCost)
	}
	if fin.SaleNet != nil || fin.Profit != nil || fin.ROI != nil {
		t.Fatalf("unsold vehicle must have nil sale_net/profit/roi")
	}
}

func TestFinancialsSold(t *testing.T) {
	salePrice := dec("35000.00")
	saleFees := dec("500.00")
	v := Vehicle{
		AcquisitionPrice: dec("30000.00"),
		SaleDate:         datePtr(2024, time.June, 1),
		SalePrice:        &salePrice,
		SaleFees:         &saleFees,
	}
	fin := v.Financials()
	if fin.SaleNet == nil || !fin.SaleNet.Equal(dec("34500.00")) {
		t.Fatalf("sale_net = %v, want 34500.00", fin.SaleNet)
	}
	if fin.Profit == nil || !fin.Profit.Equal(dec("4500.00")) {
		t.Fatalf("profit = %v, want 4500.00", fin.Profit)
	}
	if fin.ROI == nil || !fin.ROI.Equal(dec("0.15")) {
		t.Fatalf("roi = %v, want 0.15", fin.ROI)
	}
}

func TestROINilOnZeroCost(t *testing.T) {
	salePrice := dec("1000.00")
	v := Vehicle{
		AcquisitionPrice: dec("0"),
		SaleDate:         datePtr(2024, time.June, 1),
		SalePrice:        &salePrice,
	}
	fin := v.Financials()
	if fin.Profit == nil || !fin.Profit.Equal(dec("1000.00")) {
		t.Fatalf("profit = %v, want 1000.00", fin.Profit)
	}
	if fin.ROI != nil {
		t.Fatalf("roi with zero total cost must be nil, got %s", fin.ROI)
	}
}

func TestTotalExpensesRoundsTheTotalOnce(t *testing.T) {
	v := Vehicle{
		AcquisitionPrice: dec("100.00"),
		Expenses: []Expense{
			{Amount: dec("0.004")},
			{Amount: dec("0.004")},
		},
	}
	if got := v.TotalExpenses(); !got.Equal(dec("0.01")) {
		t.Fatalf("total_expenses = %s, want 0.01 (rounded once)", got)
	}
}

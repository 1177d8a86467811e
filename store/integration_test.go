package store

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"frota/models"
)

// setupIntegrationDB opens the real database. Integration tests are opt-in:
// set DB_DSN_TEST=1 and DB_DSN to run them.
func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		t.Fatal("DB_DSN must be set when DB_DSN_TEST=1")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := gdb.AutoMigrate(
		&models.Partner{}, &models.Driver{}, &models.Vendor{}, &models.Vehicle{},
		&models.Rental{}, &models.Expense{}, &models.RentPayment{},
		&models.CapitalEntry{}, &models.CashTxn{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func newTestVehicle(t *testing.T, s *Store) *models.Vehicle {
	t.Helper()
	suffix := time.Now().UnixNano() % 1_000_000_000
	v := &models.Vehicle{
		Plate:            fmt.Sprintf("T%06d", suffix%1_000_000),
		Renavam:          fmt.Sprintf("RN%09d", suffix),
		VIN:              fmt.Sprintf("VIN%09d", suffix),
		Make:             "Fiat",
		Model:            "Uno",
		ModelYear:        2020,
		ManufactureYear:  2019,
		AcquisitionDate:  time.Date(2023, time.January, 10, 0, 0, 0, 0, time.UTC),
		AcquisitionPrice: dec("30000.00"),
	}
	if err := s.CreateVehicle(v); err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	t.Cleanup(func() { _ = s.DeleteVehicle(v.ID) })
	return v
}

func TestLedgerSyncIdempotentIntegration(t *testing.T) {
	gdb := setupIntegrationDB(t)
	s := New(gdb)
	v := newTestVehicle(t, s)

	e := &models.Expense{
		VehicleID:   v.ID,
		Date:        time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC),
		Category:    models.ExpenseRepair,
		Description: "brake job",
		Amount:      dec("850.00"),
		PaidWith:    "pix",
	}
	if err := s.CreateExpense(e); err != nil {
		t.Fatalf("create expense: %v", err)
	}

	// A second sync with the same state must not create a duplicate.
	e.Notes = "warranty repair"
	if err := s.UpdateExpense(e); err != nil {
		t.Fatalf("update expense: %v", err)
	}

	var cnt int64
	if err := gdb.Model(&models.CashTxn{}).Where("related_expense_id = ?", e.ID).Count(&cnt).Error; err != nil {
		t.Fatalf("count cash rows: %v", err)
	}
	if cnt != 1 {
		t.Fatalf("expected exactly one linked cash row, got %d", cnt)
	}

	txn, err := s.GetCashForExpense(e.ID)
	if err != nil {
		t.Fatalf("get cash for expense: %v", err)
	}
	if txn.Type != models.CashOutflow || !txn.Amount.Equal(dec("850.00")) {
		t.Fatalf("cash row does not reflect the expense: %+v", txn)
	}
	if txn.Notes != "warranty repair" {
		t.Fatalf("second sync must overwrite fields in place, notes = %q", txn.Notes)
	}
}

func TestLedgerRemovalIntegration(t *testing.T) {
	gdb := setupIntegrationDB(t)
	s := New(gdb)
	v := newTestVehicle(t, s)

	e := &models.Expense{
		VehicleID:   v.ID,
		Date:        time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC),
		Category:    models.ExpenseDocs,
		Description: "transfer paperwork",
		Amount:      dec("120.00"),
	}
	if err := s.CreateExpense(e); err != nil {
		t.Fatalf("create expense: %v", err)
	}
	expenseID := e.ID

	if err := s.DeleteExpense(expenseID); err != nil {
		t.Fatalf("delete expense: %v", err)
	}
	if _, err := s.GetCashForExpense(expenseID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cash row must be gone after delete, got %v", err)
	}
	// Removing again is a no-op, not an error.
	if err := RemoveCashForExpense(gdb, expenseID); err != nil {
		t.Fatalf("second remove must be a no-op, got %v", err)
	}
}

func TestCapitalSyncIntegration(t *testing.T) {
	gdb := setupIntegrationDB(t)
	s := New(gdb)

	p := &models.Partner{Name: fmt.Sprintf("Partner %d", time.Now().UnixNano())}
	if err := s.CreatePartner(p); err != nil {
		t.Fatalf("create partner: %v", err)
	}
	t.Cleanup(func() { gdb.Delete(p) })

	entry := &models.CapitalEntry{
		PartnerID: p.ID,
		Date:      time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Type:      models.CapitalContribution,
		Amount:    dec("1000.00"),
	}
	if err := s.CreateCapitalEntry(entry); err != nil {
		t.Fatalf("create capital entry: %v", err)
	}
	t.Cleanup(func() { _ = s.DeleteCapitalEntry(entry.ID) })

	txn, err := s.GetCashForCapital(entry.ID)
	if err != nil {
		t.Fatalf("get cash for capital: %v", err)
	}
	if txn.Type != models.CashInflow || txn.Category != "Capital" {
		t.Fatalf("contribution must sync as Capital inflow: %+v", txn)
	}
}

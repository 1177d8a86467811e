package billing

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"frota/store"
)

// newMockDB wires gorm's postgres dialect onto a sqlmock connection so a full
// cycle runs without a database.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		t.Fatalf("open gorm over sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb, mock
}

func TestRunCycleContinuesAfterRentalFailure(t *testing.T) {
	gdb, mock := newMockDB(t)

	// Two active rentals billing on the reference Wednesday. The first row is
	// broken (negative rate, rejected at payment validation); the second is
	// fine and must still be billed.
	start := date(2023, time.June, 1)
	rentals := sqlmock.NewRows([]string{
		"id", "vehicle_id", "driver_id", "start_date", "end_date",
		"weekly_rate", "deposit", "billing_day", "status",
	}).
		AddRow(1, 1, 1, start, nil, "-100.00", "0", "Wed", "Active").
		AddRow(2, 2, 2, start, nil, "500.00", "0", "Wed", "Active")

	mock.ExpectQuery(`SELECT \* FROM "rentals" WHERE status = \$1`).
		WillReturnRows(rentals)
	// Rental 1: period not yet covered, then the create fails.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "rent_payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	// Rental 2 runs to completion regardless.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "rent_payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "rent_payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	created, err := RunCycle(gdb, wednesday)
	if err == nil {
		t.Fatalf("the broken rental's failure must be reported")
	}
	if !errors.Is(err, store.ErrValidation) {
		t.Fatalf("joined error should carry the validation failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "rental 1") {
		t.Fatalf("error should name the failing rental, got %v", err)
	}
	if len(created) != 1 || created[0] != 11 {
		t.Fatalf("the healthy rental must still be billed, created = %v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

package store

import (
	"errors"
	"testing"
	"time"

	"frota/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateRentPaymentRejectsReversedPeriod(t *testing.T) {
	s := New(nil) // validation runs before any db access
	p := models.RentPayment{
		RentalID:    1,
		PeriodStart: date(2024, time.January, 10),
		PeriodEnd:   date(2024, time.January, 3),
		WeeklyRate:  dec("500.00"),
	}
	err := s.CreateRentPayment(&p)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("reversed period must fail validation, got %v", err)
	}
}

func TestCreateRentPaymentRejectsNegativeAmounts(t *testing.T) {
	s := New(nil)
	p := models.RentPayment{
		RentalID:    1,
		PeriodStart: date(2024, time.January, 1),
		PeriodEnd:   date(2024, time.January, 7),
		WeeklyRate:  dec("-1.00"),
	}
	if err := s.CreateRentPayment(&p); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative weekly rate must fail validation, got %v", err)
	}
}

func TestValidateExpenseRejectsBadInput(t *testing.T) {
	bad := []models.Expense{
		{VehicleID: 1, Category: models.ExpenseParts, Amount: dec("-5.00")},
		{VehicleID: 1, Category: "Gifts", Amount: dec("5.00")},
		{VehicleID: 0, Category: models.ExpenseParts, Amount: dec("5.00")},
	}
	for i := range bad {
		if err := validateExpense(&bad[i]); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d should fail validation, got %v", i, err)
		}
	}
}

func TestValidateExpenseCanonicalizesAmount(t *testing.T) {
	e := models.Expense{VehicleID: 1, Category: models.ExpenseParts, Amount: dec("5.005")}
	if err := validateExpense(&e); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !e.Amount.Equal(dec("5.01")) {
		t.Fatalf("amount = %s, want 5.01 after canonicalization", e.Amount)
	}
}

func TestValidateCapitalEntryRejectsBadInput(t *testing.T) {
	bad := []models.CapitalEntry{
		{PartnerID: 1, Type: models.CapitalContribution, Amount: dec("-1.00")},
		{PartnerID: 1, Type: "Loan", Amount: dec("1.00")},
		{PartnerID: 0, Type: models.CapitalWithdrawal, Amount: dec("1.00")},
	}
	for i := range bad {
		if err := validateCapitalEntry(&bad[i]); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d should fail validation, got %v", i, err)
		}
	}
}

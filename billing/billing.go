// Package billing generates the next weekly rent-payment period for every
// active rental whose billing weekday matches the invocation date. Safe to
// re-invoke on the same day: already-covered periods are skipped.
package billing

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"frota/models"
	"frota/store"
)

// Period is the clipped inclusive date range a generated payment will cover.
type Period struct {
	Start time.Time
	End   time.Time
}

// PeriodFor computes the billing period a rental is owed for a given day.
// The raw period is the seven days ending yesterday; it is clipped to the
// rental's own start and end dates. ok is false when no period is due: the
// rental has not started yet, or clipping left nothing.
func PeriodFor(r *models.Rental, today time.Time) (Period, bool) {
	end := today.AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -6)

	if r.StartDate.After(end) {
		return Period{}, false
	}
	if r.StartDate.After(start) {
		start = r.StartDate
	}
	if r.EndDate != nil && r.EndDate.Before(end) {
		end = *r.EndDate
	}
	if start.After(end) {
		return Period{}, false
	}
	return Period{Start: start, End: end}, true
}

// RunCycle creates the due payment for each matching rental and returns the
// new payment ids. Each rental commits on its own: a failure on one rental is
// logged and collected but the loop continues, so one broken rental cannot
// starve the rest of the fleet's billing. Payments created before a failure
// stay committed.
func RunCycle(db *gorm.DB, today time.Time) ([]uint, error) {
	s := store.New(db)
	target := models.BillingDayFromWeekday(today.Weekday())

	rentals, err := s.ActiveRentals()
	if err != nil {
		return nil, fmt.Errorf("list active rentals: %w", err)
	}

	var created []uint
	var failures []error
	for i := range rentals {
		r := &rentals[i]
		if r.BillingDay != target {
			continue
		}
		id, ok, err := generateFor(s, r, today)
		if err != nil {
			log.Printf("billing: rental %d: %v", r.ID, err)
			failures = append(failures, fmt.Errorf("rental %d: %w", r.ID, err))
			continue
		}
		if ok {
			created = append(created, id)
		}
	}
	return created, errors.Join(failures...)
}

// generateFor creates one rental's payment unless the period is degenerate or
// already covered. The existence check runs against committed state, including
// payments created earlier in the same cycle.
func generateFor(s *store.Store, r *models.Rental, today time.Time) (uint, bool, error) {
	period, ok := PeriodFor(r, today)
	if !ok {
		return 0, false, nil
	}
	exists, err := s.ExistsForPeriod(r.ID, period.Start, period.End)
	if err != nil {
		return 0, false, err
	}
	if exists {
		return 0, false, nil
	}
	payment := &models.RentPayment{
		RentalID:    r.ID,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		WeeklyRate:  r.WeeklyRate,
		PaidAmount:  decimal.Zero,
		LateFee:     decimal.Zero,
	}
	if err := s.CreateRentPayment(payment); err != nil {
		return 0, false, err
	}
	return payment.ID, true, nil
}

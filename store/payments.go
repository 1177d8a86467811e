package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"frota/models"
)

func validateRentPayment(p *models.RentPayment) error {
	if p.RentalID == 0 {
		return fmt.Errorf("%w: rent payment requires a rental", ErrValidation)
	}
	if p.PeriodEnd.Before(p.PeriodStart) {
		return fmt.Errorf("%w: period_end before period_start", ErrValidation)
	}
	if p.WeeklyRate.IsNegative() || p.PaidAmount.IsNegative() || p.LateFee.IsNegative() {
		return fmt.Errorf("%w: rent payment amounts must not be negative", ErrValidation)
	}
	return nil
}

// CreateRentPayment validates, derives weeks/due/balance and inserts. Callers
// generating periods must check ExistsForPeriod first; the composite unique
// index backs that up at the schema level.
func (s *Store) CreateRentPayment(p *models.RentPayment) error {
	if err := validateRentPayment(p); err != nil {
		return err
	}
	p.RecomputeTotals()
	return s.db.Create(p).Error
}

// UpdateRentPayment persists changes, re-deriving the totals first.
func (s *Store) UpdateRentPayment(p *models.RentPayment) error {
	if p.ID == 0 {
		return fmt.Errorf("%w: rent payment id required", ErrValidation)
	}
	if err := validateRentPayment(p); err != nil {
		return err
	}
	p.RecomputeTotals()
	return s.db.Save(p).Error
}

func (s *Store) DeleteRentPayment(id uint) error {
	res := s.db.Delete(&models.RentPayment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ExistsForPeriod reports whether the rental already has a payment covering
// exactly this period.
func (s *Store) ExistsForPeriod(rentalID uint, periodStart, periodEnd time.Time) (bool, error) {
	var cnt int64
	err := s.db.Model(&models.RentPayment{}).
		Where("rental_id = ? AND period_start = ? AND period_end = ?", rentalID, periodStart, periodEnd).
		Count(&cnt).Error
	return cnt > 0, err
}

// GenerateForPeriod creates a payment for an explicit period using the
// rental's current weekly rate as the snapshot. Duplicated periods are
// rejected before insert.
func (s *Store) GenerateForPeriod(rentalID uint, periodStart, periodEnd time.Time) (*models.RentPayment, error) {
	exists, err := s.ExistsForPeriod(rentalID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: payment for period already exists", ErrValidation)
	}
	var rental models.Rental
	if err := s.db.First(&rental, rentalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	payment := &models.RentPayment{
		RentalID:    rentalID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		WeeklyRate:  rental.WeeklyRate,
		PaidAmount:  decimal.Zero,
		LateFee:     decimal.Zero,
	}
	if err := s.CreateRentPayment(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// PaymentFilter narrows ListRentPayments.
type PaymentFilter struct {
	RentalID uint
	OpenOnly bool
}

func (s *Store) ListRentPayments(f PaymentFilter) ([]models.RentPayment, error) {
	q := s.db.Model(&models.RentPayment{})
	if f.RentalID != 0 {
		q = q.Where("rental_id = ?", f.RentalID)
	}
	if f.OpenOnly {
		q = q.Where("paid_amount < due_amount + late_fee")
	}
	var rows []models.RentPayment
	err := q.Order("period_start, id").Find(&rows).Error
	return rows, err
}

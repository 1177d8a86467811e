package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"frota/models"
)

func validateRental(r *models.Rental) error {
	if r.VehicleID == 0 || r.DriverID == 0 {
		return fmt.Errorf("%w: rental requires a vehicle and a driver", ErrValidation)
	}
	if r.WeeklyRate.IsNegative() || r.Deposit.IsNegative() {
		return fmt.Errorf("%w: rental amounts must not be negative", ErrValidation)
	}
	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return fmt.Errorf("%w: rental end_date before start_date", ErrValidation)
	}
	switch r.BillingDay {
	case models.BillingMon, models.BillingTue, models.BillingWed, models.BillingThu,
		models.BillingFri, models.BillingSat, models.BillingSun:
	default:
		return fmt.Errorf("%w: unknown billing day %q", ErrValidation, r.BillingDay)
	}
	return nil
}

// CreateRental inserts the rental and assigns the driver to the vehicle,
// refreshing the vehicle's derived status in the same transaction.
func (s *Store) CreateRental(r *models.Rental) error {
	if err := validateRental(r); err != nil {
		return err
	}
	if r.Status == "" {
		r.Status = models.RentalActive
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(r).Error; err != nil {
			return err
		}
		if r.Status == models.RentalActive {
			if err := assignDriver(tx, r.VehicleID, &r.DriverID); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateRental persists changes. Closing a rental releases the driver from the
// vehicle and re-derives the vehicle status.
func (s *Store) UpdateRental(r *models.Rental) error {
	if r.ID == 0 {
		return fmt.Errorf("%w: rental id required", ErrValidation)
	}
	if err := validateRental(r); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(r).Error; err != nil {
			return err
		}
		if r.Status == models.RentalClosed {
			return assignDriver(tx, r.VehicleID, nil)
		}
		if r.Status == models.RentalActive {
			return assignDriver(tx, r.VehicleID, &r.DriverID)
		}
		return nil
	})
}

// DeleteRental removes the rental and every payment it owns.
func (s *Store) DeleteRental(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var r models.Rental
		if err := tx.First(&r, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("rental_id = ?", r.ID).Delete(&models.RentPayment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&r).Error; err != nil {
			return err
		}
		return assignDriver(tx, r.VehicleID, nil)
	})
}

// assignDriver sets or clears the vehicle's current driver and re-derives the
// status column. Missing vehicles are a no-op (best effort, same policy as
// ledger sync).
func assignDriver(tx *gorm.DB, vehicleID uint, driverID *uint) error {
	var v models.Vehicle
	if err := tx.First(&v, vehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	v.CurrentDriverID = driverID
	v.SyncStatus()
	return tx.Model(&v).Select("current_driver_id", "status").Updates(map[string]interface{}{
		"current_driver_id": v.CurrentDriverID,
		"status":            v.Status,
	}).Error
}

// ActiveRentals lists rentals currently in Active status, ordered by id so the
// billing generator processes them deterministically.
func (s *Store) ActiveRentals() ([]models.Rental, error) {
	var rows []models.Rental
	err := s.db.Where("status = ?", models.RentalActive).Order("id").Find(&rows).Error
	return rows, err
}

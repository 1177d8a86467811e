package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"frota/models"
	"frota/pkg/money"
)

func validateVehicle(v *models.Vehicle) error {
	if v.AcquisitionPrice.IsNegative() {
		return fmt.Errorf("%w: acquisition price must not be negative", ErrValidation)
	}
	if v.SalePrice != nil && v.SalePrice.IsNegative() {
		return fmt.Errorf("%w: sale price must not be negative", ErrValidation)
	}
	if v.SaleFees != nil && v.SaleFees.IsNegative() {
		return fmt.Errorf("%w: sale fees must not be negative", ErrValidation)
	}
	if v.ManufactureYear != 0 && v.ModelYear < v.ManufactureYear {
		return fmt.Errorf("%w: model year before manufacture year", ErrValidation)
	}
	v.AcquisitionPrice = money.Round(v.AcquisitionPrice)
	if v.SalePrice != nil {
		p := money.Round(*v.SalePrice)
		v.SalePrice = &p
	}
	if v.SaleFees != nil {
		f := money.Round(*v.SaleFees)
		v.SaleFees = &f
	}
	return nil
}

// CreateVehicle derives the status before the first persist.
func (s *Store) CreateVehicle(v *models.Vehicle) error {
	if err := validateVehicle(v); err != nil {
		return err
	}
	v.SyncStatus()
	return s.db.Create(v).Error
}

// UpdateVehicle re-derives the status after any mutation to sale or driver
// fields, before the row is persisted.
func (s *Store) UpdateVehicle(v *models.Vehicle) error {
	if v.ID == 0 {
		return fmt.Errorf("%w: vehicle id required", ErrValidation)
	}
	if err := validateVehicle(v); err != nil {
		return err
	}
	v.SyncStatus()
	return s.db.Save(v).Error
}

// GetVehicle loads a vehicle with its expenses, status freshly derived.
func (s *Store) GetVehicle(id uint) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := s.db.Preload("Expenses").First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	v.SyncStatus()
	return &v, nil
}

// GetVehicleFinancials returns the derived rollup for one vehicle.
func (s *Store) GetVehicleFinancials(id uint) (*models.VehicleFinancials, error) {
	v, err := s.GetVehicle(id)
	if err != nil {
		return nil, err
	}
	fin := v.Financials()
	return &fin, nil
}

// DeleteVehicle removes the vehicle and everything it owns: expenses (with
// their linked cash rows), rentals and their payments. Cash rows that only
// reference the vehicle survive with the reference nulled by the FK.
func (s *Store) DeleteVehicle(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var v models.Vehicle
		if err := tx.First(&v, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var expenseIDs []uint
		if err := tx.Model(&models.Expense{}).Where("vehicle_id = ?", v.ID).Pluck("id", &expenseIDs).Error; err != nil {
			return err
		}
		for _, eid := range expenseIDs {
			if err := RemoveCashForExpense(tx, eid); err != nil {
				return err
			}
		}
		if err := tx.Where("vehicle_id = ?", v.ID).Delete(&models.Expense{}).Error; err != nil {
			return err
		}

		var rentalIDs []uint
		if err := tx.Model(&models.Rental{}).Where("vehicle_id = ?", v.ID).Pluck("id", &rentalIDs).Error; err != nil {
			return err
		}
		if len(rentalIDs) > 0 {
			if err := tx.Where("rental_id IN ?", rentalIDs).Delete(&models.RentPayment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("vehicle_id = ?", v.ID).Delete(&models.Rental{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&v).Error
	})
}

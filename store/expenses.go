package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"frota/models"
	"frota/pkg/money"
)

func validateExpense(e *models.Expense) error {
	if e.Amount.IsNegative() {
		return fmt.Errorf("%w: expense amount must not be negative", ErrValidation)
	}
	if !models.ValidExpenseCategory(e.Category) {
		return fmt.Errorf("%w: unknown expense category %q", ErrValidation, e.Category)
	}
	if e.VehicleID == 0 {
		return fmt.Errorf("%w: expense requires a vehicle", ErrValidation)
	}
	e.Amount = money.Round(e.Amount)
	return nil
}

// touchVehicle recomputes and persists the vehicle's derived status. A missing
// vehicle is a no-op; FK enforcement catches genuinely dangling references.
func touchVehicle(tx *gorm.DB, vehicleID uint) error {
	var v models.Vehicle
	if err := tx.First(&v, vehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	v.SyncStatus()
	return tx.Model(&v).Update("status", v.Status).Error
}

// CreateExpense writes the expense, refreshes the vehicle status and syncs the
// cash ledger, all in one transaction.
func (s *Store) CreateExpense(e *models.Expense) error {
	if err := validateExpense(e); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		if err := touchVehicle(tx, e.VehicleID); err != nil {
			return err
		}
		return SyncCashForExpense(tx, e)
	})
}

// UpdateExpense persists changed fields and re-runs status touch + cash sync.
func (s *Store) UpdateExpense(e *models.Expense) error {
	if e.ID == 0 {
		return fmt.Errorf("%w: expense id required", ErrValidation)
	}
	if err := validateExpense(e); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(e).Error; err != nil {
			return err
		}
		if err := touchVehicle(tx, e.VehicleID); err != nil {
			return err
		}
		return SyncCashForExpense(tx, e)
	})
}

// DeleteExpense removes the expense together with its linked cash row.
func (s *Store) DeleteExpense(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var e models.Expense
		if err := tx.First(&e, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := RemoveCashForExpense(tx, e.ID); err != nil {
			return err
		}
		if err := tx.Delete(&e).Error; err != nil {
			return err
		}
		return touchVehicle(tx, e.VehicleID)
	})
}

// ExpenseFilter narrows ListExpenses. Zero values mean "no filter".
type ExpenseFilter struct {
	VehicleID uint
	Category  models.ExpenseCategory
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *Store) ListExpenses(f ExpenseFilter) ([]models.Expense, error) {
	q := s.db.Model(&models.Expense{})
	if f.VehicleID != 0 {
		q = q.Where("vehicle_id = ?", f.VehicleID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", *f.EndDate)
	}
	var rows []models.Expense
	err := q.Order("date, id").Find(&rows).Error
	return rows, err
}

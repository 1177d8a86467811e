package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"frota/models"
	"frota/pkg/money"
)

// findLinkedCash returns the single cash row back-referencing the given source
// id, nil when there is none, and ErrConsistency when more than one exists.
func findLinkedCash(tx *gorm.DB, column string, id uint) (*models.CashTxn, error) {
	var rows []models.CashTxn
	if err := tx.Where(column+" = ?", id).Limit(2).Find(&rows).Error; err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return &rows[0], nil
	default:
		return nil, fmt.Errorf("%w: multiple cash rows linked to %s=%d", ErrConsistency, column, id)
	}
}

func expenseCashPayload(e *models.Expense) models.CashTxn {
	notes := e.Notes
	if notes == "" {
		notes = e.Description
	}
	vehicleID := e.VehicleID
	expenseID := e.ID
	return models.CashTxn{
		Date:             e.Date,
		Type:             models.CashOutflow,
		Category:         string(e.Category),
		Amount:           money.Round(e.Amount),
		Method:           e.PaidWith,
		Notes:            notes,
		RelatedVehicleID: &vehicleID,
		RelatedExpenseID: &expenseID,
	}
}

func capitalCashPayload(entry *models.CapitalEntry, partnerName string) models.CashTxn {
	typ := models.CashOutflow
	if entry.Type == models.CapitalContribution {
		typ = models.CashInflow
	}
	notes := entry.Notes
	if notes == "" && partnerName != "" {
		notes = fmt.Sprintf("%s - %s", partnerName, entry.Type)
	}
	capitalID := entry.ID
	return models.CashTxn{
		Date:             entry.Date,
		Type:             typ,
		Category:         "Capital",
		Amount:           money.Round(entry.Amount),
		Notes:            notes,
		RelatedCapitalID: &capitalID,
	}
}

// upsertLinkedCash writes payload as the one cash row for its source. An
// existing row keeps its identity and gets overwritten in place; otherwise a
// fresh row is inserted. Calling it twice with the same source state is a
// no-op the second time apart from the overwrite.
func upsertLinkedCash(tx *gorm.DB, existing *models.CashTxn, payload models.CashTxn) error {
	if existing != nil {
		payload.ID = existing.ID
		payload.EntryRef = existing.EntryRef
		payload.CreatedAt = existing.CreatedAt
		return tx.Save(&payload).Error
	}
	payload.EntryRef = uuid.NewString()
	return tx.Create(&payload).Error
}

// SyncCashForExpense makes sure the expense has exactly one cash outflow row
// reflecting its current state. A vanished expense is a silent no-op: the
// source may legitimately have been deleted in between.
func SyncCashForExpense(tx *gorm.DB, e *models.Expense) error {
	var cnt int64
	if err := tx.Model(&models.Expense{}).Where("id = ?", e.ID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return nil
	}
	existing, err := findLinkedCash(tx, "related_expense_id", e.ID)
	if err != nil {
		return err
	}
	return upsertLinkedCash(tx, existing, expenseCashPayload(e))
}

// SyncCashForCapital mirrors SyncCashForExpense for capital entries.
// Contributions become inflows, withdrawals outflows, category "Capital".
func SyncCashForCapital(tx *gorm.DB, entry *models.CapitalEntry) error {
	var cnt int64
	if err := tx.Model(&models.CapitalEntry{}).Where("id = ?", entry.ID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return nil
	}
	partnerName := ""
	if entry.Partner != nil {
		partnerName = entry.Partner.Name
	} else {
		var p models.Partner
		if err := tx.First(&p, entry.PartnerID).Error; err == nil {
			partnerName = p.Name
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	existing, err := findLinkedCash(tx, "related_capital_id", entry.ID)
	if err != nil {
		return err
	}
	return upsertLinkedCash(tx, existing, capitalCashPayload(entry, partnerName))
}

// RemoveCashForExpense deletes the cash row linked to the expense id, if any.
// Removing twice is a no-op.
func RemoveCashForExpense(tx *gorm.DB, expenseID uint) error {
	existing, err := findLinkedCash(tx, "related_expense_id", expenseID)
	if err != nil || existing == nil {
		return err
	}
	return tx.Delete(&models.CashTxn{}, existing.ID).Error
}

// RemoveCashForCapital deletes the cash row linked to the capital entry id.
func RemoveCashForCapital(tx *gorm.DB, capitalID uint) error {
	existing, err := findLinkedCash(tx, "related_capital_id", capitalID)
	if err != nil || existing == nil {
		return err
	}
	return tx.Delete(&models.CashTxn{}, existing.ID).Error
}

// CashFilter narrows ListCashTxns. Zero values mean "no filter".
type CashFilter struct {
	Type      models.CashTxnType
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

// CreateCashTxn inserts a manually entered ledger row. Manual rows carry no
// source back-reference and sync never touches them.
func (s *Store) CreateCashTxn(txn *models.CashTxn) error {
	if txn.Amount.IsNegative() {
		return fmt.Errorf("%w: cash amount must not be negative", ErrValidation)
	}
	if txn.Type != models.CashInflow && txn.Type != models.CashOutflow {
		return fmt.Errorf("%w: unknown cash type %q", ErrValidation, txn.Type)
	}
	txn.RelatedExpenseID = nil
	txn.RelatedCapitalID = nil
	txn.Amount = money.Round(txn.Amount)
	txn.EntryRef = uuid.NewString()
	return s.db.Create(txn).Error
}

func (s *Store) ListCashTxns(f CashFilter) ([]models.CashTxn, error) {
	q := s.db.Model(&models.CashTxn{})
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
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
	var rows []models.CashTxn
	err := q.Order("date, id").Find(&rows).Error
	return rows, err
}

// GetCashForExpense returns the linked row or ErrNotFound.
func (s *Store) GetCashForExpense(expenseID uint) (*models.CashTxn, error) {
	row, err := findLinkedCash(s.db, "related_expense_id", expenseID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return row, nil
}

// GetCashForCapital returns the linked row or ErrNotFound.
func (s *Store) GetCashForCapital(capitalID uint) (*models.CashTxn, error) {
	row, err := findLinkedCash(s.db, "related_capital_id", capitalID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return row, nil
}

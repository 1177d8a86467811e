package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"frota/models"
	"frota/pkg/money"
)

func validateCapitalEntry(e *models.CapitalEntry) error {
	if e.Amount.IsNegative() {
		return fmt.Errorf("%w: capital amount must not be negative", ErrValidation)
	}
	if e.Type != models.CapitalContribution && e.Type != models.CapitalWithdrawal {
		return fmt.Errorf("%w: unknown capital type %q", ErrValidation, e.Type)
	}
	if e.PartnerID == 0 {
		return fmt.Errorf("%w: capital entry requires a partner", ErrValidation)
	}
	e.Amount = money.Round(e.Amount)
	return nil
}

// CreateCapitalEntry writes the entry and its derived cash row together.
func (s *Store) CreateCapitalEntry(e *models.CapitalEntry) error {
	if err := validateCapitalEntry(e); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		return SyncCashForCapital(tx, e)
	})
}

func (s *Store) UpdateCapitalEntry(e *models.CapitalEntry) error {
	if e.ID == 0 {
		return fmt.Errorf("%w: capital entry id required", ErrValidation)
	}
	if err := validateCapitalEntry(e); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(e).Error; err != nil {
			return err
		}
		return SyncCashForCapital(tx, e)
	})
}

// DeleteCapitalEntry removes the entry together with its linked cash row.
func (s *Store) DeleteCapitalEntry(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var e models.CapitalEntry
		if err := tx.First(&e, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := RemoveCashForCapital(tx, e.ID); err != nil {
			return err
		}
		return tx.Delete(&e).Error
	})
}

// CapitalFilter narrows ListCapitalEntries.
type CapitalFilter struct {
	PartnerID uint
	Type      models.CapitalType
}

func (s *Store) ListCapitalEntries(f CapitalFilter) ([]models.CapitalEntry, error) {
	q := s.db.Model(&models.CapitalEntry{}).Preload("Partner")
	if f.PartnerID != 0 {
		q = q.Where("partner_id = ?", f.PartnerID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	var rows []models.CapitalEntry
	err := q.Order("date, id").Find(&rows).Error
	return rows, err
}

// CreatePartner inserts a partner; names are unique.
func (s *Store) CreatePartner(p *models.Partner) error {
	if p.Name == "" {
		return fmt.Errorf("%w: partner name required", ErrValidation)
	}
	return s.db.Create(p).Error
}

// FindPartnerByName resolves a partner by its unique name, for imports that
// still carry free-text partner references.
func (s *Store) FindPartnerByName(name string) (*models.Partner, error) {
	var p models.Partner
	if err := s.db.Where("name = ?", name).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

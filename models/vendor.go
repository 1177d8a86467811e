package models

import "time"

// Vendor is a supplier referenced by expenses. Deleting a vendor keeps the
// expenses and nulls the reference.
type Vendor struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name    string `gorm:"size:100;not null;uniqueIndex"`
	Contact string `gorm:"size:100"`
	Notes   string `gorm:"size:255"`
}

package models

import "time"

// Partner is a capital partner. Entries reference partners by id, not by
// free-text name; name stays unique so imports can match on it.
type Partner struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name  string `gorm:"size:100;not null;uniqueIndex"`
	Phone string `gorm:"size:20"`
	Notes string `gorm:"size:255"`
}

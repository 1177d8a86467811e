package models

import "time"

// Driver is a person renting vehicles from the fleet.
type Driver struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name      string `gorm:"size:100;not null"`
	LicenseNo string `gorm:"size:20;uniqueIndex"`
	Phone     string `gorm:"size:20"`
	Notes     string `gorm:"size:255"`
}

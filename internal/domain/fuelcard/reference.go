package fuelcard

import (
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Driver is a read-only reference row used for card relations and report
// headers.
type Driver struct {
	shared.BaseEntity
	Name      string     `gorm:"size:128;not null"`
	Surname   string     `gorm:"size:128"`
	CompanyID uuid.UUID  `gorm:"type:uuid;not null;index"`
	VehicleID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Driver) TableName() string {
	return "drivers"
}

// FullName returns the driver's display name.
func (d *Driver) FullName() string {
	if d.Surname == "" {
		return d.Name
	}
	return d.Name + " " + d.Surname
}

// Company is a read-only reference row.
type Company struct {
	shared.BaseEntity
	Name string `gorm:"size:128;not null"`
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// Vehicle is a read-only reference row.
type Vehicle struct {
	shared.BaseEntity
	Plate     string    `gorm:"size:32;not null;uniqueIndex"`
	Model     string    `gorm:"size:128"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Vehicle) TableName() string {
	return "vehicles"
}

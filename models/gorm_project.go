package models

import "gorm.io/gorm"

// Project represents a consulting job in the database using GORM.
// It corresponds to the 'projects' table.
type Project struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string  `gorm:"not null" json:"name"`
	ClientName *string `gorm:"" json:"client_name,omitempty"` // Nullable
	Address    *string `gorm:"" json:"address,omitempty"`     // Nullable
	Notes      *string `gorm:"" json:"notes,omitempty"`       // Nullable

	CreatedAt int64          `gorm:"not null" json:"created_at"` // Unix timestamp
	UpdatedAt int64          `gorm:"not null" json:"updated_at"` // Unix timestamp
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Relationships
	Photos   []Photo    `gorm:"foreignKey:ProjectID" json:"photos,omitempty"`
	Synopses []Synopsis `gorm:"foreignKey:ProjectID" json:"synopses,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Project) TableName() string {
	return "projects"
}

package models

// Synopsis represents a persisted color specification report for a project.
// It corresponds to the 'synopses' table. Entries are removed with it; the
// cascade must run usage-accounting decrements for every entry first.
type Synopsis struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID uint   `gorm:"not null;index" json:"project_id"`
	Title     string `gorm:"not null" json:"title"`
	CreatedAt int64  `gorm:"not null" json:"created_at"` // Unix timestamp

	// Relationships
	Entries []SynopsisEntry `gorm:"foreignKey:SynopsisID" json:"entries,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Synopsis) TableName() string {
	return "synopses"
}

// SynopsisEntry is a user-curated (or batch-generated) specification row,
// independently editable and structurally similar to the engine's aggregated
// rows. It participates in usage accounting on create and delete.
// It corresponds to the 'synopsis_entries' table.
type SynopsisEntry struct {
	ID         uint `gorm:"primaryKey;autoIncrement" json:"id"`
	SynopsisID uint `gorm:"not null;index" json:"synopsis_id"`

	RoomID      *uint    `gorm:"index" json:"room_id,omitempty"`  // Nullable
	ColorID     *uint    `gorm:"index" json:"color_id,omitempty"` // Nullable
	SurfaceType string   `gorm:"not null" json:"surface_type"`
	ProductLine string   `gorm:"not null" json:"product_line"`
	Sheen       string   `gorm:"not null" json:"sheen"`
	Area        *float64 `gorm:"" json:"area,omitempty"`     // Nullable, square feet
	Quantity    *float64 `gorm:"" json:"quantity,omitempty"` // Nullable, gallons
	Notes       *string  `gorm:"" json:"notes,omitempty"`    // Nullable

	CreatedAt int64 `gorm:"not null" json:"created_at"` // Unix timestamp

	// Relationships
	Room  *Room         `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Color *CatalogColor `gorm:"foreignKey:ColorID" json:"color,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (SynopsisEntry) TableName() string {
	return "synopsis_entries"
}

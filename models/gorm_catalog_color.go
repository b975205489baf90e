package models

// CatalogColor represents a paint-manufacturer color in the database using GORM.
// Identity fields (code, name, manufacturer, hex) are immutable once created;
// UsageCount and FirstUsedAt are maintained exclusively by the accounting package.
// It corresponds to the 'catalog_colors' table.
type CatalogColor struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code         string `gorm:"not null;unique" json:"code"`
	Name         string `gorm:"not null" json:"name"`
	Manufacturer string `gorm:"not null" json:"manufacturer"`
	Hex          string `gorm:"not null" json:"hex"`

	// UsageCount is the number of annotation/synopsis-entry references currently
	// pointing at this color. Never negative.
	UsageCount int64 `gorm:"not null;default:0" json:"usage_count"`
	// FirstUsedAt is set exactly once, the first time UsageCount leaves zero,
	// and is never cleared by decrements.
	FirstUsedAt *int64 `gorm:"" json:"first_used_at,omitempty"` // Nullable, Unix timestamp

	CreatedAt int64 `gorm:"not null" json:"created_at"` // Unix timestamp

	// Relationships
	Availability []ColorAvailability `gorm:"foreignKey:ColorID" json:"availability,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (CatalogColor) TableName() string {
	return "catalog_colors"
}

// ColorAvailability records one product line / sheen combination a catalog
// color ships in. Position preserves the manufacturer's listing order; the
// lowest position is the color's default product line and sheen.
type ColorAvailability struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ColorID     uint   `gorm:"not null;index" json:"color_id"`
	ProductLine string `gorm:"not null" json:"product_line"`
	Sheen       string `gorm:"not null" json:"sheen"`
	Position    int    `gorm:"not null;default:0" json:"position"`
}

// TableName explicitly sets the table name for GORM.
func (ColorAvailability) TableName() string {
	return "color_availability"
}

package models

// Annotation represents a user-drawn mark on a photo tagging a surface with a
// color, product line, and sheen. It corresponds to the 'annotations' table.
// An annotation belongs to exactly one photo and is removed with it.
type Annotation struct {
	ID      uint `gorm:"primaryKey;autoIncrement" json:"id"`
	PhotoID uint `gorm:"not null;index" json:"photo_id"`

	RoomID      *uint   `gorm:"index" json:"room_id,omitempty"` // Nullable
	SurfaceType *string `gorm:"" json:"surface_type,omitempty"` // Nullable
	ColorID     *uint   `gorm:"index" json:"color_id,omitempty"` // Nullable
	ProductLine *string `gorm:"" json:"product_line,omitempty"` // Nullable, overrides catalog default
	Sheen       *string `gorm:"" json:"sheen,omitempty"`        // Nullable, overrides catalog default
	Notes       *string `gorm:"" json:"notes,omitempty"`        // Nullable

	// Normalized mark position on the photo, set by the drawing UI.
	X float64 `gorm:"not null;default:0" json:"x"`
	Y float64 `gorm:"not null;default:0" json:"y"`

	CreatedAt int64 `gorm:"not null" json:"created_at"` // Unix timestamp

	// Relationships
	Photo *Photo        `gorm:"foreignKey:PhotoID" json:"photo,omitempty"`
	Room  *Room         `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Color *CatalogColor `gorm:"foreignKey:ColorID" json:"color,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Annotation) TableName() string {
	return "annotations"
}

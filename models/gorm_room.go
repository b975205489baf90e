package models

// Room represents a named space attached to annotations and synopsis entries.
// Rooms are globally scoped: multiple projects may reference the same room pool.
// It corresponds to the 'rooms' table.
type Room struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"not null;unique" json:"name"`
	CreatedAt int64  `gorm:"not null" json:"created_at"` // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Room) TableName() string {
	return "rooms"
}

package models

// Photo represents an uploaded site photo in the database using GORM.
// It corresponds to the 'photos' table.
type Photo struct {
	ID               uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID        uint   `gorm:"not null;index" json:"project_id"`
	OriginalFilename string `gorm:"not null" json:"original_filename"`
	StoredPath       string `gorm:"not null;unique" json:"stored_path"` // path relative to the media store

	PreviewPath *string `gorm:"" json:"preview_path,omitempty"` // Nullable
	Width       *int    `gorm:"" json:"width,omitempty"`        // Nullable
	Height      *int    `gorm:"" json:"height,omitempty"`       // Nullable
	TakenAt     *int64  `gorm:"index" json:"taken_at,omitempty"` // Nullable, Unix timestamp from EXIF

	PreviewStatus      string  `gorm:"not null;default:pending" json:"preview_status"`
	PreviewError       *string `gorm:"" json:"preview_error,omitempty"`        // Nullable
	PreviewProcessedAt *int64  `gorm:"" json:"preview_processed_at,omitempty"` // Nullable, Unix timestamp

	UploadedAt int64 `gorm:"not null" json:"uploaded_at"` // Unix timestamp

	// Relationships
	Annotations []Annotation `gorm:"foreignKey:PhotoID" json:"annotations,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Photo) TableName() string {
	return "photos"
}

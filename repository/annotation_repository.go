package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/huecraft/colorspecbackend/accounting"
	"github.com/huecraft/colorspecbackend/models"
)

// AnnotationRepository handles database operations for Annotation entities.
// Every mutation that touches a color reference runs in a transaction with
// the matching usage-accounting update.
type AnnotationRepository struct {
	DB         *gorm.DB
	Accountant *accounting.Accountant
}

// NewAnnotationRepository creates a new instance of AnnotationRepository
func NewAnnotationRepository(db *gorm.DB, acct *accounting.Accountant) *AnnotationRepository {
	return &AnnotationRepository{DB: db, Accountant: acct}
}

// Create inserts an annotation and, when it references a color, records the
// reference with the annotation's own creation timestamp.
func (r *AnnotationRepository) Create(annotation *models.Annotation) error {
	if annotation.CreatedAt == 0 {
		annotation.CreatedAt = time.Now().Unix()
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(annotation).Error; err != nil {
			return fmt.Errorf("failed to create annotation: %w", err)
		}
		if annotation.ColorID != nil {
			if err := r.Accountant.ReferenceAdded(tx, *annotation.ColorID, annotation.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves an annotation with its color, room, and photo resolved
func (r *AnnotationRepository) GetByID(id uint) (*models.Annotation, error) {
	var annotation models.Annotation
	err := r.DB.
		Preload("Room").
		Preload("Photo").
		Preload("Color").
		Preload("Color.Availability", availabilityOrder).
		First(&annotation, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get annotation %d: %w", id, err)
	}
	return &annotation, nil
}

// Update writes the caller-mutated annotation back. The stored row is read
// inside the transaction to detect a color reference change; a changed color
// pairs a decrement of the old reference with an increment of the new one,
// attributed to the annotation's original creation timestamp.
func (r *AnnotationRepository) Update(annotation *models.Annotation) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var current models.Annotation
		if err := tx.First(&current, annotation.ID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return err
			}
			return fmt.Errorf("failed to load annotation %d for update: %w", annotation.ID, err)
		}

		// Select forces nil pointers through as NULL instead of being skipped
		err := tx.Model(&models.Annotation{ID: annotation.ID}).
			Select("room_id", "surface_type", "color_id", "product_line", "sheen", "notes", "x", "y").
			Updates(annotation).Error
		if err != nil {
			return fmt.Errorf("failed to update annotation %d: %w", annotation.ID, err)
		}

		return r.Accountant.ColorChanged(tx, current.ColorID, annotation.ColorID, current.CreatedAt)
	})
}

// Delete removes an annotation, releasing its color reference if it has one
func (r *AnnotationRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var annotation models.Annotation
		if err := tx.First(&annotation, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return err
			}
			return fmt.Errorf("failed to load annotation %d for delete: %w", id, err)
		}
		if annotation.ColorID != nil {
			if err := r.Accountant.ReferenceRemoved(tx, *annotation.ColorID); err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.Annotation{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete annotation %d: %w", id, err)
		}
		return nil
	})
}

// ListByPhoto retrieves all annotations on a photo
func (r *AnnotationRepository) ListByPhoto(photoID uint) ([]models.Annotation, error) {
	var annotations []models.Annotation
	err := r.DB.
		Preload("Room").
		Preload("Photo").
		Preload("Color").
		Preload("Color.Availability", availabilityOrder).
		Where("photo_id = ?", photoID).
		Order("created_at ASC, id ASC").
		Find(&annotations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations for photo %d: %w", photoID, err)
	}
	return annotations, nil
}

// ListByProject retrieves the full annotation snapshot the synopsis engine
// aggregates: every annotation on every photo of the project, with color
// (including ordered availability), room, and photo resolved.
func (r *AnnotationRepository) ListByProject(projectID uint) ([]models.Annotation, error) {
	var annotations []models.Annotation
	err := r.DB.
		Joins("JOIN photos ON photos.id = annotations.photo_id").
		Where("photos.project_id = ?", projectID).
		Preload("Room").
		Preload("Photo").
		Preload("Color").
		Preload("Color.Availability", availabilityOrder).
		Order("annotations.created_at ASC, annotations.id ASC").
		Find(&annotations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations for project %d: %w", projectID, err)
	}
	return annotations, nil
}

// availabilityOrder keeps a color's availability records in stored order so
// product line / sheen inheritance stays deterministic.
func availabilityOrder(db *gorm.DB) *gorm.DB {
	return db.Order("color_availability.position ASC, color_availability.id ASC")
}

package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/huecraft/colorspecbackend/accounting"
	"github.com/huecraft/colorspecbackend/database"
	"github.com/huecraft/colorspecbackend/media"
	"github.com/huecraft/colorspecbackend/models"
)

// PhotoRepository handles database operations for Photo entities
type PhotoRepository struct {
	DB         *gorm.DB
	Accountant *accounting.Accountant
}

// NewPhotoRepository creates a new instance of PhotoRepository
func NewPhotoRepository(db *gorm.DB, acct *accounting.Accountant) *PhotoRepository {
	return &PhotoRepository{DB: db, Accountant: acct}
}

// Create inserts a photo record with its preview pending
func (r *PhotoRepository) Create(photo *models.Photo) error {
	if photo.UploadedAt == 0 {
		photo.UploadedAt = time.Now().Unix()
	}
	if photo.PreviewStatus == "" {
		photo.PreviewStatus = database.StatusPending
	}
	if err := r.DB.Create(photo).Error; err != nil {
		return fmt.Errorf("failed to create photo record for %s: %w", photo.OriginalFilename, err)
	}
	return nil
}

// GetByID retrieves a photo with its annotations
func (r *PhotoRepository) GetByID(id uint) (*models.Photo, error) {
	var photo models.Photo
	err := r.DB.
		Preload("Annotations").
		Preload("Annotations.Room").
		Preload("Annotations.Color").
		First(&photo, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get photo %d: %w", id, err)
	}
	return &photo, nil
}

// ListByProject retrieves a project's photos in the requested sort order
func (r *PhotoRepository) ListByProject(projectID uint, sortOrder string) ([]models.Photo, error) {
	if !database.IsValidSortOrder(sortOrder) {
		sortOrder = database.DefaultSortOrder
	}

	var photos []models.Photo
	query := r.DB.Where("project_id = ?", projectID)
	switch sortOrder {
	case database.SortUploadedAsc:
		query = query.Order("uploaded_at ASC, id ASC")
	case database.SortUploadedDesc:
		query = query.Order("uploaded_at DESC, id DESC")
	case database.SortTakenAsc:
		query = query.Order("taken_at ASC, id ASC")
	case database.SortTakenDesc:
		query = query.Order("taken_at DESC, id DESC")
	case database.SortFilenameNat:
		// natural filename order is applied in memory after the fetch
		query = query.Order("id ASC")
	}
	if err := query.Find(&photos).Error; err != nil {
		return nil, fmt.Errorf("failed to list photos for project %d: %w", projectID, err)
	}
	if sortOrder == database.SortFilenameNat {
		database.SortPhotosByFilename(photos)
	}
	return photos, nil
}

// MarkPreviewProcessing updates the preview status to 'processing' and clears its error
func (r *PhotoRepository) MarkPreviewProcessing(photoID uint) error {
	updates := map[string]interface{}{
		"preview_status": database.StatusProcessing,
		"preview_error":  gorm.Expr("NULL"),
	}
	result := r.DB.Model(&models.Photo{}).Where("id = ?", photoID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to mark preview processing for photo %d: %w", photoID, result.Error)
	}
	return nil
}

// UpdatePreviewResult updates the photo record with preview generation results
func (r *PhotoRepository) UpdatePreviewResult(photoID uint, previewPath *string, meta *media.PhotoMeta, taskErr error) error {
	now := time.Now().Unix()
	status := database.StatusDone
	var errStr *string

	if taskErr != nil {
		status = database.StatusError
		s := taskErr.Error()
		errStr = &s
	}

	updates := map[string]interface{}{
		"preview_path":         previewPath,
		"preview_status":       status,
		"preview_processed_at": &now,
		"preview_error":        errStr,
	}
	if meta != nil {
		updates["width"] = meta.Width
		updates["height"] = meta.Height
		updates["taken_at"] = meta.TakenAt
	}

	result := r.DB.Model(&models.Photo{}).Where("id = ?", photoID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update preview result for photo %d: %w", photoID, result.Error)
	}
	return nil
}

// Delete removes a photo and cascades to its annotations. Color references
// held by the discarded annotations are released as one batch decrement per
// distinct color, observably identical to deleting each annotation alone.
func (r *PhotoRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var photo models.Photo
		if err := tx.First(&photo, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return err
			}
			return fmt.Errorf("failed to load photo %d for delete: %w", id, err)
		}

		removals, err := colorReferenceCounts(tx, &models.Annotation{}, "photo_id = ?", id)
		if err != nil {
			return err
		}
		r.Accountant.ReferencesRemoved(tx, removals)

		if err := tx.Where("photo_id = ?", id).Delete(&models.Annotation{}).Error; err != nil {
			return fmt.Errorf("failed to delete annotations for photo %d: %w", id, err)
		}
		if err := tx.Delete(&models.Photo{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete photo %d: %w", id, err)
		}
		return nil
	})
}

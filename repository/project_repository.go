package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/huecraft/colorspecbackend/accounting"
	"github.com/huecraft/colorspecbackend/models"
)

// ProjectRepository handles database operations for Project entities
type ProjectRepository struct {
	DB         *gorm.DB
	Accountant *accounting.Accountant
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB, acct *accounting.Accountant) *ProjectRepository {
	return &ProjectRepository{DB: db, Accountant: acct}
}

// Create inserts a new project
func (r *ProjectRepository) Create(project *models.Project) error {
	now := time.Now().Unix()
	if project.CreatedAt == 0 {
		project.CreatedAt = now
	}
	project.UpdatedAt = now
	if err := r.DB.Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project %q: %w", project.Name, err)
	}
	return nil
}

// GetByID retrieves a project by its ID
func (r *ProjectRepository) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.DB.First(&project, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get project %d: %w", id, err)
	}
	return &project, nil
}

// ListAll retrieves all projects, newest first
func (r *ProjectRepository) ListAll() ([]models.Project, error) {
	var projects []models.Project
	if err := r.DB.Order("created_at DESC, id DESC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Update writes mutable project fields
func (r *ProjectRepository) Update(project *models.Project) error {
	project.UpdatedAt = time.Now().Unix()
	err := r.DB.Model(&models.Project{ID: project.ID}).
		Select("name", "client_name", "address", "notes", "updated_at").
		Updates(project).Error
	if err != nil {
		return fmt.Errorf("failed to update project %d: %w", project.ID, err)
	}
	return nil
}

// Delete removes a project with everything under it: photos, their
// annotations, synopses, and their entries. Every live color reference held
// by the discarded rows is summed per color and released in one batch, which
// must be observably identical to deleting each row individually.
func (r *ProjectRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return err
			}
			return fmt.Errorf("failed to load project %d for delete: %w", id, err)
		}

		photoIDs := tx.Model(&models.Photo{}).Select("id").Where("project_id = ?", id)
		synopsisIDs := tx.Model(&models.Synopsis{}).Select("id").Where("project_id = ?", id)

		removals := make(map[uint]int64)
		annotationRefs, err := colorReferenceCounts(tx, &models.Annotation{}, "photo_id IN (?)", photoIDs)
		if err != nil {
			return err
		}
		mergeRemovals(removals, annotationRefs)

		entryRefs, err := colorReferenceCounts(tx, &models.SynopsisEntry{}, "synopsis_id IN (?)", synopsisIDs)
		if err != nil {
			return err
		}
		mergeRemovals(removals, entryRefs)

		r.Accountant.ReferencesRemoved(tx, removals)

		if err := tx.Where("photo_id IN (?)", photoIDs).Delete(&models.Annotation{}).Error; err != nil {
			return fmt.Errorf("failed to delete annotations for project %d: %w", id, err)
		}
		if err := tx.Where("synopsis_id IN (?)", synopsisIDs).Delete(&models.SynopsisEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete synopsis entries for project %d: %w", id, err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Synopsis{}).Error; err != nil {
			return fmt.Errorf("failed to delete synopses for project %d: %w", id, err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Photo{}).Error; err != nil {
			return fmt.Errorf("failed to delete photos for project %d: %w", id, err)
		}
		if err := tx.Delete(&models.Project{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete project %d: %w", id, err)
		}
		return nil
	})
}

package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/huecraft/colorspecbackend/accounting"
	"github.com/huecraft/colorspecbackend/models"
)

// SynopsisRepository handles database operations for Synopsis and
// SynopsisEntry entities
type SynopsisRepository struct {
	DB         *gorm.DB
	Accountant *accounting.Accountant
}

// NewSynopsisRepository creates a new instance of SynopsisRepository
func NewSynopsisRepository(db *gorm.DB, acct *accounting.Accountant) *SynopsisRepository {
	return &SynopsisRepository{DB: db, Accountant: acct}
}

// CreateWithEntries persists a synopsis and its entries (manual or generated
// from an aggregation), recording one color reference per entry
func (r *SynopsisRepository) CreateWithEntries(synopsis *models.Synopsis) error {
	now := time.Now().Unix()
	if synopsis.CreatedAt == 0 {
		synopsis.CreatedAt = now
	}
	for i := range synopsis.Entries {
		if synopsis.Entries[i].CreatedAt == 0 {
			synopsis.Entries[i].CreatedAt = now
		}
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(synopsis).Error; err != nil {
			return fmt.Errorf("failed to create synopsis %q: %w", synopsis.Title, err)
		}
		for i := range synopsis.Entries {
			entry := &synopsis.Entries[i]
			if entry.ColorID != nil {
				if err := r.Accountant.ReferenceAdded(tx, *entry.ColorID, entry.CreatedAt); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// GetByID retrieves a synopsis with its entries resolved
func (r *SynopsisRepository) GetByID(id uint) (*models.Synopsis, error) {
	var synopsis models.Synopsis
	err := r.DB.
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("synopsis_entries.id ASC") }).
		Preload("Entries.Room").
		Preload("Entries.Color").
		First(&synopsis, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get synopsis %d: %w", id, err)
	}
	return &synopsis, nil
}

// ListByProject retrieves a project's synopses, newest first
func (r *SynopsisRepository) ListByProject(projectID uint) ([]models.Synopsis, error) {
	var synopses []models.Synopsis
	err := r.DB.
		Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Find(&synopses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list synopses for project %d: %w", projectID, err)
	}
	return synopses, nil
}

// AddEntry appends a manual entry to an existing synopsis
func (r *SynopsisRepository) AddEntry(entry *models.SynopsisEntry) error {
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create synopsis entry: %w", err)
		}
		if entry.ColorID != nil {
			if err := r.Accountant.ReferenceAdded(tx, *entry.ColorID, entry.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteEntry removes a single entry, releasing its color reference
func (r *SynopsisRepository) DeleteEntry(entryID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var entry models.SynopsisEntry
		if err := tx.First(&entry, entryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return err
			}
			return fmt.Errorf("failed to load synopsis entry %d for delete: %w", entryID, err)
		}
		if entry.ColorID != nil {
			if err := r.Accountant.ReferenceRemoved(tx, *entry.ColorID); err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.SynopsisEntry{}, entryID).Error; err != nil {
			return fmt.Errorf("failed to delete synopsis entry %d: %w", entryID, err)
		}
		return nil
	})
}

// Delete removes a synopsis and all its entries. Accounting decrements are
// summed per distinct color and applied before the rows go away.
func (r *SynopsisRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var synopsis models.Synopsis
		if err := tx.First(&synopsis, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return err
			}
			return fmt.Errorf("failed to load synopsis %d for delete: %w", id, err)
		}

		removals, err := colorReferenceCounts(tx, &models.SynopsisEntry{}, "synopsis_id = ?", id)
		if err != nil {
			return err
		}
		r.Accountant.ReferencesRemoved(tx, removals)

		if err := tx.Where("synopsis_id = ?", id).Delete(&models.SynopsisEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete entries for synopsis %d: %w", id, err)
		}
		if err := tx.Delete(&models.Synopsis{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete synopsis %d: %w", id, err)
		}
		return nil
	})
}

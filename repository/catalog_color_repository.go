package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/huecraft/colorspecbackend/models"
)

// CatalogColorRepository handles database operations for CatalogColor
// entities. Usage counters on the model are read-only here; they belong to
// the accounting package.
type CatalogColorRepository struct {
	DB *gorm.DB
}

// NewCatalogColorRepository creates a new instance of CatalogColorRepository
func NewCatalogColorRepository(db *gorm.DB) *CatalogColorRepository {
	return &CatalogColorRepository{DB: db}
}

// Create inserts a catalog color together with its availability records,
// assigning positions in the order they were supplied
func (r *CatalogColorRepository) Create(color *models.CatalogColor) error {
	if color.CreatedAt == 0 {
		color.CreatedAt = time.Now().Unix()
	}
	for i := range color.Availability {
		color.Availability[i].Position = i
	}
	if err := r.DB.Create(color).Error; err != nil {
		return fmt.Errorf("failed to create catalog color %s: %w", color.Code, err)
	}
	return nil
}

// GetByID retrieves a color with its availability in stored order
func (r *CatalogColorRepository) GetByID(id uint) (*models.CatalogColor, error) {
	var color models.CatalogColor
	err := r.DB.
		Preload("Availability", availabilityOrder).
		First(&color, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get catalog color %d: %w", id, err)
	}
	return &color, nil
}

// GetByCode retrieves a color by its manufacturer code
func (r *CatalogColorRepository) GetByCode(code string) (*models.CatalogColor, error) {
	var color models.CatalogColor
	err := r.DB.
		Preload("Availability", availabilityOrder).
		Where("code = ?", code).
		First(&color).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get catalog color %s: %w", code, err)
	}
	return &color, nil
}

// ListAll retrieves the full catalog ordered by code
func (r *CatalogColorRepository) ListAll() ([]models.CatalogColor, error) {
	var colors []models.CatalogColor
	err := r.DB.
		Preload("Availability", availabilityOrder).
		Order("code ASC").
		Find(&colors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog colors: %w", err)
	}
	return colors, nil
}

// Search finds colors whose code or name contains the query, case-insensitive
func (r *CatalogColorRepository) Search(query string) ([]models.CatalogColor, error) {
	var colors []models.CatalogColor
	pattern := "%" + query + "%"
	err := r.DB.
		Preload("Availability", availabilityOrder).
		Where("code LIKE ? OR name LIKE ?", pattern, pattern).
		Order("code ASC").
		Find(&colors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog colors for %q: %w", query, err)
	}
	return colors, nil
}

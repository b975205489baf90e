package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/huecraft/colorspecbackend/models"
)

// RoomRepository handles database operations for Room entities
type RoomRepository struct {
	DB *gorm.DB
}

// NewRoomRepository creates a new instance of RoomRepository
func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{DB: db}
}

// Create inserts a new room
func (r *RoomRepository) Create(room *models.Room) error {
	if room.CreatedAt == 0 {
		room.CreatedAt = time.Now().Unix()
	}
	if err := r.DB.Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room %q: %w", room.Name, err)
	}
	return nil
}

// GetByID retrieves a room by its ID
func (r *RoomRepository) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	err := r.DB.First(&room, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get room %d: %w", id, err)
	}
	return &room, nil
}

// ListAll retrieves every room in the shared pool
func (r *RoomRepository) ListAll() ([]models.Room, error) {
	var rooms []models.Room
	if err := r.DB.Order("name ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// Update renames a room
func (r *RoomRepository) Update(room *models.Room) error {
	err := r.DB.Model(&models.Room{ID: room.ID}).
		Select("name").
		Updates(room).Error
	if err != nil {
		return fmt.Errorf("failed to update room %d: %w", room.ID, err)
	}
	return nil
}

// Delete removes a room. Annotations and synopsis entries that referenced it
// fall back to the unassigned bucket rather than being deleted; no color
// references change hands, so accounting is untouched.
func (r *RoomRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Annotation{}).Where("room_id = ?", id).Update("room_id", gorm.Expr("NULL")).Error; err != nil {
			return fmt.Errorf("failed to detach annotations from room %d: %w", id, err)
		}
		if err := tx.Model(&models.SynopsisEntry{}).Where("room_id = ?", id).Update("room_id", gorm.Expr("NULL")).Error; err != nil {
			return fmt.Errorf("failed to detach synopsis entries from room %d: %w", id, err)
		}
		if err := tx.Delete(&models.Room{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete room %d: %w", id, err)
		}
		return nil
	})
}

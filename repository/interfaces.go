package repository

import (
	"github.com/huecraft/colorspecbackend/media"
	"github.com/huecraft/colorspecbackend/models"
)

// ProjectRepositoryInterface defines the methods for project data operations
type ProjectRepositoryInterface interface {
	Create(project *models.Project) error
	GetByID(id uint) (*models.Project, error)
	ListAll() ([]models.Project, error)
	Update(project *models.Project) error
	Delete(id uint) error
}

// PhotoRepositoryInterface defines the methods for photo data operations
type PhotoRepositoryInterface interface {
	Create(photo *models.Photo) error
	GetByID(id uint) (*models.Photo, error)
	ListByProject(projectID uint, sortOrder string) ([]models.Photo, error)
	MarkPreviewProcessing(photoID uint) error
	UpdatePreviewResult(photoID uint, previewPath *string, meta *media.PhotoMeta, taskErr error) error
	Delete(id uint) error
}

// RoomRepositoryInterface defines the methods for room data operations
type RoomRepositoryInterface interface {
	Create(room *models.Room) error
	GetByID(id uint) (*models.Room, error)
	ListAll() ([]models.Room, error)
	Update(room *models.Room) error
	Delete(id uint) error
}

// CatalogColorRepositoryInterface defines the methods for catalog color data operations
type CatalogColorRepositoryInterface interface {
	Create(color *models.CatalogColor) error
	GetByID(id uint) (*models.CatalogColor, error)
	GetByCode(code string) (*models.CatalogColor, error)
	ListAll() ([]models.CatalogColor, error)
	Search(query string) ([]models.CatalogColor, error)
}

// AnnotationRepositoryInterface defines the methods for annotation data operations
type AnnotationRepositoryInterface interface {
	Create(annotation *models.Annotation) error
	GetByID(id uint) (*models.Annotation, error)
	Update(annotation *models.Annotation) error
	Delete(id uint) error
	ListByPhoto(photoID uint) ([]models.Annotation, error)
	ListByProject(projectID uint) ([]models.Annotation, error)
}

// SynopsisRepositoryInterface defines the methods for synopsis data operations
type SynopsisRepositoryInterface interface {
	CreateWithEntries(synopsis *models.Synopsis) error
	GetByID(id uint) (*models.Synopsis, error)
	ListByProject(projectID uint) ([]models.Synopsis, error)
	AddEntry(entry *models.SynopsisEntry) error
	DeleteEntry(entryID uint) error
	Delete(id uint) error
}

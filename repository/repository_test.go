package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/huecraft/colorspecbackend/accounting"
	"github.com/huecraft/colorspecbackend/database"
	"github.com/huecraft/colorspecbackend/models"
)

// testEnv bundles the repositories under test over one in-memory database
type testEnv struct {
	db             *gorm.DB
	accountant     *accounting.Accountant
	projects       *ProjectRepository
	photos         *PhotoRepository
	rooms          *RoomRepository
	colors         *CatalogColorRepository
	annotations    *AnnotationRepository
	synopses       *SynopsisRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))

	acct := accounting.NewAccountant(db)
	return &testEnv{
		db:          db,
		accountant:  acct,
		projects:    NewProjectRepository(db, acct),
		photos:      NewPhotoRepository(db, acct),
		rooms:       NewRoomRepository(db),
		colors:      NewCatalogColorRepository(db),
		annotations: NewAnnotationRepository(db, acct),
		synopses:    NewSynopsisRepository(db, acct),
	}
}

func (e *testEnv) createProject(t *testing.T, name string) *models.Project {
	t.Helper()
	project := &models.Project{Name: name}
	require.NoError(t, e.projects.Create(project))
	return project
}

func (e *testEnv) createPhoto(t *testing.T, projectID uint, filename string) *models.Photo {
	t.Helper()
	photo := &models.Photo{
		ProjectID:        projectID,
		OriginalFilename: filename,
		StoredPath:       "photo_originals/" + filename,
		UploadedAt:       1000,
	}
	require.NoError(t, e.photos.Create(photo))
	return photo
}

func (e *testEnv) createRoom(t *testing.T, name string) *models.Room {
	t.Helper()
	room := &models.Room{Name: name}
	require.NoError(t, e.rooms.Create(room))
	return room
}

func (e *testEnv) createColor(t *testing.T, code string) *models.CatalogColor {
	t.Helper()
	color := &models.CatalogColor{
		Code:         code,
		Name:         "Color " + code,
		Manufacturer: "Test Paints",
		Hex:          "#808080",
		Availability: []models.ColorAvailability{
			{ProductLine: "Line A", Sheen: "Matte"},
			{ProductLine: "Line B", Sheen: "Eggshell"},
		},
	}
	require.NoError(t, e.colors.Create(color))
	return color
}

func (e *testEnv) usageCount(t *testing.T, colorID uint) int64 {
	t.Helper()
	var color models.CatalogColor
	require.NoError(t, e.db.First(&color, colorID).Error)
	return color.UsageCount
}

func strptr(s string) *string { return &s }

package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huecraft/colorspecbackend/models"
)

func TestAnnotationCreateRecordsColorReference(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Maple St")
	photo := env.createPhoto(t, project.ID, "kitchen.jpg")
	color := env.createColor(t, "HC-154")

	ann := &models.Annotation{
		PhotoID:     photo.ID,
		SurfaceType: strptr("Walls"),
		ColorID:     &color.ID,
		CreatedAt:   1234,
	}
	require.NoError(t, env.annotations.Create(ann))

	assert.Equal(t, int64(1), env.usageCount(t, color.ID))

	var stored models.CatalogColor
	require.NoError(t, env.db.First(&stored, color.ID).Error)
	require.NotNil(t, stored.FirstUsedAt)
	// first use carries the annotation's own timestamp, not insert time
	assert.Equal(t, int64(1234), *stored.FirstUsedAt)
}

func TestAnnotationCreateWithoutColor(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Maple St")
	photo := env.createPhoto(t, project.ID, "kitchen.jpg")

	ann := &models.Annotation{PhotoID: photo.ID, SurfaceType: strptr("Walls")}
	require.NoError(t, env.annotations.Create(ann))
	assert.NotZero(t, ann.CreatedAt)
}

func TestAnnotationUpdateMovesColorReference(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Maple St")
	photo := env.createPhoto(t, project.ID, "kitchen.jpg")
	oldColor := env.createColor(t, "HC-154")
	newColor := env.createColor(t, "OC-45")

	ann := &models.Annotation{
		PhotoID:     photo.ID,
		SurfaceType: strptr("Walls"),
		ColorID:     &oldColor.ID,
		CreatedAt:   1234,
	}
	require.NoError(t, env.annotations.Create(ann))

	ann.ColorID = &newColor.ID
	require.NoError(t, env.annotations.Update(ann))

	assert.Equal(t, int64(0), env.usageCount(t, oldColor.ID))
	assert.Equal(t, int64(1), env.usageCount(t, newColor.ID))
}

func TestAnnotationUpdateSameColorKeepsCount(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Maple St")
	photo := env.createPhoto(t, project.ID, "kitchen.jpg")
	color := env.createColor(t, "HC-154")

	ann := &models.Annotation{
		PhotoID:     photo.ID,
		SurfaceType: strptr("Walls"),
		ColorID:     &color.ID,
	}
	require.NoError(t, env.annotations.Create(ann))

	ann.Notes = strptr("second coat")
	require.NoError(t, env.annotations.Update(ann))

	assert.Equal(t, int64(1), env.usageCount(t, color.ID))
}

func TestAnnotationUpdateClearsColor(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Maple St")
	photo := env.createPhoto(t, project.ID, "kitchen.jpg")
	color := env.createColor(t, "HC-154")

	ann := &models.Annotation{
		PhotoID:     photo.ID,
		SurfaceType: strptr("Walls"),
		ColorID:     &color.ID,
	}
	require.NoError(t, env.annotations.Create(ann))

	ann.ColorID = nil
	require.NoError(t, env.annotations.Update(ann))

	assert.Equal(t, int64(0), env.usageCount(t, color.ID))

	reloaded, err := env.annotations.GetByID(ann.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.ColorID)
}

func TestAnnotationDeleteReleasesReference(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Maple St")
	photo := env.createPhoto(t, project.ID, "kitchen.jpg")
	color := env.createColor(t, "HC-154")

	ann := &models.Annotation{
		PhotoID:     photo.ID,
		SurfaceType: strptr("Walls"),
		ColorID:     &color.ID,
	}
	require.NoError(t, env.annotations.Create(ann))
	require.NoError(t, env.annotations.Delete(ann.ID))

	assert.Equal(t, int64(0), env.usageCount(t, color.ID))

	_, err := env.annotations.GetByID(ann.ID)
	assert.Error(t, err)
}

func TestAnnotationListByProjectResolvesRelations(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Maple St")
	other := env.createProject(t, "Oak Ave")
	photo := env.createPhoto(t, project.ID, "kitchen.jpg")
	otherPhoto := env.createPhoto(t, other.ID, "hall.jpg")
	room := env.createRoom(t, "Kitchen")
	color := env.createColor(t, "HC-154")

	require.NoError(t, env.annotations.Create(&models.Annotation{
		PhotoID:     photo.ID,
		RoomID:      &room.ID,
		SurfaceType: strptr("Walls"),
		ColorID:     &color.ID,
		CreatedAt:   2000,
	}))
	require.NoError(t, env.annotations.Create(&models.Annotation{
		PhotoID:     photo.ID,
		SurfaceType: strptr("Trim"),
		CreatedAt:   1000,
	}))
	require.NoError(t, env.annotations.Create(&models.Annotation{
		PhotoID:     otherPhoto.ID,
		SurfaceType: strptr("Walls"),
		CreatedAt:   1500,
	}))

	annotations, err := env.annotations.ListByProject(project.ID)
	require.NoError(t, err)
	require.Len(t, annotations, 2)

	// chronological order
	assert.Equal(t, int64(1000), annotations[0].CreatedAt)
	assert.Equal(t, int64(2000), annotations[1].CreatedAt)

	withColor := annotations[1]
	require.NotNil(t, withColor.Room)
	assert.Equal(t, "Kitchen", withColor.Room.Name)
	require.NotNil(t, withColor.Photo)
	assert.Equal(t, "kitchen.jpg", withColor.Photo.OriginalFilename)
	require.NotNil(t, withColor.Color)
	require.Len(t, withColor.Color.Availability, 2)
	// availability arrives in stored order for default inheritance
	assert.Equal(t, "Line A", withColor.Color.Availability[0].ProductLine)
}

package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huecraft/colorspecbackend/models"
)

func TestSynopsisCreateWithEntriesCountsReferences(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Maple St")
	color := env.createColor(t, "HC-154")

	record := &models.Synopsis{
		ProjectID: project.ID,
		Title:     "Final spec",
		Entries: []models.SynopsisEntry{
			{ColorID: &color.ID, SurfaceType: "Walls", ProductLine: "Line A", Sheen: "Matte"},
			{ColorID: &color.ID, SurfaceType: "Trim", ProductLine: "Line B", Sheen: "Eggshell"},
			{SurfaceType: "Ceiling", ProductLine: "Line A", Sheen: "Flat"}, // no color
		},
	}
	require.NoError(t, env.synopses.CreateWithEntries(record))

	// one reference per entry with a color
	assert.Equal(t, int64(2), env.usageCount(t, color.ID))

	reloaded, err := env.synopses.GetByID(record.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Entries, 3)
}

func TestSynopsisDeleteReleasesAllReferences(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Maple St")
	a := env.createColor(t, "HC-154")
	b := env.createColor(t, "OC-45")

	record := &models.Synopsis{
		ProjectID: project.ID,
		Title:     "Final spec",
		Entries: []models.SynopsisEntry{
			{ColorID: &a.ID, SurfaceType: "Walls", ProductLine: "Line A", Sheen: "Matte"},
			{ColorID: &a.ID, SurfaceType: "Accent Wall", ProductLine: "Line A", Sheen: "Matte"},
			{ColorID: &b.ID, SurfaceType: "Trim", ProductLine: "Line B", Sheen: "Eggshell"},
		},
	}
	require.NoError(t, env.synopses.CreateWithEntries(record))
	require.NoError(t, env.synopses.Delete(record.ID))

	assert.Equal(t, int64(0), env.usageCount(t, a.ID))
	assert.Equal(t, int64(0), env.usageCount(t, b.ID))

	var remaining int64
	require.NoError(t, env.db.Model(&models.SynopsisEntry{}).Where("synopsis_id = ?", record.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestSynopsisEntryAddAndDelete(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Maple St")
	color := env.createColor(t, "HC-154")

	record := &models.Synopsis{ProjectID: project.ID, Title: "Working spec"}
	require.NoError(t, env.synopses.CreateWithEntries(record))

	entry := &models.SynopsisEntry{
		SynopsisID:  record.ID,
		ColorID:     &color.ID,
		SurfaceType: "Walls",
		ProductLine: "Line A",
		Sheen:       "Matte",
	}
	require.NoError(t, env.synopses.AddEntry(entry))
	assert.Equal(t, int64(1), env.usageCount(t, color.ID))

	require.NoError(t, env.synopses.DeleteEntry(entry.ID))
	assert.Equal(t, int64(0), env.usageCount(t, color.ID))
}

func TestPhotoDeleteCascadesAnnotationAccounting(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Maple St")
	photo := env.createPhoto(t, project.ID, "kitchen.jpg")
	keep := env.createPhoto(t, project.ID, "hall.jpg")
	color := env.createColor(t, "HC-154")

	for i := 0; i < 3; i++ {
		require.NoError(t, env.annotations.Create(&models.Annotation{
			PhotoID:     photo.ID,
			SurfaceType: strptr("Walls"),
			ColorID:     &color.ID,
		}))
	}
	require.NoError(t, env.annotations.Create(&models.Annotation{
		PhotoID:     keep.ID,
		SurfaceType: strptr("Walls"),
		ColorID:     &color.ID,
	}))

	require.NoError(t, env.photos.Delete(photo.ID))

	// only the deleted photo's three references are released
	assert.Equal(t, int64(1), env.usageCount(t, color.ID))

	var remaining int64
	require.NoError(t, env.db.Model(&models.Annotation{}).Where("photo_id = ?", photo.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestProjectDeleteCascadesEverything(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Maple St")
	other := env.createProject(t, "Oak Ave")
	photo := env.createPhoto(t, project.ID, "kitchen.jpg")
	otherPhoto := env.createPhoto(t, other.ID, "hall.jpg")
	color := env.createColor(t, "HC-154")

	require.NoError(t, env.annotations.Create(&models.Annotation{
		PhotoID:     photo.ID,
		SurfaceType: strptr("Walls"),
		ColorID:     &color.ID,
	}))
	require.NoError(t, env.annotations.Create(&models.Annotation{
		PhotoID:     otherPhoto.ID,
		SurfaceType: strptr("Walls"),
		ColorID:     &color.ID,
	}))
	require.NoError(t, env.synopses.CreateWithEntries(&models.Synopsis{
		ProjectID: project.ID,
		Title:     "Final spec",
		Entries: []models.SynopsisEntry{
			{ColorID: &color.ID, SurfaceType: "Walls", ProductLine: "Line A", Sheen: "Matte"},
		},
	}))

	// 3 references total, 2 owned by the doomed project
	require.Equal(t, int64(3), env.usageCount(t, color.ID))

	require.NoError(t, env.projects.Delete(project.ID))

	assert.Equal(t, int64(1), env.usageCount(t, color.ID))

	_, err := env.projects.GetByID(project.ID)
	assert.Error(t, err)

	// the other project's data is untouched
	annotations, err := env.annotations.ListByProject(other.ID)
	require.NoError(t, err)
	assert.Len(t, annotations, 1)
}

func TestRoomDeleteDetachesWithoutAccounting(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Maple St")
	photo := env.createPhoto(t, project.ID, "kitchen.jpg")
	room := env.createRoom(t, "Kitchen")
	color := env.createColor(t, "HC-154")

	ann := &models.Annotation{
		PhotoID:     photo.ID,
		RoomID:      &room.ID,
		SurfaceType: strptr("Walls"),
		ColorID:     &color.ID,
	}
	require.NoError(t, env.annotations.Create(ann))
	require.NoError(t, env.rooms.Delete(room.ID))

	// color references survive room deletion untouched
	assert.Equal(t, int64(1), env.usageCount(t, color.ID))

	reloaded, err := env.annotations.GetByID(ann.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.RoomID)
}

package synopsis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huecraft/colorspecbackend/models"
)

func strp(s string) *string { return &s }
func uintp(u uint) *uint    { return &u }

// fixture catalog colors, each with a default availability record
func swissCoffee() *models.CatalogColor {
	return &models.CatalogColor{
		ID: 1, Code: "OC-45", Name: "Swiss Coffee", Manufacturer: "Benjamin Moore", Hex: "#F7F3E8",
		Availability: []models.ColorAvailability{
			{ProductLine: "Advance", Sheen: "Semi-Gloss", Position: 0},
			{ProductLine: "Regal Select", Sheen: "Eggshell", Position: 1},
		},
	}
}

func haleNavy() *models.CatalogColor {
	return &models.CatalogColor{
		ID: 2, Code: "HC-154", Name: "Hale Navy", Manufacturer: "Benjamin Moore", Hex: "#434C56",
		Availability: []models.ColorAvailability{
			{ProductLine: "Regal Select", Sheen: "Matte", Position: 0},
		},
	}
}

func seaSalt() *models.CatalogColor {
	return &models.CatalogColor{
		ID: 3, Code: "SW 6204", Name: "Sea Salt", Manufacturer: "Sherwin-Williams", Hex: "#CDD2CA",
		Availability: []models.ColorAvailability{
			{ProductLine: "Duration", Sheen: "Matte", Position: 0},
		},
	}
}

func chantillyLace() *models.CatalogColor {
	return &models.CatalogColor{
		ID: 4, Code: "OC-65", Name: "Chantilly Lace", Manufacturer: "Benjamin Moore", Hex: "#F5F6F1",
		Availability: []models.ColorAvailability{
			{ProductLine: "Waterborne Ceiling Paint", Sheen: "Flat", Position: 0},
		},
	}
}

// ann builds an annotation fixture. Empty strings for surface, productLine,
// sheen, and notes mean nil.
func ann(id, photoID uint, room *models.Room, surface string, color *models.CatalogColor, productLine, sheen, notes string, createdAt int64) models.Annotation {
	a := models.Annotation{
		ID:        id,
		PhotoID:   photoID,
		CreatedAt: createdAt,
		Photo:     &models.Photo{ID: photoID, OriginalFilename: photoName(photoID)},
	}
	if room != nil {
		a.RoomID = &room.ID
		a.Room = room
	}
	if surface != "" {
		a.SurfaceType = strp(surface)
	}
	if color != nil {
		a.ColorID = &color.ID
		a.Color = color
	}
	if productLine != "" {
		a.ProductLine = strp(productLine)
	}
	if sheen != "" {
		a.Sheen = strp(sheen)
	}
	if notes != "" {
		a.Notes = strp(notes)
	}
	return a
}

func photoName(photoID uint) string {
	return fmt.Sprintf("IMG_%04d.jpg", photoID)
}

func TestAggregateMergesIdenticalRows(t *testing.T) {
	kitchen := &models.Room{ID: 10, Name: "Kitchen"}
	annotations := []models.Annotation{
		ann(1, 100, kitchen, "Walls", haleNavy(), "", "", "two coats", 1000),
		ann(2, 101, kitchen, "Walls", haleNavy(), "", "", "patch behind fridge", 1001),
		ann(3, 101, kitchen, "Walls", haleNavy(), "", "", "patch behind fridge", 1002), // duplicate photo and note
	}

	result := Aggregate(annotations)
	require.Len(t, result.Rooms, 1)
	require.Len(t, result.Rooms[0].Surfaces, 1)

	row := result.Rooms[0].Surfaces[0]
	assert.Equal(t, "Kitchen", row.RoomName)
	assert.Equal(t, "Walls", row.SurfaceType)
	assert.Equal(t, "HC-154", row.ColorCode)
	assert.Equal(t, uint(2), row.ColorID)
	assert.Equal(t, "Regal Select", row.ProductLine)
	assert.Equal(t, "Matte", row.Sheen)
	assert.Equal(t, "two coats; patch behind fridge", row.Notes)

	require.Len(t, row.SourcePhotos, 2)
	assert.Equal(t, uint(100), row.SourcePhotos[0].ID)
	assert.Equal(t, uint(101), row.SourcePhotos[1].ID)
}

func TestAggregateInheritsProductLineAndSheen(t *testing.T) {
	den := &models.Room{ID: 11, Name: "Den"}
	annotations := []models.Annotation{
		// inherits Advance / Semi-Gloss from the first availability record
		ann(1, 100, den, "Trim", swissCoffee(), "", "", "", 1000),
		// explicit override produces a distinct row
		ann(2, 100, den, "Trim", swissCoffee(), "Regal Select", "Eggshell", "", 1001),
		// partial override: sheen inherited, product line explicit
		ann(3, 100, den, "Baseboards", swissCoffee(), "Regal Select", "", "", 1002),
	}

	result := Aggregate(annotations)
	require.Len(t, result.Rooms, 1)
	surfaces := result.Rooms[0].Surfaces
	require.Len(t, surfaces, 3)

	// sorted by surface type then color then product line
	assert.Equal(t, "Baseboards", surfaces[0].SurfaceType)
	assert.Equal(t, "Regal Select", surfaces[0].ProductLine)
	assert.Equal(t, "Semi-Gloss", surfaces[0].Sheen)

	assert.Equal(t, "Trim", surfaces[1].SurfaceType)
	assert.Equal(t, "Advance", surfaces[1].ProductLine)
	assert.Equal(t, "Semi-Gloss", surfaces[1].Sheen)

	assert.Equal(t, "Trim", surfaces[2].SurfaceType)
	assert.Equal(t, "Regal Select", surfaces[2].ProductLine)
	assert.Equal(t, "Eggshell", surfaces[2].Sheen)
}

func TestAggregateSkipsIneligibleAnnotations(t *testing.T) {
	kitchen := &models.Room{ID: 10, Name: "Kitchen"}

	noSurface := ann(1, 100, kitchen, "", haleNavy(), "", "", "", 1000)
	noColor := ann(2, 100, kitchen, "Walls", nil, "", "", "", 1001)

	danglingColor := ann(3, 100, kitchen, "Walls", nil, "", "", "", 1002)
	danglingColor.ColorID = uintp(99) // Color relation is nil

	danglingRoom := ann(4, 100, nil, "Walls", haleNavy(), "", "", "", 1003)
	danglingRoom.RoomID = uintp(99) // Room relation is nil

	// color with no availability and no explicit product line / sheen
	bare := &models.CatalogColor{ID: 5, Code: "X-1", Name: "Bare", Manufacturer: "Test", Hex: "#000000"}
	noDefaults := ann(5, 100, kitchen, "Walls", bare, "", "", "", 1004)

	result := Aggregate([]models.Annotation{noSurface, noColor, danglingColor, danglingRoom, noDefaults})
	assert.Empty(t, result.Rooms)
	assert.Empty(t, result.Summary.Trim)
	assert.Empty(t, result.Summary.Ceilings)
	assert.Empty(t, result.Summary.Walls)
}

func TestAggregateUnassignedRoomBucket(t *testing.T) {
	annotations := []models.Annotation{
		ann(1, 100, nil, "Walls", haleNavy(), "", "", "", 1000),
	}

	result := Aggregate(annotations)
	require.Len(t, result.Rooms, 1)
	assert.Equal(t, UnassignedRoomLabel, result.Rooms[0].RoomName)
	require.Len(t, result.Rooms[0].Surfaces, 1)
	assert.Nil(t, result.Rooms[0].Surfaces[0].RoomID)

	// the unassigned bucket takes part in summary detection like a real room
	require.Len(t, result.Summary.Walls, 1)
	assert.Equal(t, []string{UnassignedRoomLabel}, result.Summary.Walls[0].Rooms)
}

func TestAggregateIsDeterministic(t *testing.T) {
	kitchen := &models.Room{ID: 10, Name: "Kitchen"}
	bedroom2 := &models.Room{ID: 11, Name: "Bedroom 2"}
	bedroom10 := &models.Room{ID: 12, Name: "Bedroom 10"}

	annotations := []models.Annotation{
		ann(1, 100, bedroom10, "Walls", seaSalt(), "", "", "", 1000),
		ann(2, 101, kitchen, "Walls", haleNavy(), "", "", "", 1001),
		ann(3, 102, bedroom2, "Walls", seaSalt(), "", "", "note a", 1002),
		ann(4, 103, kitchen, "Trim", swissCoffee(), "", "", "", 1003),
		ann(5, 104, bedroom2, "Ceiling", chantillyLace(), "", "", "", 1004),
	}

	first := Aggregate(annotations)

	reversed := make([]models.Annotation, len(annotations))
	for i := range annotations {
		reversed[len(annotations)-1-i] = annotations[i]
	}
	second := Aggregate(reversed)

	assert.Equal(t, first, second)

	// rooms come back in natural order, not lexicographic
	names := make([]string, 0, len(first.Rooms))
	for _, room := range first.Rooms {
		names = append(names, room.RoomName)
	}
	assert.Equal(t, []string{"Bedroom 2", "Bedroom 10", "Kitchen"}, names)
}

// full scenario: shared trim and ceiling colors promote to universal, wall
// colors stay per-room in the grouped listing
func TestAggregateKitchenBathScenario(t *testing.T) {
	kitchen := &models.Room{ID: 1, Name: "Kitchen"}
	bathroom := &models.Room{ID: 2, Name: "Bathroom"}

	trim := swissCoffee()
	ceiling := chantillyLace()
	kitchenWall := haleNavy()
	bathroomWall := seaSalt()

	annotations := []models.Annotation{
		ann(1, 100, kitchen, "Walls", kitchenWall, "", "", "", 1000),
		ann(2, 100, kitchen, "Trim", trim, "", "", "", 1001),
		ann(3, 100, kitchen, "Ceiling", ceiling, "", "", "", 1002),
		ann(4, 200, bathroom, "Walls", bathroomWall, "", "", "", 1003),
		ann(5, 200, bathroom, "Trim", trim, "", "", "", 1004),
		ann(6, 200, bathroom, "Ceiling", ceiling, "", "", "", 1005),
	}

	result := Aggregate(annotations)

	require.Len(t, result.Summary.Trim, 1)
	assert.True(t, result.Summary.Trim[0].IsUniversal)
	assert.Equal(t, "OC-45", result.Summary.Trim[0].ColorCode)
	assert.Equal(t, []string{"Advance / Semi-Gloss"}, result.Summary.Trim[0].Combinations)

	require.Len(t, result.Summary.Ceilings, 1)
	assert.True(t, result.Summary.Ceilings[0].IsUniversal)
	assert.Equal(t, "OC-65", result.Summary.Ceilings[0].ColorCode)

	require.Len(t, result.Summary.Walls, 2)
	assert.Equal(t, "HC-154", result.Summary.Walls[0].ColorCode)
	assert.Equal(t, []string{"Kitchen"}, result.Summary.Walls[0].Rooms)
	assert.Equal(t, "SW 6204", result.Summary.Walls[1].ColorCode)
	assert.Equal(t, []string{"Bathroom"}, result.Summary.Walls[1].Rooms)

	require.Len(t, result.Rooms, 2)
	assert.Equal(t, "Bathroom", result.Rooms[0].RoomName)
	assert.Len(t, result.Rooms[0].Surfaces, 3)
	assert.Equal(t, "Kitchen", result.Rooms[1].RoomName)
	assert.Len(t, result.Rooms[1].Surfaces, 3)
}

package accounting

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/huecraft/colorspecbackend/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// named shared-cache database so every pooled connection sees the same
	// in-memory store
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.CatalogColor{}, &models.ColorAvailability{}))
	return db
}

func createColor(t *testing.T, db *gorm.DB, code string) *models.CatalogColor {
	t.Helper()
	color := &models.CatalogColor{
		Code:         code,
		Name:         "Test Color " + code,
		Manufacturer: "Test Paints",
		Hex:          "#ABCDEF",
		CreatedAt:    500,
	}
	require.NoError(t, db.Create(color).Error)
	return color
}

func fetchColor(t *testing.T, db *gorm.DB, id uint) models.CatalogColor {
	t.Helper()
	var color models.CatalogColor
	require.NoError(t, db.First(&color, id).Error)
	return color
}

func TestReferenceAddedIncrementsAndSetsFirstUsed(t *testing.T) {
	db := setupTestDB(t)
	acct := NewAccountant(db)
	color := createColor(t, db, "T-1")

	require.NoError(t, acct.ReferenceAdded(nil, color.ID, 1000))
	require.NoError(t, acct.ReferenceAdded(nil, color.ID, 2000))

	got := fetchColor(t, db, color.ID)
	assert.Equal(t, int64(2), got.UsageCount)
	require.NotNil(t, got.FirstUsedAt)
	// first_used_at keeps the first reference's timestamp
	assert.Equal(t, int64(1000), *got.FirstUsedAt)
}

func TestReferenceAddedMissingColorIsIgnored(t *testing.T) {
	db := setupTestDB(t)
	acct := NewAccountant(db)

	// a dangling reference must not fail the caller's mutation
	assert.NoError(t, acct.ReferenceAdded(nil, 9999, 1000))
}

func TestReferenceRemovedDecrements(t *testing.T) {
	db := setupTestDB(t)
	acct := NewAccountant(db)
	color := createColor(t, db, "T-2")

	require.NoError(t, acct.ReferenceAdded(nil, color.ID, 1000))
	require.NoError(t, acct.ReferenceAdded(nil, color.ID, 1500))
	require.NoError(t, acct.ReferenceRemoved(nil, color.ID))

	got := fetchColor(t, db, color.ID)
	assert.Equal(t, int64(1), got.UsageCount)
	// decrements never clear first_used_at
	require.NotNil(t, got.FirstUsedAt)
	assert.Equal(t, int64(1000), *got.FirstUsedAt)
}

func TestReferenceRemovedClampsAtZero(t *testing.T) {
	db := setupTestDB(t)
	acct := NewAccountant(db)
	color := createColor(t, db, "T-3")

	require.NoError(t, acct.ReferenceAdded(nil, color.ID, 1000))
	require.NoError(t, acct.ReferenceRemoved(nil, color.ID))
	// second removal underflows; it is logged and clamped, never negative
	require.NoError(t, acct.ReferenceRemoved(nil, color.ID))

	got := fetchColor(t, db, color.ID)
	assert.Equal(t, int64(0), got.UsageCount)
	require.NotNil(t, got.FirstUsedAt)
}

func TestReferenceRemovedMissingColorIsIgnored(t *testing.T) {
	db := setupTestDB(t)
	acct := NewAccountant(db)

	assert.NoError(t, acct.ReferenceRemoved(nil, 9999))
}

func TestFirstUsedSurvivesFullDrain(t *testing.T) {
	db := setupTestDB(t)
	acct := NewAccountant(db)
	color := createColor(t, db, "T-4")

	require.NoError(t, acct.ReferenceAdded(nil, color.ID, 1000))
	require.NoError(t, acct.ReferenceRemoved(nil, color.ID))
	// a later re-reference does not reset the historical first use
	require.NoError(t, acct.ReferenceAdded(nil, color.ID, 5000))

	got := fetchColor(t, db, color.ID)
	assert.Equal(t, int64(1), got.UsageCount)
	require.NotNil(t, got.FirstUsedAt)
	assert.Equal(t, int64(1000), *got.FirstUsedAt)
}

func TestReferencesRemovedBatch(t *testing.T) {
	db := setupTestDB(t)
	acct := NewAccountant(db)
	a := createColor(t, db, "B-1")
	b := createColor(t, db, "B-2")

	for i := 0; i < 5; i++ {
		require.NoError(t, acct.ReferenceAdded(nil, a.ID, int64(1000+i)))
	}
	require.NoError(t, acct.ReferenceAdded(nil, b.ID, 1000))

	acct.ReferencesRemoved(nil, map[uint]int64{
		a.ID: 3,
		b.ID: 10,  // underflow, clamps at zero
		9999: 1,   // dangling, ignored
		a.ID + b.ID + 100: 0, // non-positive counts are skipped
	})

	assert.Equal(t, int64(2), fetchColor(t, db, a.ID).UsageCount)
	assert.Equal(t, int64(0), fetchColor(t, db, b.ID).UsageCount)
}

func TestBatchRemovalMatchesSingleRemovals(t *testing.T) {
	db := setupTestDB(t)
	acct := NewAccountant(db)
	batch := createColor(t, db, "E-1")
	single := createColor(t, db, "E-2")

	for i := 0; i < 4; i++ {
		require.NoError(t, acct.ReferenceAdded(nil, batch.ID, int64(1000+i)))
		require.NoError(t, acct.ReferenceAdded(nil, single.ID, int64(1000+i)))
	}

	acct.ReferencesRemoved(nil, map[uint]int64{batch.ID: 3})
	for i := 0; i < 3; i++ {
		require.NoError(t, acct.ReferenceRemoved(nil, single.ID))
	}

	// batch removal is observably identical to repeated single removals
	assert.Equal(t, fetchColor(t, db, single.ID).UsageCount, fetchColor(t, db, batch.ID).UsageCount)
}

func TestColorChangedMovesReference(t *testing.T) {
	db := setupTestDB(t)
	acct := NewAccountant(db)
	oldColor := createColor(t, db, "C-1")
	newColor := createColor(t, db, "C-2")

	require.NoError(t, acct.ReferenceAdded(nil, oldColor.ID, 1000))
	require.NoError(t, acct.ColorChanged(nil, &oldColor.ID, &newColor.ID, 2000))

	assert.Equal(t, int64(0), fetchColor(t, db, oldColor.ID).UsageCount)

	got := fetchColor(t, db, newColor.ID)
	assert.Equal(t, int64(1), got.UsageCount)
	require.NotNil(t, got.FirstUsedAt)
	assert.Equal(t, int64(2000), *got.FirstUsedAt)
}

func TestColorChangedSameColorIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	acct := NewAccountant(db)
	color := createColor(t, db, "C-3")

	require.NoError(t, acct.ReferenceAdded(nil, color.ID, 1000))
	require.NoError(t, acct.ColorChanged(nil, &color.ID, &color.ID, 2000))

	assert.Equal(t, int64(1), fetchColor(t, db, color.ID).UsageCount)
}

func TestColorChangedNilTransitions(t *testing.T) {
	db := setupTestDB(t)
	acct := NewAccountant(db)
	color := createColor(t, db, "C-4")

	// nil -> set adds one reference
	require.NoError(t, acct.ColorChanged(nil, nil, &color.ID, 1000))
	assert.Equal(t, int64(1), fetchColor(t, db, color.ID).UsageCount)

	// set -> nil removes it
	require.NoError(t, acct.ColorChanged(nil, &color.ID, nil, 2000))
	assert.Equal(t, int64(0), fetchColor(t, db, color.ID).UsageCount)
}

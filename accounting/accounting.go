package accounting

import (
	"fmt"
	"log"
	"sort"

	"gorm.io/gorm"

	"github.com/huecraft/colorspecbackend/models"
)

// Accountant centralizes the usage_count / first_used_at bookkeeping on
// catalog colors. Every mutation path that adds or removes a color reference
// (annotation create/update/delete, synopsis entry create/delete, batch
// deletions) goes through these methods rather than touching the counters at
// the call site.
//
// Methods take an optional transaction handle so callers can run the counter
// update in the same transaction as the mutation that triggered it; nil falls
// back to the accountant's own connection.
type Accountant struct {
	DB *gorm.DB
}

// NewAccountant creates a new Accountant bound to the given database.
func NewAccountant(db *gorm.DB) *Accountant {
	return &Accountant{DB: db}
}

func (a *Accountant) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.DB
}

// ReferenceAdded records one new reference to a color. The increment is a
// single atomic UPDATE, never read-modify-write, so concurrent writers cannot
// lose updates. referencedAt is the referencing record's own creation
// timestamp (not "now"), keeping retroactive imports chronologically correct.
// A colorID that does not resolve is logged and ignored: a dangling reference
// must never abort the parent mutation.
func (a *Accountant) ReferenceAdded(tx *gorm.DB, colorID uint, referencedAt int64) error {
	db := a.handle(tx)

	res := db.Model(&models.CatalogColor{}).
		Where("id = ?", colorID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to increment usage count for color %d: %w", colorID, res.Error)
	}
	if res.RowsAffected == 0 {
		log.Printf("accounting: color %d not found on reference add, ignoring", colorID)
		return nil
	}

	// first_used_at is set exactly once; the IS NULL guard lives in the UPDATE
	// itself so two concurrent first references cannot both claim it
	res = db.Model(&models.CatalogColor{}).
		Where("id = ? AND first_used_at IS NULL", colorID).
		UpdateColumn("first_used_at", referencedAt)
	if res.Error != nil {
		return fmt.Errorf("failed to set first_used_at for color %d: %w", colorID, res.Error)
	}
	return nil
}

// ReferenceRemoved records the removal of one reference to a color. The
// decrement is guarded at zero: usage_count never goes negative. An attempted
// decrement past zero indicates a missed increment somewhere upstream and is
// logged as a data-integrity warning, but it never fails the delete that
// triggered it. first_used_at is never cleared.
func (a *Accountant) ReferenceRemoved(tx *gorm.DB, colorID uint) error {
	db := a.handle(tx)

	res := db.Model(&models.CatalogColor{}).
		Where("id = ? AND usage_count > 0", colorID).
		UpdateColumn("usage_count", gorm.Expr("usage_count - 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to decrement usage count for color %d: %w", colorID, res.Error)
	}
	if res.RowsAffected == 0 {
		var exists int64
		if err := db.Model(&models.CatalogColor{}).Where("id = ?", colorID).Count(&exists).Error; err != nil {
			return fmt.Errorf("failed to check color %d after clamped decrement: %w", colorID, err)
		}
		if exists == 0 {
			log.Printf("accounting: color %d not found on reference remove, ignoring", colorID)
		} else {
			log.Printf("accounting: WARNING usage count underflow for color %d, clamped at 0 (missed increment upstream?)", colorID)
		}
	}
	return nil
}

// ReferencesRemoved applies a batch of removals, one UPDATE per distinct
// color, observably identical to issuing ReferenceRemoved once per reference.
// This keeps bulk deletions O(distinct colors) in write amplification instead
// of O(rows). Per-color failures are logged and skipped: the deletion of the
// owning records must never be rolled back because of an accounting failure.
func (a *Accountant) ReferencesRemoved(tx *gorm.DB, removals map[uint]int64) {
	db := a.handle(tx)

	colorIDs := make([]uint, 0, len(removals))
	for colorID := range removals {
		colorIDs = append(colorIDs, colorID)
	}
	sort.Slice(colorIDs, func(i, j int) bool { return colorIDs[i] < colorIDs[j] })

	for _, colorID := range colorIDs {
		n := removals[colorID]
		if n <= 0 {
			continue
		}

		var color models.CatalogColor
		err := db.Select("id", "usage_count").Where("id = ?", colorID).First(&color).Error
		if err == gorm.ErrRecordNotFound {
			log.Printf("accounting: color %d not found on batch remove, ignoring", colorID)
			continue
		}
		if err != nil {
			log.Printf("accounting: ERROR reading color %d during batch remove: %v", colorID, err)
			continue
		}
		if color.UsageCount < n {
			log.Printf("accounting: WARNING batch remove of %d references would underflow color %d (usage %d), clamping at 0", n, colorID, color.UsageCount)
		}

		res := db.Model(&models.CatalogColor{}).
			Where("id = ?", colorID).
			UpdateColumn("usage_count", gorm.Expr("MAX(usage_count - ?, 0)", n))
		if res.Error != nil {
			log.Printf("accounting: ERROR decrementing color %d by %d during batch remove: %v", colorID, n, res.Error)
		}
	}
}

// ColorChanged pairs the remove/add calls for an annotation or entry whose
// color reference was updated. Equal old and new ids are a no-op.
func (a *Accountant) ColorChanged(tx *gorm.DB, oldColorID, newColorID *uint, referencedAt int64) error {
	if oldColorID != nil && newColorID != nil && *oldColorID == *newColorID {
		return nil
	}
	if oldColorID != nil {
		if err := a.ReferenceRemoved(tx, *oldColorID); err != nil {
			return err
		}
	}
	if newColorID != nil {
		if err := a.ReferenceAdded(tx, *newColorID, referencedAt); err != nil {
			return err
		}
	}
	return nil
}

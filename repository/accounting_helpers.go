package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// colorReferenceCounts tallies live color references on the rows of the given
// model matching the condition, grouped per distinct color. Batch deletions
// feed the result to the accountant as a single decrement per color.
func colorReferenceCounts(tx *gorm.DB, model interface{}, condition string, args ...interface{}) (map[uint]int64, error) {
	type refCount struct {
		ColorID uint
		N       int64
	}
	var counts []refCount
	err := tx.Model(model).
		Select("color_id, COUNT(*) AS n").
		Where(condition, args...).
		Where("color_id IS NOT NULL").
		Group("color_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count color references: %w", err)
	}

	removals := make(map[uint]int64, len(counts))
	for _, c := range counts {
		removals[c.ColorID] += c.N
	}
	return removals, nil
}

// mergeRemovals folds src into dst, summing per-color counts.
func mergeRemovals(dst, src map[uint]int64) {
	for colorID, n := range src {
		dst[colorID] += n
	}
}

package synopsis

import "strings"

// Classification buckets a surface type for summary purposes.
type Classification string

const (
	ClassTrim         Classification = "trim"
	ClassCeiling      Classification = "ceiling"
	ClassWall         Classification = "wall"
	ClassUnclassified Classification = "unclassified"
)

// trimKeywords are the substrings that mark a surface type as trim-like.
// This keyword matching is load-bearing business logic, not a closed enum:
// consultants type free-form surface names ("Door Casing", "window trim").
var trimKeywords = []string{"trim", "baseboard", "molding", "door", "window", "wainscoting"}

// Classify buckets a surface type into trim-like, ceiling, wall, or
// unclassified via case-insensitive substring matching. Unclassified surfaces
// still appear in room tables; they are just excluded from summary promotion.
func Classify(surfaceType string) Classification {
	lower := strings.ToLower(surfaceType)
	for _, kw := range trimKeywords {
		if strings.Contains(lower, kw) {
			return ClassTrim
		}
	}
	if strings.Contains(lower, "ceiling") {
		return ClassCeiling
	}
	if strings.Contains(lower, "wall") {
		return ClassWall
	}
	return ClassUnclassified
}

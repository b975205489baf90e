package synopsis

import (
	"sort"
	"strings"

	"github.com/huecraft/colorspecbackend/models"
)

// DefaultSuggestionLimit caps the quick-pick list when the caller does not
// supply a limit.
const DefaultSuggestionLimit = 10

// suggestionKey groups annotations that specify the same color, surface,
// product line, and sheen.
type suggestionKey struct {
	colorID     uint
	surfaceType string
	productLine string
	sheen       string
}

// Rank scores historical (color, surface, product line, sheen) combinations
// by frequency and recency. Annotations missing any of the four fields are
// skipped outright, not defaulted. Read-only: ranking never mutates catalog
// color state.
func Rank(annotations []models.Annotation, limit int) []Suggestion {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	groups := make(map[suggestionKey]*Suggestion)
	order := make([]suggestionKey, 0) // first-seen order keeps ties stable

	for i := range annotations {
		ann := &annotations[i]
		if ann.ColorID == nil || ann.Color == nil {
			continue
		}
		if ann.SurfaceType == nil || strings.TrimSpace(*ann.SurfaceType) == "" {
			continue
		}
		if ann.ProductLine == nil || strings.TrimSpace(*ann.ProductLine) == "" {
			continue
		}
		if ann.Sheen == nil || strings.TrimSpace(*ann.Sheen) == "" {
			continue
		}

		key := suggestionKey{
			colorID:     *ann.ColorID,
			surfaceType: strings.TrimSpace(*ann.SurfaceType),
			productLine: strings.TrimSpace(*ann.ProductLine),
			sheen:       strings.TrimSpace(*ann.Sheen),
		}

		sugg, exists := groups[key]
		if !exists {
			sugg = &Suggestion{
				ColorID:      *ann.ColorID,
				ColorCode:    ann.Color.Code,
				ColorName:    ann.Color.Name,
				Manufacturer: ann.Color.Manufacturer,
				SurfaceType:  key.surfaceType,
				ProductLine:  key.productLine,
				Sheen:        key.sheen,
			}
			groups[key] = sugg
			order = append(order, key)
		}

		sugg.Count++
		if ann.CreatedAt >= sugg.LastUsedAt {
			sugg.LastUsedAt = ann.CreatedAt
			sugg.RoomID = ann.RoomID
			if ann.Room != nil {
				sugg.RoomName = ann.Room.Name
			} else {
				sugg.RoomName = ""
			}
			if ann.Photo != nil {
				sugg.PhotoFilename = ann.Photo.OriginalFilename
			} else {
				sugg.PhotoFilename = ""
			}
		}
	}

	ranked := make([]Suggestion, 0, len(order))
	for _, key := range order {
		ranked = append(ranked, *groups[key])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].LastUsedAt > ranked[j].LastUsedAt
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

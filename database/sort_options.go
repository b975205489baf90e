package database

import (
	"github.com/facette/natsort"

	"github.com/huecraft/colorspecbackend/models"
)

const (
	SortUploadedAsc  = "uploaded_asc"
	SortUploadedDesc = "uploaded_desc"
	SortTakenAsc     = "taken_asc"
	SortTakenDesc    = "taken_desc"
	SortFilenameNat  = "filename_nat"
)

const DefaultSortOrder = SortUploadedAsc

// IsValidSortOrder checks if a string is a valid sort order constant
func IsValidSortOrder(order string) bool {
	switch order {
	case SortUploadedAsc, SortUploadedDesc, SortTakenAsc, SortTakenDesc, SortFilenameNat:
		return true
	default:
		return false
	}
}

// SortPhotosByFilename orders photos naturally by their original filename
// (IMG_2 before IMG_10), which SQL collation cannot do.
func SortPhotosByFilename(photos []models.Photo) {
	names := make([]string, len(photos))
	index := make(map[string][]models.Photo, len(photos))
	for i, p := range photos {
		names[i] = p.OriginalFilename
		index[p.OriginalFilename] = append(index[p.OriginalFilename], p)
	}
	natsort.Sort(names)

	out := photos[:0]
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, index[name]...)
	}
}

package synopsis

import (
	"log"
	"sort"
	"strings"

	"github.com/facette/natsort"

	"github.com/huecraft/colorspecbackend/models"
)

// UnassignedRoomLabel is the synthetic room bucket for annotations without a
// room reference. It takes part in aggregation and universal detection like
// any other room.
const UnassignedRoomLabel = "Unassigned"

// noteSeparator joins distinct non-empty notes merged into one row.
const noteSeparator = "; "

// rowKey is the uniqueness key of a specification row. A struct key, so field
// values containing separator characters can never collide.
type rowKey struct {
	room        string
	surfaceType string
	colorCode   string
	productLine string
	sheen       string
}

// bucketKey groups color usage per classification for summary detection.
type bucketKey struct {
	class     Classification
	colorCode string
}

// roomClassKey tracks which color codes a room recorded for a classification.
type roomClassKey struct {
	class Classification
	room  string
}

// colorIdentity carries the display fields of a catalog color through
// aggregation so summary entries can be emitted without another lookup.
type colorIdentity struct {
	id           uint
	code         string
	name         string
	manufacturer string
	hex          string
}

// eligible is an annotation that passed the eligibility filter, with product
// line and sheen fully resolved.
type eligible struct {
	ann         *models.Annotation
	room        string
	surfaceType string
	color       colorIdentity
	productLine string
	sheen       string
}

// resolveEligible applies the eligibility rules: the annotation needs a
// resolvable color and a surface type, and its product line and sheen are
// taken from the annotation itself or inherited from the color's first
// catalog-availability record. Returns false when the annotation must be
// excluded from aggregation.
func resolveEligible(ann *models.Annotation) (eligible, bool) {
	if ann.SurfaceType == nil || strings.TrimSpace(*ann.SurfaceType) == "" {
		return eligible{}, false
	}
	if ann.ColorID == nil {
		return eligible{}, false
	}
	if ann.Color == nil {
		// dangling color reference; skip the row, never abort the synopsis
		log.Printf("synopsis: annotation %d references missing color %d, skipping", ann.ID, *ann.ColorID)
		return eligible{}, false
	}
	if ann.RoomID != nil && ann.Room == nil {
		log.Printf("synopsis: annotation %d references missing room %d, skipping", ann.ID, *ann.RoomID)
		return eligible{}, false
	}

	productLine := ""
	if ann.ProductLine != nil {
		productLine = strings.TrimSpace(*ann.ProductLine)
	}
	sheen := ""
	if ann.Sheen != nil {
		sheen = strings.TrimSpace(*ann.Sheen)
	}
	// inherit from the color's first availability record (stored order)
	if len(ann.Color.Availability) > 0 {
		first := ann.Color.Availability[0]
		if productLine == "" {
			productLine = first.ProductLine
		}
		if sheen == "" {
			sheen = first.Sheen
		}
	}
	if productLine == "" || sheen == "" {
		return eligible{}, false
	}

	room := UnassignedRoomLabel
	if ann.Room != nil {
		room = ann.Room.Name
	}

	return eligible{
		ann:         ann,
		room:        room,
		surfaceType: strings.TrimSpace(*ann.SurfaceType),
		color: colorIdentity{
			id:           ann.Color.ID,
			code:         ann.Color.Code,
			name:         ann.Color.Name,
			manufacturer: ann.Color.Manufacturer,
			hex:          ann.Color.Hex,
		},
		productLine: productLine,
		sheen:       sheen,
	}, true
}

// comboString renders a product line / sheen combination for summary output.
func comboString(productLine, sheen string) string {
	return productLine + " / " + sheen
}

// Aggregate merges a project's annotations into per-room specification rows
// and top-level color summaries. It is a pure transform over the snapshot it
// is given: no I/O, no retained state, identical output for identical input.
func Aggregate(annotations []models.Annotation) *Result {
	rows := make(map[rowKey]*SpecRow)
	rowPhotoSeen := make(map[rowKey]map[uint]bool)
	rowNoteSeen := make(map[rowKey]map[string]bool)

	buckets := make(map[bucketKey]map[string]bool)       // combos per (class, color)
	perRoomColors := make(map[roomClassKey]map[string]bool) // color codes per (class, room)
	identities := make(map[string]colorIdentity)

	roomsSeen := make(map[string]bool)

	for i := range annotations {
		el, ok := resolveEligible(&annotations[i])
		if !ok {
			continue
		}

		class := Classify(el.surfaceType)
		roomsSeen[el.room] = true
		identities[el.color.code] = el.color

		bk := bucketKey{class: class, colorCode: el.color.code}
		if buckets[bk] == nil {
			buckets[bk] = make(map[string]bool)
		}
		buckets[bk][comboString(el.productLine, el.sheen)] = true

		rk := roomClassKey{class: class, room: el.room}
		if perRoomColors[rk] == nil {
			perRoomColors[rk] = make(map[string]bool)
		}
		perRoomColors[rk][el.color.code] = true

		key := rowKey{
			room:        el.room,
			surfaceType: el.surfaceType, // original case, not the classification
			colorCode:   el.color.code,
			productLine: el.productLine,
			sheen:       el.sheen,
		}
		row, exists := rows[key]
		if !exists {
			row = &SpecRow{
				RoomID:       el.ann.RoomID,
				RoomName:     el.room,
				SurfaceType:  el.surfaceType,
				ColorID:      el.color.id,
				ColorCode:    el.color.code,
				ColorName:    el.color.name,
				Manufacturer: el.color.manufacturer,
				Hex:          el.color.hex,
				ProductLine:  el.productLine,
				Sheen:        el.sheen,
			}
			rows[key] = row
			rowPhotoSeen[key] = make(map[uint]bool)
			rowNoteSeen[key] = make(map[string]bool)
		}

		if !rowPhotoSeen[key][el.ann.PhotoID] {
			rowPhotoSeen[key][el.ann.PhotoID] = true
			ref := PhotoRef{ID: el.ann.PhotoID}
			if el.ann.Photo != nil {
				ref.Filename = el.ann.Photo.OriginalFilename
			}
			row.SourcePhotos = append(row.SourcePhotos, ref)
		}

		if el.ann.Notes != nil {
			note := strings.TrimSpace(*el.ann.Notes)
			if note != "" && !rowNoteSeen[key][note] {
				rowNoteSeen[key][note] = true
				if row.Notes == "" {
					row.Notes = note
				} else {
					row.Notes += noteSeparator + note
				}
			}
		}
	}

	result := &Result{
		Summary: ColorSummary{
			Trim:     detectUniversal(ClassTrim, buckets, perRoomColors, identities),
			Ceilings: detectUniversal(ClassCeiling, buckets, perRoomColors, identities),
			Walls:    groupWallColors(buckets, perRoomColors, identities),
		},
		Rooms: buildRoomSpecs(rows, roomsSeen),
	}
	return result
}

// buildRoomSpecs orders rooms naturally by name and rows deterministically
// within each room.
func buildRoomSpecs(rows map[rowKey]*SpecRow, roomsSeen map[string]bool) []RoomSpec {
	roomNames := make([]string, 0, len(roomsSeen))
	for name := range roomsSeen {
		roomNames = append(roomNames, name)
	}
	natsort.Sort(roomNames)

	byRoom := make(map[string][]SpecRow)
	for _, row := range rows {
		r := *row
		// sourcePhotos accumulate in annotation order; keep them sorted by id
		// so output is stable regardless of map iteration
		sort.Slice(r.SourcePhotos, func(i, j int) bool { return r.SourcePhotos[i].ID < r.SourcePhotos[j].ID })
		byRoom[r.RoomName] = append(byRoom[r.RoomName], r)
	}

	specs := make([]RoomSpec, 0, len(roomNames))
	for _, name := range roomNames {
		surfaces := byRoom[name]
		sort.Slice(surfaces, func(i, j int) bool {
			a, b := surfaces[i], surfaces[j]
			if a.SurfaceType != b.SurfaceType {
				return a.SurfaceType < b.SurfaceType
			}
			if a.ColorCode != b.ColorCode {
				return a.ColorCode < b.ColorCode
			}
			if a.ProductLine != b.ProductLine {
				return a.ProductLine < b.ProductLine
			}
			return a.Sheen < b.Sheen
		})
		specs = append(specs, RoomSpec{RoomName: name, Surfaces: surfaces})
	}
	return specs
}

// groupWallColors lists every wall color with its combinations and the rooms
// it appears in. Walls legitimately vary by room and are never promoted to
// universal.
func groupWallColors(buckets map[bucketKey]map[string]bool, perRoomColors map[roomClassKey]map[string]bool, identities map[string]colorIdentity) []ColorGroupEntry {
	entries := make([]ColorGroupEntry, 0)
	for bk, combos := range buckets {
		if bk.class != ClassWall {
			continue
		}
		id := identities[bk.colorCode]
		entry := ColorGroupEntry{
			ColorCode:    id.code,
			ColorName:    id.name,
			Manufacturer: id.manufacturer,
			Hex:          id.hex,
			Combinations: sortedSet(combos),
		}
		for rk, codes := range perRoomColors {
			if rk.class == ClassWall && codes[bk.colorCode] {
				entry.Rooms = append(entry.Rooms, rk.room)
			}
		}
		natsort.Sort(entry.Rooms)
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ColorCode < entries[j].ColorCode })
	return entries
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

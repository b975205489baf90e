package synopsis

// detectUniversal decides whether a single color covers a classification
// across every room that recorded it. The promotion is all-or-nothing: one
// outlier room means nothing is emitted and callers fall back to the per-room
// table. A classification with zero occurrences is simply absent, never
// universal. A single room with a single color does qualify.
func detectUniversal(class Classification, buckets map[bucketKey]map[string]bool, perRoomColors map[roomClassKey]map[string]bool, identities map[string]colorIdentity) []ColorSummaryEntry {
	var onlyCode string
	distinct := 0
	for bk := range buckets {
		if bk.class != class {
			continue
		}
		distinct++
		onlyCode = bk.colorCode
	}
	if distinct != 1 {
		return []ColorSummaryEntry{}
	}

	recorded := false
	for rk := range perRoomColors {
		if rk.class == class {
			recorded = true
			break
		}
	}
	if !recorded {
		return []ColorSummaryEntry{}
	}

	id := identities[onlyCode]
	return []ColorSummaryEntry{{
		ColorCode:    id.code,
		ColorName:    id.name,
		Manufacturer: id.manufacturer,
		Hex:          id.hex,
		Combinations: sortedSet(buckets[bucketKey{class: class, colorCode: onlyCode}]),
		IsUniversal:  true,
	}}
}

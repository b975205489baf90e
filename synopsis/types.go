package synopsis

// PhotoRef identifies a source photo backing a specification row.
type PhotoRef struct {
	ID       uint   `json:"id"`
	Filename string `json:"filename"`
}

// SpecRow is one aggregated specification row: a color/product/sheen applied
// to a surface in a room, with the evidence that produced it. Multiple
// annotations collapse into one row when they agree on the row key
// (room, surface type, color code, product line, sheen).
type SpecRow struct {
	RoomID       *uint      `json:"room_id,omitempty"`
	RoomName     string     `json:"room_name"`
	SurfaceType  string     `json:"surface_type"`
	ColorID      uint       `json:"color_id"`
	ColorCode    string     `json:"color_code"`
	ColorName    string     `json:"color_name"`
	Manufacturer string     `json:"manufacturer"`
	Hex          string     `json:"hex"`
	ProductLine  string     `json:"product_line"`
	Sheen        string     `json:"sheen"`
	Notes        string     `json:"notes,omitempty"`
	SourcePhotos []PhotoRef `json:"source_photos"`
}

// RoomSpec groups a room's specification rows.
type RoomSpec struct {
	RoomName string    `json:"room_name"`
	Surfaces []SpecRow `json:"surfaces"`
}

// ColorSummaryEntry is a color promoted to the top-level summary because it is
// the only color observed for its classification across every room that has
// that classification.
type ColorSummaryEntry struct {
	ColorCode    string   `json:"color_code"`
	ColorName    string   `json:"color_name"`
	Manufacturer string   `json:"manufacturer"`
	Hex          string   `json:"hex"`
	Combinations []string `json:"combinations"` // distinct "product line / sheen" strings
	IsUniversal  bool     `json:"is_universal"`
}

// ColorGroupEntry lists a wall color and the rooms it was observed in. Wall
// colors are never promoted to universal; this is their summary form.
type ColorGroupEntry struct {
	ColorCode    string   `json:"color_code"`
	ColorName    string   `json:"color_name"`
	Manufacturer string   `json:"manufacturer"`
	Hex          string   `json:"hex"`
	Combinations []string `json:"combinations"`
	Rooms        []string `json:"rooms"`
}

// ColorSummary is the top-level portion of an aggregated synopsis.
type ColorSummary struct {
	Trim     []ColorSummaryEntry `json:"trim"`
	Ceilings []ColorSummaryEntry `json:"ceilings"`
	Walls    []ColorGroupEntry   `json:"walls"`
}

// Result is the full output of Aggregate.
type Result struct {
	Summary ColorSummary `json:"color_summary"`
	Rooms   []RoomSpec   `json:"room_data"`
}

// Suggestion is one ranked quick-pick combination produced by Rank.
type Suggestion struct {
	ColorID       uint   `json:"color_id"`
	ColorCode     string `json:"color_code"`
	ColorName     string `json:"color_name"`
	Manufacturer  string `json:"manufacturer"`
	SurfaceType   string `json:"surface_type"`
	ProductLine   string `json:"product_line"`
	Sheen         string `json:"sheen"`
	RoomID        *uint  `json:"room_id,omitempty"`
	RoomName      string `json:"room_name,omitempty"`
	Count         int    `json:"count"`
	LastUsedAt    int64  `json:"last_used_at"`
	PhotoFilename string `json:"photo_filename,omitempty"`
}

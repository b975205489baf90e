package media

type AssetType string

const (
	AssetTypeOriginal AssetType = "original"
	AssetTypePreview  AssetType = "preview"
	AssetTypeUnknown  AssetType = "unknown"
)

// PhotoMeta carries the dimensions and EXIF capture time extracted from an
// uploaded site photo.
type PhotoMeta struct {
	Width   *int   `json:"width,omitempty"`
	Height  *int   `json:"height,omitempty"`
	TakenAt *int64 `json:"taken_at,omitempty"` // Unix timestamp
}

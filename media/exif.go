package media

import (
	"fmt"
	"image"
	"log"
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// GetPhotoMeta extracts the dimensions and EXIF capture time of a stored
// photo. Capture time matters to the engine: annotation timestamps on
// retroactive imports are attributed against it, so it is read from EXIF
// rather than the upload clock.
func GetPhotoMeta(filePath string) (*PhotoMeta, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("exif: failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	config, format, err := image.DecodeConfig(file)
	var width, height *int
	if err == nil {
		w, h := config.Width, config.Height
		width = &w
		height = &h
		log.Printf("exif: Decoded dimensions for %s (format: %s): %dx%d", filePath, format, *width, *height)
	} else {
		log.Printf("exif: Warning - Could not decode config for dimensions of %s: %v", filePath, err)
	}

	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("exif: failed to seek file %s: %w", filePath, err)
	}

	meta := &PhotoMeta{Width: width, Height: height}

	exifData, err := exif.Decode(file)
	if err != nil {
		// not necessarily a fatal error, file might just lack EXIF data
		log.Printf("exif: No EXIF data found or error decoding EXIF for %s: %v", filePath, err)
		return meta, nil
	}

	dt, err := exifData.DateTime()
	if err == nil {
		ts := dt.Unix()
		meta.TakenAt = &ts
	} else {
		log.Printf("exif: Could not read capture time for %s: %v", filePath, err)
	}

	return meta, nil
}

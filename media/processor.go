package media

import (
	"fmt"
	"io"
	"log"
	"math"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	PreviewJpegQuality   = 85
	PreviewFileExtension = ".jpg"
)

// Processor handles photo asset handling: storing uploaded originals and
// rendering the bounded preview the annotation UI works against. it relies on
// a Store implementation for saving the results.
type Processor struct {
	store Store
}

func NewProcessor(store Store) *Processor {
	return &Processor{store: store}
}

// SaveOriginal stores an uploaded photo under a UUID filename that keeps the
// original extension. returns the relative stored path.
func (p *Processor) SaveOriginal(originalFilename string, data io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))

	fileUUID, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID for photo original: %w", err)
	}
	targetFilename := fileUUID.String() + ext

	savedRelPath, err := p.store.Save(AssetTypeOriginal, targetFilename, data)
	if err != nil {
		return "", fmt.Errorf("failed to save photo original via store: %w", err)
	}

	log.Printf("processor: Stored original %s at %s", originalFilename, savedRelPath)
	return savedRelPath, nil
}

// StoreFullPath resolves a stored relative path to its absolute location
func (p *Processor) StoreFullPath(storedRelPath string) (string, error) {
	return p.store.GetFullPath(storedRelPath)
}

// GeneratePreview renders a JPEG preview where the longest side matches
// maxSize, reading the original from the store. returns the relative path to
// the saved preview.
func (p *Processor) GeneratePreview(storedRelPath string, maxSize int) (string, error) {
	fullPath, err := p.store.GetFullPath(storedRelPath)
	if err != nil {
		return "", err
	}

	img, err := imaging.Open(fullPath, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to open photo original %s: %w", storedRelPath, err)
	}

	bounds := img.Bounds()
	origWidth, origHeight := bounds.Dx(), bounds.Dy()
	if origWidth <= 0 || origHeight <= 0 {
		return "", fmt.Errorf("invalid original image dimensions: %dx%d", origWidth, origHeight)
	}

	newWidth, newHeight := origWidth, origHeight
	if origWidth > origHeight {
		if origWidth > maxSize {
			newWidth = maxSize
			newHeight = int(math.Round(float64(origHeight) * (float64(maxSize) / float64(origWidth))))
		}
	} else {
		if origHeight > maxSize {
			newHeight = maxSize
			newWidth = int(math.Round(float64(origWidth) * (float64(maxSize) / float64(origHeight))))
		}
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	preview := imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)

	reader, writer := io.Pipe()
	go func() {
		defer writer.Close()
		err := imaging.Encode(writer, preview, imaging.JPEG, imaging.JPEGQuality(PreviewJpegQuality))
		if err != nil {
			log.Printf("processor: Failed to encode preview: %v", err)
			writer.CloseWithError(fmt.Errorf("preview encoding failed: %w", err))
		}
	}()

	previewUUID, err := uuid.NewRandom()
	if err != nil {
		reader.Close()
		return "", fmt.Errorf("failed to generate UUID for preview: %w", err)
	}
	targetFilename := previewUUID.String() + PreviewFileExtension

	savedRelPath, err := p.store.Save(AssetTypePreview, targetFilename, reader)
	if err != nil {
		return "", fmt.Errorf("failed to save preview via store: %w", err)
	}

	log.Printf("processor: Generated and saved preview for %s at %s", storedRelPath, savedRelPath)
	return savedRelPath, nil
}

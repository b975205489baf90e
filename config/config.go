package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultOriginalsSubDir = "photo_originals"
	DefaultPreviewsSubDir  = "photo_previews"
)

const (
	defaultPhotoQueueSize  = 200
	defaultNumPhotoWorkers = 4
	defaultPreviewMaxSize  = 1600
)

type Config struct {
	// database path
	DatabasePath string

	// media storage configuration
	MediaStoragePath string // primary root for photo assets (originals, previews)
	OriginalsPath    string // full-calculated path for uploaded originals
	PreviewsPath     string // full-calculated path for generated previews

	// preview generation settings
	PreviewMaxSize int // longest side, px

	// worker settings
	PhotoQueueSize  int
	NumPhotoWorkers int
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", "colorspec.db")

	mediaStorage := getEnvOrDefault("MEDIA_STORAGE_PATH", filepath.Join(".", "media_storage"))
	absMediaStorage, err := filepath.Abs(mediaStorage)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for media storage '%s': %w", mediaStorage, err)
	}

	originalsSubDir := getEnvOrDefault("ORIGINALS_SUBDIR", DefaultOriginalsSubDir)
	absOriginalsPath := filepath.Join(absMediaStorage, originalsSubDir)

	previewsSubDir := getEnvOrDefault("PREVIEWS_SUBDIR", DefaultPreviewsSubDir)
	absPreviewsPath := filepath.Join(absMediaStorage, previewsSubDir)

	previewMaxSize := getEnvIntOrDefault("PREVIEW_MAX_SIZE", defaultPreviewMaxSize)

	queueSize := getEnvIntOrDefault("PHOTO_QUEUE_SIZE", defaultPhotoQueueSize)
	numWorkers := getEnvIntOrDefault("NUM_PHOTO_WORKERS", defaultNumPhotoWorkers)

	cfg := Config{
		DatabasePath:     dbPath,
		MediaStoragePath: absMediaStorage,
		OriginalsPath:    absOriginalsPath,
		PreviewsPath:     absPreviewsPath,
		PreviewMaxSize:   previewMaxSize,
		PhotoQueueSize:   queueSize,
		NumPhotoWorkers:  numWorkers,
	}

	return cfg, nil
}

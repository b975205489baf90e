package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/huecraft/colorspecbackend/config"
	"github.com/huecraft/colorspecbackend/media"
	"github.com/huecraft/colorspecbackend/models"
	"github.com/huecraft/colorspecbackend/realtime"
	"github.com/huecraft/colorspecbackend/repository"
	"github.com/huecraft/colorspecbackend/workers"
)

const maxUploadSize = 50 << 20 // 50 MiB

type PhotoHandler struct {
	PhotoRepo      repository.PhotoRepositoryInterface
	ProjectRepo    repository.ProjectRepositoryInterface
	Cfg            config.Config
	MediaProcessor *media.Processor
	MediaStore     media.Store
	PreviewGen     *workers.PhotoProcessor
	Hub            *realtime.Hub
}

// UploadPhoto accepts a multipart photo upload for a project, stores the
// original, and queues preview generation
func (ph *PhotoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	projectID, err := uintURLParam(r, "project_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if _, err := ph.ProjectRepo.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
			return
		}
		log.Printf("Error fetching project %d for photo upload: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch project"})
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Failed to parse multipart form: " + err.Error()})
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing 'photo' file field"})
		return
	}
	defer file.Close()

	if !media.IsRasterImage(header.Filename) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Unsupported file type: " + header.Filename})
		return
	}

	storedPath, err := ph.MediaProcessor.SaveOriginal(header.Filename, file)
	if err != nil {
		log.Printf("Error storing uploaded photo %s: %v", header.Filename, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to store photo"})
		return
	}

	photo := models.Photo{
		ProjectID:        projectID,
		OriginalFilename: header.Filename,
		StoredPath:       storedPath,
	}
	if err := ph.PhotoRepo.Create(&photo); err != nil {
		log.Printf("Error creating photo record for %s: %v", header.Filename, err)
		// don't leave the stored file orphaned
		if delErr := ph.MediaStore.Delete(storedPath); delErr != nil {
			log.Printf("Error cleaning up stored file %s: %v", storedPath, delErr)
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create photo record"})
		return
	}

	ph.PreviewGen.QueueJob(workers.PhotoJob{PhotoID: photo.ID, StoredPath: photo.StoredPath})

	writeJSON(w, http.StatusCreated, photo)
}

func (ph *PhotoHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	projectID, err := uintURLParam(r, "project_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sortOrder := r.URL.Query().Get("sort")
	photos, err := ph.PhotoRepo.ListByProject(projectID, sortOrder)
	if err != nil {
		log.Printf("Error listing photos for project %d: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to list photos"})
		return
	}
	writeJSON(w, http.StatusOK, photos)
}

func (ph *PhotoHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	photoID, err := uintURLParam(r, "photo_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	photo, err := ph.PhotoRepo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Photo not found"})
			return
		}
		log.Printf("Error fetching photo %d: %v", photoID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch photo"})
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

// DeletePhoto removes the photo record with its annotations (releasing their
// color references) and then the stored files
func (ph *PhotoHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	photoID, err := uintURLParam(r, "photo_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	photo, err := ph.PhotoRepo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Photo not found"})
			return
		}
		log.Printf("Error fetching photo %d for delete: %v", photoID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch photo"})
		return
	}

	if err := ph.PhotoRepo.Delete(photoID); err != nil {
		log.Printf("Error deleting photo %d: %v", photoID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete photo"})
		return
	}

	// file cleanup is best-effort; the records are already gone
	if err := ph.MediaStore.Delete(photo.StoredPath); err != nil {
		log.Printf("Error deleting stored file %s: %v", photo.StoredPath, err)
	}
	if photo.PreviewPath != nil {
		if err := ph.MediaStore.Delete(*photo.PreviewPath); err != nil {
			log.Printf("Error deleting preview file %s: %v", *photo.PreviewPath, err)
		}
	}

	ph.Hub.Broadcast(realtime.Event{
		Type:      realtime.EventAnnotationChanged,
		ProjectID: photo.ProjectID,
		PhotoID:   photoID,
		Timestamp: time.Now().Unix(),
	})
	writeJSON(w, http.StatusNoContent, nil)
}

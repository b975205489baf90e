package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/huecraft/colorspecbackend/models"
	"github.com/huecraft/colorspecbackend/realtime"
	"github.com/huecraft/colorspecbackend/repository"
)

type AnnotationHandler struct {
	AnnotationRepo repository.AnnotationRepositoryInterface
	PhotoRepo      repository.PhotoRepositoryInterface
	Hub            *realtime.Hub
}

type annotationPayload struct {
	RoomID      *uint    `json:"room_id"`
	SurfaceType *string  `json:"surface_type"`
	ColorID     *uint    `json:"color_id"`
	ProductLine *string  `json:"product_line"`
	Sheen       *string  `json:"sheen"`
	Notes       *string  `json:"notes"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	CreatedAt   *int64   `json:"created_at"` // optional, for retroactive imports
}

// CreateAnnotation adds a mark to a photo. A supplied created_at is honored
// so imported annotations keep their original chronology, which first-use
// accounting depends on.
func (ah *AnnotationHandler) CreateAnnotation(w http.ResponseWriter, r *http.Request) {
	photoID, err := uintURLParam(r, "photo_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	photo, err := ah.PhotoRepo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Photo not found"})
			return
		}
		log.Printf("Error fetching photo %d for annotation create: %v", photoID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch photo"})
		return
	}

	var req annotationPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}

	annotation := models.Annotation{
		PhotoID:     photoID,
		RoomID:      req.RoomID,
		SurfaceType: req.SurfaceType,
		ColorID:     req.ColorID,
		ProductLine: req.ProductLine,
		Sheen:       req.Sheen,
		Notes:       req.Notes,
		X:           req.X,
		Y:           req.Y,
	}
	if req.CreatedAt != nil {
		annotation.CreatedAt = *req.CreatedAt
	}

	if err := ah.AnnotationRepo.Create(&annotation); err != nil {
		log.Printf("Error creating annotation on photo %d: %v", photoID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create annotation"})
		return
	}

	ah.Hub.Broadcast(realtime.Event{
		Type:      realtime.EventAnnotationChanged,
		ProjectID: photo.ProjectID,
		PhotoID:   photoID,
		Timestamp: time.Now().Unix(),
	})
	writeJSON(w, http.StatusCreated, annotation)
}

func (ah *AnnotationHandler) ListAnnotationsByPhoto(w http.ResponseWriter, r *http.Request) {
	photoID, err := uintURLParam(r, "photo_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	annotations, err := ah.AnnotationRepo.ListByPhoto(photoID)
	if err != nil {
		log.Printf("Error listing annotations for photo %d: %v", photoID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to list annotations"})
		return
	}
	writeJSON(w, http.StatusOK, annotations)
}

func (ah *AnnotationHandler) GetAnnotation(w http.ResponseWriter, r *http.Request) {
	annotationID, err := uintURLParam(r, "annotation_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	annotation, err := ah.AnnotationRepo.GetByID(annotationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Annotation not found"})
			return
		}
		log.Printf("Error fetching annotation %d: %v", annotationID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch annotation"})
		return
	}
	writeJSON(w, http.StatusOK, annotation)
}

// UpdateAnnotation replaces an annotation's mutable fields. PUT semantics:
// omitted nullable fields clear the stored value, so changing or removing the
// color reference flows through accounting exactly once.
func (ah *AnnotationHandler) UpdateAnnotation(w http.ResponseWriter, r *http.Request) {
	annotationID, err := uintURLParam(r, "annotation_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	current, err := ah.AnnotationRepo.GetByID(annotationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Annotation not found"})
			return
		}
		log.Printf("Error fetching annotation %d for update: %v", annotationID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch annotation"})
		return
	}

	var req annotationPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}

	updated := models.Annotation{
		ID:          annotationID,
		PhotoID:     current.PhotoID,
		RoomID:      req.RoomID,
		SurfaceType: req.SurfaceType,
		ColorID:     req.ColorID,
		ProductLine: req.ProductLine,
		Sheen:       req.Sheen,
		Notes:       req.Notes,
		X:           req.X,
		Y:           req.Y,
	}

	if err := ah.AnnotationRepo.Update(&updated); err != nil {
		log.Printf("Error updating annotation %d: %v", annotationID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update annotation"})
		return
	}

	refreshed, err := ah.AnnotationRepo.GetByID(annotationID)
	if err != nil {
		log.Printf("Error reloading annotation %d after update: %v", annotationID, err)
		writeJSON(w, http.StatusOK, updated)
		return
	}

	if current.Photo != nil {
		ah.Hub.Broadcast(realtime.Event{
			Type:      realtime.EventAnnotationChanged,
			ProjectID: current.Photo.ProjectID,
			PhotoID:   current.PhotoID,
			Timestamp: time.Now().Unix(),
		})
	}
	writeJSON(w, http.StatusOK, refreshed)
}

func (ah *AnnotationHandler) DeleteAnnotation(w http.ResponseWriter, r *http.Request) {
	annotationID, err := uintURLParam(r, "annotation_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	annotation, err := ah.AnnotationRepo.GetByID(annotationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Annotation not found"})
			return
		}
		log.Printf("Error fetching annotation %d for delete: %v", annotationID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch annotation"})
		return
	}

	if err := ah.AnnotationRepo.Delete(annotationID); err != nil {
		log.Printf("Error deleting annotation %d: %v", annotationID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete annotation"})
		return
	}

	if annotation.Photo != nil {
		ah.Hub.Broadcast(realtime.Event{
			Type:      realtime.EventAnnotationChanged,
			ProjectID: annotation.Photo.ProjectID,
			PhotoID:   annotation.PhotoID,
			Timestamp: time.Now().Unix(),
		})
	}
	writeJSON(w, http.StatusNoContent, nil)
}

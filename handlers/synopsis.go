package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/huecraft/colorspecbackend/models"
	"github.com/huecraft/colorspecbackend/realtime"
	"github.com/huecraft/colorspecbackend/repository"
	"github.com/huecraft/colorspecbackend/synopsis"
)

type SynopsisHandler struct {
	SynopsisRepo   repository.SynopsisRepositoryInterface
	AnnotationRepo repository.AnnotationRepositoryInterface
	ProjectRepo    repository.ProjectRepositoryInterface
	Hub            *realtime.Hub
}

// GetProjectSynopsis computes the live synopsis for a project from its
// current annotations. Nothing is persisted; repeated calls over unchanged
// annotations return identical output.
func (sh *SynopsisHandler) GetProjectSynopsis(w http.ResponseWriter, r *http.Request) {
	projectID, err := sh.resolveProject(w, r)
	if err != nil {
		return
	}

	annotations, err := sh.AnnotationRepo.ListByProject(projectID)
	if err != nil {
		log.Printf("Error listing annotations for project %d synopsis: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to compute synopsis"})
		return
	}

	writeJSON(w, http.StatusOK, synopsis.Aggregate(annotations))
}

type synopsisEntryPayload struct {
	RoomID      *uint    `json:"room_id"`
	ColorID     *uint    `json:"color_id"`
	SurfaceType string   `json:"surface_type"`
	ProductLine string   `json:"product_line"`
	Sheen       string   `json:"sheen"`
	Area        *float64 `json:"area"`
	Quantity    *float64 `json:"quantity"`
	Notes       *string  `json:"notes"`
}

type createSynopsisRequest struct {
	Title           string                 `json:"title"`
	FromAnnotations bool                   `json:"from_annotations"`
	Entries         []synopsisEntryPayload `json:"entries"`
}

// CreateSynopsis persists a named synopsis for a project. With
// from_annotations set the entries are seeded from the aggregation engine's
// current rows; otherwise the caller supplies them. Either way every entry
// with a color reference increments usage accounting.
func (sh *SynopsisHandler) CreateSynopsis(w http.ResponseWriter, r *http.Request) {
	projectID, err := sh.resolveProject(w, r)
	if err != nil {
		return
	}

	var req createSynopsisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Title is required"})
		return
	}

	record := models.Synopsis{
		ProjectID: projectID,
		Title:     strings.TrimSpace(req.Title),
	}

	if req.FromAnnotations {
		annotations, err := sh.AnnotationRepo.ListByProject(projectID)
		if err != nil {
			log.Printf("Error listing annotations for project %d synopsis seed: %v", projectID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to compute synopsis"})
			return
		}
		record.Entries = entriesFromResult(synopsis.Aggregate(annotations))
	} else {
		for _, e := range req.Entries {
			if strings.TrimSpace(e.SurfaceType) == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Entry surface_type is required"})
				return
			}
			record.Entries = append(record.Entries, models.SynopsisEntry{
				RoomID:      e.RoomID,
				ColorID:     e.ColorID,
				SurfaceType: strings.TrimSpace(e.SurfaceType),
				ProductLine: e.ProductLine,
				Sheen:       e.Sheen,
				Area:        e.Area,
				Quantity:    e.Quantity,
				Notes:       e.Notes,
			})
		}
	}

	if err := sh.SynopsisRepo.CreateWithEntries(&record); err != nil {
		log.Printf("Error creating synopsis for project %d: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create synopsis"})
		return
	}

	sh.broadcast(projectID)
	writeJSON(w, http.StatusCreated, record)
}

// entriesFromResult flattens the engine's per-room rows into storable entries.
func entriesFromResult(result *synopsis.Result) []models.SynopsisEntry {
	var entries []models.SynopsisEntry
	for _, room := range result.Rooms {
		for _, row := range room.Surfaces {
			colorID := row.ColorID
			entry := models.SynopsisEntry{
				RoomID:      row.RoomID,
				ColorID:     &colorID,
				SurfaceType: row.SurfaceType,
				ProductLine: row.ProductLine,
				Sheen:       row.Sheen,
			}
			if row.Notes != "" {
				notes := row.Notes
				entry.Notes = &notes
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

func (sh *SynopsisHandler) ListSynopses(w http.ResponseWriter, r *http.Request) {
	projectID, err := sh.resolveProject(w, r)
	if err != nil {
		return
	}

	synopses, err := sh.SynopsisRepo.ListByProject(projectID)
	if err != nil {
		log.Printf("Error listing synopses for project %d: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to list synopses"})
		return
	}
	writeJSON(w, http.StatusOK, synopses)
}

func (sh *SynopsisHandler) GetSynopsis(w http.ResponseWriter, r *http.Request) {
	synopsisID, err := uintURLParam(r, "synopsis_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	record, err := sh.SynopsisRepo.GetByID(synopsisID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Synopsis not found"})
			return
		}
		log.Printf("Error fetching synopsis %d: %v", synopsisID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch synopsis"})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (sh *SynopsisHandler) DeleteSynopsis(w http.ResponseWriter, r *http.Request) {
	synopsisID, err := uintURLParam(r, "synopsis_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	record, err := sh.SynopsisRepo.GetByID(synopsisID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Synopsis not found"})
			return
		}
		log.Printf("Error fetching synopsis %d for delete: %v", synopsisID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch synopsis"})
		return
	}

	if err := sh.SynopsisRepo.Delete(synopsisID); err != nil {
		log.Printf("Error deleting synopsis %d: %v", synopsisID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete synopsis"})
		return
	}

	sh.broadcast(record.ProjectID)
	writeJSON(w, http.StatusNoContent, nil)
}

func (sh *SynopsisHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	synopsisID, err := uintURLParam(r, "synopsis_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	record, err := sh.SynopsisRepo.GetByID(synopsisID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Synopsis not found"})
			return
		}
		log.Printf("Error fetching synopsis %d for entry add: %v", synopsisID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch synopsis"})
		return
	}

	var req synopsisEntryPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.SurfaceType) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Entry surface_type is required"})
		return
	}

	entry := models.SynopsisEntry{
		SynopsisID:  synopsisID,
		RoomID:      req.RoomID,
		ColorID:     req.ColorID,
		SurfaceType: strings.TrimSpace(req.SurfaceType),
		ProductLine: req.ProductLine,
		Sheen:       req.Sheen,
		Area:        req.Area,
		Quantity:    req.Quantity,
		Notes:       req.Notes,
	}

	if err := sh.SynopsisRepo.AddEntry(&entry); err != nil {
		log.Printf("Error adding entry to synopsis %d: %v", synopsisID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to add entry"})
		return
	}

	sh.broadcast(record.ProjectID)
	writeJSON(w, http.StatusCreated, entry)
}

func (sh *SynopsisHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	synopsisID, err := uintURLParam(r, "synopsis_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	entryID, err := uintURLParam(r, "entry_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	record, err := sh.SynopsisRepo.GetByID(synopsisID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Synopsis not found"})
			return
		}
		log.Printf("Error fetching synopsis %d for entry delete: %v", synopsisID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch synopsis"})
		return
	}

	found := false
	for _, e := range record.Entries {
		if e.ID == entryID {
			found = true
			break
		}
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Entry not found in synopsis"})
		return
	}

	if err := sh.SynopsisRepo.DeleteEntry(entryID); err != nil {
		log.Printf("Error deleting entry %d from synopsis %d: %v", entryID, synopsisID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete entry"})
		return
	}

	sh.broadcast(record.ProjectID)
	writeJSON(w, http.StatusNoContent, nil)
}

// resolveProject parses the project_id route param and checks the project
// exists, writing the error response itself when it does not.
func (sh *SynopsisHandler) resolveProject(w http.ResponseWriter, r *http.Request) (uint, error) {
	projectID, err := uintURLParam(r, "project_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return 0, err
	}
	if _, err := sh.ProjectRepo.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
			return 0, err
		}
		log.Printf("Error fetching project %d: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch project"})
		return 0, err
	}
	return projectID, nil
}

func (sh *SynopsisHandler) broadcast(projectID uint) {
	sh.Hub.Broadcast(realtime.Event{
		Type:      realtime.EventSynopsisChanged,
		ProjectID: projectID,
		Timestamp: time.Now().Unix(),
	})
}

package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/huecraft/colorspecbackend/repository"
	"github.com/huecraft/colorspecbackend/synopsis"
)

type SuggestionHandler struct {
	AnnotationRepo repository.AnnotationRepositoryInterface
	ProjectRepo    repository.ProjectRepositoryInterface
}

// GetSuggestions ranks the project's past color/surface/finish combinations
// for quick-pick reuse. ?limit= caps the list; it defaults to
// synopsis.DefaultSuggestionLimit.
func (gh *SuggestionHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	projectID, err := uintURLParam(r, "project_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if _, err := gh.ProjectRepo.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
			return
		}
		log.Printf("Error fetching project %d for suggestions: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch project"})
		return
	}

	limit := synopsis.DefaultSuggestionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	annotations, err := gh.AnnotationRepo.ListByProject(projectID)
	if err != nil {
		log.Printf("Error listing annotations for project %d suggestions: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to compute suggestions"})
		return
	}

	writeJSON(w, http.StatusOK, synopsis.Rank(annotations, limit))
}

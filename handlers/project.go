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

type ProjectHandler struct {
	ProjectRepo repository.ProjectRepositoryInterface
	Hub         *realtime.Hub
}

func (ph *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string  `json:"name"`
		ClientName *string `json:"client_name"`
		Address    *string `json:"address"`
		Notes      *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required field: name"})
		return
	}

	project := models.Project{
		Name:       req.Name,
		ClientName: req.ClientName,
		Address:    req.Address,
		Notes:      req.Notes,
	}
	if err := ph.ProjectRepo.Create(&project); err != nil {
		log.Printf("Error creating project %q: %v", req.Name, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create project"})
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (ph *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := ph.ProjectRepo.ListAll()
	if err != nil {
		log.Printf("Error listing projects: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to list projects"})
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (ph *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uintURLParam(r, "project_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	project, err := ph.ProjectRepo.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
			return
		}
		log.Printf("Error fetching project %d: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch project"})
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (ph *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uintURLParam(r, "project_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	project, err := ph.ProjectRepo.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
			return
		}
		log.Printf("Error fetching project %d for update: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch project"})
		return
	}

	var req struct {
		Name       *string `json:"name"`
		ClientName *string `json:"client_name"`
		Address    *string `json:"address"`
		Notes      *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.Name != nil {
		if *req.Name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Project name cannot be empty"})
			return
		}
		project.Name = *req.Name
	}
	if req.ClientName != nil {
		project.ClientName = req.ClientName
	}
	if req.Address != nil {
		project.Address = req.Address
	}
	if req.Notes != nil {
		project.Notes = req.Notes
	}

	if err := ph.ProjectRepo.Update(project); err != nil {
		log.Printf("Error updating project %d: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update project"})
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (ph *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uintURLParam(r, "project_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := ph.ProjectRepo.Delete(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
			return
		}
		log.Printf("Error deleting project %d: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete project"})
		return
	}

	ph.Hub.Broadcast(realtime.Event{
		Type:      realtime.EventSynopsisChanged,
		ProjectID: projectID,
		Timestamp: time.Now().Unix(),
	})
	writeJSON(w, http.StatusNoContent, nil)
}

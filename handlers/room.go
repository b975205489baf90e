package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/huecraft/colorspecbackend/models"
	"github.com/huecraft/colorspecbackend/repository"
)

type RoomHandler struct {
	RoomRepo repository.RoomRepositoryInterface
}

type roomRequest struct {
	Name string `json:"name"`
}

func (rh *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Room name is required"})
		return
	}

	room := models.Room{Name: req.Name}
	if err := rh.RoomRepo.Create(&room); err != nil {
		log.Printf("Error creating room %q: %v", req.Name, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create room"})
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (rh *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := rh.RoomRepo.ListAll()
	if err != nil {
		log.Printf("Error listing rooms: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to list rooms"})
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (rh *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := uintURLParam(r, "room_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	room, err := rh.RoomRepo.GetByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Room not found"})
			return
		}
		log.Printf("Error fetching room %d: %v", roomID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch room"})
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (rh *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := uintURLParam(r, "room_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if _, err := rh.RoomRepo.GetByID(roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Room not found"})
			return
		}
		log.Printf("Error fetching room %d for update: %v", roomID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch room"})
		return
	}

	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Room name is required"})
		return
	}

	room := models.Room{ID: roomID, Name: req.Name}
	if err := rh.RoomRepo.Update(&room); err != nil {
		log.Printf("Error updating room %d: %v", roomID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update room"})
		return
	}

	updated, err := rh.RoomRepo.GetByID(roomID)
	if err != nil {
		writeJSON(w, http.StatusOK, room)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteRoom removes a room. Annotations and synopsis entries that referenced
// it become unassigned; they are not deleted.
func (rh *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := uintURLParam(r, "room_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if _, err := rh.RoomRepo.GetByID(roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Room not found"})
			return
		}
		log.Printf("Error fetching room %d for delete: %v", roomID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch room"})
		return
	}

	if err := rh.RoomRepo.Delete(roomID); err != nil {
		log.Printf("Error deleting room %d: %v", roomID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete room"})
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

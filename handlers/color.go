package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/huecraft/colorspecbackend/database"
	"github.com/huecraft/colorspecbackend/models"
	"github.com/huecraft/colorspecbackend/repository"
)

type ColorHandler struct {
	ColorRepo repository.CatalogColorRepositoryInterface
	ReportDB  *sql.DB
}

type colorAvailabilityPayload struct {
	ProductLine string `json:"product_line"`
	Sheen       string `json:"sheen"`
}

type createColorRequest struct {
	Code         string                     `json:"code"`
	Name         string                     `json:"name"`
	Manufacturer string                     `json:"manufacturer"`
	Hex          string                     `json:"hex"`
	Availability []colorAvailabilityPayload `json:"availability"`
}

// CreateColor adds a catalog color with its product line / sheen availability.
// The supplied availability order is preserved; the first record acts as the
// default when annotations omit a product line or sheen.
func (ch *ColorHandler) CreateColor(w http.ResponseWriter, r *http.Request) {
	var req createColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Invalid request body: "+err.Error())
		return
	}

	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	if req.Code == "" || req.Name == "" || strings.TrimSpace(req.Manufacturer) == "" {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Code, name and manufacturer are required")
		return
	}

	if existing, err := ch.ColorRepo.GetByCode(req.Code); err == nil && existing != nil {
		WriteAPIError(w, http.StatusConflict, "duplicate_code", "A color with this code already exists")
		return
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking for existing color %s: %v", req.Code, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to create color")
		return
	}

	color := models.CatalogColor{
		Code:         req.Code,
		Name:         req.Name,
		Manufacturer: strings.TrimSpace(req.Manufacturer),
		Hex:          strings.TrimSpace(req.Hex),
	}
	for _, a := range req.Availability {
		color.Availability = append(color.Availability, models.ColorAvailability{
			ProductLine: strings.TrimSpace(a.ProductLine),
			Sheen:       strings.TrimSpace(a.Sheen),
		})
	}

	if err := ch.ColorRepo.Create(&color); err != nil {
		log.Printf("Error creating color %s: %v", req.Code, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to create color")
		return
	}
	writeJSON(w, http.StatusCreated, color)
}

// ListColors returns the catalog, filtered by ?q= substring search when given.
func (ch *ColorHandler) ListColors(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var (
		colors []models.CatalogColor
		err    error
	)
	if query != "" {
		colors, err = ch.ColorRepo.Search(query)
	} else {
		colors, err = ch.ColorRepo.ListAll()
	}
	if err != nil {
		log.Printf("Error listing colors (q=%q): %v", query, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to list colors")
		return
	}
	writeJSON(w, http.StatusOK, colors)
}

func (ch *ColorHandler) GetColor(w http.ResponseWriter, r *http.Request) {
	colorID, err := uintURLParam(r, "color_id")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	color, err := ch.ColorRepo.GetByID(colorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Color not found")
			return
		}
		log.Printf("Error fetching color %d: %v", colorID, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch color")
		return
	}
	writeJSON(w, http.StatusOK, color)
}

// GetUsageReport returns per-color usage counters alongside the live
// reference counts, so drifted counters are visible without manual SQL.
func (ch *ColorHandler) GetUsageReport(w http.ResponseWriter, r *http.Request) {
	reports, err := database.GetColorUsageReport(ch.ReportDB)
	if err != nil {
		log.Printf("Error building color usage report: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to build usage report")
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

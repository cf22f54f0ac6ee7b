package handlers

import (
	"context"
	"net/http"

	"github.com/Saranya396/projectt/internal/application/services"
	"github.com/Saranya396/projectt/internal/domain/entities"
)

// PharmacistService defines the pharmacist dashboard operations.
type PharmacistService interface {
	Prescriptions(ctx context.Context) ([]entities.Prescription, error)
	RecordPrescription(ctx context.Context, pharmacist entities.User, in services.PrescriptionInput) (*entities.Prescription, error)
	Inventory(ctx context.Context) ([]entities.MedicineInventoryItem, error)
	AddInventoryItem(ctx context.Context, in services.InventoryInput) (*entities.MedicineInventoryItem, error)
}

// PharmacistHandler serves the pharmacist dashboard.
type PharmacistHandler struct {
	service PharmacistService
}

// NewPharmacistHandler creates a new pharmacist handler.
func NewPharmacistHandler(service PharmacistService) *PharmacistHandler {
	return &PharmacistHandler{service: service}
}

// ListPrescriptions handles GET /api/pharmacist/prescriptions
func (h *PharmacistHandler) ListPrescriptions(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Prescriptions(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// RecordPrescription handles POST /api/pharmacist/prescriptions
func (h *PharmacistHandler) RecordPrescription(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in services.PrescriptionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	rx, err := h.service.RecordPrescription(r.Context(), user, in)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, rx)
}

// ListInventory handles GET /api/pharmacist/inventory
func (h *PharmacistHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Inventory(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}

// AddInventoryItem handles POST /api/pharmacist/inventory
func (h *PharmacistHandler) AddInventoryItem(w http.ResponseWriter, r *http.Request) {
	var in services.InventoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	item, err := h.service.AddInventoryItem(r.Context(), in)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, item)
}

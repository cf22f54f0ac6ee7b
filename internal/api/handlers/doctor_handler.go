package handlers

import (
	"context"
	"net/http"

	"github.com/Saranya396/projectt/internal/application/services"
	"github.com/Saranya396/projectt/internal/domain/entities"
)

// DoctorService defines the doctor dashboard operations.
type DoctorService interface {
	Appointments(ctx context.Context, doctor entities.User) ([]entities.Appointment, error)
	PatientHistory(ctx context.Context, patientEmail string) ([]entities.MedicalHistoryEntry, error)
	PatientPrescriptions(ctx context.Context, patientEmail string) ([]entities.Prescription, error)
	AddHistory(ctx context.Context, doctor entities.User, in services.HistoryInput) (*entities.MedicalHistoryEntry, error)
	IssuePrescription(ctx context.Context, doctor entities.User, in services.PrescriptionInput) (*entities.Prescription, error)
}

// DoctorHandler serves the doctor dashboard.
type DoctorHandler struct {
	service DoctorService
}

// NewDoctorHandler creates a new doctor handler.
func NewDoctorHandler(service DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

// ListAppointments handles GET /api/doctor/appointments
func (h *DoctorHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	list, err := h.service.Appointments(r.Context(), user)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// PatientHistory handles GET /api/doctor/patients/{email}/history
func (h *DoctorHandler) PatientHistory(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.PatientHistory(r.Context(), r.PathValue("email"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// PatientPrescriptions handles GET /api/doctor/patients/{email}/prescriptions
func (h *DoctorHandler) PatientPrescriptions(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.PatientPrescriptions(r.Context(), r.PathValue("email"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// AddHistory handles POST /api/doctor/history
func (h *DoctorHandler) AddHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in services.HistoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	entry, err := h.service.AddHistory(r.Context(), user, in)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, entry)
}

// IssuePrescription handles POST /api/doctor/prescriptions
func (h *DoctorHandler) IssuePrescription(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in services.PrescriptionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	rx, err := h.service.IssuePrescription(r.Context(), user, in)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, rx)
}

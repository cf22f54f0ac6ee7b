package handlers

import (
	"context"
	"net/http"

	"github.com/Saranya396/projectt/internal/application/services"
	"github.com/Saranya396/projectt/internal/domain/entities"
)

// PatientService defines the patient dashboard operations.
type PatientService interface {
	Appointments(ctx context.Context, patient entities.User) ([]entities.Appointment, error)
	BookAppointment(ctx context.Context, patient entities.User, in services.BookAppointmentInput) (*entities.Appointment, error)
	Doctors(ctx context.Context) ([]entities.User, error)
	History(ctx context.Context, patient entities.User) ([]entities.MedicalHistoryEntry, error)
	AddHistory(ctx context.Context, patient entities.User, in services.HistoryInput) (*entities.MedicalHistoryEntry, error)
	Prescriptions(ctx context.Context, patient entities.User) ([]entities.Prescription, error)
}

// PatientHandler serves the patient dashboard.
type PatientHandler struct {
	service PatientService
}

// NewPatientHandler creates a new patient handler.
func NewPatientHandler(service PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// ListAppointments handles GET /api/patient/appointments
func (h *PatientHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
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

// BookAppointment handles POST /api/patient/appointments
func (h *PatientHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in services.BookAppointmentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	appointment, err := h.service.BookAppointment(r.Context(), user, in)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, appointment)
}

// ListDoctors handles GET /api/patient/doctors
func (h *PatientHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.Doctors(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, entities.Profiles(doctors))
}

// ListHistory handles GET /api/patient/history
func (h *PatientHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	list, err := h.service.History(r.Context(), user)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// AddHistory handles POST /api/patient/history
func (h *PatientHandler) AddHistory(w http.ResponseWriter, r *http.Request) {
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

// ListPrescriptions handles GET /api/patient/prescriptions
func (h *PatientHandler) ListPrescriptions(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	list, err := h.service.Prescriptions(r.Context(), user)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

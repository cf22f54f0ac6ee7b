package services

import (
	"context"
	"strings"

	"github.com/Saranya396/projectt/internal/domain/entities"
	"github.com/Saranya396/projectt/internal/domain/providers"
	"github.com/Saranya396/projectt/internal/domain/repositories"
	apperrors "github.com/Saranya396/projectt/pkg/errors"
)

// BookAppointmentInput is the patient booking form
type BookAppointmentInput struct {
	DoctorEmail string `json:"doctorEmail"`
	DoctorName  string `json:"doctorName"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// HistoryInput is a medical history form
type HistoryInput struct {
	PatientEmail string `json:"patientEmail"`
	Title        string `json:"title"`
	Notes        string `json:"notes"`
	Date         string `json:"date"`
}

// PatientService backs the patient dashboard. Every read is scoped to the
// patient's email.
type PatientService struct {
	accounts      *AccountService
	appointments  repositories.AppointmentRepository
	history       repositories.MedicalHistoryRepository
	prescriptions repositories.PrescriptionRepository
	ids           *IDGenerator
	clock         Clock
	events        publisher
}

// NewPatientService creates a new patient dashboard service
func NewPatientService(
	accounts *AccountService,
	appointments repositories.AppointmentRepository,
	history repositories.MedicalHistoryRepository,
	prescriptions repositories.PrescriptionRepository,
	ids *IDGenerator,
	clock Clock,
	opts ...Option,
) *PatientService {
	return &PatientService{
		accounts:      accounts,
		appointments:  appointments,
		history:       history,
		prescriptions: prescriptions,
		ids:           ids,
		clock:         clock,
		events:        publisherFrom(opts),
	}
}

// Appointments lists the patient's own appointments
func (s *PatientService) Appointments(ctx context.Context, patient entities.User) ([]entities.Appointment, error) {
	return loadScoped[entities.Appointment](ctx, s.appointments, patient.Email, func(a entities.Appointment) string {
		return a.PatientEmail
	})
}

// BookAppointment books the patient in with a doctor. The doctor is not
// required to exist; when one does, its registered name wins.
func (s *PatientService) BookAppointment(ctx context.Context, patient entities.User, in BookAppointmentInput) (*entities.Appointment, error) {
	switch {
	case blank(in.DoctorEmail):
		return nil, apperrors.NewValidationError("doctor is required")
	case blank(in.Date):
		return nil, apperrors.NewValidationError("date is required")
	case blank(in.Time):
		return nil, apperrors.NewValidationError("time is required")
	}

	doctorEmail := strings.TrimSpace(in.DoctorEmail)
	doctorName := strings.TrimSpace(in.DoctorName)
	doctors, err := s.accounts.ListByRole(ctx, entities.RoleDoctor)
	if err != nil {
		return nil, err
	}
	for _, d := range doctors {
		if d.Email == doctorEmail {
			doctorName = d.FullName
			break
		}
	}

	appointment := entities.Appointment{
		ID:           s.ids.Next(),
		PatientEmail: patient.Email,
		PatientName:  patient.FullName,
		DoctorEmail:  doctorEmail,
		DoctorName:   doctorName,
		Date:         strings.TrimSpace(in.Date),
		Time:         strings.TrimSpace(in.Time),
	}
	if err := appendRecord[entities.Appointment](ctx, s.appointments, appointment); err != nil {
		return nil, err
	}

	s.events.publish(ctx,
		entities.NewPortalEvent(entities.PortalEventAppointmentBooked, appointment.ID, patient.Email, appointment.Date+" "+appointment.Time, s.clock.Now()),
		providers.UserChannel(entities.RoleDoctor, appointment.DoctorEmail),
		providers.UserChannel(entities.RolePatient, patient.Email))
	return &appointment, nil
}

// Doctors lists registered doctors for the booking form
func (s *PatientService) Doctors(ctx context.Context) ([]entities.User, error) {
	return s.accounts.ListByRole(ctx, entities.RoleDoctor)
}

// History lists the patient's own history entries
func (s *PatientService) History(ctx context.Context, patient entities.User) ([]entities.MedicalHistoryEntry, error) {
	return loadScoped[entities.MedicalHistoryEntry](ctx, s.history, patient.Email, func(h entities.MedicalHistoryEntry) string {
		return h.PatientEmail
	})
}

// AddHistory records a history entry on the patient's own record.
// in.PatientEmail is ignored.
func (s *PatientService) AddHistory(ctx context.Context, patient entities.User, in HistoryInput) (*entities.MedicalHistoryEntry, error) {
	if blank(in.Title) {
		return nil, apperrors.NewValidationError("title is required")
	}

	entry := newHistoryEntry(s.ids, s.clock, patient.Email, patient.Email, in)
	if err := appendRecord[entities.MedicalHistoryEntry](ctx, s.history, entry); err != nil {
		return nil, err
	}

	s.events.publish(ctx,
		entities.NewPortalEvent(entities.PortalEventHistoryAdded, entry.ID, patient.Email, entry.Title, s.clock.Now()),
		providers.UserChannel(entities.RolePatient, patient.Email))
	return &entry, nil
}

// Prescriptions lists prescriptions issued to the patient
func (s *PatientService) Prescriptions(ctx context.Context, patient entities.User) ([]entities.Prescription, error) {
	return loadScoped[entities.Prescription](ctx, s.prescriptions, patient.Email, func(p entities.Prescription) string {
		return p.PatientEmail
	})
}

func newHistoryEntry(ids *IDGenerator, clock Clock, patientEmail, authorEmail string, in HistoryInput) entities.MedicalHistoryEntry {
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = today(clock)
	}
	return entities.MedicalHistoryEntry{
		ID:           ids.Next(),
		PatientEmail: patientEmail,
		Title:        strings.TrimSpace(in.Title),
		Notes:        in.Notes,
		Date:         date,
		AuthorEmail:  authorEmail,
	}
}

package services

import (
	"context"
	"strings"

	"github.com/Saranya396/projectt/internal/domain/entities"
	"github.com/Saranya396/projectt/internal/domain/providers"
	"github.com/Saranya396/projectt/internal/domain/repositories"
	apperrors "github.com/Saranya396/projectt/pkg/errors"
)

// PrescriptionInput is the prescription form shared by doctors and
// pharmacists
type PrescriptionInput struct {
	PatientEmail  string `json:"patientEmail"`
	PatientName   string `json:"patientName"`
	PatientGender string `json:"patientGender"`
	Medicine      string `json:"medicine"`
	Dosage        string `json:"dosage"`
	Notes         string `json:"notes"`
	Date          string `json:"date"`
}

// DoctorService backs the doctor dashboard
type DoctorService struct {
	appointments  repositories.AppointmentRepository
	history       repositories.MedicalHistoryRepository
	prescriptions repositories.PrescriptionRepository
	ids           *IDGenerator
	clock         Clock
	events        publisher
}

// NewDoctorService creates a new doctor dashboard service
func NewDoctorService(
	appointments repositories.AppointmentRepository,
	history repositories.MedicalHistoryRepository,
	prescriptions repositories.PrescriptionRepository,
	ids *IDGenerator,
	clock Clock,
	opts ...Option,
) *DoctorService {
	return &DoctorService{
		appointments:  appointments,
		history:       history,
		prescriptions: prescriptions,
		ids:           ids,
		clock:         clock,
		events:        publisherFrom(opts),
	}
}

// Appointments lists appointments booked with the doctor
func (s *DoctorService) Appointments(ctx context.Context, doctor entities.User) ([]entities.Appointment, error) {
	return loadScoped[entities.Appointment](ctx, s.appointments, doctor.Email, func(a entities.Appointment) string {
		return a.DoctorEmail
	})
}

// PatientHistory lists a patient's history entries
func (s *DoctorService) PatientHistory(ctx context.Context, patientEmail string) ([]entities.MedicalHistoryEntry, error) {
	return loadScoped[entities.MedicalHistoryEntry](ctx, s.history, patientEmail, func(h entities.MedicalHistoryEntry) string {
		return h.PatientEmail
	})
}

// PatientPrescriptions lists a patient's prescriptions
func (s *DoctorService) PatientPrescriptions(ctx context.Context, patientEmail string) ([]entities.Prescription, error) {
	return loadScoped[entities.Prescription](ctx, s.prescriptions, patientEmail, func(p entities.Prescription) string {
		return p.PatientEmail
	})
}

// AddHistory records a history entry on a patient's record
func (s *DoctorService) AddHistory(ctx context.Context, doctor entities.User, in HistoryInput) (*entities.MedicalHistoryEntry, error) {
	switch {
	case blank(in.Title):
		return nil, apperrors.NewValidationError("title is required")
	case blank(in.PatientEmail):
		return nil, apperrors.NewValidationError("patient email is required")
	}

	entry := newHistoryEntry(s.ids, s.clock, strings.TrimSpace(in.PatientEmail), doctor.Email, in)
	if err := appendRecord[entities.MedicalHistoryEntry](ctx, s.history, entry); err != nil {
		return nil, err
	}

	s.events.publish(ctx,
		entities.NewPortalEvent(entities.PortalEventHistoryAdded, entry.ID, doctor.Email, entry.Title, s.clock.Now()),
		providers.UserChannel(entities.RolePatient, entry.PatientEmail))
	return &entry, nil
}

// IssuePrescription writes an e-prescription signed by the doctor
func (s *DoctorService) IssuePrescription(ctx context.Context, doctor entities.User, in PrescriptionInput) (*entities.Prescription, error) {
	if err := validatePrescription(in); err != nil {
		return nil, err
	}

	p := newPrescription(s.ids, s.clock, in)
	p.DoctorEmail = doctor.Email
	p.DoctorName = doctor.FullName

	if err := appendRecord[entities.Prescription](ctx, s.prescriptions, p); err != nil {
		return nil, err
	}

	s.events.publish(ctx,
		entities.NewPortalEvent(entities.PortalEventPrescriptionIssued, p.ID, doctor.Email, p.Medicine, s.clock.Now()),
		providers.UserChannel(entities.RolePatient, p.PatientEmail),
		providers.RoleChannel(entities.RolePharmacist))
	return &p, nil
}

func validatePrescription(in PrescriptionInput) error {
	switch {
	case blank(in.Medicine):
		return apperrors.NewValidationError("medicine is required")
	case blank(in.PatientEmail):
		return apperrors.NewValidationError("patient email is required")
	}
	return nil
}

func newPrescription(ids *IDGenerator, clock Clock, in PrescriptionInput) entities.Prescription {
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = today(clock)
	}
	return entities.Prescription{
		ID:            ids.Next(),
		PatientEmail:  strings.TrimSpace(in.PatientEmail),
		PatientName:   strings.TrimSpace(in.PatientName),
		PatientGender: strings.TrimSpace(in.PatientGender),
		Medicine:      strings.TrimSpace(in.Medicine),
		Dosage:        in.Dosage,
		Notes:         in.Notes,
		Date:          date,
	}
}

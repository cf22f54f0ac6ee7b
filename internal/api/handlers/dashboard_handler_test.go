package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saranya396/projectt/internal/adapters/database"
	"github.com/Saranya396/projectt/internal/adapters/storage"
	"github.com/Saranya396/projectt/internal/api/handlers"
	"github.com/Saranya396/projectt/internal/application/services"
	"github.com/Saranya396/projectt/internal/application/session"
	"github.com/Saranya396/projectt/internal/domain/entities"
	"github.com/Saranya396/projectt/pkg/config"
	apperrors "github.com/Saranya396/projectt/pkg/errors"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
}

type dashboards struct {
	accounts   *services.AccountService
	patient    *handlers.PatientHandler
	doctor     *handlers.DoctorHandler
	pharmacist *handlers.PharmacistHandler
	admin      *handlers.AdminHandler
	registry   *session.Registry
}

func newDashboards() *dashboards {
	store := storage.NewMemoryStore()
	clock := fixedClock{}
	ids := services.NewIDGenerator(clock)
	appointments := database.NewAppointmentRepository(store)
	history := database.NewMedicalHistoryRepository(store)
	prescriptions := database.NewPrescriptionRepository(store)

	accounts := services.NewAccountService(database.NewUserRepository(store), ids)
	return &dashboards{
		accounts:   accounts,
		patient:    handlers.NewPatientHandler(services.NewPatientService(accounts, appointments, history, prescriptions, ids, clock)),
		doctor:     handlers.NewDoctorHandler(services.NewDoctorService(appointments, history, prescriptions, ids, clock)),
		pharmacist: handlers.NewPharmacistHandler(services.NewPharmacistService(prescriptions, database.NewInventoryRepository(store), ids, clock)),
		admin:      handlers.NewAdminHandler(services.NewAdminService(accounts, services.NewPlatformSettings(config.PlatformConfig{SelfSignupAllowed: true}))),
		registry:   session.NewRegistry(),
	}
}

func (d *dashboards) login(t *testing.T, email string, role entities.Role, name string) session.Session {
	t.Helper()
	user, err := d.accounts.Register(context.Background(), services.RegisterInput{
		FullName: name, Gender: "female", Age: 30, Email: email, Phone: "9876543210", Password: "ab12cd", Role: role,
	})
	require.NoError(t, err)
	return d.registry.Open(*user)
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestPatientAndDoctorHandlers(t *testing.T) {
	d := newDashboards()
	patient := d.login(t, "a@gmail.com", entities.RolePatient, "A B")
	doctor := d.login(t, "d@gmail.com", entities.RoleDoctor, "Dr Dee")

	w := serve(d.patient.BookAppointment, withSession(httptest.NewRequest("POST", "/api/patient/appointments",
		strings.NewReader(`{"doctorEmail":"d@gmail.com","date":"2026-10-20","time":"10:00"}`)), patient))
	require.Equal(t, http.StatusCreated, w.Code)

	w = serve(d.patient.BookAppointment, withSession(httptest.NewRequest("POST", "/api/patient/appointments",
		strings.NewReader(`{"doctorEmail":"d@gmail.com","time":"10:00"}`)), patient))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "date is required", decodeBody(t, w)["error"])

	w = serve(d.doctor.ListAppointments, withSession(httptest.NewRequest("GET", "/api/doctor/appointments", nil), doctor))
	require.Equal(t, http.StatusOK, w.Code)
	var appointments []entities.Appointment
	require.NoError(t, json.NewDecoder(w.Body).Decode(&appointments))
	require.Len(t, appointments, 1)
	assert.Equal(t, "Dr Dee", appointments[0].DoctorName)
	assert.Equal(t, "a@gmail.com", appointments[0].PatientEmail)

	w = serve(d.patient.ListDoctors, withSession(httptest.NewRequest("GET", "/api/patient/doctors", nil), patient))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.Contains(t, w.Body.String(), "d@gmail.com")

	w = serve(d.doctor.IssuePrescription, withSession(httptest.NewRequest("POST", "/api/doctor/prescriptions",
		strings.NewReader(`{"patientEmail":"a@gmail.com","medicine":"Cetirizine 10mg","dosage":"1 daily"}`)), doctor))
	require.Equal(t, http.StatusCreated, w.Code)

	w = serve(d.doctor.AddHistory, withSession(httptest.NewRequest("POST", "/api/doctor/history",
		strings.NewReader(`{"patientEmail":"a@gmail.com","title":"Allergy"}`)), doctor))
	require.Equal(t, http.StatusCreated, w.Code)

	req := withSession(httptest.NewRequest("GET", "/api/doctor/patients/a@gmail.com/history", nil), doctor)
	req.SetPathValue("email", "a@gmail.com")
	w = serve(d.doctor.PatientHistory, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Allergy")

	req = withSession(httptest.NewRequest("GET", "/api/doctor/patients/a@gmail.com/prescriptions", nil), doctor)
	req.SetPathValue("email", "a@gmail.com")
	w = serve(d.doctor.PatientPrescriptions, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cetirizine 10mg")

	w = serve(d.patient.ListPrescriptions, withSession(httptest.NewRequest("GET", "/api/patient/prescriptions", nil), patient))
	require.Equal(t, http.StatusOK, w.Code)
	var rx []entities.Prescription
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rx))
	require.Len(t, rx, 1)
	assert.Equal(t, "d@gmail.com", rx[0].DoctorEmail)

	w = serve(d.patient.AddHistory, withSession(httptest.NewRequest("POST", "/api/patient/history",
		strings.NewReader(`{"title":"Vaccination"}`)), patient))
	require.Equal(t, http.StatusCreated, w.Code)

	w = serve(d.patient.ListHistory, withSession(httptest.NewRequest("GET", "/api/patient/history", nil), patient))
	require.Equal(t, http.StatusOK, w.Code)
	var history []entities.MedicalHistoryEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&history))
	assert.Len(t, history, 2)

	w = serve(d.patient.ListAppointments, httptest.NewRequest("GET", "/api/patient/appointments", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPharmacistHandler(t *testing.T) {
	d := newDashboards()
	pharmacist := d.login(t, "ph@gmail.com", entities.RolePharmacist, "Ph")

	w := serve(d.pharmacist.ListInventory, withSession(httptest.NewRequest("GET", "/api/pharmacist/inventory", nil), pharmacist))
	require.Equal(t, http.StatusOK, w.Code)
	var items []entities.MedicineInventoryItem
	require.NoError(t, json.NewDecoder(w.Body).Decode(&items))
	assert.Equal(t, entities.SampleInventory(), items)

	w = serve(d.pharmacist.AddInventoryItem, withSession(httptest.NewRequest("POST", "/api/pharmacist/inventory",
		strings.NewReader(`{"name":"Ibuprofen","stock":-2,"type":"Tablet"}`)), pharmacist))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(d.pharmacist.AddInventoryItem, withSession(httptest.NewRequest("POST", "/api/pharmacist/inventory",
		strings.NewReader(`{"name":"Ibuprofen","stock":12,"type":"Tablet"}`)), pharmacist))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = serve(d.pharmacist.RecordPrescription, withSession(httptest.NewRequest("POST", "/api/pharmacist/prescriptions",
		strings.NewReader(`{"patientEmail":"a@gmail.com","medicine":"Cough Syrup","patientGender":"male"}`)), pharmacist))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "ph@gmail.com", decodeBody(t, w)["pharmacistEmail"])

	w = serve(d.pharmacist.ListPrescriptions, withSession(httptest.NewRequest("GET", "/api/pharmacist/prescriptions", nil), pharmacist))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cough Syrup")
}

func TestAdminHandler(t *testing.T) {
	d := newDashboards()
	admin := d.login(t, "root@gmail.com", entities.RoleAdmin, "Root")
	patient := d.login(t, "a@gmail.com", entities.RolePatient, "A B")
	patientID := patient.User().ID

	t.Run("deny then allow", func(t *testing.T) {
		req := withSession(httptest.NewRequest("POST", "/api/admin/users/x/deny", nil), admin)
		req.SetPathValue("id", strconv.FormatInt(patientID, 10))
		w := serve(d.admin.DenyUser, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "denied", decodeBody(t, w)["status"])

		_, err := d.accounts.Authenticate(context.Background(), "a@gmail.com", entities.RolePatient, "ab12cd")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))

		req = withSession(httptest.NewRequest("POST", "/api/admin/users/x/allow", nil), admin)
		req.SetPathValue("id", strconv.FormatInt(patientID, 10))
		w = serve(d.admin.AllowUser, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "active", decodeBody(t, w)["status"])
	})

	t.Run("bad and unknown ids", func(t *testing.T) {
		req := withSession(httptest.NewRequest("POST", "/api/admin/users/abc/deny", nil), admin)
		req.SetPathValue("id", "abc")
		assert.Equal(t, http.StatusBadRequest, serve(d.admin.DenyUser, req).Code)

		req = withSession(httptest.NewRequest("POST", "/api/admin/users/7/deny", nil), admin)
		req.SetPathValue("id", "7")
		assert.Equal(t, http.StatusNotFound, serve(d.admin.DenyUser, req).Code)
	})

	t.Run("lists users without passwords", func(t *testing.T) {
		w := serve(d.admin.ListUsers, withSession(httptest.NewRequest("GET", "/api/admin/users", nil), admin))
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "ab12cd")

		var users []entities.UserProfile
		require.NoError(t, json.NewDecoder(w.Body).Decode(&users))
		assert.Len(t, users, 2)
	})

	t.Run("settings", func(t *testing.T) {
		w := serve(d.admin.UpdateSettings, withSession(httptest.NewRequest("PUT", "/api/admin/settings",
			strings.NewReader(`{"maintenanceMode":true}`)), admin))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"selfSignupAllowed":true,"gmailRequired":false,"maintenanceMode":true}`, w.Body.String())

		w = serve(d.admin.GetSettings, withSession(httptest.NewRequest("GET", "/api/admin/settings", nil), admin))
		assert.JSONEq(t, `{"selfSignupAllowed":true,"gmailRequired":false,"maintenanceMode":true}`, w.Body.String())
	})
}

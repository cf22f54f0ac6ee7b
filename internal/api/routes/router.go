package routes

import (
	"net/http"

	"github.com/Saranya396/projectt/internal/api/handlers"
	"github.com/Saranya396/projectt/internal/api/middleware"
	"github.com/Saranya396/projectt/internal/application/session"
	"github.com/Saranya396/projectt/internal/domain/entities"
	"github.com/Saranya396/projectt/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler       *handlers.AuthHandler
	patientHandler    *handlers.PatientHandler
	doctorHandler     *handlers.DoctorHandler
	pharmacistHandler *handlers.PharmacistHandler
	adminHandler      *handlers.AdminHandler
	sseHandler        *handlers.SSEHandler

	sessions *session.Registry
	metrics  *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	patientHandler *handlers.PatientHandler,
	doctorHandler *handlers.DoctorHandler,
	pharmacistHandler *handlers.PharmacistHandler,
	adminHandler *handlers.AdminHandler,
	sseHandler *handlers.SSEHandler,
	sessions *session.Registry,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		authHandler:       authHandler,
		patientHandler:    patientHandler,
		doctorHandler:     doctorHandler,
		pharmacistHandler: pharmacistHandler,
		adminHandler:      adminHandler,
		sseHandler:        sseHandler,
		sessions:          sessions,
		metrics:           metrics,
	}
}

func (r *Router) public(pattern string, h http.HandlerFunc) {
	r.mux.Handle(pattern, middleware.RecordRoute(h))
}

func (r *Router) authenticated(pattern string, h http.HandlerFunc) {
	r.mux.Handle(pattern, middleware.RecordRoute(middleware.RequireSession(r.sessions)(h)))
}

func (r *Router) dashboard(role entities.Role, pattern string, h http.HandlerFunc) {
	guarded := middleware.RequireSession(r.sessions)(middleware.RequireRole(role)(h))
	r.mux.Handle(pattern, middleware.RecordRoute(guarded))
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.public("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth and session navigation
	r.public("POST /api/auth/signup", r.authHandler.Signup)
	r.public("POST /api/auth/login", r.authHandler.Login)
	r.authenticated("POST /api/auth/logout", r.authHandler.Logout)
	r.authenticated("GET /api/session", r.authHandler.Current)
	r.authenticated("POST /api/session/dashboard/{role}", r.authHandler.OpenDashboard)

	// Live dashboard events
	if r.sseHandler != nil {
		r.authenticated("GET /api/events", r.sseHandler.StreamEvents)
	}

	// Patient dashboard
	r.dashboard(entities.RolePatient, "GET /api/patient/appointments", r.patientHandler.ListAppointments)
	r.dashboard(entities.RolePatient, "POST /api/patient/appointments", r.patientHandler.BookAppointment)
	r.dashboard(entities.RolePatient, "GET /api/patient/doctors", r.patientHandler.ListDoctors)
	r.dashboard(entities.RolePatient, "GET /api/patient/history", r.patientHandler.ListHistory)
	r.dashboard(entities.RolePatient, "POST /api/patient/history", r.patientHandler.AddHistory)
	r.dashboard(entities.RolePatient, "GET /api/patient/prescriptions", r.patientHandler.ListPrescriptions)

	// Doctor dashboard
	r.dashboard(entities.RoleDoctor, "GET /api/doctor/appointments", r.doctorHandler.ListAppointments)
	r.dashboard(entities.RoleDoctor, "GET /api/doctor/patients/{email}/history", r.doctorHandler.PatientHistory)
	r.dashboard(entities.RoleDoctor, "GET /api/doctor/patients/{email}/prescriptions", r.doctorHandler.PatientPrescriptions)
	r.dashboard(entities.RoleDoctor, "POST /api/doctor/history", r.doctorHandler.AddHistory)
	r.dashboard(entities.RoleDoctor, "POST /api/doctor/prescriptions", r.doctorHandler.IssuePrescription)

	// Pharmacist dashboard
	r.dashboard(entities.RolePharmacist, "GET /api/pharmacist/prescriptions", r.pharmacistHandler.ListPrescriptions)
	r.dashboard(entities.RolePharmacist, "POST /api/pharmacist/prescriptions", r.pharmacistHandler.RecordPrescription)
	r.dashboard(entities.RolePharmacist, "GET /api/pharmacist/inventory", r.pharmacistHandler.ListInventory)
	r.dashboard(entities.RolePharmacist, "POST /api/pharmacist/inventory", r.pharmacistHandler.AddInventoryItem)

	// Admin dashboard
	r.dashboard(entities.RoleAdmin, "GET /api/admin/users", r.adminHandler.ListUsers)
	r.dashboard(entities.RoleAdmin, "POST /api/admin/users/{id}/allow", r.adminHandler.AllowUser)
	r.dashboard(entities.RoleAdmin, "POST /api/admin/users/{id}/deny", r.adminHandler.DenyUser)
	r.dashboard(entities.RoleAdmin, "GET /api/admin/settings", r.adminHandler.GetSettings)
	r.dashboard(entities.RoleAdmin, "PUT /api/admin/settings", r.adminHandler.UpdateSettings)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so preflight never reaches the session guards
	handler = middleware.CORSMiddleware(handler)

	return handler
}

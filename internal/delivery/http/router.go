package http

import (
	"net/http"

	"clinic-scheduler/internal/delivery/http/handler"
	"clinic-scheduler/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	appointmentHandler   *handler.AppointmentHandler
	availabilityHandler  *handler.AvailabilityHandler
	businessHoursHandler *handler.BusinessHoursHandler
	serviceHandler       *handler.ServiceOfferingHandler
	professionalHandler  *handler.ProfessionalHandler
	patientHandler       *handler.PatientProfileHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	availabilityHandler *handler.AvailabilityHandler,
	businessHoursHandler *handler.BusinessHoursHandler,
	serviceHandler *handler.ServiceOfferingHandler,
	professionalHandler *handler.ProfessionalHandler,
	patientHandler *handler.PatientProfileHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		appointmentHandler:   appointmentHandler,
		availabilityHandler:  availabilityHandler,
		businessHoursHandler: businessHoursHandler,
		serviceHandler:       serviceHandler,
		professionalHandler:  professionalHandler,
		patientHandler:       patientHandler,
		auditLogHandler:      auditLogHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/professional", r.authHandler.RegisterProfessional).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Authenticated routes shared by every role
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Professionals directory and per-professional availability
	protected.HandleFunc("/professionals", r.professionalHandler.GetProfessionals).Methods(http.MethodGet)
	protected.HandleFunc("/professionals/{id}", r.professionalHandler.GetProfessional).Methods(http.MethodGet)
	protected.HandleFunc("/professionals/{id}/availability", r.availabilityHandler.GetAvailability).Methods(http.MethodGet)

	// Professional profile edits (own profile or admin, checked in the handler)
	professionalEdit := api.PathPrefix("/professionals").Subrouter()
	professionalEdit.Use(r.authMiddleware.Authenticate)
	professionalEdit.Use(middleware.RequireAdminOrProfessional)
	professionalEdit.HandleFunc("/{id}", r.professionalHandler.UpdateProfessional).Methods(http.MethodPut)

	// Service catalogue (read for everyone authenticated)
	protected.HandleFunc("/services", r.serviceHandler.GetServices).Methods(http.MethodGet)
	protected.HandleFunc("/services/{id}", r.serviceHandler.GetService).Methods(http.MethodGet)

	// Appointments
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/reschedule", r.appointmentHandler.RescheduleAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)

	// Lifecycle moves reserved for staff
	appointmentStaff := api.PathPrefix("/appointments").Subrouter()
	appointmentStaff.Use(r.authMiddleware.Authenticate)
	appointmentStaff.Use(middleware.RequireAdminOrProfessional)
	appointmentStaff.HandleFunc("/{id}/confirm", r.appointmentHandler.ConfirmAppointment).Methods(http.MethodPost)
	appointmentStaff.HandleFunc("/{id}/complete", r.appointmentHandler.CompleteAppointment).Methods(http.MethodPost)
	appointmentStaff.HandleFunc("/{id}/no-show", r.appointmentHandler.MarkNoShow).Methods(http.MethodPost)

	// Patient profile (self service)
	patientProfile := api.PathPrefix("/profile").Subrouter()
	patientProfile.Use(r.authMiddleware.Authenticate)
	patientProfile.Use(middleware.RequirePatient)
	patientProfile.HandleFunc("", r.patientHandler.GetMyProfile).Methods(http.MethodGet)
	patientProfile.HandleFunc("", r.patientHandler.UpdateMyProfile).Methods(http.MethodPut)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Business hours management (admin)
	admin.HandleFunc("/business-hours", r.businessHoursHandler.CreateHours).Methods(http.MethodPost)
	admin.HandleFunc("/business-hours", r.businessHoursHandler.GetHours).Methods(http.MethodGet)
	admin.HandleFunc("/business-hours/{id}", r.businessHoursHandler.UpdateHours).Methods(http.MethodPut)
	admin.HandleFunc("/business-hours/{id}", r.businessHoursHandler.DeleteHours).Methods(http.MethodDelete)

	// Service catalogue management (admin)
	admin.HandleFunc("/services", r.serviceHandler.CreateService).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id}", r.serviceHandler.UpdateService).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", r.serviceHandler.DeactivateService).Methods(http.MethodDelete)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

package http

import (
	"net/http"

	"medisafe/internal/delivery/http/handler"
	"medisafe/internal/delivery/http/middleware"
	"medisafe/internal/domain/entity"
	"medisafe/internal/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Auth           *handler.AuthHandler
	Doctor         *handler.DoctorHandler
	Appointment    *handler.AppointmentHandler
	LiveSession    *handler.LiveSessionHandler
	Prescription   *handler.PrescriptionHandler
	LabResult      *handler.LabResultHandler
	Profile        *handler.ProfileHandler
	Notification   *handler.NotificationHandler
	MedicalService *handler.MedicalServiceHandler
	BookedService  *handler.BookedServiceHandler
	RolePermission *handler.RolePermissionHandler
	Activity       *handler.ActivityHandler
	AuditLog       *handler.AuditLogHandler
}

type Router struct {
	router         *mux.Router
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
	permissions    service.RolePermissionService
	log            *logrus.Logger
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	permissions service.RolePermissionService,
	log *logrus.Logger,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		handlers:       handlers,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
		permissions:    permissions,
		log:            log,
	}
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", h.Auth.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", h.Auth.RefreshToken).Methods(http.MethodPost)
	auth.HandleFunc("/forgot-password", h.Auth.ForgotPassword).Methods(http.MethodPost)

	// Everything below requires a valid access token and an enabled role
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.Use(middleware.RequireEnabledRole(r.permissions, r.log))

	protected.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", h.Auth.GetCurrentUser).Methods(http.MethodGet)

	// Shared reads; ownership is checked per record
	protected.HandleFunc("/doctors", h.Doctor.GetBookableDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/services", h.MedicalService.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/services/{id}", h.MedicalService.GetByID).Methods(http.MethodGet)
	// patients see their own, doctors their schedule, admins everything
	protected.HandleFunc("/appointments", h.Appointment.GetMyAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", h.Appointment.GetAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/prescriptions", h.Prescription.GetMyPrescriptions).Methods(http.MethodGet)
	protected.HandleFunc("/prescriptions/{id}", h.Prescription.Get).Methods(http.MethodGet)
	protected.HandleFunc("/prescriptions/{id}/file", h.Prescription.DownloadFile).Methods(http.MethodGet)
	protected.HandleFunc("/lab-results", h.LabResult.List).Methods(http.MethodGet)
	protected.HandleFunc("/lab-results/{id}/file", h.LabResult.Download).Methods(http.MethodGet)

	// Profile
	protected.HandleFunc("/profile", h.Profile.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/profile", h.Profile.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/profile/photo", h.Profile.UploadPhoto).Methods(http.MethodPost)
	protected.HandleFunc("/profile/photo", h.Profile.DownloadPhoto).Methods(http.MethodGet)

	// Notifications
	protected.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/unread-count", h.Notification.UnreadCount).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read-all", h.Notification.MarkAllRead).Methods(http.MethodPost)
	protected.HandleFunc("/notifications/{id}/read", h.Notification.MarkRead).Methods(http.MethodPost)
	protected.HandleFunc("/notifications/{id}/file", h.Notification.DownloadFile).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{id}", h.Notification.Delete).Methods(http.MethodDelete)

	// Patient routes
	patient := protected.NewRoute().Subrouter()
	patient.Use(middleware.RequireRole(entity.RolePatient))
	patient.HandleFunc("/appointments", h.Appointment.Book).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/{id}/cancel", h.Appointment.Cancel).Methods(http.MethodPost)
	patient.HandleFunc("/booked-services", h.BookedService.Book).Methods(http.MethodPost)
	patient.HandleFunc("/booked-services", h.BookedService.ListMine).Methods(http.MethodGet)
	patient.HandleFunc("/booked-services/{id}/cancel", h.BookedService.Cancel).Methods(http.MethodPost)

	// Live sessions: doctors write, admins may read
	sessions := protected.PathPrefix("/live-sessions/{appointmentId}").Subrouter()
	sessions.Use(middleware.RequireRole(entity.RoleDoctor, entity.RoleAdmin))
	sessions.HandleFunc("", h.LiveSession.Get).Methods(http.MethodGet)
	sessions.HandleFunc("", h.LiveSession.Update).Methods(http.MethodPatch)
	sessions.HandleFunc("/start", h.LiveSession.Start).Methods(http.MethodPost)
	sessions.HandleFunc("/restart", h.LiveSession.Restart).Methods(http.MethodPost)
	sessions.HandleFunc("/complete", h.LiveSession.Complete).Methods(http.MethodPost)
	sessions.HandleFunc("/cancel", h.LiveSession.Cancel).Methods(http.MethodPost)
	sessions.HandleFunc("/prescriptions", h.Prescription.ListBySession).Methods(http.MethodGet)
	sessions.HandleFunc("/prescriptions", h.Prescription.Create).Methods(http.MethodPost)

	// Doctor routes
	doctor := protected.NewRoute().Subrouter()
	doctor.Use(middleware.RequireRole(entity.RoleDoctor))
	doctor.HandleFunc("/prescriptions/{id}", h.Prescription.Update).Methods(http.MethodPut)
	doctor.HandleFunc("/prescriptions/{id}/sign", h.Prescription.Sign).Methods(http.MethodPost)
	doctor.HandleFunc("/prescriptions/{id}/print", h.Prescription.Print).Methods(http.MethodPost)
	doctor.HandleFunc("/prescriptions/{id}/cancel", h.Prescription.Cancel).Methods(http.MethodPost)
	doctor.HandleFunc("/prescriptions/{id}/file", h.Prescription.AttachFile).Methods(http.MethodPost)

	// Staff routes
	staff := protected.NewRoute().Subrouter()
	staff.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleLabTech, entity.RoleNurse, entity.RoleDoctor))
	staff.HandleFunc("/lab-results", h.LabResult.Upload).Methods(http.MethodPost)
	staff.HandleFunc("/lab-results/{id}", h.LabResult.Update).Methods(http.MethodPut)

	// Admin routes (protected - admin only)
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	// Appointment management (admin)
	admin.HandleFunc("/appointments", h.Appointment.GetAllAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/save", h.Appointment.Save).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{id}/approve", h.Appointment.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{id}/reject", h.Appointment.Reject).Methods(http.MethodPost)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", h.Doctor.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", h.Doctor.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", h.Doctor.GetDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", h.Doctor.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", h.Doctor.DeleteDoctor).Methods(http.MethodDelete)

	// Service catalog and bookings (admin)
	admin.HandleFunc("/services", h.MedicalService.Create).Methods(http.MethodPost)
	admin.HandleFunc("/services", h.MedicalService.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/services/{id}", h.MedicalService.Update).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", h.MedicalService.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/booked-services", h.BookedService.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/booked-services/{id}/status", h.BookedService.UpdateStatus).Methods(http.MethodPut)
	admin.HandleFunc("/booked-services/{id}", h.BookedService.Delete).Methods(http.MethodDelete)

	// Access control and oversight (admin)
	admin.HandleFunc("/role-permissions", h.RolePermission.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/role-permissions", h.RolePermission.Update).Methods(http.MethodPost)
	admin.HandleFunc("/activity", h.Activity.Recent).Methods(http.MethodGet)
	admin.HandleFunc("/activity", h.Activity.Clear).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", h.AuditLog.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", h.AuditLog.GetAuditLog).Methods(http.MethodGet)
	admin.HandleFunc("/notifications", h.Notification.SendMessage).Methods(http.MethodPost)
	admin.HandleFunc("/password-resets", h.Notification.ListPasswordResets).Methods(http.MethodGet)
	admin.HandleFunc("/lab-results/{id}", h.LabResult.Delete).Methods(http.MethodDelete)

	superAdmin := admin.NewRoute().Subrouter()
	superAdmin.Use(middleware.RequireSuperAdmin)
	superAdmin.HandleFunc("/prescriptions/{id}", h.Prescription.Delete).Methods(http.MethodDelete)

	// Add logging and CORS middleware
	r.router.Use(middleware.RequestLogger(r.log))
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

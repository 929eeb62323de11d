package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medisafe/config"
	deliveryHttp "medisafe/internal/delivery/http"
	"medisafe/internal/delivery/http/handler"
	"medisafe/internal/delivery/http/middleware"
	domainRepo "medisafe/internal/domain/repository"
	"medisafe/internal/infrastructure/cache"
	"medisafe/internal/infrastructure/database"
	"medisafe/internal/infrastructure/storage"
	"medisafe/internal/repository"
	"medisafe/internal/service"
	"medisafe/internal/usecase"
	"medisafe/internal/worker"
	"medisafe/pkg/jwt"
	"medisafe/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Files       *storage.FileStorage
	Server      *http.Server
	Scheduler   *worker.Scheduler

	tx    database.Transactor
	repos *repositories
}

// repositories are stateless and shared by every usecase
type repositories struct {
	user           domainRepo.UserRepository
	profile        domainRepo.UserProfileRepository
	patient        domainRepo.PatientRepository
	doctor         domainRepo.DoctorRepository
	appointment    domainRepo.AppointmentRepository
	liveSession    domainRepo.LiveAppointmentRepository
	prescription   domainRepo.PrescriptionRepository
	sequence       domainRepo.SequenceRepository
	labResult      domainRepo.LabResultRepository
	notification   domainRepo.NotificationRepository
	medical        domainRepo.MedicalServiceRepository
	booked         domainRepo.BookedServiceRepository
	rolePermission domainRepo.RolePermissionRepository
	auditLog       domainRepo.AuditLogRepository
}

// New loads configuration and opens the database and file storage.
// Redis and the HTTP server are only set up by InitServer.
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = setupLogger(cfg.App)
	app.Log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, app.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	app.tx = database.NewTransactor(db)

	files, err := storage.NewFileStorage(cfg.Storage.Root)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Files = files

	app.repos = newRepositories()
	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func newRepositories() *repositories {
	return &repositories{
		user:           repository.NewUserRepository(),
		profile:        repository.NewUserProfileRepository(),
		patient:        repository.NewPatientRepository(),
		doctor:         repository.NewDoctorRepository(),
		appointment:    repository.NewAppointmentRepository(),
		liveSession:    repository.NewLiveAppointmentRepository(),
		prescription:   repository.NewPrescriptionRepository(),
		sequence:       repository.NewSequenceRepository(),
		labResult:      repository.NewLabResultRepository(),
		notification:   repository.NewNotificationRepository(),
		medical:        repository.NewMedicalServiceRepository(),
		booked:         repository.NewBookedServiceRepository(),
		rolePermission: repository.NewRolePermissionRepository(),
		auditLog:       repository.NewAuditLogRepository(),
	}
}

// Migrator builds the schema migrator on the open connection
func (app *App) Migrator() (*database.Migrator, error) {
	return database.NewMigrator(app.DB, app.Log)
}

// NotificationUsecase serves the HTTP layer, the cleanup job and the cleanup command
func (app *App) NotificationUsecase() usecase.NotificationUsecase {
	return usecase.NewNotificationUsecase(app.tx, app.Log, app.repos.notification, app.repos.user, app.Files)
}

func (app *App) BackfillUsecase() usecase.BackfillUsecase {
	codes := service.NewCodeAllocator(app.Log, app.repos.sequence, app.repos.prescription)
	return usecase.NewBackfillUsecase(app.tx, app.Log, app.repos.liveSession, app.repos.prescription, codes)
}

// InitServer connects Redis and wires every layer behind the HTTP server and the scheduler
func (app *App) InitServer() error {
	cfg := app.Config
	log := app.Log

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	repos := app.repos
	tx := app.tx

	// Initialize services
	tokens := service.NewTokenStore(redisClient, log)
	activity := service.NewActivityFeed(redisClient, log, cfg.Activity.FeedSize, cfg.Activity.DedupWindow)
	audit := service.NewAuditService(log, repos.auditLog)
	notifier := service.NewNotificationDispatcher(tx, log, repos.notification, repos.user)
	codes := service.NewCodeAllocator(log, repos.sequence, repos.prescription)
	permissions := service.NewRolePermissionService(tx, redisClient, log, repos.rolePermission)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(tx, log, repos.user, repos.profile, repos.patient,
		jwtService, tokens, permissions, activity, audit, cfg.SuperAdmin)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(tx, log, repos.user, notifier, app.Files)
	doctorUsecase := usecase.NewDoctorUsecase(tx, log, repos.user, repos.profile, repos.doctor,
		repos.appointment, repos.prescription, repos.notification, tokens, audit, app.Files)
	appointmentUsecase := usecase.NewAppointmentUsecase(tx, log, repos.appointment, repos.doctor, notifier, audit)
	liveSessionUsecase := usecase.NewLiveSessionUsecase(tx, log, repos.appointment, repos.liveSession, codes, notifier, audit)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(tx, log, repos.appointment, repos.liveSession,
		repos.prescription, codes, audit, app.Files)
	labResultUsecase := usecase.NewLabResultUsecase(tx, log, repos.user, repos.labResult, notifier, audit, app.Files)
	profileUsecase := usecase.NewProfileUsecase(tx, log, repos.profile, notifier, audit, app.Files)
	notificationUsecase := app.NotificationUsecase()
	medicalServiceUsecase := usecase.NewMedicalServiceUsecase(tx, log, repos.medical, audit)
	bookedServiceUsecase := usecase.NewBookedServiceUsecase(tx, log, repos.booked, repos.medical, audit)
	rolePermissionUsecase := usecase.NewRolePermissionUsecase(tx, log, repos.rolePermission, permissions, audit)
	activityUsecase := usecase.NewActivityUsecase(activity)
	auditLogUsecase := usecase.NewAuditLogUsecase(tx, log, repos.auditLog)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:           handler.NewAuthHandler(authUsecase, passwordResetUsecase, customValidator, log),
		Doctor:         handler.NewDoctorHandler(doctorUsecase, customValidator, log),
		Appointment:    handler.NewAppointmentHandler(appointmentUsecase, customValidator, log),
		LiveSession:    handler.NewLiveSessionHandler(liveSessionUsecase, customValidator, log),
		Prescription:   handler.NewPrescriptionHandler(prescriptionUsecase, customValidator, log),
		LabResult:      handler.NewLabResultHandler(labResultUsecase, customValidator, log),
		Profile:        handler.NewProfileHandler(profileUsecase, customValidator, log),
		Notification:   handler.NewNotificationHandler(notificationUsecase, customValidator, log),
		MedicalService: handler.NewMedicalServiceHandler(medicalServiceUsecase, customValidator, log),
		BookedService:  handler.NewBookedServiceHandler(bookedServiceUsecase, customValidator, log),
		RolePermission: handler.NewRolePermissionHandler(rolePermissionUsecase, customValidator, log),
		Activity:       handler.NewActivityHandler(activityUsecase, log),
		AuditLog:       handler.NewAuditLogHandler(auditLogUsecase, customValidator, log),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokens, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins...)

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, permissions, log)
	httpRouter := router.Setup()

	// Scheduled jobs
	app.Scheduler = worker.NewScheduler(log)
	cleanupJob := worker.NewNotificationCleanupJob(notificationUsecase, cfg.Cleanup.RetentionDays, log)
	if err := app.Scheduler.Register("notification-cleanup", cfg.Cleanup.Schedule, cleanupJob); err != nil {
		return err
	}

	// Create server
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// Run starts the HTTP server and the scheduler and blocks until shutdown
func (app *App) Run() error {
	serverErr := make(chan error, 1)

	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	app.Scheduler.Start()

	// Wait for interrupt signal
	return app.waitForShutdown(serverErr)
}

// waitForShutdown blocks until an interrupt signal is received or the server fails
func (app *App) waitForShutdown(serverErr <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
		app.Log.Info("Shutting down server...")
	case runErr = <-serverErr:
		app.Log.Errorf("Server failed: %v", runErr)
	}

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}
	app.Scheduler.Stop(ctx)

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
	return runErr
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/peertutor/TutorBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/peertutor/TutorBookingService/internal/api/handlers/create_booking"
	getAvailabilityTemplateHandler "github.com/peertutor/TutorBookingService/internal/api/handlers/get_availability_template"
	getAvailableSlotsHandler "github.com/peertutor/TutorBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/peertutor/TutorBookingService/internal/api/handlers/get_booking"
	getStudentSessionsHandler "github.com/peertutor/TutorBookingService/internal/api/handlers/get_student_sessions"
	getTutorSessionsHandler "github.com/peertutor/TutorBookingService/internal/api/handlers/get_tutor_sessions"
	updateAvailabilityTemplateHandler "github.com/peertutor/TutorBookingService/internal/api/handlers/update_availability_template"
	updateBookingStatusHandler "github.com/peertutor/TutorBookingService/internal/api/handlers/update_booking_status"
	"github.com/peertutor/TutorBookingService/internal/api/middleware"
	"github.com/peertutor/TutorBookingService/internal/config"
	"github.com/peertutor/TutorBookingService/internal/infra/migrations"
	availabilityRepo "github.com/peertutor/TutorBookingService/internal/infra/storage/availability"
	sessionRepo "github.com/peertutor/TutorBookingService/internal/infra/storage/session"
	"github.com/peertutor/TutorBookingService/internal/integrations/profileservice"
	availabilityService "github.com/peertutor/TutorBookingService/internal/service/availability"
	sessionsService "github.com/peertutor/TutorBookingService/internal/service/sessions"
	createBookingUC "github.com/peertutor/TutorBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/peertutor/TutorBookingService/internal/usecase/get_available_slots"
	"github.com/peertutor/TutorBookingService/pkg/dbmetrics"
	"github.com/peertutor/TutorBookingService/pkg/logger"
	"github.com/peertutor/TutorBookingService/pkg/metrics"
	"github.com/peertutor/TutorBookingService/pkg/simpletxmanager"
	"github.com/peertutor/TutorBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting TutorBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	migrator, err := migrations.NewMigrator(db)
	if err != nil {
		log.Fatal("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := migrator.Version(context.Background()); err == nil {
		log.Info("Database migrations applied, schema version=%d", version)
	}

	// Инициализируем клиент ProfileService (с кешем профилей или без)
	baseProfileClient := profileservice.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	log.Info("ProfileService client initialized (url=%s, timeout=%ds)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout)

	var profileClient profileservice.TutorGetter = baseProfileClient
	var profileCache availabilityService.ProfileCache

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis unavailable at startup, profile cache degraded: %v", err)
		}

		cachedClient := profileservice.NewCachedClient(
			baseProfileClient,
			rdb,
			time.Duration(cfg.Redis.ProfileCacheTTL)*time.Second,
			log,
		)
		profileClient = cachedClient
		profileCache = cachedClient
		log.Info("Profile cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.ProfileCacheTTL)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		sessionRepository      *sessionRepo.Repository
		availabilityRepository *availabilityRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		sessionRepository = sessionRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	sessionsSvc := sessionsService.NewService(sessionRepository, log)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		profileCache,
		txMgr,
		log,
	)

	// Инициализируем use cases
	timeProvider := &getAvailableSlotsUC.RealTimeProvider{}

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityRepository,
		sessionRepository,
		profileClient,
		timeProvider,
		log,
		cfg.Booking.DefaultDaysAhead,
		cfg.Booking.MinBookingNoticeMinutes,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		sessionRepository,
		availabilityRepository,
		profileClient,
		txMgr,
		&createBookingUC.RealTimeProvider{},
		log,
		cfg.Booking.MinBookingNoticeMinutes,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(sessionsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(sessionsSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(sessionsSvc, log)
	getStudentSessions := getStudentSessionsHandler.NewHandler(sessionsSvc, log)
	getTutorSessions := getTutorSessionsHandler.NewHandler(sessionsSvc, log)
	getAvailabilityTemplate := getAvailabilityTemplateHandler.NewHandler(availabilitySvc, log)
	updateAvailabilityTemplate := updateAvailabilityTemplateHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание доступных слотов репетитора
	api.HandleFunc("/tutors/{tutorId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельный шаблон доступности репетитора
	api.HandleFunc("/tutors/{tutorId}/availability",
		getAvailabilityTemplate.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования (для репетитора)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований студента
	protected.HandleFunc("/users/{userId}/bookings", getStudentSessions.Handle).Methods(http.MethodGet)

	// --- Кабинет репетитора ---
	// Список сессий репетитора
	protected.HandleFunc("/tutors/{tutorId}/bookings", getTutorSessions.Handle).Methods(http.MethodGet)

	// Замена недельного шаблона доступности
	protected.HandleFunc("/tutors/{tutorId}/availability", updateAvailabilityTemplate.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

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
	"github.com/stripe/stripe-go/v76"

	bookAppointmentHandler "github.com/ant0nk/Trimly-BookingService/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/ant0nk/Trimly-BookingService/internal/api/handlers/cancel_appointment"
	getAppointmentHandler "github.com/ant0nk/Trimly-BookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/ant0nk/Trimly-BookingService/internal/api/handlers/get_available_slots"
	getCustomerAppointmentsHandler "github.com/ant0nk/Trimly-BookingService/internal/api/handlers/get_customer_appointments"
	getDraftHandler "github.com/ant0nk/Trimly-BookingService/internal/api/handlers/get_draft"
	resetDraftHandler "github.com/ant0nk/Trimly-BookingService/internal/api/handlers/reset_draft"
	upsertDraftHandler "github.com/ant0nk/Trimly-BookingService/internal/api/handlers/upsert_draft"
	"github.com/ant0nk/Trimly-BookingService/internal/api/middleware"
	"github.com/ant0nk/Trimly-BookingService/internal/config"
	"github.com/ant0nk/Trimly-BookingService/internal/infra/draftcache"
	appointmentRepo "github.com/ant0nk/Trimly-BookingService/internal/infra/storage/appointment"
	availabilityRepo "github.com/ant0nk/Trimly-BookingService/internal/infra/storage/availability"
	directoryClient "github.com/ant0nk/Trimly-BookingService/internal/integrations/directory"
	"github.com/ant0nk/Trimly-BookingService/internal/integrations/stripegateway"
	appointmentsService "github.com/ant0nk/Trimly-BookingService/internal/service/appointments"
	draftService "github.com/ant0nk/Trimly-BookingService/internal/service/draft"
	bookAppointmentUC "github.com/ant0nk/Trimly-BookingService/internal/usecase/book_appointment"
	generateSlotsUC "github.com/ant0nk/Trimly-BookingService/internal/usecase/generate_slots"
	"github.com/ant0nk/Trimly-BookingService/pkg/dbmetrics"
	"github.com/ant0nk/Trimly-BookingService/pkg/logger"
	"github.com/ant0nk/Trimly-BookingService/pkg/metrics"
	"github.com/ant0nk/Trimly-BookingService/pkg/simpletxmanager"
	"github.com/ant0nk/Trimly-BookingService/pkg/txmanager"
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

	log.Info("Starting Trimly-BookingService...")
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

	// Подключаемся к Redis (хранилище черновиков)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping Redis: %v", err)
	}
	log.Info("Successfully connected to Redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	draftStore := draftcache.NewStore(redisClient, time.Duration(cfg.Redis.DraftTTL)*time.Second)

	// Инициализируем интеграционных клиентов
	stripe.Key = cfg.Stripe.APIKey
	paymentGateway := stripegateway.NewClient(
		cfg.Stripe.Currency,
		time.Duration(cfg.Stripe.ConfirmTimeout)*time.Second,
		time.Duration(cfg.Stripe.PollInterval)*time.Second,
		log,
	)
	directory := directoryClient.NewClient(
		cfg.Directory.URL,
		time.Duration(cfg.Directory.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Directory=%s timeout=%ds, Stripe currency=%s)",
		cfg.Directory.URL, cfg.Directory.Timeout, cfg.Stripe.Currency)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		appointmentRepository  *appointmentRepo.Repository
		availabilityRepository *availabilityRepo.Repository
	)

	var txMgr bookAppointmentUC.TransactionManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	draftSvc := draftService.NewService(draftStore, directory, log)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		availabilityRepository,
		appointmentRepository,
		directory,
		log,
	)

	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		draftStore,
		appointmentRepository,
		paymentGateway,
		directory,
		txMgr,
		nil,
		log,
	)

	// Логируем переходы саги бронирования
	bookAppointmentUseCase.Subscribe(func(t bookAppointmentUC.Transition) {
		if t.Reason != "" {
			log.Warn("Saga %s: %s -> %s (reason=%s)", t.RunID, t.From, t.To, t.Reason)
			return
		}
		log.Debug("Saga %s: %s -> %s", t.RunID, t.From, t.To)
	})

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(generateSlotsUseCase, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentsSvc, log)
	upsertDraft := upsertDraftHandler.NewHandler(draftSvc, log)
	getDraft := getDraftHandler.NewHandler(draftSvc, log)
	resetDraft := resetDraftHandler.NewHandler(draftSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты для записи
	api.HandleFunc("/businesses/{businessId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Черновик бронирования ---
	protected.HandleFunc("/draft", upsertDraft.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/draft", getDraft.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/draft", resetDraft.Handle).Methods(http.MethodDelete)

	// --- Записи ---
	// Выполнение бронирования (сага с оплатой)
	protected.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/customers/{customerId}/appointments", getCustomerAppointments.Handle).Methods(http.MethodGet)

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

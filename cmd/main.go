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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	getAvailableDatesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking"
	listEventBookingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_event_bookings"
	manageEventsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/manage_events"
	manageInviteesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/manage_invitees"
	manageOverridesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/manage_overrides"
	manageSessionsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/manage_sessions"
	rescheduleBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/reschedule_booking"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/cache/slots"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/notifications"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
	inviteeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/invitee"
	overrideRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/override"
	sessionRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/session"
	slotLockRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/slotlock"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	eventsService "github.com/m04kA/SMC-SchedulingService/internal/service/events"
	inviteesService "github.com/m04kA/SMC-SchedulingService/internal/service/invitees"
	overridesService "github.com/m04kA/SMC-SchedulingService/internal/service/overrides"
	sessionsService "github.com/m04kA/SMC-SchedulingService/internal/service/sessions"
	cancelBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/dayloader"
	getAvailableDatesUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// Интерфейсы инфраструктуры, для которых есть redis/noop и rabbitmq/noop реализации
type slotsCache interface {
	createBookingUC.SlotsCache
	rescheduleBookingUC.SlotsCache
	cancelBookingUC.SlotsCache
	getAvailableSlotsUC.SlotsCache
	eventsService.SlotsCache
	overridesService.SlotsCache
	sessionsService.SlotsCache
}

type bookingPublisher interface {
	createBookingUC.Publisher
	Close() error
}

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

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopBackgroundCh := make(chan struct{})

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

	// С выключенными метриками обёртка работает как прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopBackgroundCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	eventRepository := eventRepo.NewRepository(wrappedDB)
	overrideRepository := overrideRepo.NewRepository(wrappedDB)
	sessionRepository := sessionRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	inviteeRepository := inviteeRepo.NewRepository(wrappedDB)
	slotLockRepository := slotLockRepo.NewRepository(wrappedDB)

	// Кэш слотов
	var cache slotsCache = slots.NoopCache{}
	if cfg.Redis.Enabled {
		redisClient, err := slots.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("Redis unavailable, slot cache disabled: %v", err)
		} else {
			defer redisClient.Close()

			var cacheRequests *prometheus.CounterVec
			if metricsCollector != nil {
				cacheRequests = metricsCollector.SlotCacheRequests
			}
			cache = slots.NewRedisCache(redisClient, time.Duration(cfg.Redis.SlotsTTL)*time.Second, cacheRequests)
			log.Info("Slot cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SlotsTTL)
		}
	}

	// Уведомления о бронированиях
	var publisher bookingPublisher = notifications.NoopPublisher{}
	if cfg.RabbitMQ.Enabled {
		p, err := notifications.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			log.Warn("RabbitMQ unavailable, booking notifications disabled: %v", err)
		} else {
			publisher = p
			log.Info("Booking notifications enabled (queue=%s)", cfg.RabbitMQ.Queue)
		}
	}
	defer publisher.Close()

	loader := dayloader.New(overrideRepository, sessionRepository, bookingRepository)

	appLog := log.With("app")
	httpLog := log.With("http")

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, eventRepository, appLog)
	eventSvc := eventsService.NewService(eventRepository, cache, appLog)
	overrideSvc := overridesService.NewService(eventRepository, overrideRepository, cache, appLog)
	sessionSvc := sessionsService.NewService(eventRepository, sessionRepository, cache, appLog)
	inviteeSvc := inviteesService.NewService(eventRepository, inviteeRepository, appLog)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(eventRepository, loader, cache, appLog)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(eventRepository, loader, cfg.Booking.MaxDatesRangeDays, appLog)

	createBookingUseCase := createBookingUC.NewUseCase(
		eventRepository,
		bookingRepository,
		inviteeRepository,
		slotLockRepository,
		loader,
		cache,
		publisher,
		txMgr,
		appLog,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		eventRepository,
		cache,
		publisher,
		txMgr,
		appLog,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		eventRepository,
		slotLockRepository,
		loader,
		cache,
		publisher,
		txMgr,
		appLog,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, httpLog)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, httpLog)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, httpLog)
	getBooking := getBookingHandler.NewHandler(bookingSvc, httpLog)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, httpLog)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, httpLog)
	listEventBookings := listEventBookingsHandler.NewHandler(bookingSvc, httpLog)
	manageEvents := manageEventsHandler.NewHandler(eventSvc, httpLog)
	manageOverrides := manageOverridesHandler.NewHandler(overrideSvc, httpLog)
	manageSessions := manageSessionsHandler.NewHandler(sessionSvc, httpLog)
	manageInvitees := manageInviteesHandler.NewHandler(inviteeSvc, httpLog)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Ограничение частоты для изменяющих публичных запросов
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 10*time.Minute)
		go limiter.Run(stopBackgroundCh)
		limit = func(h http.HandlerFunc) http.Handler { return limiter.Limit(h) }
		log.Info("Rate limiting enabled (rps=%.2f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// ============================================================
	// ADMIN ROUTES (Bearer JWT, claim tenant = {tenant})
	// ============================================================

	admin := api.PathPrefix("/admin/{tenant}").Subrouter()
	admin.Use(middleware.Auth(cfg.Auth.JWTSecret, httpLog))

	// --- События ---
	admin.HandleFunc("/events", manageEvents.List).Methods(http.MethodGet)
	admin.HandleFunc("/events", manageEvents.Create).Methods(http.MethodPost)
	admin.HandleFunc("/events/{slug}", manageEvents.Get).Methods(http.MethodGet)
	admin.HandleFunc("/events/{slug}", manageEvents.Update).Methods(http.MethodPut)
	admin.HandleFunc("/events/{slug}", manageEvents.Delete).Methods(http.MethodDelete)

	// --- Исключения по датам ---
	admin.HandleFunc("/events/{slug}/overrides", manageOverrides.List).Methods(http.MethodGet)
	admin.HandleFunc("/events/{slug}/overrides", manageOverrides.Upsert).Methods(http.MethodPost)
	admin.HandleFunc("/events/{slug}/overrides/{date}", manageOverrides.Delete).Methods(http.MethodDelete)

	// --- Сессии (MANUAL) ---
	admin.HandleFunc("/events/{slug}/sessions", manageSessions.List).Methods(http.MethodGet)
	admin.HandleFunc("/events/{slug}/sessions", manageSessions.Create).Methods(http.MethodPost)
	admin.HandleFunc("/events/{slug}/sessions/{sessionId}", manageSessions.Update).Methods(http.MethodPut)
	admin.HandleFunc("/events/{slug}/sessions/{sessionId}", manageSessions.Delete).Methods(http.MethodDelete)

	// --- Приглашения (RESTRICTED) ---
	admin.HandleFunc("/events/{slug}/invitees", manageInvitees.List).Methods(http.MethodGet)
	admin.HandleFunc("/events/{slug}/invitees", manageInvitees.Create).Methods(http.MethodPost)
	admin.HandleFunc("/events/{slug}/invitees/{token}", manageInvitees.UpdateStatus).Methods(http.MethodPatch)

	// --- Бронирования события ---
	admin.HandleFunc("/events/{slug}/bookings", listEventBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Управление бронированием по секретному токену
	api.HandleFunc("/bookings/manage/{managementToken}", getBooking.Handle).Methods(http.MethodGet)
	api.Handle("/bookings/manage/{managementToken}/cancel", limit(cancelBooking.Handle)).Methods(http.MethodPost)
	api.Handle("/bookings/manage/{managementToken}/reschedule", limit(rescheduleBooking.Handle)).Methods(http.MethodPost)

	// Доступность и бронирование
	api.HandleFunc("/{tenant}/events/{slug}/dates", getAvailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/{tenant}/events/{slug}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.Handle("/{tenant}/events/{slug}/book", limit(createBooking.Handle)).Methods(http.MethodPost)

	// CORS для публичной страницы бронирования
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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

	// Останавливаем сбор метрик пула и очистку лимитера
	close(stopBackgroundCh)

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

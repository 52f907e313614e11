package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/cancel_booking"
	claimSlotHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/claim_slot"
	getAnalyticsHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/get_analytics"
	getSlotViewHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/get_slot_view"
	getUserBookingsHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/get_user_bookings"
	getWaitlistHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/get_waitlist"
	provisionScheduleHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/provision_schedule"
	toggleSlotHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/toggle_slot"
	"github.com/m04kA/SMC-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotBookingService/internal/config"
	notifierClient "github.com/m04kA/SMC-SlotBookingService/internal/integrations/notifier"
	userServiceClient "github.com/m04kA/SMC-SlotBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SlotBookingService/internal/scheduler"
	analyticsService "github.com/m04kA/SMC-SlotBookingService/internal/service/analytics"
	bookingsService "github.com/m04kA/SMC-SlotBookingService/internal/service/bookings"
	notificationsService "github.com/m04kA/SMC-SlotBookingService/internal/service/notifications"
	cancelBookingUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/cancel_booking"
	claimSlotUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/claim_slot"
	getSlotViewUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_slot_view"
	provisionScheduleUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/provision_schedule"
	toggleSlotUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/toggle_slot"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-SlotBookingService...")
	log.Info("Configuration loaded from %s (storage=%s, lock=%s)", configPath, cfg.Storage.Driver, cfg.Lock.Driver)

	// Инициализируем метрики (если включены); nil коллектор метрики не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище и блокировки слотов
	store, err := openStorage(cfg, log, metricsCollector, stopMetricsCh)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	slotLocker, closeLocker, err := openLocker(startupCtx, cfg, log)
	cancelStartup()
	if err != nil {
		log.Fatal("Failed to initialize slot lock: %v", err)
	}
	defer closeLocker()

	location, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Invalid schedule timezone: %v", err)
	}
	grid, err := cfg.Schedule.Grid()
	if err != nil {
		log.Fatal("Invalid schedule grid: %v", err)
	}

	// Инициализируем интеграционных клиентов
	var users *userServiceClient.Client
	if cfg.UserService.URL != "" {
		users = userServiceClient.NewClient(
			cfg.UserService.URL,
			time.Duration(cfg.UserService.Timeout)*time.Second,
			log,
		)
		log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)
	} else {
		log.Warn("UserService url is empty: responses and notifications go without user names")
	}

	var sink notificationsService.NotificationSink = notifierClient.Noop{}
	if cfg.Notifier.URL != "" {
		sink = notifierClient.NewClient(
			cfg.Notifier.URL,
			time.Duration(cfg.Notifier.Timeout)*time.Second,
			log,
		)
		log.Info("Notifier client initialized (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)
	}

	// Инициализируем сервисы
	var (
		bookingSvc   *bookingsService.Service
		analyticsSvc *analyticsService.Service
		dispatcher   *notificationsService.Dispatcher
	)
	if users != nil {
		bookingSvc = bookingsService.NewService(store.slots, store.waitlist, users, log)
		analyticsSvc = analyticsService.NewService(store.analytics, users, log)
		dispatcher = notificationsService.NewDispatcher(users, sink, time.Duration(cfg.Notifier.Timeout)*time.Second, log)
	} else {
		bookingSvc = bookingsService.NewService(store.slots, store.waitlist, nil, log)
		analyticsSvc = analyticsService.NewService(store.analytics, nil, log)
		dispatcher = notificationsService.NewDispatcher(nil, sink, time.Duration(cfg.Notifier.Timeout)*time.Second, log)
	}

	// Инициализируем use cases
	claimSlotUseCase := claimSlotUC.NewUseCase(
		store.slots,
		store.waitlist,
		store.analytics,
		store.txManager,
		slotLocker,
		metricsCollector,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		store.slots,
		store.waitlist,
		store.analytics,
		store.txManager,
		slotLocker,
		metricsCollector,
		log,
	)
	toggleSlotUseCase := toggleSlotUC.NewUseCase(store.slots, store.txManager, log)
	getSlotViewUseCase := getSlotViewUC.NewUseCase(store.slots, store.txManager, log)
	provisionScheduleUseCase, err := provisionScheduleUC.NewUseCase(
		store.slots,
		store.txManager,
		&provisionScheduleUC.RealTimeProvider{Location: location},
		provisionScheduleUC.Config{Days: cfg.Schedule.Days, Grid: grid},
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize schedule provisioning: %v", err)
	}

	// Публикация расписания по cron
	provisioner, err := scheduler.New(
		cfg.Schedule.Cron,
		location,
		time.Duration(cfg.Schedule.RunTimeout)*time.Second,
		provisionScheduleUseCase,
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize scheduler: %v", err)
	}
	if cfg.Schedule.RunOnStart {
		provisioner.RunOnce()
	}
	provisioner.Start()

	// Инициализируем handlers
	claimSlot := claimSlotHandler.NewHandler(claimSlotUseCase, dispatcher, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, dispatcher, log)
	toggleSlot := toggleSlotHandler.NewHandler(toggleSlotUseCase, log)
	getSlotView := getSlotViewHandler.NewHandler(getSlotViewUseCase, log)
	getWaitlist := getWaitlistHandler.NewHandler(bookingSvc, log)
	getAnalytics := getAnalyticsHandler.NewHandler(analyticsSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	provisionSchedule := provisionScheduleHandler.NewHandler(provisionScheduleUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// День владельца
	api.HandleFunc("/owners/{ownerId}/schedule", getSlotView.Handle).Methods(http.MethodGet)

	// Лист ожидания слота
	api.HandleFunc("/owners/{ownerId}/slots/waitlist", getWaitlist.Handle).Methods(http.MethodGet)

	// Аналитика владельца
	api.HandleFunc("/owners/{ownerId}/analytics", getAnalytics.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/owners/{ownerId}/slots/claim", claimSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/owners/{ownerId}/slots/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление расписанием (только владелец) ---
	protected.HandleFunc("/owners/{ownerId}/slots/toggle", toggleSlot.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/owners/{ownerId}/schedule/provision", provisionSchedule.Handle).Methods(http.MethodPost)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	provisioner.Stop(shutdownCtx)

	// Дожидаемся уведомлений, отправленных до остановки
	dispatcher.Wait()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

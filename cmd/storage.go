package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/config"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/migrations"
	analyticsRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/analytics"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/memory"
	slotRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/slot"
	waitlistRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/waitlist"
	analyticsService "github.com/m04kA/SMC-SlotBookingService/internal/service/analytics"
	bookingsService "github.com/m04kA/SMC-SlotBookingService/internal/service/bookings"
	cancelBookingUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/cancel_booking"
	claimSlotUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/claim_slot"
	getSlotViewUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_slot_view"
	provisionScheduleUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/provision_schedule"
	toggleSlotUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/toggle_slot"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/txmanager"
)

// Репозитории, которые одинаково реализуют PostgreSQL и in-memory драйверы
type slotStore interface {
	claimSlotUC.SlotRepository
	cancelBookingUC.SlotRepository
	toggleSlotUC.SlotRepository
	getSlotViewUC.SlotRepository
	provisionScheduleUC.SlotRepository
	bookingsService.SlotRepository
}

type waitlistStore interface {
	claimSlotUC.WaitlistRepository
	cancelBookingUC.WaitlistRepository
	bookingsService.WaitlistRepository
}

type analyticsStore interface {
	claimSlotUC.AnalyticsRepository
	cancelBookingUC.AnalyticsRepository
	analyticsService.AnalyticsRepository
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type storage struct {
	slots     slotStore
	waitlist  waitlistStore
	analytics analyticsStore
	txManager transactionManager
	close     func()
}

// openStorage выбирает драйвер хранилища по конфигурации
func openStorage(cfg *config.Config, log *logger.Logger, metricsCollector *metrics.Metrics, stopMetricsCh <-chan struct{}) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		store := memory.NewStore()
		log.Warn("Using in-memory storage: data is lost on restart")
		return &storage{
			slots:     store.Slots(),
			waitlist:  store.Waitlist(),
			analytics: store.Analytics(),
			txManager: store.TxManager(),
			close:     func() {},
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Migrate(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		log.Info("Database migrations applied")
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)

	txMgr := txmanager.NewTransactionManager(wrappedDB,
		txmanager.WithMaxRetries(cfg.Transactions.MaxRetries),
		txmanager.WithBackoff(cfg.Transactions.Backoff()),
		txmanager.WithRetryObserver(metricsCollector),
		txmanager.WithLogger(log),
	)

	return &storage{
		slots:     slotRepo.NewRepository(wrappedDB),
		waitlist:  waitlistRepo.NewRepository(wrappedDB),
		analytics: analyticsRepo.NewRepository(wrappedDB),
		txManager: txMgr,
		close:     func() { db.Close() },
	}, nil
}

type locker interface {
	Acquire(ctx context.Context, key string) (func(), error)
}

// openLocker выбирает блокировку слотов: внутри процесса или через Redis
func openLocker(ctx context.Context, cfg *config.Config, log *logger.Logger) (locker, func(), error) {
	if cfg.Lock.Driver != config.LockDriverRedis {
		return lock.NewKeyedMutex(cfg.Lock.AcquireTimeoutDuration()), func() {}, nil
	}

	redisLock, err := lock.NewRedisLock(ctx, lock.RedisConfig{
		Addr:           cfg.Lock.RedisAddr,
		Password:       cfg.Lock.RedisPassword,
		DB:             cfg.Lock.RedisDB,
		TTL:            cfg.Lock.TTLDuration(),
		AcquireTimeout: cfg.Lock.AcquireTimeoutDuration(),
	}, log)
	if err != nil {
		return nil, nil, err
	}

	return redisLock, func() {
		if err := redisLock.Close(); err != nil {
			log.Error("Failed to close redis lock: %v", err)
		}
	}, nil
}

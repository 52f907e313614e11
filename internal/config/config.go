package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	LockDriverLocal = "local"
	LockDriverRedis = "redis"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Storage      StorageConfig      `toml:"storage"`
	Lock         LockConfig         `toml:"lock"`
	Transactions TransactionsConfig `toml:"transactions"`
	Schedule     ScheduleConfig     `toml:"schedule"`
	UserService  ServiceConfig      `toml:"user_service" env-prefix:"USER_SERVICE_"`
	Notifier     ServiceConfig      `toml:"notifier" env-prefix:"NOTIFIER_"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"HTTP_READ_TIMEOUT"`   // секунды
	WriteTimeout    int `toml:"write_timeout" env:"HTTP_WRITE_TIMEOUT"` // секунды
	IdleTimeout     int `toml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT"`   // секунды
	ShutdownTimeout int `toml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate" env:"DB_AUTO_MIGRATE"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type StorageConfig struct {
	Driver string `toml:"driver" env:"STORAGE_DRIVER"`
}

type LockConfig struct {
	Driver         string `toml:"driver" env:"LOCK_DRIVER"`
	AcquireTimeout int    `toml:"acquire_timeout_ms" env:"LOCK_ACQUIRE_TIMEOUT_MS"`
	RedisAddr      string `toml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword  string `toml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB        int    `toml:"redis_db" env:"REDIS_DB"`
	TTL            int    `toml:"ttl_ms" env:"LOCK_TTL_MS"`
}

func (c LockConfig) AcquireTimeoutDuration() time.Duration {
	return time.Duration(c.AcquireTimeout) * time.Millisecond
}

func (c LockConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Millisecond
}

type TransactionsConfig struct {
	MaxRetries int `toml:"max_retries" env:"TX_MAX_RETRIES"`
	BackoffMs  int `toml:"backoff_ms" env:"TX_BACKOFF_MS"`
}

func (c TransactionsConfig) Backoff() time.Duration {
	return time.Duration(c.BackoffMs) * time.Millisecond
}

type ScheduleConfig struct {
	Days            int    `toml:"days" env:"SCHEDULE_DAYS"`
	Start           string `toml:"start" env:"SCHEDULE_START"` // HH:MM
	End             string `toml:"end" env:"SCHEDULE_END"`     // HH:MM, начало последнего слота
	IntervalMinutes int    `toml:"interval_minutes" env:"SCHEDULE_INTERVAL_MINUTES"`
	Cron            string `toml:"cron" env:"SCHEDULE_CRON"`
	Timezone        string `toml:"timezone" env:"SCHEDULE_TIMEZONE"`
	RunOnStart      bool   `toml:"run_on_start" env:"SCHEDULE_RUN_ON_START"`
	RunTimeout      int    `toml:"run_timeout" env:"SCHEDULE_RUN_TIMEOUT"` // секунды
}

// Grid сетка слотов нового дня
func (c ScheduleConfig) Grid() (domain.SlotGrid, error) {
	start, err := types.ParseTimeOfDay(c.Start)
	if err != nil {
		return domain.SlotGrid{}, fmt.Errorf("%w: schedule.start: %v", ErrInvalidConfig, err)
	}
	end, err := types.ParseTimeOfDay(c.End)
	if err != nil {
		return domain.SlotGrid{}, fmt.Errorf("%w: schedule.end: %v", ErrInvalidConfig, err)
	}
	return domain.SlotGrid{Start: start, End: end, IntervalMinutes: c.IntervalMinutes}, nil
}

// Location часовой пояс расписания
func (c ScheduleConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: schedule.timezone: %v", ErrInvalidConfig, err)
	}
	return loc, nil
}

type ServiceConfig struct {
	URL     string `toml:"url" env:"URL"`
	Timeout int    `toml:"timeout" env:"TIMEOUT"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file" env:"LOG_FILE"`
	Level string `toml:"level" env:"LOG_LEVEL"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path" env:"METRICS_PATH"`
	ServiceName string `toml:"service_name" env:"METRICS_SERVICE_NAME"`
}

// Default значения, которые используются, если их нет в файле
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			AutoMigrate:     true,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Lock: LockConfig{
			Driver:         LockDriverLocal,
			AcquireTimeout: 5000,
			TTL:            10000,
		},
		Transactions: TransactionsConfig{MaxRetries: 3, BackoffMs: 20},
		Schedule: ScheduleConfig{
			Days:            domain.DefaultScheduleDays,
			Start:           domain.DefaultDayStart.String(),
			End:             domain.DefaultDayEnd.String(),
			IntervalMinutes: domain.DefaultSlotIntervalMinutes,
			Cron:            "5 0 * * *",
			Timezone:        "UTC",
			RunOnStart:      true,
			RunTimeout:      60,
		},
		UserService: ServiceConfig{Timeout: 5},
		Notifier:    ServiceConfig{Timeout: 5},
		Logs:        LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "slotbookingservice",
		},
	}
}

// Load читает toml файл, затем .env (если есть), затем переопределения из окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres storage", ErrInvalidConfig)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("%w: storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	switch c.Lock.Driver {
	case LockDriverLocal:
	case LockDriverRedis:
		if c.Lock.RedisAddr == "" {
			return fmt.Errorf("%w: lock.redis_addr is required for redis lock", ErrInvalidConfig)
		}
		if c.Lock.TTL <= 0 {
			return fmt.Errorf("%w: lock.ttl_ms must be positive", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: lock.driver %q", ErrInvalidConfig, c.Lock.Driver)
	}
	if c.Lock.AcquireTimeout <= 0 {
		return fmt.Errorf("%w: lock.acquire_timeout_ms must be positive", ErrInvalidConfig)
	}

	if c.Transactions.MaxRetries < 0 || c.Transactions.BackoffMs < 0 {
		return fmt.Errorf("%w: transactions values must not be negative", ErrInvalidConfig)
	}

	if c.Schedule.Days <= 0 {
		return fmt.Errorf("%w: schedule.days must be positive", ErrInvalidConfig)
	}
	grid, err := c.Schedule.Grid()
	if err != nil {
		return err
	}
	if _, err := grid.Times(); err != nil {
		return fmt.Errorf("%w: schedule: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Schedule.Location(); err != nil {
		return err
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}

	return nil
}

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-SlotBookingService/internal/usecase/provision_schedule"
)

// ErrInvalidSpec возвращается при некорректном cron выражении
var ErrInvalidSpec = errors.New("scheduler: invalid cron spec")

// Provisioner публикует окно расписания всем владельцам
type Provisioner interface {
	ExecuteAll(ctx context.Context) (*provision_schedule.Summary, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler периодически запускает публикацию расписания
type Scheduler struct {
	cron        *cron.Cron
	provisioner Provisioner
	runTimeout  time.Duration
	logger      Logger
}

// New создает планировщик; spec в стандартном формате cron из пяти полей
func New(spec string, location *time.Location, runTimeout time.Duration, provisioner Provisioner, logger Logger) (*Scheduler, error) {
	if location == nil {
		location = time.UTC
	}

	s := &Scheduler{
		cron:        cron.New(cron.WithLocation(location)),
		provisioner: provisioner,
		runTimeout:  runTimeout,
		logger:      logger,
	}

	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSpec, spec, err)
	}

	return s, nil
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler: started, next run at %s", s.cron.Entries()[0].Next.Format(time.RFC3339))
}

// Stop останавливает планировщик и ждёт текущий запуск, но не дольше ctx
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Error("Scheduler: stop timed out, provisioning run still in progress")
	}
}

// RunOnce выполняет один прогон публикации
func (s *Scheduler) RunOnce() {
	ctx := context.Background()
	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	started := time.Now()
	summary, err := s.provisioner.ExecuteAll(ctx)
	if err != nil {
		s.logger.Error("Scheduler: provisioning run failed: %v", err)
		return
	}

	s.logger.Info("Scheduler: provisioning run finished in %s, owners=%d, created=%d, pruned=%d, failed=%d",
		time.Since(started).Round(time.Millisecond), summary.Owners, summary.CreatedDays, summary.PrunedDays, len(summary.Failed))
}

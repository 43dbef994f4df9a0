package cronrunner

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Runner runs named jobs on cron schedules. Specs accept an optional seconds field
// and descriptors such as "@every 30m".
type Runner struct {
	cron    *cron.Cron
	logger  *zap.Logger
	baseCtx context.Context
}

func New(logger *zap.Logger, baseCtx context.Context) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cron:    cron.New(cron.WithParser(cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor))),
		logger:  logger,
		baseCtx: baseCtx,
	}
}

// Add schedules job under name. A panicking job is logged and does not stop the runner.
func (r *Runner) Add(name, spec string, job func(context.Context)) (cron.EntryID, error) {
	return r.cron.AddFunc(spec, func() {
		start := time.Now()
		defer func() {
			if p := recover(); p != nil {
				r.logger.Error("cron job panicked", zap.String("job", name), zap.Any("panic", p))
			}
		}()
		job(r.baseCtx)
		r.logger.Debug("cron job finished", zap.String("job", name), zap.Duration("took", time.Since(start)))
	})
}

func (r *Runner) Start() {
	r.logger.Info("cron started", zap.Int("jobs", len(r.cron.Entries())))
	r.cron.Start()
}

func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("cron stopped")
}

package schedule

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type Scheduler interface {
	AddJob(job Job, spec string) error
	Start(ctx context.Context)
	Stop()
}

type CronScheduler struct {
	cron    *cron.Cron
	entries map[string]cron.EntryID
	ctx     context.Context
}

func NewCronScheduler() *CronScheduler {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	return &CronScheduler{
		cron:    cron.New(cron.WithParser(parser)),
		entries: make(map[string]cron.EntryID),
	}
}

// AddJob registers job under a five field cron spec. An empty spec leaves
// the job disabled.
func (c *CronScheduler) AddJob(job Job, spec string) error {
	logger := logutil.GetLogger(context.Background()).With(zap.String("job", job.Name()), zap.String("spec", spec))
	if spec == "" {
		logger.Info("job disabled")
		return nil
	}
	guarded := &guardedJob{job: job, spec: spec}
	entryID, err := c.cron.AddFunc(spec, func() { guarded.run(c.context()) })
	if err != nil {
		logger.Error("schedule job failed", zap.Error(err))
		return err
	}
	c.entries[job.Name()] = entryID
	logger.Info("job scheduled")
	return nil
}

func (c *CronScheduler) Start(ctx context.Context) {
	c.ctx = ctx
	c.cron.Start()
}

func (c *CronScheduler) Stop() {
	<-c.cron.Stop().Done()
}

func (c *CronScheduler) context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// guardedJob skips a tick while the previous run is still in progress.
type guardedJob struct {
	job     Job
	spec    string
	running atomic.Bool
}

func (g *guardedJob) run(ctx context.Context) bool {
	logger := logutil.GetLogger(ctx).With(zap.String("job", g.job.Name()), zap.String("spec", g.spec))
	if !g.running.CompareAndSwap(false, true) {
		logger.Info("job skipped: still running")
		return false
	}
	defer g.running.Store(false)

	start := time.Now()
	err := g.job.Run(ctx)
	elapsed := time.Since(start)
	if err != nil {
		logger.Error("job finished", zap.Error(err), zap.Duration("duration", elapsed))
		return true
	}
	logger.Debug("job finished", zap.Duration("duration", elapsed))
	return true
}

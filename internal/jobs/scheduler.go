// Package jobs runs the API's periodic background work on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler manages background jobs using cron scheduling.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
	mu     sync.Mutex
	jobs   map[string]cron.EntryID
}

// NewScheduler creates a scheduler whose cron expressions carry a seconds field.
// A run still in progress when the next one is due causes that run to be skipped.
func NewScheduler(logger *zap.Logger) *Scheduler {
	cl := cronLogger{logger: logger.Named("cron")}
	return &Scheduler{
		cron: cron.New(cron.WithSeconds(), cron.WithLogger(cl), cron.WithChain(
			cron.SkipIfStillRunning(cl),
			cron.Recover(cl),
		)),
		logger: logger,
		jobs:   make(map[string]cron.EntryID),
	}
}

// Start starts the scheduler. Jobs added before this call will begin running.
func (s *Scheduler) Start() {
	s.logger.Info("starting job scheduler", zap.Strings("jobs", s.JobNames()))
	s.cron.Start()
}

// Stop stops scheduling new runs. The returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("stopping job scheduler")
	return s.cron.Stop()
}

// AddJob adds a job with the given name and cron expression.
// Examples:
//   - "0 */5 * * * *" - every five minutes, on the minute
//   - "@every 1m"     - every minute from start
func (s *Scheduler) AddJob(name string, cronExpr string, job func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already exists", name)
	}

	entryID, err := s.cron.AddFunc(cronExpr, func() {
		s.logger.Debug("running scheduled job", zap.String("job_name", name))
		job()
	})
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	s.logger.Info("added scheduled job",
		zap.String("job_name", name),
		zap.String("cron_expr", cronExpr))

	return nil
}

// RemoveJob removes a job by name.
func (s *Scheduler) RemoveJob(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, exists := s.jobs[name]
	if !exists {
		return fmt.Errorf("job %s not found", name)
	}

	s.cron.Remove(entryID)
	delete(s.jobs, name)

	s.logger.Info("removed scheduled job", zap.String("job_name", name))
	return nil
}

// JobNames returns the names of all registered jobs, sorted.
func (s *Scheduler) JobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// cronLogger routes cron's own messages (skipped runs, recovered panics) to zap
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}

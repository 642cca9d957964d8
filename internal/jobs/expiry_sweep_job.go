package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/straye-as/repair-quote-api/internal/service"
	"go.uber.org/zap"
)

// ExpirySweepJobName is the scheduler name of the estimate expiry job
const ExpirySweepJobName = "estimate_expiry_sweep"

// busyRetries is how many extra passes a run makes over requests that were locked
const busyRetries = 3

// ExpirySweeper expires pending estimates whose validity has ended
type ExpirySweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

// ExpirySweepJob periodically moves overdue PENDING estimates to EXPIRED.
type ExpirySweepJob struct {
	sweeper    ExpirySweeper
	logger     *zap.Logger
	timeout    time.Duration
	retryDelay time.Duration
	now        func() time.Time
}

func NewExpirySweepJob(sweeper ExpirySweeper, logger *zap.Logger, timeout time.Duration) *ExpirySweepJob {
	return &ExpirySweepJob{
		sweeper:    sweeper,
		logger:     logger,
		timeout:    timeout,
		retryDelay: 500 * time.Millisecond,
		now:        time.Now,
	}
}

// RunOnce sweeps once and returns how many estimates expired. Requests that
// were busy are retried with backoff until they clear or the run times out.
func (j *ExpirySweepJob) RunOnce(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	total := 0
	backoff := retry.WithMaxRetries(busyRetries, retry.NewExponential(j.retryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		n, err := j.sweeper.SweepExpired(ctx, j.now())
		total += n
		if errors.Is(err, service.ErrBusy) {
			return retry.RetryableError(err)
		}
		return err
	})
	return total, err
}

// Run is the scheduler entry point
func (j *ExpirySweepJob) Run() {
	start := time.Now()
	expired, err := j.RunOnce(context.Background())
	if err != nil {
		j.logger.Error("estimate expiry sweep failed",
			zap.Int("expired", expired),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	if expired > 0 {
		j.logger.Info("estimate expiry sweep completed",
			zap.Int("expired", expired),
			zap.Duration("duration", time.Since(start)))
	}
}

// RegisterExpirySweepJob adds the sweep to the scheduler. With runOnStartup the
// first sweep runs right away in the background so startup is not delayed.
func RegisterExpirySweepJob(scheduler *Scheduler, sweeper ExpirySweeper, logger *zap.Logger, cronExpr string, timeout time.Duration, runOnStartup bool) (*ExpirySweepJob, error) {
	job := NewExpirySweepJob(sweeper, logger, timeout)

	if err := scheduler.AddJob(ExpirySweepJobName, cronExpr, job.Run); err != nil {
		return nil, err
	}

	if runOnStartup {
		go job.Run()
	}
	return job, nil
}

package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/straye-as/repair-quote-api/internal/config"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrPermanent marks a delivery failure that retrying cannot fix
var ErrPermanent = errors.New("permanent delivery failure")

// Channel delivers a lifecycle event to every recipient on one medium.
// Deliver must be safe to repeat for the same event.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, event domain.LifecycleEvent) error
}

// Options tune the dispatcher
type Options struct {
	QueueSize       int
	Workers         int
	MaxRetries      int
	RetryBaseDelay  time.Duration
	DeliveryTimeout time.Duration
}

// OptionsFromConfig maps the notifications config section to dispatcher options
func OptionsFromConfig(cfg *config.NotificationsConfig) Options {
	return Options{
		QueueSize:       cfg.QueueSize,
		Workers:         cfg.Workers,
		MaxRetries:      cfg.MaxRetries,
		RetryBaseDelay:  cfg.RetryBaseDelayDuration(),
		DeliveryTimeout: cfg.DeliveryTimeoutDuration(),
	}
}

// Dispatcher fans lifecycle events out to its channels in the background.
// Notify never blocks: when the queue is full the event is delivered from its
// own goroutine instead of being dropped.
type Dispatcher struct {
	channels []Channel
	opts     Options
	logger   *zap.Logger

	queue    chan domain.LifecycleEvent
	baseCtx  context.Context
	cancel   context.CancelFunc
	workers  sync.WaitGroup
	inflight sync.WaitGroup

	mu      sync.RWMutex
	started bool
	closed  bool
}

// NewDispatcher creates a dispatcher. Call Start before Notify.
func NewDispatcher(opts Options, logger *zap.Logger, channels ...Channel) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize < 0 {
		opts.QueueSize = 0
	}
	if opts.RetryBaseDelay <= 0 {
		opts.RetryBaseDelay = 100 * time.Millisecond
	}
	if opts.DeliveryTimeout <= 0 {
		opts.DeliveryTimeout = 10 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		channels: channels,
		opts:     opts,
		logger:   logger,
		queue:    make(chan domain.LifecycleEvent, opts.QueueSize),
		baseCtx:  ctx,
		cancel:   cancel,
	}
}

// Start launches the worker goroutines
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true

	for i := 0; i < d.opts.Workers; i++ {
		d.workers.Add(1)
		go func() {
			defer d.workers.Done()
			for event := range d.queue {
				d.dispatch(event)
			}
		}()
	}

	channelNames := make([]string, len(d.channels))
	for i, ch := range d.channels {
		channelNames[i] = ch.Name()
	}
	d.logger.Info("Notification dispatcher started",
		zap.Int("workers", d.opts.Workers),
		zap.Int("queue_size", d.opts.QueueSize),
		zap.Strings("channels", channelNames),
	)
}

// Notify queues the event for delivery. The caller's context is not used for
// delivery so a finished HTTP request does not cancel its notifications.
func (d *Dispatcher) Notify(_ context.Context, event domain.LifecycleEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		logger.WithEvent(d.logger, event).Error("Notification dispatcher closed, event not delivered")
		return
	}

	select {
	case d.queue <- event:
	default:
		logger.WithEvent(d.logger, event).Warn("Notification queue full, delivering out of band")
		d.inflight.Add(1)
		go func() {
			defer d.inflight.Done()
			d.dispatch(event)
		}()
	}
}

// Close stops accepting events and waits for queued deliveries to finish or
// for ctx to end, whichever comes first.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	started := d.started
	d.mu.Unlock()

	if !started {
		// no workers: drain synchronously
		for event := range d.queue {
			d.dispatch(event)
		}
	}

	done := make(chan struct{})
	go func() {
		d.workers.Wait()
		d.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		return fmt.Errorf("notification dispatcher did not drain: %w", ctx.Err())
	}
}

// dispatch delivers one event on every channel in parallel
func (d *Dispatcher) dispatch(event domain.LifecycleEvent) {
	log := logger.WithEvent(d.logger, event)

	var g errgroup.Group
	for _, ch := range d.channels {
		ch := ch
		g.Go(func() error {
			if err := d.deliver(ch, event); err != nil {
				log.Error("Notification delivery failed",
					zap.String("channel", ch.Name()),
					zap.Int("recipients", len(event.RecipientIDs)),
					zap.Error(err),
				)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err == nil {
		log.Debug("Notification delivered", zap.Int("channels", len(d.channels)))
	}
}

func (d *Dispatcher) deliver(ch Channel, event domain.LifecycleEvent) error {
	backoff := retry.NewExponential(d.opts.RetryBaseDelay)
	backoff = retry.WithCappedDuration(30*time.Second, backoff)
	backoff = retry.WithJitterPercent(10, backoff)
	backoff = retry.WithMaxRetries(uint64(d.opts.MaxRetries), backoff)

	attempt := 0
	return retry.Do(d.baseCtx, backoff, func(ctx context.Context) error {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, d.opts.DeliveryTimeout)
		defer cancel()

		err := ch.Deliver(attemptCtx, event)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrPermanent) {
			return err
		}
		d.logger.Debug("Notification delivery attempt failed",
			zap.String("channel", ch.Name()),
			zap.String("event_id", event.ID.String()),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return retry.RetryableError(err)
	})
}

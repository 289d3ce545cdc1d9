package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/teampulse/feedback-system/internal/core/domain"
	"github.com/teampulse/feedback-system/internal/core/ports"
	"github.com/teampulse/feedback-system/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes feedback events to a fixed set of workers using consistent
// hashing on the employee id, so events for one employee are delivered in
// the order they were enqueued.
type Dispatcher struct {
	workers  []chan domain.FeedbackEvent
	notifier ports.FeedbackNotifier
	log      zerolog.Logger
	wg       sync.WaitGroup
}

type Option func(*dispatcherOptions)

type dispatcherOptions struct {
	buffer int
}

// WithBuffer sets the per-worker channel capacity.
func WithBuffer(n int) Option {
	return func(o *dispatcherOptions) {
		if n > 0 {
			o.buffer = n
		}
	}
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, notifier ports.FeedbackNotifier, log zerolog.Logger, opts ...Option) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	o := dispatcherOptions{buffer: channelBuffer}
	for _, opt := range opts {
		opt(&o)
	}
	d := &Dispatcher{
		workers:  make([]chan domain.FeedbackEvent, numWorkers),
		notifier: notifier,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.FeedbackEvent, o.buffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands an event to the worker responsible for its employee. It never
// blocks: when that worker's buffer is full the event is dropped and false
// is returned.
func (d *Dispatcher) Enqueue(event domain.FeedbackEvent) bool {
	idx := d.shardIndex(event.EmployeeID)
	select {
	case d.workers[idx] <- event:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return true
	default:
		metrics.NotificationsTotal.WithLabelValues(string(event.Type), "dropped").Inc()
		return false
	}
}

// shardIndex maps an employee id deterministically to a worker index.
func (d *Dispatcher) shardIndex(employeeID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(employeeID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.FeedbackEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.deliver(ctx, id, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, worker int, event domain.FeedbackEvent) {
	start := time.Now()
	err := d.notifier.Notify(ctx, event)
	metrics.NotificationDuration.WithLabelValues(string(event.Type)).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(string(event.Type), "failed").Inc()
		d.log.Error().Err(err).
			Str("type", string(event.Type)).
			Int64("feedback_id", event.FeedbackID).
			Int("worker_id", worker).
			Msg("feedback event delivery failed")
		return
	}
	metrics.NotificationsTotal.WithLabelValues(string(event.Type), "delivered").Inc()
}

package notify

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/careloop/booking-platform/internal/api/metrics"
	"github.com/careloop/booking-platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher fans notifications out to a fixed set of workers using
// consistent hashing on the notification key, so messages for the same
// recipient are delivered in order. Delivery is best-effort: failures are
// logged and counted, never retried.
type Dispatcher struct {
	workers []chan ports.Notification
	email   ports.EmailSender
	sms     ports.SMSSender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, email ports.EmailSender, sms ports.SMSSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Notification, numWorkers),
		email:   email,
		sms:     sms,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a notification to the worker responsible for its key.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(n ports.Notification) {
	i := d.shardIndex(n.Key)
	d.workers[i] <- n
	metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a notification key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			d.deliver(ctx, id, n)
			metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, n ports.Notification) {
	if n.EmailTo != "" && n.EmailHTML != "" {
		if err := d.email.Send(ctx, n.EmailTo, n.EmailSubject, n.EmailHTML); err != nil {
			metrics.NotificationsSentTotal.WithLabelValues("email", "error").Inc()
			d.log.Error().Err(err).
				Str("to", n.EmailTo).
				Int("worker_id", workerID).
				Msg("email delivery failed")
		} else {
			metrics.NotificationsSentTotal.WithLabelValues("email", "ok").Inc()
		}
	}

	if n.Phone != "" && n.SMSText != "" {
		if err := d.sms.Send(ctx, n.Phone, n.SMSText); err != nil {
			metrics.NotificationsSentTotal.WithLabelValues("sms", "error").Inc()
			d.log.Error().Err(err).
				Str("phone", n.Phone).
				Int("worker_id", workerID).
				Msg("sms delivery failed")
		} else {
			metrics.NotificationsSentTotal.WithLabelValues("sms", "ok").Inc()
		}
	}
}

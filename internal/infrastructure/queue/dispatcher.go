package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/optigov/ndpr-portal/internal/api/metrics"
	"github.com/optigov/ndpr-portal/internal/core/domain"
	"github.com/optigov/ndpr-portal/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes audit events to a fixed set of workers using consistent
// hashing on the actor, guaranteeing per-actor event ordering in the trail.
type Dispatcher struct {
	workers []chan domain.AuditEvent
	sink    ports.AuditSink
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.AuditSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish sends an event to the worker responsible for its actor. When a
// worker's buffer is full the event is dropped rather than blocking the
// auth flow; the drop is logged and counted.
func (d *Dispatcher) Publish(event domain.AuditEvent) {
	i := d.shardIndex(event.Actor)
	select {
	case d.workers[i] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().Str("actor", event.Actor).Str("action", event.Action).Msg("audit queue full, event dropped")
	}
}

// shardIndex maps an actor deterministically to a worker index.
func (d *Dispatcher) shardIndex(actor string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actor))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
			if err := d.sink.Record(ctx, event); err != nil {
				metrics.AuditEventsErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("actor", event.Actor).
					Int("worker_id", id).
					Msg("audit event write failed")
				continue
			}
			metrics.AuditEventsRecordedTotal.WithLabelValues(event.Action, event.Outcome).Inc()
		}
	}
}

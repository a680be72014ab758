package queue

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/cabrix/dispatch-api/internal/api/metrics"
	"github.com/cabrix/dispatch-api/internal/core/domain"
	"github.com/cabrix/dispatch-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditDispatcher routes trip lifecycle events to a fixed set of workers,
// sharding on trip id so events for one trip are persisted in order.
type AuditDispatcher struct {
	workers []chan domain.TripEvent
	events  ports.TripEventRepository
	log     zerolog.Logger
}

// NewAuditDispatcher creates an AuditDispatcher with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, events ports.TripEventRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.TripEvent, numWorkers),
		events:  events,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.TripEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record sends an event to the worker responsible for its trip.
// The call is non-blocking up to channelBuffer capacity.
func (d *AuditDispatcher) Record(ev domain.TripEvent) {
	i := d.shardIndex(ev.TripID)
	d.workers[i] <- ev
	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// count updates the lifecycle counters for a persisted event.
func (d *AuditDispatcher) count(ev domain.TripEvent) {
	switch ev.Action {
	case domain.AuditCreated:
		metrics.TripsCreatedTotal.Inc()
	case domain.AuditTransition:
		metrics.TripTransitionsTotal.WithLabelValues(string(ev.From), string(ev.To)).Inc()
	case domain.AuditAssigned:
		metrics.TripAssignmentsTotal.Inc()
	}
}

// shardIndex maps a trip id deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(tripID int64) int {
	if tripID < 0 {
		tripID = -tripID
	}
	return int(tripID % int64(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.TripEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.events.Insert(ctx, &ev); err != nil {
				d.log.Error().Err(err).
					Int64("trip_id", ev.TripID).
					Str("action", ev.Action).
					Int("worker_id", id).
					Msg("audit event persistence failed")
				continue
			}
			d.count(ev)
		}
	}
}

// Package planner ties the scheduling engine to its collaborators:
// generating candidate slots, publishing them through a SlotStore, and
// gating conflict checks on a loaded day corpus.
package planner

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/slotforge/slotforge/internal/civil"
	"github.com/slotforge/slotforge/internal/observability/metrics"
	"github.com/slotforge/slotforge/internal/schedule"
	"github.com/slotforge/slotforge/pkg/logging"
)

var plannerTracer trace.Tracer = otel.Tracer("slotforge.internal.planner")

// ErrDayNotLoaded is returned by Conflicts when the target date's
// existing-slot corpus has not been loaded yet. Callers track the
// not-loaded / loaded-empty / loaded states and must load before asking.
var ErrDayNotLoaded = errors.New("planner: day corpus not loaded")

// DayState is the tri-state a caller sees for a date's corpus.
type DayState int

const (
	DayNotLoaded DayState = iota
	DayLoadedEmpty
	DayLoaded
)

// PublishResult reports the outcome of a bulk publish. Unpersisted holds
// the candidates the store did not create; the caller re-presents them
// instead of retrying blindly.
type PublishResult struct {
	Created     []schedule.PersistedSlot
	Unpersisted []schedule.CandidateSlot
}

// Partial reports whether anything was left unpersisted.
func (r PublishResult) Partial() bool { return len(r.Unpersisted) > 0 }

// Planner is the scheduling service facade.
type Planner struct {
	store   SlotStore
	hours   *schedule.BusinessHours
	gen     schedule.Generator
	zone    schedule.Zone
	logger  *logging.Logger
	metrics *metrics.SchedulingMetrics

	mu     sync.RWMutex
	corpus map[civil.Date][]schedule.PersistedSlot
}

// New constructs a planner. Store and hours are required; logger and
// metrics may be nil.
func New(store SlotStore, hours *schedule.BusinessHours, zone schedule.Zone, logger *logging.Logger, m *metrics.SchedulingMetrics) *Planner {
	if store == nil {
		panic("planner: store required")
	}
	if hours == nil {
		panic("planner: business hours required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Planner{
		store:   store,
		hours:   hours,
		gen:     schedule.Generator{Zone: zone},
		zone:    zone,
		logger:  logger,
		metrics: m,
		corpus:  make(map[civil.Date][]schedule.PersistedSlot),
	}
}

// Stage generates candidate slots for a service over an inclusive date
// range. The candidates are transient; ownership passes to the caller,
// who may hand a subset back to Publish.
func (p *Planner) Stage(ctx context.Context, svc schedule.Service, from, to civil.Date, capacity int) []schedule.CandidateSlot {
	_, span := plannerTracer.Start(ctx, "planner.stage")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("slotforge.service_id", svc.ID),
		attribute.String("slotforge.from", from.String()),
		attribute.String("slotforge.to", to.String()),
		attribute.Int("slotforge.capacity", capacity),
	)

	started := time.Now()
	slots := p.gen.Generate(p.hours, schedule.Request{
		Service:  svc,
		From:     from,
		To:       to,
		Capacity: capacity,
	})
	p.metrics.ObserveGeneration(svc.Name, len(slots), time.Since(started).Seconds())

	p.logger.Info("slots staged",
		"service_id", svc.ID,
		"from", from.String(),
		"to", to.String(),
		"capacity", capacity,
		"count", len(slots),
	)
	return slots
}

// Publish bulk-creates candidates through the store. When the store
// persists fewer records than requested, the leftover candidates are
// returned in Unpersisted and the shortfall is logged and counted — the
// planner never retries on its own. Created slots are folded into any
// already-loaded day corpus so subsequent conflict checks see them.
func (p *Planner) Publish(ctx context.Context, slots []schedule.CandidateSlot) (PublishResult, error) {
	ctx, span := plannerTracer.Start(ctx, "planner.publish")
	defer span.End()
	span.SetAttributes(attribute.Int("slotforge.requested", len(slots)))

	created, err := p.store.BulkCreate(ctx, slots)
	if err != nil {
		span.RecordError(err)
		return PublishResult{}, err
	}

	res := PublishResult{Created: created, Unpersisted: undelivered(slots, created)}
	if res.Partial() {
		p.metrics.ObservePartialPublish()
		p.logger.Warn("partial publish",
			"requested", len(slots),
			"created", len(created),
			"unpersisted", len(res.Unpersisted),
		)
	}

	p.absorb(created)
	return res, nil
}

// undelivered maps the created subset back onto the requested candidates
// by (service, time) and returns the candidates left over.
func undelivered(requested []schedule.CandidateSlot, created []schedule.PersistedSlot) []schedule.CandidateSlot {
	type key struct {
		service int64
		at      time.Time
	}
	remaining := make(map[key]int, len(created))
	for _, c := range created {
		remaining[key{c.ServiceID, c.Time}]++
	}
	var out []schedule.CandidateSlot
	for _, c := range requested {
		k := key{c.ServiceID, c.Time}
		if remaining[k] > 0 {
			remaining[k]--
			continue
		}
		out = append(out, c)
	}
	return out
}

// LoadDay fetches a date's existing-slot corpus and caches it, returning
// the number of slots found.
func (p *Planner) LoadDay(ctx context.Context, date civil.Date) (int, error) {
	slots, err := p.store.ListByDate(ctx, date)
	if err != nil {
		return 0, err
	}
	p.mu.Lock()
	if slots == nil {
		slots = []schedule.PersistedSlot{}
	}
	p.corpus[date] = slots
	p.mu.Unlock()
	return len(slots), nil
}

// DayState reports the tri-state of a date's corpus and, when loaded,
// its size.
func (p *Planner) DayState(date civil.Date) (DayState, int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	slots, ok := p.corpus[date]
	switch {
	case !ok:
		return DayNotLoaded, 0
	case len(slots) == 0:
		return DayLoadedEmpty, 0
	default:
		return DayLoaded, len(slots)
	}
}

// Conflicts runs the overlap detector against the loaded corpus for the
// target's local date. The corpus must have been loaded via LoadDay
// first; an unloaded date returns ErrDayNotLoaded rather than silently
// checking against nothing.
func (p *Planner) Conflicts(target schedule.Target) ([]schedule.PersistedSlot, error) {
	date := p.zone.DateOf(target.Time)

	p.mu.RLock()
	existing, ok := p.corpus[date]
	p.mu.RUnlock()
	if !ok {
		return nil, ErrDayNotLoaded
	}

	overlaps := schedule.FindOverlaps(p.zone, target, existing)
	p.metrics.ObserveConflictCheck(len(overlaps))
	return overlaps, nil
}

// absorb folds freshly created slots into already-loaded day corpora so
// they participate in conflict checks without a reload.
func (p *Planner) absorb(created []schedule.PersistedSlot) {
	if len(created) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range created {
		date := p.zone.DateOf(s.Time)
		if existing, ok := p.corpus[date]; ok {
			p.corpus[date] = append(existing, s)
		}
	}
}

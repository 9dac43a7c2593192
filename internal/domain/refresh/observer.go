package refresh

import (
	"context"
	"time"

	"github.com/okian/livescores/internal/domain/model"
	"github.com/okian/livescores/internal/domain/staleness"
	"github.com/okian/livescores/pkg/logger"
	"github.com/okian/livescores/pkg/metrics"
)

// Observer receives the structured events of a refresh cycle.
// Calls for one cycle share its cycle id. FetchDone may be called concurrently.
type Observer interface {
	CycleStarted(ctx context.Context, cycleID string, active int)
	CycleRejected(ctx context.Context)
	CycleFailed(ctx context.Context, r Report, err error)
	MalformedMember(ctx context.Context, cycleID, member string, err error)
	Decided(ctx context.Context, cycleID string, sub model.Subscription, d staleness.Decision)
	FetchDone(ctx context.Context, cycleID string, sub model.Subscription, latency time.Duration, err error)
	WriteFailed(ctx context.Context, cycleID string, sub model.Subscription, err error)
	Retired(ctx context.Context, cycleID string, sub model.Subscription)
	RetireFailed(ctx context.Context, cycleID string, sub model.Subscription, err error)
	CycleFinished(ctx context.Context, r Report)
}

// LogObserver writes cycle events as structured logs and Prometheus metrics.
type LogObserver struct {
	log logger.Logger
}

// NewLogObserver creates the default Observer.
func NewLogObserver(l logger.Logger) *LogObserver {
	if l == nil {
		l = logger.NewNop()
	}
	return &LogObserver{log: l}
}

func subFields(cycleID string, sub model.Subscription) []logger.Field {
	return []logger.Field{
		logger.String("cycle_id", cycleID),
		logger.String("league", string(sub.League)),
		logger.String("event_id", sub.EventID),
		logger.String("service", serviceLabel(sub.Service)),
	}
}

func serviceLabel(s model.Service) string {
	if s == "" {
		return string(model.ServiceESPN)
	}
	return string(s)
}

func (o *LogObserver) CycleStarted(ctx context.Context, cycleID string, active int) {
	metrics.UpdateActiveSubscriptions(active)
	o.log.Info(ctx, "refresh cycle started", logger.String("cycle_id", cycleID), logger.Int("active", active))
}

func (o *LogObserver) CycleRejected(ctx context.Context) {
	metrics.RecordCycleRejected()
	o.log.Warn(ctx, "refresh cycle rejected, previous cycle still running")
}

func (o *LogObserver) CycleFailed(ctx context.Context, r Report, err error) {
	metrics.RecordErrorByComponent("scheduler", "list_active")
	metrics.RecordCycle(OutcomeFailed, float64(r.Duration.Microseconds())/1000, r.StartedAt.Add(r.Duration).Unix())
	o.log.Error(ctx, "refresh cycle failed", logger.String("cycle_id", r.CycleID), logger.Error(err))
}

func (o *LogObserver) MalformedMember(ctx context.Context, cycleID, member string, err error) {
	metrics.RecordErrorByComponent("scheduler", "malformed_member")
	o.log.Warn(ctx, "ignoring malformed subscription",
		logger.String("cycle_id", cycleID), logger.String("member", member), logger.Error(err))
}

func (o *LogObserver) Decided(ctx context.Context, cycleID string, sub model.Subscription, d staleness.Decision) {
	metrics.RecordDecision(d.Label(), string(d.Reason))
	fields := append(subFields(cycleID, sub), logger.String("decision", d.Label()), logger.String("reason", string(d.Reason)))
	o.log.Debug(ctx, "staleness decision", fields...)
}

func (o *LogObserver) FetchDone(ctx context.Context, cycleID string, sub model.Subscription, latency time.Duration, err error) {
	ms := float64(latency.Microseconds()) / 1000
	if err != nil {
		metrics.RecordFetch(serviceLabel(sub.Service), "error", ms)
		fields := append(subFields(cycleID, sub), logger.Duration("latency", latency), logger.Error(err))
		o.log.Warn(ctx, "fetch failed", fields...)
		return
	}
	metrics.RecordFetch(serviceLabel(sub.Service), "ok", ms)
}

func (o *LogObserver) WriteFailed(ctx context.Context, cycleID string, sub model.Subscription, err error) {
	metrics.RecordErrorByComponent("scheduler", "cache_write")
	o.log.Error(ctx, "cache write failed", append(subFields(cycleID, sub), logger.Error(err))...)
}

func (o *LogObserver) Retired(ctx context.Context, cycleID string, sub model.Subscription) {
	metrics.RecordRetirement()
	o.log.Info(ctx, "subscription retired", subFields(cycleID, sub)...)
}

func (o *LogObserver) RetireFailed(ctx context.Context, cycleID string, sub model.Subscription, err error) {
	metrics.RecordErrorByComponent("scheduler", "retire")
	o.log.Error(ctx, "subscription removal failed", append(subFields(cycleID, sub), logger.Error(err))...)
}

func (o *LogObserver) CycleFinished(ctx context.Context, r Report) {
	metrics.RecordCycle(r.Outcome(), float64(r.Duration.Microseconds())/1000, r.StartedAt.Add(r.Duration).Unix())
	o.log.Info(ctx, "refresh cycle finished",
		logger.String("cycle_id", r.CycleID),
		logger.Int("active", r.Active),
		logger.Int("selected", r.Selected),
		logger.Int("fetched", r.Fetched),
		logger.Int("fetch_failures", r.FetchFailures),
		logger.Int("written", r.Written),
		logger.Int("retired", r.Retired),
		logger.Int("retire_failures", r.RetireFailures),
		logger.String("outcome", r.Outcome()),
		logger.Duration("duration", r.Duration),
	)
}

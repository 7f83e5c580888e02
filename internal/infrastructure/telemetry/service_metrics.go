package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
var (
	AttrKeyStatus    = attribute.Key("status")
	AttrKeyOperation = attribute.Key("operation")
	AttrKeySource    = attribute.Key("source")
	AttrKeyOutcome   = attribute.Key("outcome")
	AttrKeyIndustry  = attribute.Key("industry")
)

// ServiceMetrics records ledger activity and upstream fetches. A nil
// *ServiceMetrics records nothing.
type ServiceMetrics struct {
	requestsCreated  *Counter
	statusChanges    *Counter
	chargeUpdates    *Counter
	ledgerNotFound   *Counter
	industryResolves *Counter
	upstreamDuration *Histogram
}

// NewServiceMetrics registers the instruments on meter.
func NewServiceMetrics(meter metric.Meter) (*ServiceMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		m   ServiceMetrics
		err error
	)
	if m.requestsCreated, err = NewCounter(meter,
		"orderdesk_requests_created_total", "Purchase requests created", "{requests}"); err != nil {
		return nil, err
	}
	if m.statusChanges, err = NewCounter(meter,
		"orderdesk_request_status_changes_total", "Purchase request status changes by target status", "{changes}"); err != nil {
		return nil, err
	}
	if m.chargeUpdates, err = NewCounter(meter,
		"orderdesk_request_charge_updates_total", "Purchase request charge updates", "{updates}"); err != nil {
		return nil, err
	}
	if m.ledgerNotFound, err = NewCounter(meter,
		"orderdesk_ledger_not_found_total", "Ledger updates addressed to an unknown request", "{updates}"); err != nil {
		return nil, err
	}
	if m.industryResolves, err = NewCounter(meter,
		"orderdesk_industry_resolves_total", "Industry profile resolutions by resolved profile", "{resolves}"); err != nil {
		return nil, err
	}
	if m.upstreamDuration, err = NewHistogram(meter,
		"orderdesk_upstream_request_duration_seconds", "Latency of history fetches from the ERP backend", "s",
		LatencyBuckets...); err != nil {
		return nil, err
	}
	return &m, nil
}

// RequestCreated counts a new purchase request.
func (m *ServiceMetrics) RequestCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.requestsCreated.Inc(ctx)
}

// StatusChanged counts a status update to status.
func (m *ServiceMetrics) StatusChanged(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.statusChanges.Inc(ctx, AttrKeyStatus.String(status))
}

// ChargesUpdated counts a charge update.
func (m *ServiceMetrics) ChargesUpdated(ctx context.Context) {
	if m == nil {
		return
	}
	m.chargeUpdates.Inc(ctx)
}

// NotFound counts an update for an unknown request id.
func (m *ServiceMetrics) NotFound(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.ledgerNotFound.Inc(ctx, AttrKeyOperation.String(operation))
}

// IndustryResolved counts a resolution; fallback marks unknown ids.
func (m *ServiceMetrics) IndustryResolved(ctx context.Context, industry string, fallback bool) {
	if m == nil {
		return
	}
	m.industryResolves.Inc(ctx, AttrKeyIndustry.String(industry), attribute.Bool("fallback", fallback))
}

// UpstreamFetched records the latency of a backend history fetch.
func (m *ServiceMetrics) UpstreamFetched(ctx context.Context, source string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.upstreamDuration.Record(ctx, d.Seconds(), AttrKeySource.String(source), AttrKeyOutcome.String(outcome))
}

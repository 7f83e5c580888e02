package telemetry

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Providers bundles the three OpenTelemetry providers of the process.
type Providers struct {
	Tracer *TracerProvider
	Meter  *MeterProvider
	Logs   *LoggerProvider
}

// Setup creates every provider. On failure the ones already created are shut
// down again.
func Setup(ctx context.Context, cfg Config, logger *zap.Logger) (*Providers, error) {
	p := &Providers{}
	var err error

	if p.Tracer, err = NewTracerProvider(ctx, cfg, logger); err != nil {
		return nil, err
	}
	if p.Meter, err = NewMeterProvider(ctx, cfg, logger); err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}
	if p.Logs, err = NewLoggerProvider(ctx, cfg, logger); err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}
	return p, nil
}

// Shutdown stops all providers and joins their errors.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Logs != nil {
		errs = append(errs, p.Logs.Shutdown(ctx))
	}
	if p.Meter != nil {
		errs = append(errs, p.Meter.Shutdown(ctx))
	}
	if p.Tracer != nil {
		errs = append(errs, p.Tracer.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

package industry

import (
	"context"
	"strings"

	"github.com/erp/orderdesk/internal/application/industry/dto"
	"github.com/erp/orderdesk/internal/domain/industry"
	"github.com/erp/orderdesk/internal/infrastructure/logger"
	"github.com/erp/orderdesk/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// IndustryService resolves industry profiles for the UI
type IndustryService struct {
	registry  *industry.Registry
	defaultID string
	metrics   *telemetry.ServiceMetrics
	logger    *zap.Logger
}

// NewIndustryService creates a new industry service. defaultID is used when
// the caller does not name an industry.
func NewIndustryService(
	registry *industry.Registry,
	defaultID string,
	metrics *telemetry.ServiceMetrics,
	logger *zap.Logger,
) *IndustryService {
	defaultID = industry.NormalizeID(defaultID)
	if defaultID == "" {
		defaultID = industry.GeneralID
	}
	return &IndustryService{
		registry:  registry,
		defaultID: defaultID,
		metrics:   metrics,
		logger:    logger,
	}
}

// DefaultID returns the industry used for requests that name none
func (s *IndustryService) DefaultID() string {
	return s.defaultID
}

// List returns every registered profile
func (s *IndustryService) List(ctx context.Context) []dto.IndustrySummary {
	return dto.ToIndustrySummaries(s.registry.List())
}

// Resolve returns the profile for id. It never fails: unknown ids resolve to
// the general profile.
func (s *IndustryService) Resolve(ctx context.Context, id string) dto.IndustryResponse {
	cfg, requested, fallback := s.resolve(ctx, id)
	return dto.ToIndustryResponse(cfg, requested, fallback)
}

// Features returns the feature projection of the resolved profile
func (s *IndustryService) Features(ctx context.Context, id string) dto.FeatureSetResponse {
	cfg, _, _ := s.resolve(ctx, id)
	return dto.ToFeatureSetResponse(industry.Features(cfg))
}

// FeatureEnabled checks a single flag of the resolved profile
func (s *IndustryService) FeatureEnabled(ctx context.Context, id, feature string) (*dto.FeatureCheckResponse, error) {
	f, err := industry.ParseFeature(feature)
	if err != nil {
		return nil, err
	}

	cfg, _, _ := s.resolve(ctx, id)
	return &dto.FeatureCheckResponse{
		IndustryID: cfg.ID,
		Feature:    string(f),
		Enabled:    industry.Features(cfg).Enabled(f),
	}, nil
}

func (s *IndustryService) resolve(ctx context.Context, id string) (industry.Config, string, bool) {
	ctx, span := telemetry.StartServiceSpan(ctx, "industry", "resolve")
	defer span.End()

	requested := strings.TrimSpace(id)
	lookupID := requested
	if lookupID == "" {
		lookupID = s.defaultID
	}

	fallback := !s.registry.Known(lookupID)
	cfg := s.registry.Resolve(lookupID)

	telemetry.SetAttributes(span,
		telemetry.AttrIndustryID, cfg.ID,
		"industry.fallback", fallback,
	)
	s.metrics.IndustryResolved(ctx, cfg.ID, fallback)

	if fallback {
		logger.Enrich(ctx, s.logger).Debug("Unknown industry, using general profile",
			zap.String("requested", requested),
			zap.String("resolved", cfg.ID),
		)
	}
	return cfg, requested, fallback
}

package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/stacktrack/stacktrack/internal/domain"
	"github.com/stacktrack/stacktrack/internal/observability"
	"github.com/stacktrack/stacktrack/internal/sla"
)

const optionsCacheKey = "stacktrack:options:catalog"

// OptionsService serves the upstream option catalog through a Redis TTL
// cache and derives the SLA override map from per-status SLA hours.
type OptionsService struct {
	api     OptionsAPI
	cache   OptionsCache
	ttl     time.Duration
	logger  *zap.Logger
	metrics *observability.Metrics
}

// OptionsDependencies bundles collaborators for the options service.
type OptionsDependencies struct {
	API     OptionsAPI
	Cache   OptionsCache
	TTL     time.Duration
	Logger  *zap.Logger
	Metrics *observability.Metrics
}

// NewOptionsService constructs the service. Cache may be nil, in which
// case every catalog read goes upstream.
func NewOptionsService(deps OptionsDependencies) *OptionsService {
	return &OptionsService{
		api:     deps.API,
		cache:   deps.Cache,
		ttl:     deps.TTL,
		logger:  deps.Logger,
		metrics: deps.Metrics,
	}
}

// Catalog returns the option catalog, preferring the cache.
func (s *OptionsService) Catalog(ctx context.Context, token string) (*domain.OptionCatalog, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	catalog, err := s.api.GetOptionCatalog(ctx, token)
	if err != nil {
		return nil, err
	}
	s.store(ctx, catalog)
	return catalog, nil
}

// Overrides derives the status deadline override map from the catalog.
// A failed catalog fetch degrades to nil overrides so deadline defaults
// still apply.
func (s *OptionsService) Overrides(ctx context.Context, token string) sla.Overrides {
	catalog, err := s.Catalog(ctx, token)
	if err != nil {
		s.logger.Warn("option catalog unavailable, using built-in SLA defaults", zap.Error(err))
		return nil
	}
	return DeriveOverrides(catalog)
}

// DeriveOverrides maps status options carrying SLA hours to normalized
// status keys. Options without SLA hours contribute nothing.
func DeriveOverrides(catalog *domain.OptionCatalog) sla.Overrides {
	if catalog == nil {
		return nil
	}
	overrides := sla.Overrides{}
	for _, option := range catalog.Statuses {
		if option.SLAHours == nil {
			continue
		}
		overrides[sla.NormalizeStatus(option.Key)] = *option.SLAHours
	}
	if len(overrides) == 0 {
		return nil
	}
	return overrides
}

func (s *OptionsService) fromCache(ctx context.Context) *domain.OptionCatalog {
	if s.cache == nil {
		return nil
	}
	raw, found, err := s.cache.Get(ctx, optionsCacheKey)
	if err != nil {
		s.metrics.RecordOptionsCache("error")
		s.logger.Warn("options cache read failed", zap.Error(err))
		return nil
	}
	if !found {
		s.metrics.RecordOptionsCache("miss")
		return nil
	}
	var catalog domain.OptionCatalog
	if err := json.Unmarshal([]byte(raw), &catalog); err != nil {
		s.metrics.RecordOptionsCache("error")
		s.logger.Warn("options cache entry corrupt", zap.Error(err))
		return nil
	}
	s.metrics.RecordOptionsCache("hit")
	return &catalog
}

func (s *OptionsService) store(ctx context.Context, catalog *domain.OptionCatalog) {
	if s.cache == nil || catalog == nil {
		return
	}
	raw, err := json.Marshal(catalog)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, optionsCacheKey, string(raw), s.ttl); err != nil {
		s.logger.Warn("options cache write failed", zap.Error(err))
	}
}

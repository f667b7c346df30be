package weather

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/i474232898/stormwind/internal/config"
)

// Service runs the retrieval and rendering pipeline for one location.
type Service struct {
	provider Provider
	cache    Cache
	store    Store
	logger   *log.Logger
}

// NewService creates a new Service. cache may be nil.
func NewService(provider Provider, cache Cache, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		provider: provider,
		cache:    cache,
		logger:   logger,
	}
}

// WithStore makes Render keep every output it produces.
func (s *Service) WithStore(store Store) *Service {
	s.store = store
	return s
}

// Render produces the status-bar document for cfg. A fresh cache entry is
// used without touching the network; otherwise the report is fetched,
// decoded and written back to the cache before returning. Air quality
// failures are logged and never fatal.
func (s *Service) Render(ctx context.Context, cfg config.Config) (Output, error) {
	cacheEnabled := s.cache != nil && cfg.CacheSeconds > 0

	if cacheEnabled {
		if report, ok := s.cache.Read(cfg); ok {
			return s.keep(cfg, Render(report, nil, cfg.AQIStandard)), nil
		}
	}

	report, err := s.provider.FetchReport(ctx, cfg)
	if err != nil {
		return Output{}, fmt.Errorf("%s: %w", s.provider.Name(), err)
	}

	aq, err := s.provider.FetchAirQuality(ctx, cfg)
	if err != nil {
		s.logger.Printf("WARN: air quality unavailable: %v", err)
		aq = nil
	}

	if cacheEnabled {
		if err := s.cache.Write(report, cfg); err != nil {
			s.logger.Printf("WARN: failed to update cache: %v", err)
		}
	}

	return s.keep(cfg, Render(report, aq, cfg.AQIStandard)), nil
}

func (s *Service) keep(cfg config.Config, out Output) Output {
	if s.store != nil {
		s.store.SaveSnapshot(Snapshot{
			Location:  LocationOf(cfg),
			Timestamp: time.Now().UTC(),
			Output:    out,
		})
	}
	return out
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(loc Location) (Snapshot, error) {
	if s.store == nil {
		return Snapshot{}, fmt.Errorf("no snapshot store configured")
	}
	return s.store.GetLatest(loc)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(loc Location, from, to time.Time) ([]Snapshot, error) {
	if s.store == nil {
		return nil, fmt.Errorf("no snapshot store configured")
	}
	return s.store.GetRange(loc, from, to)
}

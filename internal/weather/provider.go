package weather

import (
	"context"
	"time"

	"github.com/i474232898/stormwind/internal/config"
)

// Provider abstracts a weather back-end (Open-Meteo, OpenWeatherMap).
type Provider interface {
	Name() string
	FetchReport(ctx context.Context, cfg config.Config) (Report, error)
	// FetchAirQuality returns nil when the back-end has no air quality data.
	FetchAirQuality(ctx context.Context, cfg config.Config) (*AirQuality, error)
}

// Cache is the contract of the on-disk report cache.
type Cache interface {
	Read(cfg config.Config) (Report, bool)
	Write(r Report, cfg config.Config) error
}

// Store is the contract the in-memory snapshot store must satisfy.
type Store interface {
	SaveSnapshot(snapshot Snapshot)
	GetLatest(loc Location) (Snapshot, error)
	GetRange(loc Location, from, to time.Time) ([]Snapshot, error)
}

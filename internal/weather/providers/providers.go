package providers

import (
	"net/http"

	"github.com/i474232898/stormwind/internal/config"
	"github.com/i474232898/stormwind/internal/weather"
)

// New returns the back-end selected by cfg. The OpenWeatherMap back-end needs
// the API key at cfg.KeyPath and fails with config.ErrMissingSecret without it.
func New(cfg config.Config, client *http.Client) (weather.Provider, error) {
	if cfg.Provider == config.ProviderOpenWeatherMap {
		key, err := config.LoadKey(cfg.KeyPath)
		if err != nil {
			return nil, err
		}
		return NewOpenWeatherProvider(client, key), nil
	}
	return NewOpenMeteoProvider(client), nil
}

package dashboard

import (
	"context"
	"math"
	"time"

	"github.com/goodnatureofminers/energypulse/internal/model"
	"github.com/goodnatureofminers/energypulse/internal/poller"
	"go.uber.org/zap"
)

// NewWeatherWidget polls current conditions for city. A failed or implausible
// reading keeps the previous one on display.
func NewWeatherWidget(
	svc WeatherService,
	city string,
	interval time.Duration,
	metrics poller.Metrics,
	onUpdate func(poller.Snapshot[model.Weather]),
	logger *zap.Logger,
) (*poller.Poller[model.Weather], error) {
	return poller.New(poller.Config[model.Weather]{
		Interval: interval,
		Valid:    validWeather,
		OnUpdate: onUpdate,
	}, func(ctx context.Context) (model.Weather, error) {
		return svc.Current(ctx, city)
	}, metrics, logger.With(zap.String("city", city)))
}

func validWeather(w model.Weather) bool {
	return !math.IsNaN(w.Temperature) && !math.IsInf(w.Temperature, 0) && w.Temperature > -100 && w.Temperature < 70
}

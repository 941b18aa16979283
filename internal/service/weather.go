package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/goodnatureofminers/energypulse/internal/apiclient"
	"github.com/goodnatureofminers/energypulse/internal/model"
)

var errMissingPrediction = errors.New("verified result without prediction")

// Weather looks up current conditions through the backend.
type Weather struct {
	api Requester
}

// NewWeather constructs a Weather service.
func NewWeather(api Requester) *Weather {
	return &Weather{api: api}
}

// Current returns the conditions for city right now.
func (s *Weather) Current(ctx context.Context, city string) (model.Weather, error) {
	const operation = "weather.current"
	city = strings.TrimSpace(city)
	if city == "" {
		return model.Weather{}, &apiclient.Error{Kind: apiclient.KindValidation, Operation: operation, Message: "City parameter is required"}
	}

	var raw json.RawMessage
	if err := s.api.Do(ctx, apiclient.Request{
		Operation: operation,
		Method:    http.MethodGet,
		Path:      "/api/weather/" + segment(city),
		Anonymous: true,
	}, &raw); err != nil {
		return model.Weather{}, err
	}
	var w model.Weather
	if err := decodeStrict(operation, raw, &w, "temperature"); err != nil {
		return model.Weather{}, err
	}
	if w.City == "" {
		w.City = city
	}
	return w, nil
}

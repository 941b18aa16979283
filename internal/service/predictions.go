package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/goodnatureofminers/energypulse/internal/apiclient"
	"github.com/goodnatureofminers/energypulse/internal/model"
)

// Predictions queries the read-only prediction log.
type Predictions struct {
	api Requester
}

// NewPredictions constructs a Predictions service.
func NewPredictions(api Requester) *Predictions {
	return &Predictions{api: api}
}

// List returns one page of predictions matching q.
func (s *Predictions) List(ctx context.Context, q model.PredictionQuery) (model.PredictionPage, error) {
	const operation = "predictions.list"
	var raw json.RawMessage
	if err := s.api.Do(ctx, apiclient.Request{
		Operation: operation,
		Method:    http.MethodGet,
		Path:      "/api/predictions",
		Query:     q.Values(),
	}, &raw); err != nil {
		return model.PredictionPage{}, err
	}
	var page model.PredictionPage
	if err := decodeStrict(operation, raw, &page, "predictions", "total", "page", "limit", "totalPages"); err != nil {
		return model.PredictionPage{}, err
	}
	if err := page.Validate(); err != nil {
		return model.PredictionPage{}, apiclient.Malformed(operation, err)
	}
	return page, nil
}

// Get returns one prediction.
func (s *Predictions) Get(ctx context.Context, id uint) (model.Prediction, error) {
	const operation = "predictions.get"
	var raw json.RawMessage
	if err := s.api.Do(ctx, apiclient.Request{
		Operation: operation,
		Method:    http.MethodGet,
		Path:      "/api/predictions/" + strconv.FormatUint(uint64(id), 10),
	}, &raw); err != nil {
		return model.Prediction{}, err
	}
	var p model.Prediction
	if err := decodeStrict(operation, raw, &p, "id", "meterId", "timestamp", "predictedPrice"); err != nil {
		return model.Prediction{}, err
	}
	return p, nil
}

// Statistics returns aggregates over the caller's predictions.
func (s *Predictions) Statistics(ctx context.Context) (model.Statistics, error) {
	const operation = "predictions.statistics"
	var raw json.RawMessage
	if err := s.api.Do(ctx, apiclient.Request{Operation: operation, Method: http.MethodGet, Path: "/api/statistics"}, &raw); err != nil {
		return model.Statistics{}, err
	}
	var stats model.Statistics
	if err := decodeStrict(operation, raw, &stats, "totalPredictions", "totalHouseholds"); err != nil {
		return model.Statistics{}, err
	}
	return stats, nil
}

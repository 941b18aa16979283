package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/goodnatureofminers/energypulse/internal/apiclient"
	"github.com/goodnatureofminers/energypulse/internal/model"
)

// Houses manages the household registry. The server scopes List to the caller unless
// the caller is an administrator, in which case owner fields are populated.
type Houses struct {
	api Requester
}

// NewHouses constructs a Houses service.
func NewHouses(api Requester) *Houses {
	return &Houses{api: api}
}

// List returns the households visible to the caller.
func (s *Houses) List(ctx context.Context) ([]model.Household, error) {
	const operation = "houses.list"
	var raw json.RawMessage
	if err := s.api.Do(ctx, apiclient.Request{Operation: operation, Method: http.MethodGet, Path: "/api/houses"}, &raw); err != nil {
		return nil, err
	}
	var houses []model.Household
	if err := json.Unmarshal(raw, &houses); err != nil {
		return nil, apiclient.Malformed(operation, fmt.Errorf("expected household list: %w", err))
	}
	if houses == nil {
		return nil, apiclient.Malformed(operation, errors.New("household list is null"))
	}
	for _, h := range houses {
		if err := h.Validate(); err != nil {
			return nil, apiclient.Malformed(operation, err)
		}
	}
	return houses, nil
}

// Get returns one household.
func (s *Houses) Get(ctx context.Context, id string) (model.Household, error) {
	return s.one(ctx, apiclient.Request{Operation: "houses.get", Method: http.MethodGet, Path: "/api/houses/" + segment(id)})
}

// Create registers a household and returns it as stored.
func (s *Houses) Create(ctx context.Context, in model.HouseholdInput) (model.Household, error) {
	return s.one(ctx, apiclient.Request{Operation: "houses.create", Method: http.MethodPost, Path: "/api/houses", Body: in})
}

// Update changes a household and returns it as stored.
func (s *Houses) Update(ctx context.Context, id string, in model.HouseholdInput) (model.Household, error) {
	return s.one(ctx, apiclient.Request{Operation: "houses.update", Method: http.MethodPut, Path: "/api/houses/" + segment(id), Body: in})
}

// Delete archives a household.
func (s *Houses) Delete(ctx context.Context, id string) error {
	return s.api.Do(ctx, apiclient.Request{Operation: "houses.delete", Method: http.MethodDelete, Path: "/api/houses/" + segment(id)}, nil)
}

// Forecast returns the next 24 hourly predictions for a household.
func (s *Houses) Forecast(ctx context.Context, id string) ([]model.Prediction, error) {
	const operation = "houses.forecast"
	var raw json.RawMessage
	if err := s.api.Do(ctx, apiclient.Request{Operation: operation, Method: http.MethodGet, Path: "/api/houses/" + segment(id) + "/forecast"}, &raw); err != nil {
		return nil, err
	}
	var list []model.Prediction
	if err := json.Unmarshal(raw, &list); err == nil && list != nil {
		return list, nil
	}
	var wrapped struct {
		Forecast []model.Prediction `json:"forecast"`
	}
	if err := decodeStrict(operation, raw, &wrapped, "forecast"); err != nil {
		return nil, err
	}
	return wrapped.Forecast, nil
}

func (s *Houses) one(ctx context.Context, req apiclient.Request) (model.Household, error) {
	var h model.Household
	if err := s.api.Do(ctx, req, &h); err != nil {
		return model.Household{}, err
	}
	if err := h.Validate(); err != nil {
		return model.Household{}, apiclient.Malformed(req.Operation, err)
	}
	return h, nil
}

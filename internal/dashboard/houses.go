// Package dashboard wires each dashboard view to its list controller and services.
// Views own their user-facing messages; services never swallow errors.
package dashboard

import (
	"context"

	"github.com/goodnatureofminers/energypulse/internal/apiclient"
	"github.com/goodnatureofminers/energypulse/internal/clock"
	"github.com/goodnatureofminers/energypulse/internal/listview"
	"github.com/goodnatureofminers/energypulse/internal/model"
	"go.uber.org/zap"
)

// Houses is the household registry view.
type Houses struct {
	svc      HouseService
	sessions SessionStore
	list     *listview.Controller[model.Household]
}

// NewHouses constructs the houses view.
func NewHouses(svc HouseService, sessions SessionStore, c clock.Clock, logger *zap.Logger) *Houses {
	v := &Houses{svc: svc, sessions: sessions}
	v.list = listview.New(listview.Config{
		Name:           "houses",
		FailureMessage: "Failed to load houses",
		Clock:          c,
	}, v.fetch, logger)
	return v
}

func (v *Houses) fetch(ctx context.Context, _ int) (listview.Page[model.Household], error) {
	houses, err := v.svc.List(ctx)
	if err != nil {
		return listview.Page[model.Household]{}, err
	}
	return listview.SinglePage(houses), nil
}

// Load fetches the households.
func (v *Houses) Load(ctx context.Context) error {
	return v.list.Load(ctx, 1)
}

// State returns the rendered state.
func (v *Houses) State() listview.State[model.Household] {
	return v.list.Snapshot()
}

// ShowOwners reports whether owner columns are shown, which is the case for administrators.
func (v *Houses) ShowOwners() bool {
	sess, ok := v.sessions.Current()
	return ok && sess.User.IsAdmin()
}

// Create registers a household and appends it to the list.
func (v *Houses) Create(ctx context.Context, in model.HouseholdInput) error {
	return v.list.Mutate(ctx, listview.Mutation[model.Household]{
		Write: func(ctx context.Context) (listview.Patch[model.Household], error) {
			if err := validateInput("houses.create", in); err != nil {
				return nil, err
			}
			h, err := v.svc.Create(ctx, in)
			if err != nil {
				return nil, err
			}
			return listview.Insert(h), nil
		},
		Success: "Property registered",
		Failure: "Error during saving",
	})
}

// Update changes a household and replaces it in the list.
func (v *Houses) Update(ctx context.Context, id string, in model.HouseholdInput) error {
	return v.list.Mutate(ctx, listview.Mutation[model.Household]{
		Write: func(ctx context.Context) (listview.Patch[model.Household], error) {
			if err := validateInput("houses.update", in); err != nil {
				return nil, err
			}
			h, err := v.svc.Update(ctx, id, in)
			if err != nil {
				return nil, err
			}
			return listview.Replace(houseID(id), h), nil
		},
		Success: "Property updated",
		Failure: "Error during saving",
	})
}

// Delete archives a household and removes it from the list.
func (v *Houses) Delete(ctx context.Context, id string) error {
	return v.list.Mutate(ctx, listview.Mutation[model.Household]{
		Write: func(ctx context.Context) (listview.Patch[model.Household], error) {
			if err := v.svc.Delete(ctx, id); err != nil {
				return nil, err
			}
			return listview.Remove(houseID(id)), nil
		},
		Success: "Property archived",
		Failure: "Failed to archive property. Please try again.",
	})
}

// Detail is a household together with its predictions.
type Detail struct {
	House       model.Household
	Predictions []model.Prediction
	Forecast    []model.Prediction
}

// Details loads one household with its latest predictions and 24h forecast concurrently.
func (v *Houses) Details(ctx context.Context, preds PredictionService, id string) (Detail, error) {
	var d Detail
	err := all(ctx,
		func(ctx context.Context) error {
			h, err := v.svc.Get(ctx, id)
			d.House = h
			return err
		},
		func(ctx context.Context) error {
			page, err := preds.List(ctx, model.PredictionQuery{HouseID: id})
			d.Predictions = page.Predictions
			return err
		},
		func(ctx context.Context) error {
			f, err := v.svc.Forecast(ctx, id)
			d.Forecast = f
			return err
		},
	)
	if err != nil {
		return Detail{}, err
	}
	return d, nil
}

// Close releases the view.
func (v *Houses) Close() {
	v.list.Close()
}

func houseID(id string) func(model.Household) bool {
	return func(h model.Household) bool { return h.ID == id }
}

func validateInput(operation string, in model.HouseholdInput) error {
	if err := in.Validate(); err != nil {
		return &apiclient.Error{Kind: apiclient.KindValidation, Operation: operation, Message: err.Error()}
	}
	return nil
}

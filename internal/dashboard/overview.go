package dashboard

import (
	"context"

	"github.com/goodnatureofminers/energypulse/internal/model"
)

// OverviewRecent is how many recent predictions the overview keeps.
const OverviewRecent = 12

// Overview is the landing dashboard.
type Overview struct {
	Houses     []model.Household
	Recent     []model.Prediction
	Statistics model.Statistics
	// Admin is set only for administrators.
	Admin *model.AdminDashboard
}

// LoadOverview fetches everything the landing dashboard shows in parallel. Admin data
// is requested only when admin is non-nil.
func LoadOverview(ctx context.Context, houses HouseService, preds PredictionService, admin AdminService) (Overview, error) {
	var o Overview
	loads := []func(context.Context) error{
		func(ctx context.Context) error {
			h, err := houses.List(ctx)
			o.Houses = h
			return err
		},
		func(ctx context.Context) error {
			page, err := preds.List(ctx, model.PredictionQuery{Page: 1, Limit: OverviewRecent})
			o.Recent = page.Predictions
			return err
		},
		func(ctx context.Context) error {
			s, err := preds.Statistics(ctx)
			o.Statistics = s
			return err
		},
	}
	if admin != nil {
		loads = append(loads, func(ctx context.Context) error {
			d, err := admin.Dashboard(ctx)
			if err == nil {
				o.Admin = &d
			}
			return err
		})
	}
	if err := all(ctx, loads...); err != nil {
		return Overview{}, err
	}
	return o, nil
}

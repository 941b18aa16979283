package dashboard

import (
	"context"
	"io"
	"sync"

	"github.com/goodnatureofminers/energypulse/internal/clock"
	"github.com/goodnatureofminers/energypulse/internal/export"
	"github.com/goodnatureofminers/energypulse/internal/listview"
	"github.com/goodnatureofminers/energypulse/internal/model"
	"go.uber.org/zap"
)

// DefaultPageSize is the predictions page size the view requests.
const DefaultPageSize = 20

// Predictions is the paginated prediction log view.
type Predictions struct {
	svc  PredictionService
	list *listview.Controller[model.Prediction]

	mu     sync.Mutex
	filter model.PredictionQuery
}

// NewPredictions constructs the predictions view.
func NewPredictions(svc PredictionService, c clock.Clock, logger *zap.Logger) *Predictions {
	v := &Predictions{svc: svc, filter: model.PredictionQuery{Limit: DefaultPageSize}}
	v.list = listview.New(listview.Config{
		Name:           "predictions",
		FailureMessage: "Failed to load predictions",
		Clock:          c,
	}, v.fetch, logger)
	return v
}

func (v *Predictions) fetch(ctx context.Context, page int) (listview.Page[model.Prediction], error) {
	v.mu.Lock()
	q := v.filter
	v.mu.Unlock()
	q.Page = page

	res, err := v.svc.List(ctx, q)
	if err != nil {
		return listview.Page[model.Prediction]{}, err
	}
	return listview.Page[model.Prediction]{
		Items: res.Predictions,
		Pagination: listview.Pagination{
			Page:       res.Page,
			TotalPages: res.TotalPages,
			TotalItems: res.Total,
			Limit:      res.Limit,
		},
	}, nil
}

// Load fetches page.
func (v *Predictions) Load(ctx context.Context, page int) error {
	return v.list.Load(ctx, page)
}

// SetFilter replaces the server-side filter and reloads from page 1.
func (v *Predictions) SetFilter(ctx context.Context, q model.PredictionQuery) error {
	return v.Apply(ctx, q, 1)
}

// Apply replaces the server-side filter and fetches page with a single request.
func (v *Predictions) Apply(ctx context.Context, q model.PredictionQuery, page int) error {
	q.Page = 0
	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}
	v.mu.Lock()
	v.filter = q
	v.mu.Unlock()
	return v.list.Load(ctx, page)
}

// Filter returns the active server-side filter.
func (v *Predictions) Filter() model.PredictionQuery {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// Next loads the following page; it reports false at the last page.
func (v *Predictions) Next(ctx context.Context) (bool, error) {
	return v.list.Next(ctx)
}

// Prev loads the preceding page; it reports false at page 1.
func (v *Predictions) Prev(ctx context.Context) (bool, error) {
	return v.list.Prev(ctx)
}

// GoTo loads page when it is within bounds.
func (v *Predictions) GoTo(ctx context.Context, page int) (bool, error) {
	return v.list.GoTo(ctx, page)
}

// State returns the rendered state.
func (v *Predictions) State() listview.State[model.Prediction] {
	return v.list.Snapshot()
}

// Visible applies the client-side search and price band to the loaded page only.
func (v *Predictions) Visible(search string, band listview.PriceBand) []model.Prediction {
	return listview.Filter(v.list.Snapshot().Items, listview.All(
		listview.Contains(search, func(p model.Prediction) string { return p.BlockchainTx }),
		func(p model.Prediction) bool { return band.Match(p.PredictedPrice) },
	))
}

// Export writes the loaded page as CSV.
func (v *Predictions) Export(w io.Writer) error {
	return export.WritePredictions(w, v.list.Snapshot().Items)
}

// Statistics returns aggregates over the caller's predictions.
func (v *Predictions) Statistics(ctx context.Context) (model.Statistics, error) {
	return v.svc.Statistics(ctx)
}

// Close releases the view.
func (v *Predictions) Close() {
	v.list.Close()
}

package main

import (
	"fmt"
	"time"

	"github.com/goodnatureofminers/energypulse/internal/apiclient"
	"github.com/goodnatureofminers/energypulse/internal/dashboard"
	"github.com/goodnatureofminers/energypulse/internal/export"
	"github.com/goodnatureofminers/energypulse/internal/listview"
	"github.com/goodnatureofminers/energypulse/internal/model"
)

const dateLayout = "2006-01-02"

func printPredictions(a *app, preds []model.Prediction) error {
	if len(preds) == 0 {
		fmt.Fprintln(a.out, "No predictions")
		return nil
	}
	w := newTable(a.out)
	fmt.Fprintln(w, "TIME\tMETER\tTEMP\tPREDICTED\tACTUAL\tCONFIDENCE\tTX")
	for _, p := range preds {
		tx := "pending"
		if p.BlockchainConfirmed {
			tx = orDash(p.BlockchainTx)
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f°C\t%s\t%s\t%s\t%s\n",
			stamp(p.Timestamp), p.MeterID, p.Temperature, price(p.PredictedPrice),
			optPrice(p.ActualPrice), percent(p.Confidence), tx)
	}
	return w.Flush()
}

type predictionsCmd struct {
	app    *app
	House  string `long:"house" description:"household id"`
	Meter  string `long:"meter" description:"meter id"`
	From   string `long:"from" description:"first day, YYYY-MM-DD"`
	To     string `long:"to" description:"last day, YYYY-MM-DD"`
	Page   int    `long:"page" default:"1"`
	Limit  int    `long:"limit" default:"20"`
	Search string `long:"search" description:"transaction hash substring, applied to the loaded page"`
	Band   string `long:"band" choice:"all" choice:"high" choice:"low" default:"all"`
	Export string `long:"export" description:"write the loaded page as CSV into this directory"`
}

func (c *predictionsCmd) query() (model.PredictionQuery, error) {
	q := model.PredictionQuery{HouseID: c.House, MeterID: c.Meter, Limit: c.Limit}
	var err error
	if c.From != "" {
		if q.StartDate, err = time.Parse(dateLayout, c.From); err != nil {
			return q, fmt.Errorf("--from: %w", err)
		}
	}
	if c.To != "" {
		if q.EndDate, err = time.Parse(dateLayout, c.To); err != nil {
			return q, fmt.Errorf("--to: %w", err)
		}
	}
	if !q.StartDate.IsZero() && !q.EndDate.IsZero() && q.EndDate.Before(q.StartDate) {
		return q, fmt.Errorf("--to is before --from")
	}
	return q, nil
}

func (c *predictionsCmd) Execute([]string) error {
	if err := c.app.requireSession(); err != nil {
		return err
	}
	q, err := c.query()
	if err != nil {
		return err
	}
	v := dashboard.NewPredictions(c.app.services.Predictions, c.app.clock, c.app.logger)
	defer v.Close()

	if c.Page < 1 {
		c.Page = 1
	}
	if err := v.Apply(c.app.ctx, q, c.Page); err != nil {
		return explain(err, v.State().Error)
	}
	if p := v.State().Pagination; p.TotalPages > 0 && int64(c.Page) > p.TotalPages {
		return fmt.Errorf("page %d is out of range (1-%d)", c.Page, p.TotalPages)
	}

	st := v.State()
	if err := printPredictions(c.app, v.Visible(c.Search, listview.PriceBand(c.Band))); err != nil {
		return err
	}
	fmt.Fprintf(c.app.out, "Page %d of %d, %d predictions\n",
		st.Pagination.Page, st.Pagination.TotalPages, st.Pagination.TotalItems)

	if c.Export != "" {
		path, err := export.SaveFile(c.Export, c.app.clock.Now(), st.Items)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Fprintf(c.app.out, "Exported %d rows to %s\n", len(st.Items), path)
	}
	return nil
}

type statsCmd struct {
	app *app
}

func (c *statsCmd) Execute([]string) error {
	if err := c.app.requireSession(); err != nil {
		return err
	}
	s, err := c.app.services.Predictions.Statistics(c.app.ctx)
	if err != nil {
		return explain(err, "Failed to load statistics")
	}
	printStatistics(c.app, s)
	return nil
}

func printStatistics(a *app, s model.Statistics) {
	w := newTable(a.out)
	fmt.Fprintf(w, "Predictions\t%d\n", s.TotalPredictions)
	fmt.Fprintf(w, "Households\t%d\n", s.TotalHouseholds)
	fmt.Fprintf(w, "Average price\t%s\n", price(s.AveragePrice))
	fmt.Fprintf(w, "Average consumption\t%.2f kWh\n", s.AverageConsumption)
	fmt.Fprintf(w, "On ledger\t%d\n", s.BlockchainConfirmed)
	fmt.Fprintf(w, "Last prediction\t%s\n", orDash(s.LastPredictionAt))
	_ = w.Flush()
}

type overviewCmd struct {
	app *app
}

func (c *overviewCmd) Execute([]string) error {
	if err := c.app.requireSession(); err != nil {
		return err
	}
	var admin dashboard.AdminService
	if c.app.isAdmin() {
		admin = c.app.services.Admin
	}
	o, err := dashboard.LoadOverview(c.app.ctx, c.app.services.Houses, c.app.services.Predictions, admin)
	if err != nil {
		if apiclient.IsKind(err, apiclient.KindForbidden) {
			return explain(err, "Administrator access required")
		}
		return explain(err, "Failed to load dashboard")
	}

	fmt.Fprintf(c.app.out, "%d properties\n\n", len(o.Houses))
	printStatistics(c.app, o.Statistics)
	if o.Admin != nil {
		fmt.Fprintln(c.app.out)
		printAdminDashboard(c.app, *o.Admin)
	}
	fmt.Fprintln(c.app.out, "\nRecent predictions")
	return printPredictions(c.app, o.Recent)
}

type predictionCmd struct {
	app  *app
	Args struct {
		ID uint `positional-arg-name:"id" required:"true"`
	} `positional-args:"true"`
}

func (c *predictionCmd) Execute([]string) error {
	if err := c.app.requireSession(); err != nil {
		return err
	}
	p, err := c.app.services.Predictions.Get(c.app.ctx, c.Args.ID)
	if err != nil {
		return explain(err, "Prediction not found")
	}
	w := newTable(c.app.out)
	fmt.Fprintf(w, "ID\t%d\n", p.ID)
	fmt.Fprintf(w, "Household\t%s\n", orDash(p.HouseID))
	fmt.Fprintf(w, "Meter\t%s\n", p.MeterID)
	fmt.Fprintf(w, "Time\t%s\n", stamp(p.Timestamp))
	fmt.Fprintf(w, "Temperature\t%.1f°C\n", p.Temperature)
	fmt.Fprintf(w, "Consumption\t%.2f kWh\n", p.ConsumptionKwh)
	fmt.Fprintf(w, "Predicted\t%s\n", price(p.PredictedPrice))
	fmt.Fprintf(w, "Actual\t%s\n", optPrice(p.ActualPrice))
	fmt.Fprintf(w, "Confidence\t%s\n", percent(p.Confidence))
	if p.BlockchainConfirmed {
		fmt.Fprintf(w, "Ledger\t%s\n", p.BlockchainTx)
	} else {
		fmt.Fprintln(w, "Ledger\tpending")
	}
	return w.Flush()
}

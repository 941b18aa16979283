package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/goodnatureofminers/energypulse/internal/apiclient"
	"github.com/goodnatureofminers/energypulse/internal/listview"
	"github.com/shopspring/decimal"
)

const timeLayout = "2006-01-02 15:04"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func price(v float64) string {
	return "€" + decimal.NewFromFloat(v).StringFixed(4)
}

func optPrice(v *float64) string {
	if v == nil {
		return "-"
	}
	return price(*v)
}

func percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1) + "%"
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// settle reports the outcome of a list mutation the way the view renders it.
func settle[T any](a *app, st listview.State[T], err error) error {
	if err != nil {
		if st.Error == "" || apiclient.IsUnauthenticated(err) {
			return explain(err, "Request failed")
		}
		return errors.New(st.Error)
	}
	if st.Message != "" {
		fmt.Fprintln(a.out, st.Message)
	}
	return nil
}

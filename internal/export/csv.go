// Package export serializes an already loaded prediction page to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/goodnatureofminers/energypulse/internal/model"
	"github.com/shopspring/decimal"
)

const (
	pricePlaces       = 4
	temperaturePlaces = 2
	confidencePlaces  = 2
)

// Header is the fixed column order of an export.
var Header = []string{
	"ID",
	"Meter ID",
	"Timestamp",
	"Temperature",
	"Predicted Price",
	"Actual Price",
	"Confidence",
	"Blockchain TX",
	"Status",
}

// Filename returns the export file name for the given day.
func Filename(now time.Time) string {
	return fmt.Sprintf("EnergyPulse_Export_%s.csv", now.Format("2006-01-02"))
}

// WritePredictions writes a header row followed by one row per prediction.
func WritePredictions(w io.Writer, predictions []model.Prediction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range predictions {
		if err := cw.Write(row(p)); err != nil {
			return fmt.Errorf("write prediction %d: %w", p.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveFile writes predictions to dir under Filename(now) and returns the path.
func SaveFile(dir string, now time.Time, predictions []model.Prediction) (string, error) {
	path := filepath.Join(dir, Filename(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export: %w", err)
	}
	if err := WritePredictions(f, predictions); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export: %w", err)
	}
	return path, nil
}

func row(p model.Prediction) []string {
	actual := ""
	if p.ActualPrice != nil {
		actual = fixed(*p.ActualPrice, pricePlaces)
	}
	status := "Pending"
	if p.BlockchainConfirmed {
		status = "Confirmed"
	}
	return []string{
		strconv.FormatUint(uint64(p.ID), 10),
		p.MeterID,
		p.Timestamp.UTC().Format(time.RFC3339),
		fixed(p.Temperature, temperaturePlaces),
		fixed(p.PredictedPrice, pricePlaces),
		actual,
		fixed(p.Confidence, confidencePlaces),
		p.BlockchainTx,
		status,
	}
}

func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

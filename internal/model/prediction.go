package model

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Prediction is a backend-generated price/consumption forecast for one meter and hour.
type Prediction struct {
	ID                  uint      `json:"id"`
	UserID              uint      `json:"userId"`
	HouseID             string    `json:"houseId"`
	MeterID             string    `json:"meterId"`
	Timestamp           time.Time `json:"timestamp"`
	Hour                int       `json:"hour"`
	Temperature         float64   `json:"temperature"`
	ConsumptionKwh      float64   `json:"consumptionKwh"`
	PredictedPrice      float64   `json:"predictedPrice"`
	ActualPrice         *float64  `json:"actualPrice,omitempty"`
	Accuracy            float64   `json:"accuracy"`
	Confidence          float64   `json:"confidence"`
	BlockchainTx        string    `json:"blockchainTx,omitempty"`
	BlockchainConfirmed bool      `json:"blockchainConfirmed"`
}

// PredictionQuery filters the predictions list. Zero values are omitted from the request.
type PredictionQuery struct {
	HouseID   string
	MeterID   string
	StartDate time.Time
	EndDate   time.Time
	Page      int
	Limit     int
}

const dateLayout = "2006-01-02"

// Values encodes the query as URL parameters.
func (q PredictionQuery) Values() url.Values {
	v := url.Values{}
	if q.HouseID != "" {
		v.Set("houseId", q.HouseID)
	}
	if q.MeterID != "" {
		v.Set("meterId", q.MeterID)
	}
	if !q.StartDate.IsZero() {
		v.Set("startDate", q.StartDate.Format(dateLayout))
	}
	if !q.EndDate.IsZero() {
		v.Set("endDate", q.EndDate.Format(dateLayout))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// PredictionPage is the paginated predictions envelope.
type PredictionPage struct {
	Predictions []Prediction `json:"predictions"`
	Total       int64        `json:"total"`
	Page        int          `json:"page"`
	Limit       int          `json:"limit"`
	TotalPages  int64        `json:"totalPages"`
}

// Validate checks that the envelope is internally consistent.
func (p PredictionPage) Validate() error {
	if p.Page < 1 || p.Limit < 1 {
		return fmt.Errorf("invalid page %d or limit %d", p.Page, p.Limit)
	}
	if p.Total < 0 || p.TotalPages < 0 {
		return fmt.Errorf("negative totals")
	}
	if len(p.Predictions) > p.Limit {
		return fmt.Errorf("page holds %d predictions, limit is %d", len(p.Predictions), p.Limit)
	}
	return nil
}

// Statistics aggregates the caller's predictions.
type Statistics struct {
	TotalPredictions    int64   `json:"totalPredictions"`
	TotalHouseholds     int64   `json:"totalHouseholds"`
	AveragePrice        float64 `json:"averagePrice"`
	AverageConsumption  float64 `json:"averageConsumption"`
	BlockchainConfirmed int64   `json:"blockchainConfirmed"`
	LastPredictionAt    string  `json:"lastPredictionAt,omitempty"`
}

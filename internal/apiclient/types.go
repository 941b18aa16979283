package apiclient

import (
	"net/http"
	"time"

	"github.com/goodnatureofminers/energypulse/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// HTTPDoer performs a single HTTP round trip.
	HTTPDoer interface {
		Do(req *http.Request) (*http.Response, error)
	}
	// SessionSource yields the session whose credential is attached to requests.
	SessionSource interface {
		Current() (model.Session, bool)
	}
	// Metrics records metrics for API calls.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

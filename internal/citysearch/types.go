package citysearch

import (
	"context"
	"net/http"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// HTTPDoer performs a single HTTP round trip.
	HTTPDoer interface {
		Do(req *http.Request) (*http.Response, error)
	}
	// Searcher looks up places matching a free-text query.
	Searcher interface {
		Search(ctx context.Context, query string) ([]Place, error)
	}
	// Metrics records lookups.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

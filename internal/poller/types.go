package poller

import "time"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics records poll outcomes.
	Metrics interface {
		ObservePoll(err error, started time.Time)
	}
)

package dashboard

import (
	"context"

	"github.com/goodnatureofminers/energypulse/pkg/workerpool"
)

// all runs every load concurrently and fails as soon as one of them fails.
func all(ctx context.Context, loads ...func(context.Context) error) error {
	return workerpool.Process(ctx, len(loads), loads, func(ctx context.Context, load func(context.Context) error) error {
		return load(ctx)
	})
}

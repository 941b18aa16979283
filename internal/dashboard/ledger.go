package dashboard

import (
	"context"
	"strings"

	"github.com/goodnatureofminers/energypulse/internal/apiclient"
	"github.com/goodnatureofminers/energypulse/internal/clock"
	"github.com/goodnatureofminers/energypulse/internal/listview"
	"github.com/goodnatureofminers/energypulse/internal/model"
	"github.com/goodnatureofminers/energypulse/pkg/workerpool"
	"go.uber.org/zap"
)

const (
	// DefaultVerifyWorkers bounds concurrent verification requests.
	DefaultVerifyWorkers = 4

	notFoundReason = "Transaction not found"
)

// Ledger is the blockchain ledger view.
type Ledger struct {
	svc     LedgerService
	list    *listview.Controller[model.BlockchainLog]
	workers int
	logger  *zap.Logger
}

// NewLedger constructs the ledger view. workers below 1 selects DefaultVerifyWorkers.
func NewLedger(svc LedgerService, workers int, c clock.Clock, logger *zap.Logger) *Ledger {
	if workers < 1 {
		workers = DefaultVerifyWorkers
	}
	v := &Ledger{svc: svc, workers: workers, logger: logger.Named("ledger")}
	v.list = listview.New(listview.Config{
		Name:           "ledger",
		FailureMessage: "Failed to load blockchain data",
		Clock:          c,
	}, v.fetch, logger)
	return v
}

func (v *Ledger) fetch(ctx context.Context, _ int) (listview.Page[model.BlockchainLog], error) {
	res, err := v.svc.Logs(ctx)
	if err != nil {
		return listview.Page[model.BlockchainLog]{}, err
	}
	page := listview.SinglePage(res.Logs)
	if int64(res.Total) > page.Pagination.TotalItems {
		page.Pagination.TotalItems = int64(res.Total)
	}
	return page, nil
}

// Load fetches the caller's ledger entries.
func (v *Ledger) Load(ctx context.Context) error {
	return v.list.Load(ctx, 1)
}

// State returns the rendered state.
func (v *Ledger) State() listview.State[model.BlockchainLog] {
	return v.list.Snapshot()
}

// Search filters the loaded entries by transaction hash substring.
func (v *Ledger) Search(term string) []model.BlockchainLog {
	return listview.Filter(v.list.Snapshot().Items,
		listview.Contains(term, func(l model.BlockchainLog) string { return l.TransactionHash }))
}

// Stats returns network statistics.
func (v *Ledger) Stats(ctx context.Context) (model.BlockchainStats, error) {
	return v.svc.Stats(ctx)
}

// Verify checks one hash. Blank input yields no result and no request.
func (v *Ledger) Verify(ctx context.Context, hash string) (model.VerificationResult, bool, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return model.VerificationResult{}, false, nil
	}
	res, err := v.svc.Verify(ctx, hash)
	if err != nil {
		return model.VerificationResult{}, true, err
	}
	return res, true, nil
}

// Verification pairs a hash with its outcome.
type Verification struct {
	Hash   string
	Result model.VerificationResult
}

// VerifyAll checks many hashes concurrently. Per-hash failures become unverified
// results so one bad hash never hides the others; only cancellation aborts.
func (v *Ledger) VerifyAll(ctx context.Context, hashes []string) ([]Verification, error) {
	return workerpool.Map(ctx, v.workers, hashes, func(ctx context.Context, hash string) (Verification, error) {
		res, err := v.svc.Verify(ctx, hash)
		if err != nil {
			if ctx.Err() != nil {
				return Verification{}, ctx.Err()
			}
			v.logger.Warn("verification failed", zap.String("hash", hash), zap.Error(err))
			res = model.VerificationResult{Verified: false, Error: apiclient.Message(err, notFoundReason)}
		}
		return Verification{Hash: hash, Result: res}, nil
	})
}

// Block returns the entries committed at number.
func (v *Ledger) Block(ctx context.Context, number uint64) (model.Block, error) {
	return v.svc.Block(ctx, number)
}

// Close releases the view.
func (v *Ledger) Close() {
	v.list.Close()
}

package main

import (
	"fmt"
	"strconv"

	"github.com/goodnatureofminers/energypulse/internal/dashboard"
	"github.com/goodnatureofminers/energypulse/internal/model"
	"github.com/goodnatureofminers/energypulse/pkg/safe"
)

func (a *app) ledgerView(workers int) *dashboard.Ledger {
	return dashboard.NewLedger(a.services.Blockchain, workers, a.clock, a.logger)
}

type ledgerLogsCmd struct {
	app    *app
	Search string `long:"search" description:"transaction hash substring"`
}

func (c *ledgerLogsCmd) Execute([]string) error {
	if err := c.app.requireSession(); err != nil {
		return err
	}
	v := c.app.ledgerView(0)
	defer v.Close()

	if err := v.Load(c.app.ctx); err != nil {
		return explain(err, v.State().Error)
	}
	logs := v.Search(c.Search)
	if len(logs) == 0 {
		fmt.Fprintln(c.app.out, "No blockchain entries")
		return nil
	}
	w := newTable(c.app.out)
	fmt.Fprintln(w, "BLOCK\tTX\tSTATUS\tGAS\tMETER\tPREDICTED\tLOGGED")
	for _, l := range logs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			l.BlockNumber, l.TransactionHash, l.Status, l.GasUsed, orDash(l.MeterID),
			price(l.PredictedPrice), stamp(l.LoggedAt))
	}
	return w.Flush()
}

type ledgerStatsCmd struct {
	app *app
}

func (c *ledgerStatsCmd) Execute([]string) error {
	if err := c.app.requireSession(); err != nil {
		return err
	}
	v := c.app.ledgerView(0)
	defer v.Close()

	s, err := v.Stats(c.app.ctx)
	if err != nil {
		return explain(err, "Failed to load blockchain data")
	}
	w := newTable(c.app.out)
	fmt.Fprintf(w, "Network\t%s\n", orDash(s.Network))
	fmt.Fprintf(w, "Contract\t%s\n", orDash(s.ContractAddress))
	fmt.Fprintf(w, "Current block\t%d\n", s.CurrentBlock)
	fmt.Fprintf(w, "Transactions\t%d\n", s.TotalTransactions)
	fmt.Fprintf(w, "Yours\t%d (%d confirmed, %d pending)\n", s.UserTransactions, s.UserConfirmed, s.UserPending)
	fmt.Fprintf(w, "Gas used\t%d\n", s.UserTotalGas)
	return w.Flush()
}

type ledgerVerifyCmd struct {
	app     *app
	Workers int `long:"workers" default:"4" description:"concurrent verification requests"`
	Args    struct {
		Hashes []string `positional-arg-name:"hash" required:"1"`
	} `positional-args:"true"`
}

func (c *ledgerVerifyCmd) Execute([]string) error {
	if err := c.app.requireSession(); err != nil {
		return err
	}
	v := c.app.ledgerView(c.Workers)
	defer v.Close()

	results, err := v.VerifyAll(c.app.ctx, c.Args.Hashes)
	if err != nil {
		return err
	}
	w := newTable(c.app.out)
	fmt.Fprintln(w, "HASH\tRESULT\tBLOCK\tMETER\tPREDICTED")
	for _, r := range results {
		if !r.Result.Verified {
			fmt.Fprintf(w, "%s\tnot verified: %s\t-\t-\t-\n", r.Hash, r.Result.Error)
			continue
		}
		p := r.Result.Prediction
		fmt.Fprintf(w, "%s\tverified (%s)\t%d\t%s\t%s\n",
			r.Result.TransactionHash, r.Result.Status, r.Result.BlockNumber, p.MeterID, price(p.PredictedPrice))
	}
	return w.Flush()
}

type ledgerBlockCmd struct {
	app  *app
	Args struct {
		Number string `positional-arg-name:"number" required:"true"`
	} `positional-args:"true"`
}

func (c *ledgerBlockCmd) Execute([]string) error {
	if err := c.app.requireSession(); err != nil {
		return err
	}
	n, err := strconv.ParseInt(c.Args.Number, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid block number %q", c.Args.Number)
	}
	number, err := safe.Uint64(n)
	if err != nil {
		return fmt.Errorf("invalid block number: %w", err)
	}

	v := c.app.ledgerView(0)
	defer v.Close()

	b, err := v.Block(c.app.ctx, number)
	if err != nil {
		return explain(err, "Block not found")
	}
	fmt.Fprintf(c.app.out, "Block %d at %s, %d transactions\n", b.BlockNumber, stamp(b.Timestamp), len(b.Transactions))
	printBlockTransactions(c.app, b.Transactions)
	return nil
}

func printBlockTransactions(a *app, txs []model.BlockTransaction) {
	if len(txs) == 0 {
		return
	}
	w := newTable(a.out)
	fmt.Fprintln(w, "HASH\tPREDICTION\tSTATUS\tGAS\tMETER\tPREDICTED")
	for _, tx := range txs {
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%s\t%s\n",
			tx.Hash, tx.PredictionID, tx.Status, tx.GasUsed, orDash(tx.MeterID), price(tx.PredictedPrice))
	}
	_ = w.Flush()
}

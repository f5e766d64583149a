// Package pipeline cleans batches of transactions in parallel.
package pipeline

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/txclean/internal/cleaner"
	"github.com/cleared-dev/txclean/internal/model"
)

// Processor turns intake rows into cleaned rows.
type Processor struct {
	workers int
	logger  *log.Logger
}

// New returns a Processor that runs at most workers goroutines. workers < 1
// means one; a nil logger means log.Default().
func New(workers int, logger *log.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Processor{workers: workers, logger: logger}
}

// Process cleans txns against a snapshot of mappings. Output order matches
// input order. It stops early only if ctx is cancelled.
func (p *Processor) Process(ctx context.Context, txns []model.Transaction, mappings []model.Mapping) ([]model.Row, error) {
	snapshot := slices.Clone(mappings)
	rows := make([]model.Row, len(txns))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := range txns {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[i] = Clean(txns[i], snapshot)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	unparsed := 0
	for _, r := range rows {
		if !r.Amount.Valid {
			unparsed++
		}
	}
	p.logger.Debug("cleaned batch", "rows", len(rows), "workers", p.workers, "unparsed_amounts", unparsed)
	return rows, nil
}

// Clean processes a single transaction.
func Clean(txn model.Transaction, mappings []model.Mapping) model.Row {
	return model.Row{
		Transaction: txn,
		Amount:      cleaner.ParseAmount(txn.AmountRaw),
		AutoClean:   cleaner.CleanMemo(txn.Memo, mappings),
	}
}

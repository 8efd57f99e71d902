package websearch

import (
	"context"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// QuickQueries are ready-made lookups covering the consumer-rights
// questions that come up most in dispute tracking.
var QuickQueries = []string{
	"consumer rights refund faulty goods",
	"statutory warranty period electronics",
	"chargeback claim time limit",
	"online purchase return policy law",
	"small claims court retailer dispute",
}

// ComposeQuery assembles a search query from a category, a dispute
// type and optional extra terms.
func ComposeQuery(category, disputeType, extra string) string {
	query := strings.TrimSpace(category + " " + disputeType)
	if extra = strings.TrimSpace(extra); extra != "" {
		query += " " + extra
	}
	return query
}

// SweepResult pairs a sweep query with its outcome.
type SweepResult struct {
	Query   string
	Results []Result
	Err     error
}

// Sweep runs the queries concurrently through a worker pool and
// returns one SweepResult per query, in input order. Per-query
// failures are reported in the corresponding SweepResult rather than
// aborting the sweep.
func (s *Searcher) Sweep(ctx context.Context, queries []string, poolSize int) ([]SweepResult, error) {
	if len(queries) == 0 {
		return nil, nil
	}
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	out := make([]SweepResult, len(queries))
	var wg sync.WaitGroup
	for i, query := range queries {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			results, err := s.Search(ctx, query)
			out[i] = SweepResult{Query: query, Results: results, Err: err}
		})
		if err != nil {
			wg.Done()
			out[i] = SweepResult{Query: query, Err: err}
		}
	}
	wg.Wait()

	return out, nil
}

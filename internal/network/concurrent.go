package network

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// BuildAll builds one snapshot per query concurrently over the shared dataset.
// Results line up with queries. The first failure cancels queries not yet started.
func BuildAll(ctx context.Context, ds *Dataset, queries []Query, cfg *Config) ([]*Snapshot, error) {
	results := make([]*Snapshot, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			snap, err := Build(ds, q, cfg)
			if err != nil {
				return fmt.Errorf("query %d (%s): %w", i, q.Metric, err)
			}
			results[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

package creature

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Preload loads every listed creature concurrently. It succeeds only if all
// of them load; the first failure cancels the rest.
func Preload(ctx context.Context, src Source, ids []int) ([]*Creature, error) {
	out := make([]*Creature, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			cr, err := src.Load(ctx, id)
			if err != nil {
				return err
			}
			out[i] = cr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

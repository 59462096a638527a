// Parallel query coordinator (C7).
package lineindex

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jpl-au/lineindex/internal/locate"
)

// Search returns every stored line containing query as a substring,
// across all sub-indexes. query must be non-empty. Results from
// different sub-indexes are concatenated in sub-index order; within a
// sub-index, spec.md §4.4's dedup applies but no dedup is performed
// across sub-indexes (an identical line stored in two different
// sub-indexes is reported twice — see SPEC_FULL.md's Open Question
// resolution on cross-sub-index dedup).
//
// Each sub-index is searched by its own goroutine, bounded by
// Config.Workers; a sub-index's result slice belongs to that
// goroutine alone until the errgroup joins, so no shared-sink mutex
// is needed.
func (r *Reader) Search(ctx context.Context, query []byte) ([][]byte, error) {
	if len(query) == 0 {
		return nil, ErrEmptyQuery
	}

	results := make([][][]byte, len(r.subs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)

	for i := range r.subs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sub := r.subs[i]
			lo, hi, err := locate.Bounds(sub.text, sub.sa, query)
			if err != nil {
				return err
			}
			lines, err := locate.Lines(sub.text, sub.sa, lo, hi)
			if err != nil {
				return err
			}
			results[i] = lines
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out [][]byte
	for _, lines := range results {
		out = append(out, lines...)
	}
	return out, nil
}

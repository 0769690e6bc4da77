// Package batch evaluates many snapshots in parallel.
package batch

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/dfocalc/internal/engine"
	"github.com/udisondev/dfocalc/internal/model"
)

// Loader resolves a source (a file path, a character key) to a snapshot.
type Loader func(ctx context.Context, source string) (*model.EquipmentSnapshot, error)

// Outcome is the result of one source. Err is set when loading failed;
// evaluation itself never fails.
type Outcome struct {
	Source string
	Report engine.Report
	Err    error
}

// Run loads and evaluates every source with at most workers goroutines.
// Outcomes keep the order of sources. A failing source does not stop the
// batch; a cancelled ctx does, and Run returns ctx's error with the
// outcomes finished so far.
func Run(ctx context.Context, sources []string, load Loader, workers int, opts engine.Options) ([]Outcome, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]Outcome, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, src := range sources {
		out[i].Source = src
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snap, err := load(gctx, src)
			if err != nil {
				out[i].Err = fmt.Errorf("loading %s: %w", src, err)
				return nil
			}
			out[i].Report = engine.Evaluate(snap, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, fmt.Errorf("batch interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return out, fmt.Errorf("batch interrupted: %w", err)
	}

	failed := 0
	for _, o := range out {
		if o.Err != nil {
			failed++
		}
	}
	slog.Info("batch evaluated", "total", len(out), "failed", failed, "workers", workers)
	return out, nil
}

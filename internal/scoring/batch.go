package scoring

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// rescoreConcurrency bounds how many résumés are scored at once during a
// batch rescore.
const rescoreConcurrency = 4

// RescoreJob recomputes the score of every stored résumé against the given
// job. Résumés are scored concurrently; each score is an independent
// upsert keyed by résumé id, so concurrent writes never touch the same
// record. Returns the number of résumés scored.
func (e *Engine) RescoreJob(ctx context.Context, jobID uuid.UUID) (int, error) {
	ids, err := e.resumes.ListResumeIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list resumes: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(rescoreConcurrency)

	for _, id := range ids {
		g.Go(func() error {
			if _, err := e.CalculateScore(gCtx, id, jobID); err != nil {
				return fmt.Errorf("rescore resume %s: %w", id, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(ids), nil
}

package river

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"
)

// EntryEventWorker processes entry event jobs from the River queue by
// writing them to the structured log.
type EntryEventWorker struct {
	river.WorkerDefaults[EntryEventJobArgs]
	Logger *slog.Logger
}

// Work processes a single event job.
func (w *EntryEventWorker) Work(ctx context.Context, job *river.Job[EntryEventJobArgs]) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "processing entry event",
		slog.String("event", job.Args.Event),
		slog.String("entry_id", job.Args.EntryID),
		slog.Int("length", job.Args.Length),
		slog.Bool("palindrome", job.Args.Palindrome),
		slog.Int64("job_id", job.ID),
		slog.Int("attempt", job.Attempt),
	)
	return nil
}

// Package pipeline chains extraction, normalization, and the workbook
// append into one run per article. A stage failure stops the run and is
// reported; it never propagates as an error to the caller.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/meshintel/cre-ledger/internal/extract"
	"github.com/meshintel/cre-ledger/internal/ledger"
	"github.com/meshintel/cre-ledger/internal/normalize"
	"github.com/meshintel/cre-ledger/internal/runlog"
	"github.com/meshintel/cre-ledger/pkg/types"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Runner holds the wiring for pipeline runs. Runs and Out are optional:
// a nil run log disables auditing, a nil Out discards progress lines.
type Runner struct {
	Backend     extract.Backend
	BackendName types.AIBackendName
	Model       string
	Strict      bool
	Runs        *runlog.Store
	Out         io.Writer
}

// Run processes one article and appends the result to the workbook at
// bookPath. The returned bool says whether a row was written.
func (r *Runner) Run(ctx context.Context, article, bookPath string) bool {
	out := r.Out
	if out == nil {
		out = io.Discard
	}

	start := time.Now()
	sum := sha256.Sum256([]byte(article))
	entry := runlog.Entry{
		StartedAt:     start,
		ArticleSHA256: hex.EncodeToString(sum[:]),
		ArticleBytes:  len(article),
		Backend:       string(r.BackendName),
		Model:         r.Model,
		BookPath:      bookPath,
	}

	raw, err := r.Backend.Extract(ctx, article)
	if err != nil {
		logger.Error().Err(err).Str("stage", "extraction").Msg("run failed")
		fmt.Fprintf(out, "extraction failed: %v\n", err)
		entry.Status = runlog.StatusExtractionFailed
		entry.Error = err.Error()
		r.record(ctx, entry, start)
		return false
	}

	rec, err := normalize.Apply(raw, r.Strict)
	if err != nil {
		logger.Error().Err(err).Str("stage", "formatting").Str("asset", raw.Asset).Msg("run failed")
		fmt.Fprintf(out, "formatting failed: %v\n", err)
		entry.Status = runlog.StatusFormatFailed
		entry.Error = err.Error()
		entry.Asset = raw.Asset
		r.record(ctx, entry, start)
		return false
	}

	n, err := ledger.Append(bookPath, rec)
	if err != nil {
		logger.Error().Err(err).Str("stage", "persistence").Str("asset", rec.Asset).Msg("run failed")
		fmt.Fprintf(out, "saving failed: %v\n", err)
		entry.Status = runlog.StatusPersistFailed
		entry.Error = err.Error()
		entry.Asset = rec.Asset
		r.record(ctx, entry, start)
		return false
	}

	logger.Info().Str("asset", rec.Asset).Int("rows", n).Str("book", bookPath).
		Msg("transaction recorded")
	fmt.Fprintf(out, "recorded %s (%d transactions)\n", bookPath, n)
	entry.Status = runlog.StatusOK
	entry.Asset = rec.Asset
	r.record(ctx, entry, start)
	return true
}

// record writes the audit entry if a run log is wired in. Audit failures
// never fail the run.
func (r *Runner) record(ctx context.Context, e runlog.Entry, start time.Time) {
	if r.Runs == nil {
		return
	}
	e.Duration = time.Since(start)
	if err := r.Runs.Record(ctx, e); err != nil {
		logger.Warn().Err(err).Msg("recording run failed")
	}
}

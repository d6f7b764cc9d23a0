package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexroute/internal/core"
	"github.com/vovakirdan/hexroute/internal/leaderboard"
	"github.com/vovakirdan/hexroute/internal/storage"
)

// Recorder stores finished runs locally and reports them to the remote
// leaderboard when one is configured. Either side may be nil.
type Recorder struct {
	store   *storage.Store
	client  *leaderboard.Client
	logger  *log.Logger
	timeout time.Duration
}

// NewRecorder creates a recorder.
func NewRecorder(store *storage.Store, client *leaderboard.Client, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{store: store, client: client, logger: logger, timeout: 15 * time.Second}
}

// Outcome describes what happened to a recorded run.
type Outcome struct {
	Saved     bool  // Stored in the local database
	Submitted bool  // Accepted by the remote leaderboard
	Err       error // First failure, if any
}

// Summary is a one-line status for the footer.
func (o Outcome) Summary() string {
	switch {
	case o.Err != nil:
		return "UPLINK FAILED: " + o.Err.Error()
	case o.Submitted:
		return "BREACH LOGGED TO GLOBAL LEADERBOARD"
	case o.Saved:
		return "BREACH LOGGED LOCALLY"
	default:
		return ""
	}
}

// Record persists res under the operator's name. Only whole seconds go to
// the leaderboard, matching the "Xm Ys" display.
func (r *Recorder) Record(ctx context.Context, operator string, res core.Result) Outcome {
	var out Outcome
	if r == nil {
		return out
	}

	secs := int(math.Floor(res.ElapsedSeconds))
	display := core.FormatDuration(res.ElapsedSeconds)

	duplicate := false
	if r.store != nil {
		_, err := r.store.SaveRun(storage.PuzzleRun{
			RunID:          res.RunID,
			LevelID:        res.LevelID,
			OperatorName:   operator,
			Moves:          res.Moves,
			ElapsedSeconds: res.ElapsedSeconds,
		})
		switch {
		case errors.Is(err, storage.ErrDuplicateRun):
			// Already stored; a previous remote submission may still have failed.
			r.logger.Debug("Run already recorded", "run", res.RunID)
			duplicate = true
			out.Saved = true
		case err != nil:
			r.logger.Error("Failed to save run", "run", res.RunID, "error", err)
			out.Err = fmt.Errorf("save run: %w", err)
		default:
			out.Saved = true
		}

		if r.client == nil && !duplicate {
			if _, err := r.store.SubmitEntry(operator, display, secs); err != nil {
				r.logger.Error("Failed to save leaderboard entry", "error", err)
				if out.Err == nil {
					out.Err = fmt.Errorf("save entry: %w", err)
				}
			}
		}
	}

	if r.client != nil {
		ctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()
		_, err := r.client.Submit(ctx, leaderboard.Submission{
			OperatorName:    operator,
			TimeCompleted:   display,
			DurationSeconds: secs,
		})
		if err != nil {
			r.logger.Warn("Leaderboard submission failed", "operator", operator, "error", err)
			if out.Err == nil {
				out.Err = err
			}
		} else {
			out.Submitted = true
		}
	}

	r.logger.Info("Run recorded",
		"operator", operator,
		"level", res.LevelID,
		"moves", res.Moves,
		"time", display,
	)
	return out
}

package review

import (
	"context"
	stdErrors "errors"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/aimalabs/meeting-review/errors"
	"github.com/aimalabs/meeting-review/internal/domain/entities"
)

// Analyzer produces a fresh summary for a recording file
type Analyzer interface {
	Analyze(ctx context.Context, filename string) (*entities.MeetingSummary, error)
}

// SummaryLoader fetches a previously persisted summary
type SummaryLoader interface {
	GetByMeetingFile(ctx context.Context, meetingFile string) (*entities.MeetingSummary, error)
}

// Workflow orchestrates the two ways a meeting reaches the session store:
// analyzing a new recording and loading an already persisted summary. Both
// converge on a wholesale store replace.
type Workflow struct {
	store    *MeetingStore
	analyzer Analyzer
	loader   SummaryLoader
	tick     time.Duration
	logger   *zap.Logger

	mu  sync.Mutex
	sim *ProgressSimulator
}

// NewWorkflow creates the analysis workflow
func NewWorkflow(store *MeetingStore, analyzer Analyzer, loader SummaryLoader, tick time.Duration, logger *zap.Logger) *Workflow {
	return &Workflow{
		store:    store,
		analyzer: analyzer,
		loader:   loader,
		tick:     tick,
		logger:   logger,
	}
}

// AnalyzeNew runs the analysis pipeline for a recording while a progress
// simulator ticks alongside it. The analyzer is called exactly once, with no
// retry: a transient failure is surfaced to the caller, who may simply
// re-invoke. On failure the store is left untouched.
func (w *Workflow) AnalyzeNew(ctx context.Context, filename string) (*entities.MeetingSummary, error) {
	sim := NewProgressSimulator(w.tick, w.logger)
	w.mu.Lock()
	w.sim = sim
	w.mu.Unlock()

	sim.Start()
	// The simulator must not outlive the real call, whichever way it settles.
	defer sim.Cancel()

	summary, err := w.analyzer.Analyze(ctx, filename)
	if err != nil {
		sim.Fail()
		if w.logger != nil {
			w.logger.Error("meeting analysis failed",
				zap.String("filename", filename),
				zap.Error(err),
			)
		}
		var appErr apperrors.AppError
		if stdErrors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.ErrAnalysisFailed(err)
	}
	sim.Complete()

	w.store.ReplaceAll(filename, sessionItems(summary))
	if w.logger != nil {
		w.logger.Info("meeting analyzed",
			zap.String("filename", filename),
			zap.Int("action_items", len(summary.ActionItems)),
			zap.Int("decisions", len(summary.Decisions)),
		)
	}
	return summary, nil
}

// LoadExisting loads a persisted summary into the session. A missing summary
// is reported distinctly from any other load failure; in both cases the
// store keeps its previous contents.
func (w *Workflow) LoadExisting(ctx context.Context, meetingFile string) (*entities.MeetingSummary, error) {
	summary, err := w.loader.GetByMeetingFile(ctx, meetingFile)
	if err != nil {
		if w.logger != nil {
			w.logger.Warn("failed to load persisted summary",
				zap.String("meeting_file", meetingFile),
				zap.Error(err),
			)
		}
		var appErr apperrors.AppError
		if stdErrors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.ErrInternal(err)
	}

	w.store.ReplaceAll(meetingFile, sessionItems(summary))
	return summary, nil
}

// Progress reports the state of the most recent analysis run
func (w *Workflow) Progress() ProgressSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sim == nil {
		return ProgressSnapshot{State: StateIdle}
	}
	return w.sim.Snapshot()
}

// sessionItems prepares summary items for the store. When the summary has
// decisions but no action items, each decision becomes a fallback item owned
// by the unassigned sentinel with no due date. That projection marks missing
// extraction, it is not real extraction.
func sessionItems(summary *entities.MeetingSummary) []entities.ActionItem {
	if len(summary.ActionItems) == 0 && len(summary.Decisions) > 0 {
		items := make([]entities.ActionItem, 0, len(summary.Decisions))
		for _, d := range summary.Decisions {
			items = append(items, entities.ActionItem{
				Name: entities.UnassignedOwner,
				Task: d,
				Due:  nil,
			})
		}
		return items
	}

	items := make([]entities.ActionItem, len(summary.ActionItems))
	copy(items, summary.ActionItems)
	for i := range items {
		if items[i].Name == "" {
			items[i].Name = entities.UnassignedOwner
		}
		if items[i].Due != nil && *items[i].Due == "" {
			items[i].Due = nil
		}
	}
	return items
}

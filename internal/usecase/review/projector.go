package review

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aimalabs/meeting-review/internal/domain/entities"
)

// UnscheduledLabel marks to-do entries without a due date
const UnscheduledLabel = "unscheduled"

// CalendarEvent is the record handed to the calendar widget
type CalendarEvent struct {
	Title string `json:"title"`
	Start string `json:"start"`
	Color string `json:"color"`
}

// TodoEntry is one row of the to-do list. Index is the item's position in
// the store sequence and is what edit requests address.
type TodoEntry struct {
	Index    int     `json:"index"`
	Name     string  `json:"name"`
	Task     string  `json:"task"`
	Due      *string `json:"due"`
	DueLabel string  `json:"due_label"`
}

// ItemPersister saves the full action item sequence for a meeting
type ItemPersister interface {
	UpdateActionItems(ctx context.Context, meetingFile string, items []entities.ActionItem) error
}

// CalendarProjector derives the calendar and to-do views from the session
// store and reconciles edits back into it. Views are recomputed from scratch
// on every call; nothing is patched incrementally.
type CalendarProjector struct {
	store          *MeetingStore
	persister      ItemPersister
	color          string
	persistTimeout time.Duration
	logger         *zap.Logger
}

// NewCalendarProjector creates a projector over the given store
func NewCalendarProjector(store *MeetingStore, persister ItemPersister, color string, persistTimeout time.Duration, logger *zap.Logger) *CalendarProjector {
	return &CalendarProjector{
		store:          store,
		persister:      persister,
		color:          color,
		persistTimeout: persistTimeout,
		logger:         logger,
	}
}

// Events returns one calendar event per scheduled action item. Items without
// a due date stay off the calendar but remain in the to-do list.
func (p *CalendarProjector) Events() []CalendarEvent {
	view := p.store.Snapshot()
	events := make([]CalendarEvent, 0, len(view.Items))
	for _, item := range view.Items {
		if !item.Scheduled() {
			continue
		}
		events = append(events, CalendarEvent{
			Title: fmt.Sprintf("%s — %s", item.Owner(), item.Task),
			Start: *item.Due,
			Color: p.color,
		})
	}
	return events
}

// Todos returns every action item in store order
func (p *CalendarProjector) Todos() []TodoEntry {
	view := p.store.Snapshot()
	todos := make([]TodoEntry, 0, len(view.Items))
	for i, item := range view.Items {
		todos = append(todos, todoEntry(i, item))
	}
	return todos
}

// TodosOn returns the items due on the given date. Matching is literal
// string equality on the stored due value; no timezone or format
// normalization happens here.
func (p *CalendarProjector) TodosOn(date string) []TodoEntry {
	view := p.store.Snapshot()
	todos := make([]TodoEntry, 0)
	for i, item := range view.Items {
		if item.Due != nil && *item.Due == date {
			todos = append(todos, todoEntry(i, item))
		}
	}
	return todos
}

// EditItem updates one item in the store and kicks off a best-effort save of
// the entire current sequence. The save replaces the server-side set
// wholesale, is never retried, and its outcome is only logged.
func (p *CalendarProjector) EditItem(index int, name string, due *string) error {
	if err := p.store.UpdateAt(index, name, due); err != nil {
		return err
	}

	view := p.store.Snapshot()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.persistTimeout)
		defer cancel()
		if err := p.persister.UpdateActionItems(ctx, view.MeetingID, view.Items); err != nil {
			if p.logger != nil {
				p.logger.Warn("action item save failed",
					zap.String("meeting_file", view.MeetingID),
					zap.Error(err),
				)
			}
		}
	}()
	return nil
}

func todoEntry(index int, item entities.ActionItem) TodoEntry {
	entry := TodoEntry{
		Index:    index,
		Name:     item.Owner(),
		Task:     item.Task,
		Due:      item.Due,
		DueLabel: UnscheduledLabel,
	}
	if item.Scheduled() {
		entry.DueLabel = *item.Due
	}
	return entry
}

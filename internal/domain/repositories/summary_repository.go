package repositories

import (
	"context"

	"github.com/aimalabs/meeting-review/internal/domain/entities"
)

// SummaryRepository persists meeting summaries keyed by recording file
type SummaryRepository interface {
	// Upsert inserts or replaces the summary for a meeting file
	Upsert(ctx context.Context, meetingFile string, summary *entities.MeetingSummary) error
	// GetByMeetingFile loads a persisted summary; returns errors.ErrSummaryNotFound when absent
	GetByMeetingFile(ctx context.Context, meetingFile string) (*entities.MeetingSummary, error)
	// UpdateActionItems replaces the entire action item sequence for a meeting file
	UpdateActionItems(ctx context.Context, meetingFile string, items []entities.ActionItem) error
}

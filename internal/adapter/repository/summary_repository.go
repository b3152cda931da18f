package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/aimalabs/meeting-review/errors"
	"github.com/aimalabs/meeting-review/internal/domain/entities"
	repo "github.com/aimalabs/meeting-review/internal/domain/repositories"
)

type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a summary repository backed by GORM
func NewSummaryRepository(db *gorm.DB) repo.SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) Upsert(ctx context.Context, meetingFile string, summary *entities.MeetingSummary) error {
	record, err := entities.NewSummaryRecord(meetingFile, summary)
	if err != nil {
		return apperrors.ErrDBQueryFailed("encode summary", err)
	}

	// Upsert by meeting_file
	q := `INSERT INTO meeting_summaries (id, meeting_file, topic_summary, content_summary, decisions, action_items, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?::jsonb, ?::jsonb, ?, ?)
        ON CONFLICT (meeting_file) DO UPDATE SET topic_summary = EXCLUDED.topic_summary, content_summary = EXCLUDED.content_summary, decisions = EXCLUDED.decisions, action_items = EXCLUDED.action_items, updated_at = NOW()`

	now := time.Now()
	if err := r.db.WithContext(ctx).Exec(q,
		uuid.New(), meetingFile, record.TopicSummary, record.ContentSummary,
		string(record.Decisions), string(record.ActionItems), now, now,
	).Error; err != nil {
		return apperrors.ErrDBQueryFailed("upsert summary", err)
	}
	return nil
}

func (r *summaryRepository) GetByMeetingFile(ctx context.Context, meetingFile string) (*entities.MeetingSummary, error) {
	var record entities.SummaryRecord
	err := r.db.WithContext(ctx).Where("meeting_file = ?", meetingFile).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrSummaryNotFound(meetingFile)
	}
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("load summary", err)
	}

	summary, err := record.Summary()
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("decode summary", err)
	}
	return summary, nil
}

func (r *summaryRepository) UpdateActionItems(ctx context.Context, meetingFile string, items []entities.ActionItem) error {
	encoded, err := json.Marshal(items)
	if err != nil {
		return apperrors.ErrDBQueryFailed("encode action items", err)
	}

	res := r.db.WithContext(ctx).
		Model(&entities.SummaryRecord{}).
		Where("meeting_file = ?", meetingFile).
		Update("action_items", string(encoded))
	if res.Error != nil {
		return apperrors.ErrDBQueryFailed("update action items", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrSummaryNotFound(meetingFile)
	}
	return nil
}

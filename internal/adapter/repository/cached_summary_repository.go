package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/aimalabs/meeting-review/internal/domain/entities"
	repo "github.com/aimalabs/meeting-review/internal/domain/repositories"
)

// SummaryCache is the cache boundary in front of persisted summaries.
// Implementations: Redis-backed, in-memory fallback.
type SummaryCache interface {
	Get(ctx context.Context, meetingFile string) (*entities.MeetingSummary, bool, error)
	Set(ctx context.Context, meetingFile string, summary *entities.MeetingSummary) error
	Invalidate(ctx context.Context, meetingFile string) error
}

type cachedSummaryRepository struct {
	inner  repo.SummaryRepository
	cache  SummaryCache
	logger *zap.Logger
}

// NewCachedSummaryRepository wraps a summary repository with a read-through
// cache. Cache failures are logged and bypassed, never surfaced.
func NewCachedSummaryRepository(inner repo.SummaryRepository, cache SummaryCache, logger *zap.Logger) repo.SummaryRepository {
	return &cachedSummaryRepository{inner: inner, cache: cache, logger: logger}
}

func (r *cachedSummaryRepository) Upsert(ctx context.Context, meetingFile string, summary *entities.MeetingSummary) error {
	if err := r.inner.Upsert(ctx, meetingFile, summary); err != nil {
		return err
	}
	if err := r.cache.Invalidate(ctx, meetingFile); err != nil {
		r.warn("cache invalidate failed", meetingFile, err)
	}
	return nil
}

func (r *cachedSummaryRepository) GetByMeetingFile(ctx context.Context, meetingFile string) (*entities.MeetingSummary, error) {
	cached, ok, err := r.cache.Get(ctx, meetingFile)
	if err != nil {
		r.warn("cache read failed", meetingFile, err)
	}
	if ok {
		return cached, nil
	}

	summary, err := r.inner.GetByMeetingFile(ctx, meetingFile)
	if err != nil {
		return nil, err
	}
	if cerr := r.cache.Set(ctx, meetingFile, summary); cerr != nil {
		r.warn("cache write failed", meetingFile, cerr)
	}
	return summary, nil
}

func (r *cachedSummaryRepository) UpdateActionItems(ctx context.Context, meetingFile string, items []entities.ActionItem) error {
	if err := r.inner.UpdateActionItems(ctx, meetingFile, items); err != nil {
		return err
	}
	if err := r.cache.Invalidate(ctx, meetingFile); err != nil {
		r.warn("cache invalidate failed", meetingFile, err)
	}
	return nil
}

func (r *cachedSummaryRepository) warn(msg, meetingFile string, err error) {
	if r.logger != nil {
		r.logger.Warn(msg, zap.String("meeting_file", meetingFile), zap.Error(err))
	}
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/aimalabs/meeting-review/internal/domain/entities"
	"github.com/aimalabs/meeting-review/internal/infrastructure/cache"
)

type countingRepo struct {
	gets    int
	upserts int
	updates int
	stored  map[string]*entities.MeetingSummary
}

func newCountingRepo() *countingRepo {
	return &countingRepo{stored: make(map[string]*entities.MeetingSummary)}
}

func (f *countingRepo) Upsert(_ context.Context, meetingFile string, summary *entities.MeetingSummary) error {
	f.upserts++
	f.stored[meetingFile] = summary
	return nil
}

func (f *countingRepo) GetByMeetingFile(_ context.Context, meetingFile string) (*entities.MeetingSummary, error) {
	f.gets++
	return f.stored[meetingFile], nil
}

func (f *countingRepo) UpdateActionItems(_ context.Context, meetingFile string, items []entities.ActionItem) error {
	f.updates++
	f.stored[meetingFile].ActionItems = items
	return nil
}

func TestCachedRepository_ReadThrough(t *testing.T) {
	inner := newCountingRepo()
	inner.stored["team.wav"] = &entities.MeetingSummary{TopicSummary: "weekly sync"}

	cached := NewCachedSummaryRepository(inner, cache.NewMemorySummaryCache(time.Minute), nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := cached.GetByMeetingFile(ctx, "team.wav")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.TopicSummary != "weekly sync" {
			t.Fatalf("unexpected summary: %+v", got)
		}
	}

	if inner.gets != 1 {
		t.Fatalf("expected a single backing read, got %d", inner.gets)
	}
}

func TestCachedRepository_WritesInvalidate(t *testing.T) {
	inner := newCountingRepo()
	inner.stored["team.wav"] = &entities.MeetingSummary{TopicSummary: "v1"}

	cached := NewCachedSummaryRepository(inner, cache.NewMemorySummaryCache(time.Minute), nil)
	ctx := context.Background()

	if _, err := cached.GetByMeetingFile(ctx, "team.wav"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := cached.Upsert(ctx, "team.wav", &entities.MeetingSummary{TopicSummary: "v2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := cached.GetByMeetingFile(ctx, "team.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TopicSummary != "v2" {
		t.Fatalf("stale cache entry served after upsert: %+v", got)
	}
	if inner.gets != 2 {
		t.Fatalf("expected re-read after invalidation, got %d reads", inner.gets)
	}

	due := "2025-11-10"
	if err := cached.UpdateActionItems(ctx, "team.wav", []entities.ActionItem{{Name: "alice", Task: "ship", Due: &due}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err = cached.GetByMeetingFile(ctx, "team.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.ActionItems) != 1 || got.ActionItems[0].Task != "ship" {
		t.Fatalf("stale action items after replace: %+v", got.ActionItems)
	}
}

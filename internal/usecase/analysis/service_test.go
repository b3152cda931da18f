package analysis

import (
	"context"
	stdErrors "errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/aimalabs/meeting-review/errors"
	"github.com/aimalabs/meeting-review/internal/domain/entities"
)

type fakeStorage struct {
	uploads map[string]string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: make(map[string]string)}
}

func (f *fakeStorage) PresignedURL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	return "https://storage.local/" + objectName, nil
}

func (f *fakeStorage) UploadText(_ context.Context, objectName, content string) error {
	f.uploads[objectName] = content
	return nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}

// scriptedCompleter answers the date prompt with a fixed date and the
// summary prompt with queued responses, one per attempt
type scriptedCompleter struct {
	date      string
	summaries []string
	calls     int
}

func (f *scriptedCompleter) Complete(_ context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "meeting_date") {
		return `{"meeting_date": "` + f.date + `"}`, nil
	}
	if f.calls < len(f.summaries) {
		resp := f.summaries[f.calls]
		f.calls++
		return resp, nil
	}
	return "", stdErrors.New("no scripted response left")
}

type recordingSummaryRepo struct {
	upserted map[string]*entities.MeetingSummary
	err      error
}

func newRecordingSummaryRepo() *recordingSummaryRepo {
	return &recordingSummaryRepo{upserted: make(map[string]*entities.MeetingSummary)}
}

func (f *recordingSummaryRepo) Upsert(_ context.Context, meetingFile string, summary *entities.MeetingSummary) error {
	if f.err != nil {
		return f.err
	}
	f.upserted[meetingFile] = summary
	return nil
}

func (f *recordingSummaryRepo) GetByMeetingFile(_ context.Context, meetingFile string) (*entities.MeetingSummary, error) {
	return f.upserted[meetingFile], nil
}

func (f *recordingSummaryRepo) UpdateActionItems(_ context.Context, _ string, _ []entities.ActionItem) error {
	return nil
}

const validSummaryJSON = `{
	"topic_summary": "Sprint planning",
	"content_summary": "Planned the next sprint",
	"decisions": ["Cut scope on reporting"],
	"action_items": [
		{"name": "Alice", "task": "Ship the importer", "due": "2026-09-04"},
		{"name": "Bob", "task": "Write the runbook", "due": "TBD"}
	]
}`

func newTestService(storage *fakeStorage, stt *fakeTranscriber, llm Completer, repo *recordingSummaryRepo) *Service {
	svc := NewService(storage, stt, llm, repo, time.Hour, nil)
	svc.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestAnalyze_FullPipeline(t *testing.T) {
	storage := newFakeStorage()
	repo := newRecordingSummaryRepo()
	llm := &scriptedCompleter{date: "2026-09-01", summaries: []string{validSummaryJSON}}
	svc := newTestService(storage, &fakeTranscriber{text: "we talked about the sprint"}, llm, repo)

	summary, err := svc.Analyze(context.Background(), "sprint.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TopicSummary != "Sprint planning" {
		t.Fatalf("unexpected topic: %q", summary.TopicSummary)
	}
	if len(summary.ActionItems) != 2 {
		t.Fatalf("unexpected items: %+v", summary.ActionItems)
	}
	if summary.ActionItems[0].Due == nil || *summary.ActionItems[0].Due != "2026-09-04" {
		t.Fatalf("explicit due must pass through, got %v", summary.ActionItems[0].Due)
	}
	// TBD resolves to nil, then the sequential fallback assigns meeting date + index
	if summary.ActionItems[1].Due == nil || *summary.ActionItems[1].Due != "2026-09-02" {
		t.Fatalf("fallback due expected meeting date + 1 day, got %v", summary.ActionItems[1].Due)
	}

	if repo.upserted["sprint.wav"] == nil {
		t.Fatal("summary must be persisted")
	}

	var foundReport bool
	for name := range storage.uploads {
		if strings.HasPrefix(name, "reports/minutes_2026-09-01_sprint") {
			foundReport = true
		}
	}
	if !foundReport {
		t.Fatalf("minutes report not uploaded, uploads: %v", storage.uploads)
	}
}

func TestAnalyze_RetriesInvalidJSON(t *testing.T) {
	repo := newRecordingSummaryRepo()
	llm := &scriptedCompleter{date: "2026-09-01", summaries: []string{
		"Sorry, here is the summary in prose.",
		validSummaryJSON,
	}}
	svc := newTestService(newFakeStorage(), &fakeTranscriber{text: "transcript"}, llm, repo)

	summary, err := svc.Analyze(context.Background(), "sprint.wav")
	if err != nil {
		t.Fatalf("expected retry to recover, got: %v", err)
	}
	if summary.TopicSummary != "Sprint planning" {
		t.Fatalf("unexpected topic: %q", summary.TopicSummary)
	}
	if llm.calls != 2 {
		t.Fatalf("expected 2 summary attempts, got %d", llm.calls)
	}
}

func TestAnalyze_TranscriptionFailure(t *testing.T) {
	stt := &fakeTranscriber{err: apperrors.ErrTranscriptionFailed(stdErrors.New("upstream down"))}
	svc := newTestService(newFakeStorage(), stt, &scriptedCompleter{date: "2026-09-01"}, newRecordingSummaryRepo())

	_, err := svc.Analyze(context.Background(), "sprint.wav")
	if err == nil {
		t.Fatal("expected error")
	}
	var appErr apperrors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_TRANSCRIPTION_FAILED {
		t.Fatalf("expected transcription failure to pass through, got %v", err)
	}
}

func TestAnalyze_PersistenceFailureIsNotFatal(t *testing.T) {
	repo := newRecordingSummaryRepo()
	repo.err = stdErrors.New("db down")
	llm := &scriptedCompleter{date: "2026-09-01", summaries: []string{validSummaryJSON}}
	svc := newTestService(newFakeStorage(), &fakeTranscriber{text: "transcript"}, llm, repo)

	summary, err := svc.Analyze(context.Background(), "sprint.wav")
	if err != nil {
		t.Fatalf("persistence failure must not fail the analysis: %v", err)
	}
	if summary == nil {
		t.Fatal("expected a summary")
	}
}

func TestAnalyze_MeetingDateFallsBackToNow(t *testing.T) {
	// Completer with no date key answers the date prompt unusably
	llm := &brokenDateCompleter{}
	svc := newTestService(newFakeStorage(), &fakeTranscriber{text: "transcript"}, llm, newRecordingSummaryRepo())

	summary, err := svc.Analyze(context.Background(), "sprint.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Item has no due; fallback anchors to now (2026-08-30) + index 0
	if summary.ActionItems[0].Due == nil || *summary.ActionItems[0].Due != "2026-08-30" {
		t.Fatalf("expected fallback anchored to now, got %v", summary.ActionItems[0].Due)
	}
}

type brokenDateCompleter struct{}

func (brokenDateCompleter) Complete(_ context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "meeting_date") {
		return "I cannot tell.", nil
	}
	return `{"topic_summary": "t", "content_summary": "c", "decisions": [], "action_items": [{"name": "Alice", "task": "follow up", "due": ""}]}`, nil
}

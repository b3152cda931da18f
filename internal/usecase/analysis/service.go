package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	apperrors "github.com/aimalabs/meeting-review/errors"
	"github.com/aimalabs/meeting-review/internal/domain/entities"
	domainrepo "github.com/aimalabs/meeting-review/internal/domain/repositories"
)

// Storage is the recording bucket boundary the pipeline needs
type Storage interface {
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	UploadText(ctx context.Context, objectName, content string) error
}

// Transcriber turns a recording URL into transcript text
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

// Completer is the LLM boundary
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service runs the full analysis pipeline for one recording: transcription,
// summary extraction, due date normalization, persistence and the minutes
// report. The caller sees a single synchronous Analyze operation.
type Service struct {
	storage       Storage
	stt           Transcriber
	llm           Completer
	parser        *Parser
	summaries     domainrepo.SummaryRepository
	presignExpiry time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// NewService constructs the analysis pipeline
func NewService(storage Storage, stt Transcriber, llm Completer, summaries domainrepo.SummaryRepository, presignExpiry time.Duration, logger *zap.Logger) *Service {
	return &Service{
		storage:       storage,
		stt:           stt,
		llm:           llm,
		parser:        NewParser(),
		summaries:     summaries,
		presignExpiry: presignExpiry,
		logger:        logger,
		now:           time.Now,
	}
}

// Analyze processes one recording end to end and returns its summary
func (s *Service) Analyze(ctx context.Context, filename string) (*entities.MeetingSummary, error) {
	audioURL, err := s.storage.PresignedURL(ctx, filename, s.presignExpiry)
	if err != nil {
		return nil, apperrors.ErrStorageFailed("presign recording", err)
	}

	transcript, err := s.stt.Transcribe(ctx, audioURL)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.Info("transcription finished",
			zap.String("filename", filename),
			zap.Int("transcript_chars", len(transcript)),
		)
	}

	meetingDate := s.estimateMeetingDate(ctx, transcript)

	raw, err := s.generateSummary(ctx, transcript)
	if err != nil {
		return nil, apperrors.ErrAnalysisFailed(err)
	}

	summary := s.buildSummary(raw, meetingDate)

	// The analysis result is still useful when persistence hiccups; the
	// original tool behaves the same way, so log and keep going.
	if err := s.summaries.Upsert(ctx, filename, summary); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to persist summary",
				zap.String("filename", filename),
				zap.Error(err),
			)
		}
	}
	s.publishMinutes(ctx, filename, meetingDate, summary)

	return summary, nil
}

// generateSummary prompts the LLM and retries while the response fails JSON
// extraction, tightening the prompt each time
func (s *Service) generateSummary(ctx context.Context, transcript string) (*entities.RawSummary, error) {
	prompt := summaryPrompt(transcript)

	var raw *entities.RawSummary
	attempt := func() error {
		content, err := s.llm.Complete(ctx, prompt)
		if err != nil {
			return err
		}
		parsed, perr := s.parser.ParseSummary(content)
		if perr != nil {
			prompt += "\n\nReturn strictly valid JSON only, nothing else."
			return perr
		}
		raw = parsed
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxElapsedTime = 90 * time.Second
	if err := backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(bo, 2), ctx)); err != nil {
		return nil, fmt.Errorf("llm did not return a valid summary: %w", err)
	}
	return raw, nil
}

// estimateMeetingDate asks the LLM when the meeting happened so relative due
// phrases can be anchored. Any failure falls back to the current date.
func (s *Service) estimateMeetingDate(ctx context.Context, transcript string) time.Time {
	nowT := s.now()

	content, err := s.llm.Complete(ctx, meetingDatePrompt(transcript))
	if err != nil {
		return nowT
	}
	dateStr, err := s.parser.ParseMeetingDate(content)
	if err != nil {
		return nowT
	}
	t, err := time.Parse(dueLayout, dateStr)
	if err != nil {
		return nowT
	}
	// Models reuse stale years; never anchor to a past year
	if t.Year() < nowT.Year() {
		t = time.Date(nowT.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return t
}

// buildSummary normalizes the raw LLM output into the persisted shape.
// Items that still have no due date after normalization get consecutive
// dates from the meeting date, so every extracted task lands on the calendar.
func (s *Service) buildSummary(raw *entities.RawSummary, meetingDate time.Time) *entities.MeetingSummary {
	items := make([]entities.ActionItem, 0, len(raw.ActionItems))
	for _, ri := range raw.ActionItems {
		items = append(items, entities.ActionItem{
			Name: strings.TrimSpace(ri.Name),
			Task: strings.TrimSpace(ri.Task),
			Due:  NormalizeDue(ri.Due, meetingDate),
		})
	}
	for i := range items {
		if items[i].Due == nil {
			d := meetingDate.AddDate(0, 0, i).Format(dueLayout)
			items[i].Due = &d
		}
	}

	return &entities.MeetingSummary{
		TopicSummary:   raw.TopicSummary,
		ContentSummary: raw.ContentSummary,
		Decisions:      raw.Decisions,
		ActionItems:    items,
	}
}

// publishMinutes writes a Markdown minutes report next to the recordings.
// Best effort: a storage failure never fails the analysis.
func (s *Service) publishMinutes(ctx context.Context, filename string, meetingDate time.Time, summary *entities.MeetingSummary) {
	base := strings.TrimSuffix(filename, ".wav")
	objectName := fmt.Sprintf("reports/minutes_%s_%s.md", meetingDate.Format(dueLayout), base)

	var b strings.Builder
	fmt.Fprintf(&b, "# Meeting Minutes\n\n")
	fmt.Fprintf(&b, "- Date: %s\n- Recording: %s\n\n", meetingDate.Format(dueLayout), filename)
	fmt.Fprintf(&b, "## Topic\n\n%s\n\n", summary.TopicSummary)
	fmt.Fprintf(&b, "## Summary\n\n%s\n\n", summary.ContentSummary)

	b.WriteString("## Decisions\n\n")
	if len(summary.Decisions) == 0 {
		b.WriteString("- none recorded\n")
	}
	for _, d := range summary.Decisions {
		fmt.Fprintf(&b, "- %s\n", d)
	}

	b.WriteString("\n## Action Items\n\n")
	if len(summary.ActionItems) == 0 {
		b.WriteString("- none extracted\n")
	}
	for i, item := range summary.ActionItems {
		due := "TBD"
		if item.Due != nil {
			due = *item.Due
		}
		fmt.Fprintf(&b, "%d. %s: %s (due %s)\n", i+1, item.Owner(), item.Task, due)
	}

	if err := s.storage.UploadText(ctx, objectName, b.String()); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to upload minutes report",
				zap.String("object", objectName),
				zap.Error(err),
			)
		}
		return
	}
	if s.logger != nil {
		s.logger.Info("minutes report published", zap.String("object", objectName))
	}
}

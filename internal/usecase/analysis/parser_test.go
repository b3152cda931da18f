package analysis

import "testing"

func TestParseSummary_PlainJSON(t *testing.T) {
	p := NewParser()

	raw, err := p.ParseSummary(`{
		"topic_summary": "Quarterly planning",
		"content_summary": "Long discussion",
		"decisions": ["Ship in June"],
		"action_items": [
			{"name": "Alice", "task": "Write report", "due": "next friday"},
			{"name": "", "task": "", "due": ""}
		]
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.TopicSummary != "Quarterly planning" {
		t.Fatalf("unexpected topic: %q", raw.TopicSummary)
	}
	if len(raw.ActionItems) != 1 {
		t.Fatalf("taskless items must be dropped, got %d items", len(raw.ActionItems))
	}
}

func TestParseSummary_MarkdownFencedWithProse(t *testing.T) {
	p := NewParser()

	raw, err := p.ParseSummary("Here you go:\n```json\n{\"topic_summary\": \"t\", \"content_summary\": \"c\", \"decisions\": [], \"action_items\": []}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.TopicSummary != "t" {
		t.Fatalf("unexpected topic: %q", raw.TopicSummary)
	}
}

func TestParseSummary_MissingTopic(t *testing.T) {
	p := NewParser()
	if _, err := p.ParseSummary(`{"content_summary": "c"}`); err == nil {
		t.Fatal("expected error for missing topic_summary")
	}
}

func TestParseSummary_NoJSON(t *testing.T) {
	p := NewParser()
	if _, err := p.ParseSummary("I could not process the transcript."); err == nil {
		t.Fatal("expected error for response without JSON")
	}
}

func TestParseMeetingDate(t *testing.T) {
	p := NewParser()

	got, err := p.ParseMeetingDate(`{ "meeting_date": "2025-10-27" }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2025-10-27" {
		t.Fatalf("unexpected date: %q", got)
	}

	if _, err := p.ParseMeetingDate(`{}`); err == nil {
		t.Fatal("expected error for missing meeting_date")
	}
}

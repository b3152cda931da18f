package entities

// RawSummary is the JSON shape the LLM is prompted to return. Due dates are
// free-text here; the pipeline normalizes them before anything stores them.
type RawSummary struct {
	TopicSummary   string          `json:"topic_summary"`
	ContentSummary string          `json:"content_summary"`
	Decisions      []string        `json:"decisions"`
	ActionItems    []RawActionItem `json:"action_items"`
}

// RawActionItem is an action item as extracted by the LLM
type RawActionItem struct {
	Name string `json:"name"`
	Task string `json:"task"`
	Due  string `json:"due"`
}

// MeetingDateResult is the LLM response for meeting date estimation
type MeetingDateResult struct {
	MeetingDate string `json:"meeting_date"`
}

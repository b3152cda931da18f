package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingSummary is the analyzed content of one meeting, produced either by
// the analysis pipeline or loaded from the persisted summaries table.
type MeetingSummary struct {
	TopicSummary   string       `json:"topic_summary"`
	ContentSummary string       `json:"content_summary"`
	Decisions      []string     `json:"decisions"`
	ActionItems    []ActionItem `json:"action_items"`
}

// SummaryRecord is the persisted row for a meeting summary, keyed by the
// source recording file.
type SummaryRecord struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingFile    string         `json:"meeting_file" gorm:"type:varchar(255);not null;uniqueIndex"`
	TopicSummary   string         `json:"topic_summary" gorm:"type:text;not null"`
	ContentSummary string         `json:"content_summary" gorm:"type:text"`
	Decisions      datatypes.JSON `json:"decisions,omitempty" gorm:"type:jsonb"`
	ActionItems    datatypes.JSON `json:"action_items,omitempty" gorm:"type:jsonb"`
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for SummaryRecord
func (SummaryRecord) TableName() string {
	return "meeting_summaries"
}

// NewSummaryRecord builds a persistable record from a summary
func NewSummaryRecord(meetingFile string, summary *MeetingSummary) (*SummaryRecord, error) {
	decisions, err := json.Marshal(summary.Decisions)
	if err != nil {
		return nil, err
	}
	items, err := json.Marshal(summary.ActionItems)
	if err != nil {
		return nil, err
	}
	return &SummaryRecord{
		ID:             uuid.New(),
		MeetingFile:    meetingFile,
		TopicSummary:   summary.TopicSummary,
		ContentSummary: summary.ContentSummary,
		Decisions:      datatypes.JSON(decisions),
		ActionItems:    datatypes.JSON(items),
	}, nil
}

// Summary converts the record back into its API shape
func (r *SummaryRecord) Summary() (*MeetingSummary, error) {
	s := &MeetingSummary{
		TopicSummary:   r.TopicSummary,
		ContentSummary: r.ContentSummary,
	}
	if len(r.Decisions) > 0 {
		if err := json.Unmarshal(r.Decisions, &s.Decisions); err != nil {
			return nil, err
		}
	}
	if len(r.ActionItems) > 0 {
		if err := json.Unmarshal(r.ActionItems, &s.ActionItems); err != nil {
			return nil, err
		}
	}
	return s, nil
}

package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aimalabs/meeting-review/internal/domain/entities"
)

// Parser handles parsing and validation of LLM responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseSummary parses the JSON summary response from the LLM
func (p *Parser) ParseSummary(content string) (*entities.RawSummary, error) {
	jsonString := extractJSON(content)
	if jsonString == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var raw entities.RawSummary
	if err := json.Unmarshal([]byte(jsonString), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	// Validate required fields
	if raw.TopicSummary == "" {
		return nil, fmt.Errorf("missing topic_summary in response")
	}
	if raw.Decisions == nil {
		raw.Decisions = make([]string, 0)
	}

	// Items without a task are noise from the model, not action items
	items := raw.ActionItems[:0]
	for _, item := range raw.ActionItems {
		if strings.TrimSpace(item.Task) == "" {
			continue
		}
		items = append(items, item)
	}
	raw.ActionItems = items

	return &raw, nil
}

// ParseMeetingDate parses the meeting date estimation response
func (p *Parser) ParseMeetingDate(content string) (string, error) {
	jsonString := extractJSON(content)
	if jsonString == "" {
		return "", fmt.Errorf("no JSON object in response")
	}

	var result entities.MeetingDateResult
	if err := json.Unmarshal([]byte(jsonString), &result); err != nil {
		return "", fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if result.MeetingDate == "" {
		return "", fmt.Errorf("missing meeting_date in response")
	}
	return result.MeetingDate, nil
}

// extractJSON pulls the JSON object out of a model response that may wrap it
// in markdown fences or surrounding prose
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	// Trim any prose around the outermost object
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}

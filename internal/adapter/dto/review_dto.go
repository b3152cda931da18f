package dto

// AnalyzeRequest asks for a recording to be analyzed
type AnalyzeRequest struct {
	Filename string `json:"filename" validate:"required"`
}

// UpdateActionItemRequest edits one action item. An empty name falls back to
// the unassigned owner; a null or empty due clears the schedule.
type UpdateActionItemRequest struct {
	Name string  `json:"name"`
	Due  *string `json:"due" validate:"omitempty,datetime=2006-01-02"`
}

// FileListResponse lists recordings not yet analyzed in this session
type FileListResponse struct {
	Files []string `json:"files"`
}

// AnalyzedResponse lists meeting files already analyzed in this session
type AnalyzedResponse struct {
	Meetings []string `json:"meetings"`
}

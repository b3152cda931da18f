package entities

// UnassignedOwner is the placeholder owner used when a task has no known owner.
const UnassignedOwner = "unassigned"

// ActionItem is a task extracted from a meeting. Items carry no stable ID:
// identity is the position inside the session's ordered sequence.
type ActionItem struct {
	Name string  `json:"name"`
	Task string  `json:"task"`
	Due  *string `json:"due"` // YYYY-MM-DD, nil when unscheduled
}

// Owner returns the item owner, falling back to the unassigned sentinel.
func (a ActionItem) Owner() string {
	if a.Name == "" {
		return UnassignedOwner
	}
	return a.Name
}

// Scheduled reports whether the item has a due date.
func (a ActionItem) Scheduled() bool {
	return a.Due != nil && *a.Due != ""
}

package review

import (
	"strings"
	"sync"

	apperrors "github.com/aimalabs/meeting-review/errors"
	"github.com/aimalabs/meeting-review/internal/domain/entities"
)

// MeetingStore is the single source of truth for one review session: the
// currently loaded meeting, its action items, the set of meetings analyzed so
// far, and the recordings offered but not yet analyzed.
//
// Exactly two mutation paths exist: the analysis workflow replaces the whole
// item sequence, and the calendar projector updates a single position. Every
// read sees either the state before a mutation or after it, never between.
type MeetingStore struct {
	mu               sync.RWMutex
	currentMeetingID string
	actionItems      []entities.ActionItem
	analyzed         map[string]struct{}
	analyzedOrder    []string
	pending          []string
}

// SessionView is a consistent copy of the store for readers
type SessionView struct {
	MeetingID string
	Items     []entities.ActionItem
}

// NewMeetingStore creates an empty session store
func NewMeetingStore() *MeetingStore {
	return &MeetingStore{
		analyzed: make(map[string]struct{}),
	}
}

// ReplaceAll swaps the current meeting and its action items in one step,
// marks the meeting analyzed and drops it from the pending listing.
// Marking is idempotent: reloading an already analyzed meeting is fine.
func (s *MeetingStore) ReplaceAll(meetingID string, items []entities.ActionItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentMeetingID = meetingID
	s.actionItems = make([]entities.ActionItem, len(items))
	copy(s.actionItems, items)

	if _, ok := s.analyzed[meetingID]; !ok {
		s.analyzed[meetingID] = struct{}{}
		s.analyzedOrder = append(s.analyzedOrder, meetingID)
	}

	remaining := s.pending[:0]
	for _, f := range s.pending {
		if f != meetingID {
			remaining = append(remaining, f)
		}
	}
	s.pending = remaining
}

// UpdateAt mutates the owner and due date of the item at index, in place.
// The task text and the sequence order never change here. An empty owner
// falls back to the unassigned sentinel; an empty due clears the schedule.
func (s *MeetingStore) UpdateAt(index int, name string, due *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.actionItems) {
		return apperrors.ErrActionItemIndex(index)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = entities.UnassignedOwner
	}
	if due != nil && *due == "" {
		due = nil
	}

	s.actionItems[index].Name = name
	s.actionItems[index].Due = due
	return nil
}

// Snapshot returns a copy of the current meeting and its items
func (s *MeetingStore) Snapshot() SessionView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.ActionItem, len(s.actionItems))
	copy(items, s.actionItems)
	return SessionView{MeetingID: s.currentMeetingID, Items: items}
}

// CurrentMeetingID returns the identifier of the loaded meeting, if any
func (s *MeetingStore) CurrentMeetingID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentMeetingID
}

// IsAnalyzed reports whether a meeting was analyzed during this session
func (s *MeetingStore) IsAnalyzed(meetingID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.analyzed[meetingID]
	return ok
}

// AnalyzedMeetings returns analyzed identifiers in the order they completed
func (s *MeetingStore) AnalyzedMeetings() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.analyzedOrder))
	copy(out, s.analyzedOrder)
	return out
}

// OfferNewFiles records the recordings from a fresh listing that have not
// been analyzed yet and returns them, preserving listing order.
func (s *MeetingStore) OfferNewFiles(files []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := make([]string, 0, len(files))
	for _, f := range files {
		if _, ok := s.analyzed[f]; !ok {
			fresh = append(fresh, f)
		}
	}
	s.pending = make([]string, len(fresh))
	copy(s.pending, fresh)

	out := make([]string, len(fresh))
	copy(out, fresh)
	return out
}

// PendingFiles returns the recordings offered but not yet analyzed
func (s *MeetingStore) PendingFiles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.pending))
	copy(out, s.pending)
	return out
}

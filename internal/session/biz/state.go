package biz

import (
	"sync"

	"github.com/lk2023060901/ai-session-backend/internal/session/types"
)

// Snapshot is a consistent read of the selection state at one point in time.
// Entities inside a snapshot are treated as immutable once published.
type Snapshot struct {
	CurrentAssistant *types.Assistant
	CurrentTopicID   string
	Assistants       []*types.Assistant
}

// SelectionStore holds the currently observed (assistant, topic) selection
// and the known assistant collection, and notifies subscribers on change.
// It is an owned state object passed explicitly, not a process global.
type SelectionStore struct {
	mu sync.RWMutex

	current        *types.Assistant
	currentTopicID string
	assistants     []*types.Assistant

	subs []chan struct{}
}

// NewSelectionStore creates an empty selection store
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{}
}

// Snapshot returns the current selection state
func (s *SelectionStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assistants := make([]*types.Assistant, len(s.assistants))
	copy(assistants, s.assistants)

	return Snapshot{
		CurrentAssistant: s.current,
		CurrentTopicID:   s.currentTopicID,
		Assistants:       assistants,
	}
}

// SetCurrentAssistant replaces the selected assistant. A freshly hydrated
// instance counts as a change even when the id is unchanged.
func (s *SelectionStore) SetCurrentAssistant(assistant *types.Assistant) {
	s.mu.Lock()
	if s.current == assistant {
		s.mu.Unlock()
		return
	}
	s.current = assistant
	s.mu.Unlock()

	s.notify()
}

// SetCurrentTopicID replaces the selected topic id
func (s *SelectionStore) SetCurrentTopicID(topicID string) {
	s.mu.Lock()
	if s.currentTopicID == topicID {
		s.mu.Unlock()
		return
	}
	s.currentTopicID = topicID
	s.mu.Unlock()

	s.notify()
}

// SetAssistants replaces the known assistant collection
func (s *SelectionStore) SetAssistants(assistants []*types.Assistant) {
	s.mu.Lock()
	s.assistants = assistants
	s.mu.Unlock()

	s.notify()
}

// Subscribe returns a channel that receives a signal after every state
// change. The channel has a buffer of one; bursts of changes coalesce into a
// single pending signal.
func (s *SelectionStore) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	return ch
}

// Unsubscribe removes a previously subscribed channel
func (s *SelectionStore) Unsubscribe(ch chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subs {
		if sub == ch {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *SelectionStore) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

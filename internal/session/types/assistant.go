package types

import "time"

// Assistant represents a selectable AI assistant owning an ordered set of topics
type Assistant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Emoji  string `json:"emoji"`
	Prompt string `json:"prompt"`

	// TopicIDs is the source of truth for topic membership, in association order
	TopicIDs []string `json:"topic_ids"`

	// Topics is the hydrated topic cache for the currently selected assistant,
	// ordered most-recently-active first. Derived on load, never persisted.
	Topics []*Topic `json:"topics,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnsTopic reports whether the given topic id appears in the assistant's
// TopicIDs or hydrated Topics. Either source counts; the hydrated cache can
// lag behind TopicIDs and vice versa.
func (a *Assistant) OwnsTopic(topicID string) bool {
	for _, id := range a.TopicIDs {
		if id == topicID {
			return true
		}
	}
	for _, t := range a.Topics {
		if t.ID == topicID {
			return true
		}
	}
	return false
}

// AssistantFilter defines filtering options for listing assistants
type AssistantFilter struct {
	Keyword string `json:"keyword"` // Search by name
}

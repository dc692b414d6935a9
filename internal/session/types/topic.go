package types

import (
	"sort"
	"time"
)

// Topic represents a named unit of conversation belonging to exactly one
// assistant. AssistantID never changes after creation.
type Topic struct {
	ID          string `json:"id"`
	AssistantID string `json:"assistant_id"`
	Name        string `json:"name"`

	// All timestamps are optional; the zero value means absent.
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	LastMessageAt time.Time `json:"last_message_at"`
}

// ActivityTime returns the recency key for a topic: last message time,
// falling back to updated time, falling back to created time. A topic with
// no timestamps at all sorts as the zero time.
func (t *Topic) ActivityTime() time.Time {
	if !t.LastMessageAt.IsZero() {
		return t.LastMessageAt
	}
	if !t.UpdatedAt.IsZero() {
		return t.UpdatedAt
	}
	return t.CreatedAt
}

// SortTopicsByActivity orders topics most-recently-active first, keeping the
// original order for ties.
func SortTopicsByActivity(topics []*Topic) {
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].ActivityTime().After(topics[j].ActivityTime())
	})
}

// MostRecentTopic returns the most-recently-active topic, or nil for an
// empty slice.
func MostRecentTopic(topics []*Topic) *Topic {
	var best *Topic
	for _, t := range topics {
		if best == nil || t.ActivityTime().After(best.ActivityTime()) {
			best = t
		}
	}
	return best
}

package biz

import (
	"context"

	"github.com/lk2023060901/ai-session-backend/internal/session/types"
)

// EntityLoader resolves assistant and topic ids to fully hydrated entities.
// Hydration fills an assistant's Topics cache from durable storage, ordered
// most-recently-active first.
type EntityLoader struct {
	assistants AssistantRepo
	topics     TopicRepo
}

// NewEntityLoader creates a new entity loader
func NewEntityLoader(assistants AssistantRepo, topics TopicRepo) *EntityLoader {
	return &EntityLoader{
		assistants: assistants,
		topics:     topics,
	}
}

// LoadAssistant returns the assistant with its Topics cache hydrated and
// sorted by recency. TopicIDs stays as stored; the hydrated cache and the
// membership list can legitimately disagree until reconciliation settles.
func (l *EntityLoader) LoadAssistant(ctx context.Context, id string) (*types.Assistant, error) {
	assistant, err := l.assistants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	topics, err := l.LoadTopics(ctx, assistant.ID)
	if err != nil {
		return nil, err
	}

	assistant.Topics = topics
	return assistant, nil
}

// LoadTopics returns an assistant's topics sorted most-recently-active first
func (l *EntityLoader) LoadTopics(ctx context.Context, assistantID string) ([]*types.Topic, error) {
	topics, err := l.topics.ListByAssistant(ctx, assistantID)
	if err != nil {
		return nil, err
	}

	types.SortTopicsByActivity(topics)
	return topics, nil
}

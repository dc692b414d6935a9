package biz

import (
	"context"
	"time"

	"github.com/lk2023060901/ai-session-backend/internal/session/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultAssistantName = "Default Assistant"
	defaultTopicName     = "Default Topic"
)

// DefaultProvisioner creates minimally valid default assistants and topics
type DefaultProvisioner struct {
	assistants AssistantRepo
	topics     TopicRepo
	logger     *zap.Logger
}

// NewDefaultProvisioner creates a new default provisioner
func NewDefaultProvisioner(assistants AssistantRepo, topics TopicRepo, logger *zap.Logger) *DefaultProvisioner {
	return &DefaultProvisioner{
		assistants: assistants,
		topics:     topics,
		logger:     logger,
	}
}

// CreateDefaultTopic creates and persists one default topic owned by the
// given assistant. Updating the assistant's membership list is the caller's
// responsibility.
func (p *DefaultProvisioner) CreateDefaultTopic(ctx context.Context, assistantID string) (*types.Topic, error) {
	now := time.Now()
	topic := &types.Topic{
		ID:          uuid.New().String(),
		AssistantID: assistantID,
		Name:        defaultTopicName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := p.topics.Create(ctx, topic); err != nil {
		return nil, err
	}

	p.logger.Info("provisioned default topic",
		zap.String("topic_id", topic.ID),
		zap.String("assistant_id", assistantID))

	return topic, nil
}

// InitializeDefaultAssistants bootstraps a single default assistant carrying
// one default topic, persisting both.
func (p *DefaultProvisioner) InitializeDefaultAssistants(ctx context.Context) ([]*types.Assistant, error) {
	now := time.Now()

	assistantID := uuid.New().String()
	topic := &types.Topic{
		ID:          uuid.New().String(),
		AssistantID: assistantID,
		Name:        defaultTopicName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	assistant := &types.Assistant{
		ID:        assistantID,
		Name:      defaultAssistantName,
		Emoji:     "⭐",
		TopicIDs:  []string{topic.ID},
		Topics:    []*types.Topic{topic},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := p.assistants.Create(ctx, assistant); err != nil {
		return nil, err
	}
	if err := p.topics.Create(ctx, topic); err != nil {
		return nil, err
	}

	p.logger.Info("provisioned default assistant",
		zap.String("assistant_id", assistant.ID),
		zap.String("topic_id", topic.ID))

	return []*types.Assistant{assistant}, nil
}

package biz

import (
	"context"

	"github.com/lk2023060901/ai-session-backend/internal/session/types"
)

// SettingKeyCurrentAssistant is the durable key holding the last-selected
// assistant id. Written only when a first/default assistant is chosen, read
// only when no in-memory selection exists.
const SettingKeyCurrentAssistant = "current_assistant_id"

// AssistantRepo defines the repository interface for assistant data operations
type AssistantRepo interface {
	Create(ctx context.Context, assistant *types.Assistant) error
	GetByID(ctx context.Context, id string) (*types.Assistant, error)
	List(ctx context.Context, filter *types.AssistantFilter) ([]*types.Assistant, error)
	Update(ctx context.Context, assistant *types.Assistant) error
}

// TopicRepo defines the interface for topic repository
type TopicRepo interface {
	Create(ctx context.Context, topic *types.Topic) error
	GetByID(ctx context.Context, id string) (*types.Topic, error)
	ListByAssistant(ctx context.Context, assistantID string) ([]*types.Topic, error)
	Update(ctx context.Context, topic *types.Topic) error
}

// SettingRepo defines the interface for the durable key-value settings store
type SettingRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string) error
}

// Provisioner manufactures minimally valid assistants and topics when none
// exist. Implementations persist what they create.
type Provisioner interface {
	// CreateDefaultTopic creates and persists one default topic owned by the
	// given assistant. It does not update the assistant record.
	CreateDefaultTopic(ctx context.Context, assistantID string) (*types.Topic, error)

	// InitializeDefaultAssistants bootstraps at least one default assistant,
	// each already carrying at least one topic.
	InitializeDefaultAssistants(ctx context.Context) ([]*types.Assistant, error)
}

package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/lk2023060901/ai-session-backend/internal/session/types"

	"github.com/google/uuid"
)

// AssistantUseCase contains business logic for assistant and topic operations
type AssistantUseCase struct {
	repo      AssistantRepo
	topicRepo TopicRepo
	loader    *EntityLoader
}

// NewAssistantUseCase creates a new assistant use case
func NewAssistantUseCase(repo AssistantRepo, topicRepo TopicRepo, loader *EntityLoader) *AssistantUseCase {
	return &AssistantUseCase{
		repo:      repo,
		topicRepo: topicRepo,
		loader:    loader,
	}
}

// CreateAssistant creates a new assistant with one default topic attached
func (uc *AssistantUseCase) CreateAssistant(ctx context.Context, req *CreateAssistantRequest) (*types.Assistant, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

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
		Name:      req.Name,
		Emoji:     req.Emoji,
		Prompt:    req.Prompt,
		TopicIDs:  []string{topic.ID},
		Topics:    []*types.Topic{topic},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.repo.Create(ctx, assistant); err != nil {
		return nil, err
	}
	if err := uc.topicRepo.Create(ctx, topic); err != nil {
		return nil, err
	}

	return assistant, nil
}

// GetAssistant retrieves an assistant by ID with its topics hydrated
func (uc *AssistantUseCase) GetAssistant(ctx context.Context, id string) (*types.Assistant, error) {
	return uc.loader.LoadAssistant(ctx, id)
}

// ListAssistants lists assistants with optional filtering
func (uc *AssistantUseCase) ListAssistants(ctx context.Context, filter *types.AssistantFilter) ([]*types.Assistant, error) {
	return uc.repo.List(ctx, filter)
}

// CreateTopic creates a new topic and records it in the owning assistant's
// membership list
func (uc *AssistantUseCase) CreateTopic(ctx context.Context, assistantID, name string) (*types.Topic, error) {
	if assistantID == "" {
		return nil, fmt.Errorf("assistant ID is required")
	}
	if name == "" {
		name = "New Topic"
	}

	assistant, err := uc.repo.GetByID(ctx, assistantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	topic := &types.Topic{
		ID:          uuid.New().String(),
		AssistantID: assistantID,
		Name:        name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.topicRepo.Create(ctx, topic); err != nil {
		return nil, err
	}

	assistant.TopicIDs = append(assistant.TopicIDs, topic.ID)
	assistant.UpdatedAt = now
	if err := uc.repo.Update(ctx, assistant); err != nil {
		return nil, err
	}

	return topic, nil
}

// TouchTopic records activity on a topic, bumping its recency ordering
func (uc *AssistantUseCase) TouchTopic(ctx context.Context, id string) error {
	topic, err := uc.topicRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	topic.LastMessageAt = now
	topic.UpdatedAt = now

	return uc.topicRepo.Update(ctx, topic)
}

// CreateAssistantRequest represents a request to create an assistant
type CreateAssistantRequest struct {
	Name   string `json:"name" binding:"required"`
	Emoji  string `json:"emoji"`
	Prompt string `json:"prompt"`
}

// Validate validates the create assistant request
func (r *CreateAssistantRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

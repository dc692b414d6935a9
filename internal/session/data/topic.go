package data

import (
	"context"
	"errors"
	"time"

	"github.com/lk2023060901/ai-session-backend/internal/session/models"
	"github.com/lk2023060901/ai-session-backend/internal/session/types"

	apperrors "github.com/lk2023060901/ai-session-backend/internal/pkg/errors"
	"gorm.io/gorm"
)

// TopicRepo implements the topic repository using GORM
type TopicRepo struct {
	db *gorm.DB
}

// NewTopicRepo creates a new topic repository
func NewTopicRepo(db *gorm.DB) *TopicRepo {
	return &TopicRepo{db: db}
}

// Create creates a new topic
func (r *TopicRepo) Create(ctx context.Context, topic *types.Topic) error {
	model := r.toModel(topic)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.NewStorageWriteError(err, "create topic")
	}
	return nil
}

// GetByID retrieves a topic by ID
func (r *TopicRepo) GetByID(ctx context.Context, id string) (*types.Topic, error) {
	var model models.Topic
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrTopicNotFound, id)
		}
		return nil, apperrors.NewStorageReadError(err, "get topic")
	}

	return r.toDomain(&model), nil
}

// ListByAssistant lists all topics for an assistant. The base order is
// insertion order; recency ordering is applied by the loader because the
// recency key falls back across several nullable timestamps.
func (r *TopicRepo) ListByAssistant(ctx context.Context, assistantID string) ([]*types.Topic, error) {
	var modelList []models.Topic
	if err := r.db.WithContext(ctx).
		Where("assistant_id = ?", assistantID).
		Order("created_at ASC").
		Find(&modelList).Error; err != nil {
		return nil, apperrors.NewStorageReadError(err, "list topics")
	}

	topics := make([]*types.Topic, 0, len(modelList))
	for i := range modelList {
		topics = append(topics, r.toDomain(&modelList[i]))
	}

	return topics, nil
}

// Update updates an existing topic
func (r *TopicRepo) Update(ctx context.Context, topic *types.Topic) error {
	model := r.toModel(topic)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return apperrors.NewStorageWriteError(err, "update topic")
	}
	return nil
}

// toModel converts domain topic to GORM model
func (r *TopicRepo) toModel(topic *types.Topic) *models.Topic {
	var lastMessageAt *time.Time
	if !topic.LastMessageAt.IsZero() {
		t := topic.LastMessageAt
		lastMessageAt = &t
	}

	return &models.Topic{
		ID:            topic.ID,
		AssistantID:   topic.AssistantID,
		Name:          topic.Name,
		CreatedAt:     topic.CreatedAt,
		UpdatedAt:     topic.UpdatedAt,
		LastMessageAt: lastMessageAt,
	}
}

// toDomain converts GORM model to domain topic
func (r *TopicRepo) toDomain(model *models.Topic) *types.Topic {
	topic := &types.Topic{
		ID:          model.ID,
		AssistantID: model.AssistantID,
		Name:        model.Name,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	if model.LastMessageAt != nil {
		topic.LastMessageAt = *model.LastMessageAt
	}
	return topic
}

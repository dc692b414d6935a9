package data

import (
	"context"
	"errors"

	"github.com/lk2023060901/ai-session-backend/internal/session/models"
	"github.com/lk2023060901/ai-session-backend/internal/session/types"

	apperrors "github.com/lk2023060901/ai-session-backend/internal/pkg/errors"
	"gorm.io/gorm"
)

// AssistantRepo implements the assistant repository using GORM
type AssistantRepo struct {
	db *gorm.DB
}

// NewAssistantRepo creates a new assistant repository
func NewAssistantRepo(db *gorm.DB) *AssistantRepo {
	return &AssistantRepo{db: db}
}

// Create creates a new assistant
func (r *AssistantRepo) Create(ctx context.Context, assistant *types.Assistant) error {
	model := r.toModel(assistant)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.NewStorageWriteError(err, "create assistant")
	}
	return nil
}

// GetByID retrieves an assistant by ID
func (r *AssistantRepo) GetByID(ctx context.Context, id string) (*types.Assistant, error) {
	var model models.Assistant
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrAssistantNotFound, id)
		}
		return nil, apperrors.NewStorageReadError(err, "get assistant")
	}

	return r.toDomain(&model), nil
}

// List lists assistants in collection order (oldest first) with optional filtering
func (r *AssistantRepo) List(ctx context.Context, filter *types.AssistantFilter) ([]*types.Assistant, error) {
	query := r.db.WithContext(ctx).Model(&models.Assistant{})

	if filter != nil && filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		query = query.Where("name LIKE ?", keyword)
	}

	var modelList []models.Assistant
	if err := query.Order("created_at ASC").Find(&modelList).Error; err != nil {
		return nil, apperrors.NewStorageReadError(err, "list assistants")
	}

	assistants := make([]*types.Assistant, 0, len(modelList))
	for i := range modelList {
		assistants = append(assistants, r.toDomain(&modelList[i]))
	}

	return assistants, nil
}

// Update updates an existing assistant
func (r *AssistantRepo) Update(ctx context.Context, assistant *types.Assistant) error {
	model := r.toModel(assistant)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return apperrors.NewStorageWriteError(err, "update assistant")
	}
	return nil
}

// toModel converts domain assistant to GORM model
func (r *AssistantRepo) toModel(assistant *types.Assistant) *models.Assistant {
	return &models.Assistant{
		ID:        assistant.ID,
		Name:      assistant.Name,
		Emoji:     assistant.Emoji,
		Prompt:    assistant.Prompt,
		TopicIDs:  models.StringArray(assistant.TopicIDs),
		CreatedAt: assistant.CreatedAt,
		UpdatedAt: assistant.UpdatedAt,
	}
}

// toDomain converts GORM model to domain assistant. The hydrated Topics cache
// is not stored, so it is always empty here.
func (r *AssistantRepo) toDomain(model *models.Assistant) *types.Assistant {
	return &types.Assistant{
		ID:        model.ID,
		Name:      model.Name,
		Emoji:     model.Emoji,
		Prompt:    model.Prompt,
		TopicIDs:  []string(model.TopicIDs),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

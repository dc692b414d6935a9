package data

import (
	"context"
	"errors"
	"time"

	"github.com/lk2023060901/ai-session-backend/internal/session/models"

	apperrors "github.com/lk2023060901/ai-session-backend/internal/pkg/errors"
	"gorm.io/gorm"
)

// SettingRepo implements the key-value setting repository using GORM
type SettingRepo struct {
	db *gorm.DB
}

// NewSettingRepo creates a new setting repository
func NewSettingRepo(db *gorm.DB) *SettingRepo {
	return &SettingRepo{db: db}
}

// Get retrieves a setting value by key
func (r *SettingRepo) Get(ctx context.Context, key string) (string, error) {
	var model models.Setting
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.New(apperrors.ErrSettingNotFound, key)
		}
		return "", apperrors.NewStorageReadError(err, "get setting")
	}

	return model.Value, nil
}

// Save stores a setting value under key, overwriting any previous value
func (r *SettingRepo) Save(ctx context.Context, key, value string) error {
	model := models.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return apperrors.NewStorageWriteError(err, "save setting")
	}
	return nil
}

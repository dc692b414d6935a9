package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Assistant is the GORM model for assistants table
type Assistant struct {
	ID     string `gorm:"primaryKey;type:varchar(36)"`
	Name   string `gorm:"type:varchar(255);not null"`
	Emoji  string `gorm:"type:varchar(10)"`
	Prompt string `gorm:"type:text"`

	TopicIDs StringArray `gorm:"type:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name
func (Assistant) TableName() string {
	return "assistants"
}

// Topic is the GORM model for topics table
type Topic struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	AssistantID string `gorm:"type:varchar(36);not null;index"`
	Name        string `gorm:"type:varchar(255);not null"`

	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastMessageAt *time.Time     `gorm:"index"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name
func (Topic) TableName() string {
	return "topics"
}

// Setting is the GORM model for the key-value settings table
type Setting struct {
	Key       string `gorm:"primaryKey;type:varchar(64)"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName specifies the table name
func (Setting) TableName() string {
	return "settings"
}

// StringArray is a custom type for string slice stored as JSON
type StringArray []string

// Scan implements sql.Scanner interface
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// Value implements driver.Valuer interface
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

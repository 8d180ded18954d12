package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type SavedLinkModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	ContentID string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"content_id"`
	PlayURL   string    `gorm:"type:varchar(500)" json:"play_url"`
	HDPlayURL string    `gorm:"type:varchar(500)" json:"hd_play_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (SavedLinkModel) TableName() string {
	return "saved_links"
}

func (m *SavedLinkModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type CreatorLinkModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	Username  string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_creator_links_pair" json:"username"`
	ContentID string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_creator_links_pair" json:"content_id"`
	PlayURL   string         `gorm:"type:varchar(500)" json:"play_url"`
	HDPlayURL string         `gorm:"type:varchar(500)" json:"hd_play_url"`
	Images    pq.StringArray `gorm:"type:text[]" json:"images"`
	CreatedAt time.Time      `json:"created_at"`
}

func (CreatorLinkModel) TableName() string {
	return "creator_links"
}

func (m *CreatorLinkModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

package model

import "github.com/lib/pq"

// PostModel rows keep an autoincrementing seq so that insertion order is an
// explicit, stable ordering rule rather than incidental iteration order.
type PostModel struct {
	Seq       int64          `gorm:"primaryKey;autoIncrement" json:"seq"`
	ContentID string         `gorm:"type:varchar(64);not null;uniqueIndex" json:"content_id"`
	Username  string         `gorm:"type:varchar(255);not null;index" json:"username"`
	Caption   string         `gorm:"type:text" json:"caption"`
	Cover     string         `gorm:"type:varchar(500)" json:"cover"`
	PlayURL   string         `gorm:"type:varchar(500)" json:"play_url"`
	PlayCount int            `gorm:"default:0" json:"play_count"`
	Images    pq.StringArray `gorm:"type:text[]" json:"images"`
}

func (PostModel) TableName() string {
	return "posts"
}

package model

import "time"

type CreatorModel struct {
	Username  string    `gorm:"type:varchar(255);primary_key" json:"username"`
	Avatar    string    `gorm:"type:varchar(500)" json:"avatar"`
	FetchedAt time.Time `json:"fetched_at"`
}

func (CreatorModel) TableName() string {
	return "creators"
}

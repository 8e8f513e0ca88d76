package model

import (
	"time"

	"github.com/google/uuid"
)

type Subscriber struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"` // one row per user
	Email            string    `gorm:"type:varchar(255);not null"`
	StripeCustomerId *string   `gorm:"type:varchar(255);index"`
	Subscribed       bool      `gorm:"default:false"`
	SubscriptionTier string    `gorm:"type:varchar(50);not null;default:'free'"`
	SubscriptionEnd  *time.Time
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Subscriber) TableName() string {
	return "subscribers"
}

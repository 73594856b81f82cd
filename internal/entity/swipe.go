package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SwipeType string

const (
	SwipePass SwipeType = "PASS"
	SwipeLike SwipeType = "LIKE"
)

func (s SwipeType) IsValid() bool {
	return s == SwipePass || s == SwipeLike
}

// SwipeActivity is an append-only record of one swipe. Rows are never
// updated after insert; cleanup happens through soft deletes only.
type SwipeActivity struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	SwipedUserID uuid.UUID      `gorm:"column:swiped_user_id;type:uuid;not null;index" json:"swiped_user_id"`
	SwipeType    SwipeType      `gorm:"column:swipe_type;type:varchar(10);not null;default:PASS" json:"swipe_type"`
	CreatedAt    time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at" json:"-"`
}

func (SwipeActivity) TableName() string {
	return "user_swipe_activities"
}

func (a *SwipeActivity) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

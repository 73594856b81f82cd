package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Match records a mutual like. The swiping user is always written as User1,
// the swiped user as User2, and unique_match_user is keyed on that ordered
// pair. Two users matching from opposite directions can therefore produce
// two distinct rows; the constraint only stops same-direction duplicates.
type Match struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	User1ID   uuid.UUID      `gorm:"column:user1_id;type:uuid;not null;uniqueIndex:unique_match_user" json:"user1_id"`
	User2ID   uuid.UUID      `gorm:"column:user2_id;type:uuid;not null;uniqueIndex:unique_match_user" json:"user2_id"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at" json:"-"`
}

func (Match) TableName() string {
	return "matches"
}

func (m *Match) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

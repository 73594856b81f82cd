package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SexType string

const (
	SexMale   SexType = "MALE"
	SexFemale SexType = "FEMALE"
)

// Opposite returns the sex of the dating pool shown to a user.
func (s SexType) Opposite() SexType {
	if s == SexMale {
		return SexFemale
	}
	return SexMale
}

func (s SexType) IsValid() bool {
	return s == SexMale || s == SexFemale
}

type AccountType string

const (
	AccountFree    AccountType = "FREE"
	AccountPremium AccountType = "PREMIUM"
)

// TODO Refactor premium to use a payment transaction table
type User struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email           string         `gorm:"column:email;unique;not null" json:"email"`
	Phone           *string        `gorm:"column:phone;unique" json:"phone,omitempty"`
	Name            string         `gorm:"column:name;not null" json:"name"`
	Sex             SexType        `gorm:"column:sex;type:varchar(10);not null;default:MALE" json:"sex"`
	AccountType     AccountType    `gorm:"column:account_type;type:varchar(10);not null;default:FREE" json:"account_type"`
	Password        string         `gorm:"column:password;not null" json:"-"`
	DailySwipeCount int            `gorm:"column:daily_swipe_count;not null;default:0" json:"daily_swipe_count"`
	LastSwipeDate   *time.Time     `gorm:"column:last_swipe_date;type:date" json:"last_swipe_date,omitempty"`
	UpgradedAt      *time.Time     `gorm:"column:upgraded_at" json:"-"`
	CreatedAt       time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsPremium() bool {
	return u.AccountType == AccountPremium
}

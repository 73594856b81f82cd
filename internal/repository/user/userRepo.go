package userRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mdating/mdating-backend/internal/entity"
	"gorm.io/gorm"
)

// Methods that take a tx handle participate in the caller's transaction;
// passing nil runs them on the repo's own connection.
type IUserRepo interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUserByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*entity.User, error)
	GetUserByEmailOrPhone(ctx context.Context, email string, phone *string) (*entity.User, error)
	UpdateSwipeQuota(ctx context.Context, tx *gorm.DB, id uuid.UUID, count int, swipeDate time.Time) error
	Save(ctx context.Context, user *entity.User) (*entity.User, error)
	FindCandidates(ctx context.Context, sex entity.SexType, excludeIDs []uuid.UUID, offset, limit int) ([]entity.User, int64, error)
}

type UserRepo struct {
	db *gorm.DB
}

func New(db *gorm.DB) IUserRepo {
	return &UserRepo{
		db: db,
	}
}

func (r *UserRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *UserRepo) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	result := r.db.WithContext(ctx).Create(user)
	return user, result.Error
}

func (r *UserRepo) GetUserByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	result := r.conn(tx).WithContext(ctx).Where("id = ?", id).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepo) GetUserByEmailOrPhone(ctx context.Context, email string, phone *string) (*entity.User, error) {
	var user entity.User
	query := r.db.WithContext(ctx).Where("email = ?", email)
	if phone != nil {
		query = query.Or("phone = ?", *phone)
	}
	result := query.First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepo) UpdateSwipeQuota(ctx context.Context, tx *gorm.DB, id uuid.UUID, count int, swipeDate time.Time) error {
	return r.conn(tx).WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"daily_swipe_count": count,
			"last_swipe_date":   swipeDate,
		}).Error
}

func (r *UserRepo) Save(ctx context.Context, user *entity.User) (*entity.User, error) {
	result := r.db.WithContext(ctx).Save(user)
	return user, result.Error
}

// FindCandidates pages through the dating pool of the given sex, skipping
// excluded IDs, and returns the page plus the unpaginated total. Ordering is
// fixed so pages stay consistent across calls absent new data.
func (r *UserRepo) FindCandidates(ctx context.Context, sex entity.SexType, excludeIDs []uuid.UUID, offset, limit int) ([]entity.User, int64, error) {
	var total int64

	countQuery := r.db.WithContext(ctx).Model(&entity.User{}).Where("sex = ?", sex)
	if len(excludeIDs) > 0 {
		countQuery = countQuery.Where("id NOT IN ?", excludeIDs)
	}
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	query := r.db.WithContext(ctx).Model(&entity.User{}).Where("sex = ?", sex)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}
	result := query.
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&users)

	return users, total, result.Error
}

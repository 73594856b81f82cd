package swipeRepo

import (
	"context"
	"time"

	"github.com/go-redis/redis"
	"github.com/google/uuid"
	"github.com/mdating/mdating-backend/internal/entity"
	"gorm.io/gorm"
)

type ISwipeRepo interface {
	// CreateActivity inserts one immutable swipe row within the caller's
	// transaction scope.
	CreateActivity(ctx context.Context, tx *gorm.DB, userID, swipedUserID uuid.UUID, swipeType entity.SwipeType) (*entity.SwipeActivity, error)

	// HasLikedBack reports whether userID has recorded a LIKE toward
	// swipedUserID. Soft-deleted rows are excluded.
	HasLikedBack(ctx context.Context, tx *gorm.DB, userID, swipedUserID uuid.UUID) (bool, error)

	// TodaySwipedIDs returns the targets userID swiped since local
	// midnight. Reads the Redis set first, falls back to the database.
	// The set is only ever kept when it is known to be complete; any
	// failed write drops the key so the next read rebuilds it.
	TodaySwipedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// CacheSwipedToday appends a target to the user's same-day swipe set
	// when the set exists. Called only after the swipe transaction has
	// committed; an absent key is left absent so the database stays the
	// source of the next rebuild.
	CacheSwipedToday(ctx context.Context, userID, swipedUserID uuid.UUID) error
}

type SwipeRepo struct {
	db  *gorm.DB
	rdb *redis.Client
}

func New(db *gorm.DB, rdb *redis.Client) ISwipeRepo {
	return &SwipeRepo{
		db:  db,
		rdb: rdb,
	}
}

func (r *SwipeRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *SwipeRepo) CreateActivity(ctx context.Context, tx *gorm.DB, userID, swipedUserID uuid.UUID, swipeType entity.SwipeType) (*entity.SwipeActivity, error) {
	activity := entity.SwipeActivity{
		UserID:       userID,
		SwipedUserID: swipedUserID,
		SwipeType:    swipeType,
	}

	result := r.conn(tx).WithContext(ctx).Create(&activity)
	if result.Error != nil {
		return nil, result.Error
	}
	return &activity, nil
}

func (r *SwipeRepo) HasLikedBack(ctx context.Context, tx *gorm.DB, userID, swipedUserID uuid.UUID) (bool, error) {
	var count int64
	result := r.conn(tx).WithContext(ctx).
		Model(&entity.SwipeActivity{}).
		Where("user_id = ? AND swiped_user_id = ? AND swipe_type = ?", userID, swipedUserID, entity.SwipeLike).
		Count(&count)

	return count > 0, result.Error
}

func (r *SwipeRepo) TodaySwipedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	key := swipedTodayKey(userID)

	exists, err := r.rdb.Exists(key).Result()
	if err != nil {
		return nil, err
	}

	if exists == 0 {
		ids, err := r.getTodaySwipedIDsFromDB(ctx, userID)
		if err != nil {
			return nil, err
		}

		if len(ids) > 0 {
			members := make([]interface{}, 0, len(ids))
			for _, id := range ids {
				members = append(members, id.String())
			}
			// A half-written set would serve incomplete exclusions for
			// the rest of the day, so drop the key on any failure and
			// let the next read rebuild it.
			if err := r.rdb.SAdd(key, members...).Err(); err != nil {
				r.rdb.Del(key)
				return ids, nil
			}
			if err := r.rdb.Expire(key, untilMidnight(time.Now())).Err(); err != nil {
				r.rdb.Del(key)
			}
		}

		return ids, nil
	}

	var members []string
	if err := r.rdb.SMembers(key).ScanSlice(&members); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, member := range members {
		id, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *SwipeRepo) CacheSwipedToday(ctx context.Context, userID, swipedUserID uuid.UUID) error {
	key := swipedTodayKey(userID)

	exists, err := r.rdb.Exists(key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		// No set to extend. Creating one here would start it from this
		// single member and hide every earlier swipe of the day.
		return nil
	}

	if err := r.rdb.SAdd(key, swipedUserID.String()).Err(); err != nil {
		r.rdb.Del(key)
		return err
	}
	if err := r.rdb.Expire(key, untilMidnight(time.Now())).Err(); err != nil {
		r.rdb.Del(key)
		return err
	}
	return nil
}

// Private functions

func (r *SwipeRepo) getTodaySwipedIDsFromDB(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	result := r.db.WithContext(ctx).
		Model(&entity.SwipeActivity{}).
		Where("user_id = ? AND created_at >= ?", userID, startOfDay(time.Now())).
		Pluck("swiped_user_id", &ids)

	return ids, result.Error
}

// Helper

func swipedTodayKey(userID uuid.UUID) string {
	return ":user:" + userID.String() + ":swiped:today"
}

func startOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func untilMidnight(now time.Time) time.Duration {
	return startOfDay(now).AddDate(0, 0, 1).Sub(now)
}

package matchRepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/mdating/mdating-backend/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IMatchRepo interface {
	// CreateMatch inserts a match row with user1 = the swiping user and
	// user2 = the swiped user, within the caller's transaction scope.
	// The insert is ON CONFLICT DO NOTHING: losing the unique_match_user
	// race must not abort the surrounding transaction, so an existing
	// row reports created = false instead of an error.
	CreateMatch(ctx context.Context, tx *gorm.DB, user1ID, user2ID uuid.UUID) (*entity.Match, bool, error)

	// FindByUsers returns the match rows between two users, checked in
	// both insertion orders.
	FindByUsers(ctx context.Context, userID, otherUserID uuid.UUID) ([]entity.Match, error)
}

type MatchRepo struct {
	db *gorm.DB
}

func New(db *gorm.DB) IMatchRepo {
	return &MatchRepo{
		db: db,
	}
}

func (r *MatchRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *MatchRepo) CreateMatch(ctx context.Context, tx *gorm.DB, user1ID, user2ID uuid.UUID) (*entity.Match, bool, error) {
	match := entity.Match{
		User1ID: user1ID,
		User2ID: user2ID,
	}

	result := r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
			DoNothing: true,
		}).
		Create(&match)
	if result.Error != nil {
		return nil, false, result.Error
	}
	return &match, result.RowsAffected > 0, nil
}

func (r *MatchRepo) FindByUsers(ctx context.Context, userID, otherUserID uuid.UUID) ([]entity.Match, error) {
	var matches []entity.Match
	result := r.db.WithContext(ctx).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
			userID, otherUserID, otherUserID, userID).
		Find(&matches)

	return matches, result.Error
}

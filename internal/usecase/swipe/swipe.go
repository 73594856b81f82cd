package swipe

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mdating/mdating-backend/internal/entity"
	matchRepo "github.com/mdating/mdating-backend/internal/repository/match"
	swipeRepo "github.com/mdating/mdating-backend/internal/repository/swipe"
	userRepo "github.com/mdating/mdating-backend/internal/repository/user"
	"gorm.io/gorm"
)

const (
	MessageMatch    = "It's a match! Both users liked each other."
	MessageRecorded = "Swipe recorded successfully."
)

type ISwipeUseCase interface {
	Swipe(ctx context.Context, userID uuid.UUID, request entity.SwipeRequest) (*entity.SwipeResponse, error)
	ListCandidates(ctx context.Context, userID uuid.UUID, page, limit int) (*entity.SwipeListResponse, error)
}

// txRunner owns the unit of work for one swipe call. Satisfied by gorm's
// Transaction; faked in tests.
type txRunner interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type swipeUseCase struct {
	tx        txRunner
	userRepo  userRepo.IUserRepo
	swipeRepo swipeRepo.ISwipeRepo
	matchRepo matchRepo.IMatchRepo
	now       func() time.Time
}

func New(db *gorm.DB, userRepo userRepo.IUserRepo, swipeRepo swipeRepo.ISwipeRepo, matchRepo matchRepo.IMatchRepo) ISwipeUseCase {
	return &swipeUseCase{
		tx:        gormTxRunner{db: db},
		userRepo:  userRepo,
		swipeRepo: swipeRepo,
		matchRepo: matchRepo,
		now:       time.Now,
	}
}

// Swipe records one swipe inside a single transaction: load the actor,
// enforce the daily quota, capture reciprocity before writing the new row,
// insert the swipe, create a match when both directions are LIKE, and bump
// the actor's daily counters. Either every step commits or none does.
func (u *swipeUseCase) Swipe(ctx context.Context, userID uuid.UUID, request entity.SwipeRequest) (*entity.SwipeResponse, error) {
	swipedUserID, err := uuid.Parse(request.SwipedUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: swiped user", entity.ErrNotFound)
	}

	now := u.now()
	isMatch := false

	err = u.tx.Transaction(ctx, func(tx *gorm.DB) error {
		user, err := u.userRepo.GetUserByID(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %s", entity.ErrNotFound, userID)
			}
			return err
		}

		allowed, newCount := EvaluateQuota(user.AccountType, user.DailySwipeCount, user.LastSwipeDate, now)
		if !allowed {
			return fmt.Errorf("%w: daily swipe limit of 10 swipes for free accounts", entity.ErrQuotaExceeded)
		}

		// Reciprocity is read before the new row is written, so the
		// result is independent of the swipe being recorded here.
		likedBack, err := u.swipeRepo.HasLikedBack(ctx, tx, swipedUserID, userID)
		if err != nil {
			return err
		}

		if _, err := u.swipeRepo.CreateActivity(ctx, tx, userID, swipedUserID, request.SwipeType); err != nil {
			return err
		}

		if request.SwipeType == entity.SwipeLike && likedBack {
			// The insert does nothing on conflict, so a swipe that lost
			// the race or repeats an earlier mutual like lands here with
			// the match already in place and the transaction still live.
			if _, _, err := u.matchRepo.CreateMatch(ctx, tx, userID, swipedUserID); err != nil {
				return err
			}
			isMatch = true
		}

		return u.userRepo.UpdateSwipeQuota(ctx, tx, userID, newCount, now)
	})

	if err != nil {
		if errors.Is(err, entity.ErrNotFound) || errors.Is(err, entity.ErrQuotaExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to record swipe activity: %w", entity.ErrTransactionFailure, err)
	}

	if cacheErr := u.swipeRepo.CacheSwipedToday(ctx, userID, swipedUserID); cacheErr != nil {
		log.Println("error caching swiped profile:", cacheErr)
	}

	message := MessageRecorded
	if isMatch {
		message = MessageMatch
	}

	return &entity.SwipeResponse{
		IsMatch: isMatch,
		Message: message,
	}, nil
}

// ListCandidates returns a page of opposite-sex profiles the user has not
// swiped today. Targets swiped on a previous day become visible again.
func (u *swipeUseCase) ListCandidates(ctx context.Context, userID uuid.UUID, page, limit int) (*entity.SwipeListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	user, err := u.userRepo.GetUserByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", entity.ErrNotFound, userID)
		}
		return nil, err
	}

	swipedToday, err := u.swipeRepo.TodaySwipedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	excludeIDs := append(swipedToday, userID)

	candidates, total, err := u.userRepo.FindCandidates(ctx, user.Sex.Opposite(), excludeIDs, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	totalPage := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPage++
	}

	return &entity.SwipeListResponse{
		SwipeList: candidates,
		Page:      page,
		Limit:     limit,
		Total:     total,
		TotalPage: totalPage,
	}, nil
}

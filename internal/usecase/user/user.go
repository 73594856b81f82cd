package userUseCase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mdating/mdating-backend/internal/entity"
	userRepo "github.com/mdating/mdating-backend/internal/repository/user"
	"gorm.io/gorm"
)

type IUserUseCase interface {
	UpgradeToPremium(ctx context.Context, userID uuid.UUID, phone string) (*entity.User, error)
}

type userUseCase struct {
	userRepo userRepo.IUserRepo
}

func New(userRepo userRepo.IUserRepo) IUserUseCase {
	return &userUseCase{
		userRepo: userRepo,
	}
}

func (u *userUseCase) UpgradeToPremium(ctx context.Context, userID uuid.UUID, phone string) (*entity.User, error) {
	user, err := u.userRepo.GetUserByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", entity.ErrNotFound, userID)
		}
		return nil, err
	}

	if user.IsPremium() {
		return nil, fmt.Errorf("%w: user is already a premium member", entity.ErrAlreadyExists)
	}

	now := time.Now()
	user.AccountType = entity.AccountPremium
	user.Phone = &phone
	user.UpgradedAt = &now

	return u.userRepo.Save(ctx, user)
}

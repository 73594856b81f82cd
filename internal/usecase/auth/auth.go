package authUseCase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mdating/mdating-backend/internal/entity"
	userRepo "github.com/mdating/mdating-backend/internal/repository/user"
	"github.com/mdating/mdating-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type IAuthUseCase interface {
	SignUp(ctx context.Context, request entity.SignUpRequest) (*entity.User, error)
	SignIn(ctx context.Context, email, password string) (string, error)
}

type authUseCase struct {
	userRepo userRepo.IUserRepo
}

func New(userRepo userRepo.IUserRepo) IAuthUseCase {
	return &authUseCase{
		userRepo: userRepo,
	}
}

func (u *authUseCase) SignUp(ctx context.Context, request entity.SignUpRequest) (*entity.User, error) {
	existing, err := u.userRepo.GetUserByEmailOrPhone(ctx, request.Email, request.Phone)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email is already in use", entity.ErrAlreadyExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password+request.Email), 12)
	if err != nil {
		return nil, err
	}

	user := entity.User{
		Name:        request.Name,
		Email:       request.Email,
		Phone:       request.Phone,
		Password:    string(hashedPassword),
		Sex:         request.Sex,
		AccountType: entity.AccountFree,
	}

	created, err := u.userRepo.CreateUser(ctx, &user)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email is already in use", entity.ErrAlreadyExists)
		}
		return nil, err
	}
	return created, nil
}

func (u *authUseCase) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := u.userRepo.GetUserByEmailOrPhone(ctx, email, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: user", entity.ErrNotFound)
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password+user.Email)); err != nil {
		return "", err
	}

	return jwt.CreateToken(user.ID.String(), user.Email)
}

package entity

import (
	"context"
	"regexp"

	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type SignUpRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Password string  `json:"password"`
	Sex      SexType `json:"sex"`
}

func (r *SignUpRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if r.Name == "" {
		problems["Name"] = append(problems["Name"], "Name is required")
	}

	if r.Email == "" {
		problems["Email"] = append(problems["Email"], "Email is required")
	} else if !emailRegex.MatchString(r.Email) {
		problems["Email"] = append(problems["Email"], "Invalid email format")
	}

	if r.Password == "" {
		problems["Password"] = append(problems["Password"], "Password is required")
	}

	if len([]byte(r.Password)) > 72 {
		problems["Password"] = append(problems["Password"], "Password length should not exceed 72 bytes")
	}

	if !r.Sex.IsValid() {
		problems["Sex"] = append(problems["Sex"], "Sex must be MALE or FEMALE")
	}

	return problems
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SignInRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if r.Email == "" {
		problems["Email"] = append(problems["Email"], "Email is required")
	} else if !emailRegex.MatchString(r.Email) {
		problems["Email"] = append(problems["Email"], "Invalid email format")
	}

	if r.Password == "" {
		problems["Password"] = append(problems["Password"], "Password is required")
	}

	return problems
}

type SwipeRequest struct {
	SwipedUserID string    `json:"swiped_user_id"`
	SwipeType    SwipeType `json:"swipe_type"`
}

func (r *SwipeRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if r.SwipedUserID == "" {
		problems["SwipedUserID"] = append(problems["SwipedUserID"], "SwipedUserID is required")
	} else if _, err := uuid.Parse(r.SwipedUserID); err != nil {
		problems["SwipedUserID"] = append(problems["SwipedUserID"], "SwipedUserID must be a valid UUID")
	}

	if !r.SwipeType.IsValid() {
		problems["SwipeType"] = append(problems["SwipeType"], "SwipeType must be PASS or LIKE")
	}

	return problems
}

type UpgradePremiumRequest struct {
	Phone string `json:"phone"`
}

func (r *UpgradePremiumRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if r.Phone == "" {
		problems["Phone"] = append(problems["Phone"], "Phone is required")
	}

	return problems
}

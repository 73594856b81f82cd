package entity

type SignUpResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SignInResponse struct {
	Token string `json:"token"`
}

type SwipeResponse struct {
	IsMatch bool   `json:"is_match"`
	Message string `json:"message"`
}

type SwipeListResponse struct {
	SwipeList []User `json:"swipe_list"`
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	Total     int64  `json:"total"`
	TotalPage int64  `json:"total_page"`
}

type UpgradePremiumResponse struct {
	ID          string      `json:"id"`
	AccountType AccountType `json:"account_type"`
}

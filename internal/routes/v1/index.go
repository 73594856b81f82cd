package routesV1

import (
	"github.com/labstack/echo"
	"github.com/mdating/mdating-backend/internal/middleware"
	userRepo "github.com/mdating/mdating-backend/internal/repository/user"
	routesV1Auth "github.com/mdating/mdating-backend/internal/routes/v1/auth"
	routesV1Swipe "github.com/mdating/mdating-backend/internal/routes/v1/swipe"
	routesV1User "github.com/mdating/mdating-backend/internal/routes/v1/user"
	authUseCase "github.com/mdating/mdating-backend/internal/usecase/auth"
	swipeUseCase "github.com/mdating/mdating-backend/internal/usecase/swipe"
	userUseCase "github.com/mdating/mdating-backend/internal/usecase/user"
)

func InitV1Routes(
	e *echo.Echo,
	users userRepo.IUserRepo,
	authCase authUseCase.IAuthUseCase,
	swipeCase swipeUseCase.ISwipeUseCase,
	userCase userUseCase.IUserUseCase,
) {
	v1 := e.Group("/v1")

	v1.POST("/auth/sign-up", func(c echo.Context) error {
		return routesV1Auth.SignUpHandler(c, authCase)
	})
	v1.POST("/auth/sign-in", func(c echo.Context) error {
		return routesV1Auth.SignInHandler(c, authCase)
	})

	authed := v1.Group("", middleware.JWTMiddleware(users))

	authed.POST("/swipe", func(c echo.Context) error {
		return routesV1Swipe.SwipeHandler(c, swipeCase)
	})
	authed.GET("/swipe", func(c echo.Context) error {
		return routesV1Swipe.ListHandler(c, swipeCase)
	})
	authed.POST("/user/upgrade", func(c echo.Context) error {
		return routesV1User.UpgradeHandler(c, userCase)
	})
}

package routesV1User

import (
	"errors"
	"net/http"

	"github.com/labstack/echo"
	"github.com/mdating/mdating-backend/internal/entity"
	userUseCase "github.com/mdating/mdating-backend/internal/usecase/user"
	"github.com/mdating/mdating-backend/pkg/http_util"
)

func UpgradeHandler(c echo.Context, userCase userUseCase.IUserUseCase) error {
	reqBody, err := http_util.Decode[entity.UpgradePremiumRequest](c)
	if err != nil {
		return http_util.Encode(c, http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	problems := reqBody.Validate(c.Request().Context())
	if len(problems) != 0 {
		return http_util.Encode(c, http.StatusBadRequest, map[string]interface{}{
			"message": "Bad Request",
			"errors":  http_util.Problems(problems),
		})
	}

	user, ok := c.Get("userProfile").(*entity.User)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	upgraded, err := userCase.UpgradeToPremium(c.Request().Context(), user.ID, reqBody.Phone)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			return http_util.Encode(c, http.StatusNotFound, map[string]string{"error": err.Error()})
		case errors.Is(err, entity.ErrAlreadyExists):
			return http_util.Encode(c, http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			return http_util.Encode(c, http.StatusInternalServerError, map[string]string{"error": "failed to upgrade"})
		}
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[entity.UpgradePremiumResponse]{
		Message: "Upgrade successful",
		Data: entity.UpgradePremiumResponse{
			ID:          upgraded.ID.String(),
			AccountType: upgraded.AccountType,
		},
	})
}

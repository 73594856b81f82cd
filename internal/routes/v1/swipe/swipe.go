package routesV1Swipe

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo"
	"github.com/mdating/mdating-backend/internal/entity"
	swipeUseCase "github.com/mdating/mdating-backend/internal/usecase/swipe"
	"github.com/mdating/mdating-backend/pkg/http_util"
)

func SwipeHandler(c echo.Context, swipeCase swipeUseCase.ISwipeUseCase) error {
	reqBody, err := http_util.Decode[entity.SwipeRequest](c)
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

	if reqBody.SwipedUserID == user.ID.String() {
		return http_util.Encode(c, http.StatusBadRequest, map[string]string{"error": "cannot swipe yourself"})
	}

	result, err := swipeCase.Swipe(c.Request().Context(), user.ID, reqBody)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			return http_util.Encode(c, http.StatusNotFound, map[string]string{"error": err.Error()})
		case errors.Is(err, entity.ErrQuotaExceeded):
			return http_util.Encode(c, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			return http_util.Encode(c, http.StatusInternalServerError, map[string]string{"error": "failed to swipe"})
		}
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[entity.SwipeResponse]{
		Message: result.Message,
		Data:    *result,
	})
}

func ListHandler(c echo.Context, swipeCase swipeUseCase.ISwipeUseCase) error {
	user, ok := c.Get("userProfile").(*entity.User)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	result, err := swipeCase.ListCandidates(c.Request().Context(), user.ID, page, limit)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return http_util.Encode(c, http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return http_util.Encode(c, http.StatusInternalServerError, map[string]string{"error": "failed to get profiles"})
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[entity.SwipeListResponse]{
		Message: "Profiles fetched successfully",
		Data:    *result,
	})
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

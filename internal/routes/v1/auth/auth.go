package routesV1Auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo"
	"github.com/mdating/mdating-backend/internal/entity"
	authUseCase "github.com/mdating/mdating-backend/internal/usecase/auth"
	"github.com/mdating/mdating-backend/pkg/http_util"
)

func SignUpHandler(c echo.Context, authCase authUseCase.IAuthUseCase) error {
	reqBody, err := http_util.Decode[entity.SignUpRequest](c)
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

	user, err := authCase.SignUp(c.Request().Context(), reqBody)
	if err != nil {
		if errors.Is(err, entity.ErrAlreadyExists) {
			return http_util.Encode(c, http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return http_util.Encode(c, http.StatusInternalServerError, map[string]string{"error": "failed to sign up"})
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[entity.SignUpResponse]{
		Message: "Sign-up successful",
		Data: entity.SignUpResponse{
			ID:    user.ID.String(),
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

func SignInHandler(c echo.Context, authCase authUseCase.IAuthUseCase) error {
	reqBody, err := http_util.Decode[entity.SignInRequest](c)
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

	token, err := authCase.SignIn(c.Request().Context(), reqBody.Email, reqBody.Password)
	if err != nil {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[entity.SignInResponse]{
		Message: "Sign-in successful",
		Data:    entity.SignInResponse{Token: token},
	})
}

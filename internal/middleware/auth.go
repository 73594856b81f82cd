package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo"
	userRepo "github.com/mdating/mdating-backend/internal/repository/user"
	"github.com/mdating/mdating-backend/pkg/jwt"
)

// JWTMiddleware resolves the acting user from the Authorization header and
// stores the profile in the echo context under "userProfile".
func JWTMiddleware(userRepo userRepo.IUserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "missing token"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid token format"})
			}

			claims, err := jwt.ValidateToken(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			}

			userProfile, err := userRepo.GetUserByID(c.Request().Context(), nil, userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			}

			c.Set("claims", claims)
			c.Set("userProfile", userProfile)

			return next(c)
		}
	}
}

package http_util

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/labstack/echo"
)

type HTTPResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type ErrorResponse struct {
	Property string `json:"property"`
	Detail   string `json:"detail"`
}

type Validate interface {
	Validate(ctx context.Context) (problems map[string][]string)
}

func Encode[T any](c echo.Context, status int, v T) error {
	return c.JSON(status, v)
}

func Decode[T any](c echo.Context) (T, error) {
	var v T
	if err := c.Bind(&v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

func DecodeBody[T any](body []byte) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

// Problems flattens a validation result into response errors.
func Problems(problems map[string][]string) []ErrorResponse {
	errs := make([]ErrorResponse, 0, len(problems))
	for property, details := range problems {
		for _, detail := range details {
			errs = append(errs, ErrorResponse{Property: property, Detail: detail})
		}
	}
	return errs
}

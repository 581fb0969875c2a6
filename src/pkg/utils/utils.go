package utils

import (
	"encoding/json"

	httpError "timebank-service/src/pkg/http-error"

	"github.com/gofiber/fiber/v2"
)

// Result is what every usecase returns to its controller.
type Result struct {
	Data  interface{}
	Error error
}

type responseBody struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errorBody struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func Response(data interface{}, message string, code int, ctx *fiber.Ctx) error {
	return ctx.Status(code).JSON(responseBody{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ResponseError(err error, ctx *fiber.Ctx) error {
	if commonErr, ok := err.(*httpError.CommonError); ok {
		return ctx.Status(commonErr.Code).JSON(errorBody{
			Success: false,
			Kind:    commonErr.Kind,
			Message: commonErr.Message,
		})
	}

	return ctx.Status(fiber.StatusBadRequest).JSON(errorBody{
		Success: false,
		Kind:    httpError.KindValidation,
		Message: err.Error(),
	})
}

// ConvertString marshals anything into a string for log meta fields.
func ConvertString(data interface{}) string {
	out, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	return string(out)
}

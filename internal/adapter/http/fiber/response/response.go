package response

import (
	"github.com/gofiber/fiber/v2"
)

// Body is the envelope every endpoint returns.
type Body struct {
	Success bool        `json:"success"`
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// Meta carries list pagination info.
type Meta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

func OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Body{
		Success: true,
		Status:  fiber.StatusOK,
		Data:    data,
	})
}

func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Body{
		Success: true,
		Status:  fiber.StatusCreated,
		Data:    data,
	})
}

func List(c *fiber.Ctx, data interface{}, meta Meta) error {
	return c.Status(fiber.StatusOK).JSON(Body{
		Success: true,
		Status:  fiber.StatusOK,
		Data:    data,
		Meta:    &meta,
	})
}

func Message(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(Body{
		Success: true,
		Status:  fiber.StatusOK,
		Message: message,
	})
}

func Error(c *fiber.Ctx, status int, message string, errs interface{}) error {
	return c.Status(status).JSON(Body{
		Success: false,
		Status:  status,
		Message: message,
		Errors:  errs,
	})
}

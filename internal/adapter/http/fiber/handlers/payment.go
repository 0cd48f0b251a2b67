package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/translog/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/translog/internal/adapter/http/fiber/response"
	"github.com/seu-repo/translog/internal/ports"
)

type PaymentHandler struct {
	service ports.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service ports.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

type ConfirmPaymentRequest struct {
	Succeeded bool `json:"succeeded"`
}

// CreateIntent opens a payment intent for the transfer and returns the
// client secret the frontend confirms with.
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	secret, err := h.service.CreateIntent(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return response.OK(c, fiber.Map{"clientSecret": secret})
}

func (h *PaymentHandler) Confirm(c *fiber.Ctx) error {
	var req ConfirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	if err := h.service.Confirm(c.Context(), c.Params("id"), req.Succeeded); err != nil {
		return err
	}
	return response.Message(c, "payment status updated")
}

func (h *PaymentHandler) Refund(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if err := h.service.Refund(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return response.Message(c, "payment refunded")
}

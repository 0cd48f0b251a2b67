package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/translog/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/translog/internal/adapter/http/fiber/response"
	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/ports"
)

type TransferHandler struct {
	service ports.TransferService
	log     *zap.Logger
}

func NewTransferHandler(service ports.TransferService, log *zap.Logger) *TransferHandler {
	return &TransferHandler{
		service: service,
		log:     log,
	}
}

type CreateTransferRequest struct {
	Items       []domain.TransferItem `json:"items"`
	Total       float64               `json:"total"`
	Origin      string                `json:"origin"`
	Destination string                `json:"destination"`
	PickupAt    *time.Time            `json:"pickupAt"`
	DeliveryAt  *time.Time            `json:"deliveryAt"`
}

type UpdateTransferRequest struct {
	WorkerID      *string    `json:"workerId"`
	Status        *string    `json:"status"`
	PaymentStatus *string    `json:"paymentStatus"`
	Origin        *string    `json:"origin"`
	Destination   *string    `json:"destination"`
	PickupAt      *time.Time `json:"pickupAt"`
	DeliveryAt    *time.Time `json:"deliveryAt"`
	Total         *float64   `json:"total"`
}

type RateTransferRequest struct {
	Rating float64 `json:"rating"`
}

func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var req CreateTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	actor := middleware.CurrentUser(c)
	t, err := h.service.Create(c.Context(), actor, ports.TransferCreate{
		Items:       req.Items,
		Total:       req.Total,
		Origin:      req.Origin,
		Destination: req.Destination,
		PickupAt:    req.PickupAt,
		DeliveryAt:  req.DeliveryAt,
	})
	if err != nil {
		return err
	}
	return response.Created(c, t)
}

func (h *TransferHandler) Get(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	t, err := h.service.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return response.OK(c, t)
}

func (h *TransferHandler) List(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	page := parsePage(c)
	filter := ports.TransferFilter{
		Status: domain.TransferStatus(c.Query("status")),
	}
	if actor.Role == domain.UserRoleAdmin {
		filter.UserID = c.Query("userId")
		filter.WorkerID = c.Query("workerId")
	}

	transfers, total, err := h.service.List(c.Context(), actor, filter, page)
	if err != nil {
		return err
	}
	return response.List(c, transfers, response.Meta{
		Total: total,
		Page:  page.Page,
		Pages: page.Pages(total),
	})
}

func (h *TransferHandler) Update(c *fiber.Ctx) error {
	var req UpdateTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	upd := ports.TransferUpdate{
		WorkerID:    req.WorkerID,
		Origin:      req.Origin,
		Destination: req.Destination,
		PickupAt:    req.PickupAt,
		DeliveryAt:  req.DeliveryAt,
		Total:       req.Total,
	}
	if req.Status != nil {
		status := domain.TransferStatus(*req.Status)
		upd.Status = &status
	}
	if req.PaymentStatus != nil {
		paymentStatus := domain.PaymentStatus(*req.PaymentStatus)
		upd.PaymentStatus = &paymentStatus
	}

	actor := middleware.CurrentUser(c)
	t, err := h.service.Update(c.Context(), actor, c.Params("id"), upd)
	if err != nil {
		return err
	}
	return response.OK(c, t)
}

func (h *TransferHandler) Rate(c *fiber.Ctx) error {
	var req RateTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	actor := middleware.CurrentUser(c)
	t, err := h.service.Rate(c.Context(), actor, c.Params("id"), req.Rating)
	if err != nil {
		return err
	}
	return response.OK(c, t)
}

func (h *TransferHandler) Delete(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if err := h.service.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return response.Message(c, "transfer deleted")
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/translog/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/translog/internal/adapter/http/fiber/response"
	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/ports"
)

type ComplaintHandler struct {
	service ports.ComplaintService
	log     *zap.Logger
}

func NewComplaintHandler(service ports.ComplaintService, log *zap.Logger) *ComplaintHandler {
	return &ComplaintHandler{
		service: service,
		log:     log,
	}
}

type CreateComplaintRequest struct {
	TransferID string `json:"transferId"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
}

type RespondComplaintRequest struct {
	Message     string   `json:"message"`
	Attachments []string `json:"attachments"`
}

type UpdateComplaintStatusRequest struct {
	Status string `json:"status"`
}

func (h *ComplaintHandler) Create(c *fiber.Ctx) error {
	var req CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	actor := middleware.CurrentUser(c)
	complaint, err := h.service.Create(c.Context(), actor, ports.ComplaintCreate{
		TransferID: req.TransferID,
		Subject:    req.Subject,
		Message:    req.Message,
	})
	if err != nil {
		return err
	}
	return response.Created(c, complaint)
}

func (h *ComplaintHandler) Get(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	complaint, err := h.service.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return response.OK(c, complaint)
}

func (h *ComplaintHandler) List(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	page := parsePage(c)
	status := domain.ComplaintStatus(c.Query("status"))

	complaints, total, err := h.service.List(c.Context(), actor, status, page)
	if err != nil {
		return err
	}
	return response.List(c, complaints, response.Meta{
		Total: total,
		Page:  page.Page,
		Pages: page.Pages(total),
	})
}

func (h *ComplaintHandler) Respond(c *fiber.Ctx) error {
	var req RespondComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	actor := middleware.CurrentUser(c)
	complaint, err := h.service.Respond(c.Context(), actor, c.Params("id"), req.Message, req.Attachments)
	if err != nil {
		return err
	}
	return response.OK(c, complaint)
}

func (h *ComplaintHandler) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateComplaintStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	actor := middleware.CurrentUser(c)
	complaint, err := h.service.UpdateStatus(c.Context(), actor, c.Params("id"), domain.ComplaintStatus(req.Status))
	if err != nil {
		return err
	}
	return response.OK(c, complaint)
}

func (h *ComplaintHandler) Delete(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if err := h.service.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return response.Message(c, "complaint deleted")
}

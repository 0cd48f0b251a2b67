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

type NotificationHandler struct {
	service ports.NotificationService
	log     *zap.Logger
}

func NewNotificationHandler(service ports.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log,
	}
}

type CreateNotificationRequest struct {
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Type        string     `json:"type"`
	IsGlobal    bool       `json:"isGlobal"`
	TargetUsers []string   `json:"targetUsers"`
	SendNow     bool       `json:"sendNow"`
	SendAt      *time.Time `json:"sendAt"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	RedirectTo  string     `json:"redirectTo"`
}

func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	actor := middleware.CurrentUser(c)
	n, err := h.service.Create(c.Context(), actor, ports.NotificationCreate{
		Title:       req.Title,
		Message:     req.Message,
		Type:        domain.NotificationType(req.Type),
		IsGlobal:    req.IsGlobal,
		TargetUsers: req.TargetUsers,
		SendNow:     req.SendNow,
		SendAt:      req.SendAt,
		ExpiresAt:   req.ExpiresAt,
		RedirectTo:  req.RedirectTo,
	})
	if err != nil {
		return err
	}
	return response.Created(c, n)
}

// MyNotifications lists the caller's visible notifications. The read query
// parameter partitions on read state: read=true, read=false, or absent for
// everything.
func (h *NotificationHandler) MyNotifications(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	page := parsePage(c)

	var read *bool
	if raw := c.Query("read"); raw != "" {
		val := raw == "true"
		read = &val
	}

	notifications, total, err := h.service.MyNotifications(c.Context(), actor, read, page)
	if err != nil {
		return err
	}
	return response.List(c, notifications, response.Meta{
		Total: total,
		Page:  page.Page,
		Pages: page.Pages(total),
	})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if err := h.service.MarkRead(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return response.Message(c, "notification marked as read")
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	count, err := h.service.MarkAllRead(c.Context(), actor)
	if err != nil {
		return err
	}
	return response.OK(c, fiber.Map{"marked": count})
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	page := parsePage(c)

	notifications, total, err := h.service.List(c.Context(), actor, page)
	if err != nil {
		return err
	}
	return response.List(c, notifications, response.Meta{
		Total: total,
		Page:  page.Page,
		Pages: page.Pages(total),
	})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if err := h.service.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return response.Message(c, "notification deleted")
}

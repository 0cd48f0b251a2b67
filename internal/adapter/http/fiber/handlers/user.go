package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/translog/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/translog/internal/adapter/http/fiber/response"
	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/ports"
)

type UserHandler struct {
	userRepo ports.UserRepository
	log      *zap.Logger
}

func NewUserHandler(userRepo ports.UserRepository, log *zap.Logger) *UserHandler {
	return &UserHandler{
		userRepo: userRepo,
		log:      log,
	}
}

type UpdateProfileRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	NotifyByEmail     *bool   `json:"notifyByEmail"`
	NotifyByPush      *bool   `json:"notifyByPush"`
	PreferredLanguage *string `json:"preferredLanguage"`
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	page := parsePage(c)
	role := domain.UserRole(c.Query("role"))

	users, total, err := h.userRepo.FindAll(c.Context(), role, page)
	if err != nil {
		return err
	}
	return response.List(c, users, response.Meta{
		Total: total,
		Page:  page.Page,
		Pages: page.Pages(total),
	})
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	id := c.Params("id")
	if actor.Role != domain.UserRoleAdmin && actor.ID != id {
		return domain.ErrForbidden
	}

	user, err := h.userRepo.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return response.OK(c, user)
}

// UpdateProfile lets the caller change their own mutable profile fields.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	actor := middleware.CurrentUser(c)
	user, err := h.userRepo.FindByID(c.Context(), actor.ID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.NotifyByEmail != nil {
		user.NotifyByEmail = *req.NotifyByEmail
	}
	if req.NotifyByPush != nil {
		user.NotifyByPush = *req.NotifyByPush
	}
	if req.PreferredLanguage != nil {
		user.PreferredLanguage = *req.PreferredLanguage
	}

	if err := h.userRepo.Save(c.Context(), user); err != nil {
		return err
	}
	return response.OK(c, user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	user, err := h.userRepo.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if err := h.userRepo.Delete(c.Context(), id); err != nil {
		return err
	}
	return response.Message(c, "user deleted")
}

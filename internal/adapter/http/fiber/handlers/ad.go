package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/translog/internal/adapter/http/fiber/response"
	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/ports"
)

type AdHandler struct {
	adRepo ports.AdRepository
	log    *zap.Logger
}

func NewAdHandler(adRepo ports.AdRepository, log *zap.Logger) *AdHandler {
	return &AdHandler{
		adRepo: adRepo,
		log:    log,
	}
}

type CreateAdRequest struct {
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	ImageURL  string     `json:"imageUrl"`
	StartsAt  *time.Time `json:"startsAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// List returns active ads by default; admins can pass all=true to include
// expired and scheduled ones.
func (h *AdHandler) List(c *fiber.Ctx) error {
	page := parsePage(c)
	activeOnly := true
	if c.QueryBool("all", false) {
		role, _ := c.Locals("user_role").(domain.UserRole)
		if role == domain.UserRoleAdmin {
			activeOnly = false
		}
	}

	ads, total, err := h.adRepo.FindAll(c.Context(), activeOnly, page)
	if err != nil {
		return err
	}
	return response.List(c, ads, response.Meta{
		Total: total,
		Page:  page.Page,
		Pages: page.Pages(total),
	})
}

func (h *AdHandler) Get(c *fiber.Ctx) error {
	ad, err := h.adRepo.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if ad == nil {
		return domain.ErrNotFound
	}
	return response.OK(c, ad)
}

func (h *AdHandler) Create(c *fiber.Ctx) error {
	var req CreateAdRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	fields := map[string]string{}
	if req.Title == "" {
		fields["title"] = "title is required"
	}
	if req.ImageURL == "" {
		fields["imageUrl"] = "image url is required"
	}
	if req.ExpiresAt.IsZero() {
		fields["expiresAt"] = "expiry is required"
	}
	if len(fields) > 0 {
		return domain.NewValidation(fields)
	}

	now := time.Now()
	startsAt := now
	if req.StartsAt != nil {
		startsAt = *req.StartsAt
	}

	createdBy, _ := c.Locals("user_id").(string)
	ad := &domain.Ad{
		ID:        uuid.NewString(),
		Title:     req.Title,
		URL:       req.URL,
		ImageURL:  req.ImageURL,
		StartsAt:  startsAt,
		ExpiresAt: req.ExpiresAt,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.adRepo.Save(c.Context(), ad); err != nil {
		return err
	}
	return response.Created(c, ad)
}

func (h *AdHandler) Delete(c *fiber.Ctx) error {
	ad, err := h.adRepo.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if ad == nil {
		return domain.ErrNotFound
	}
	if err := h.adRepo.Delete(c.Context(), ad.ID); err != nil {
		return err
	}
	return response.Message(c, "ad deleted")
}

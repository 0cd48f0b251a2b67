package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/translog/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/translog/internal/adapter/http/fiber/response"
	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/ports"
)

type WorkerHandler struct {
	workerRepo ports.WorkerRepository
	log        *zap.Logger
}

func NewWorkerHandler(workerRepo ports.WorkerRepository, log *zap.Logger) *WorkerHandler {
	return &WorkerHandler{
		workerRepo: workerRepo,
		log:        log,
	}
}

type CreateWorkerRequest struct {
	UserID      string `json:"userId"`
	VehicleType string `json:"vehicleType"`
}

type SetAvailabilityRequest struct {
	Available bool `json:"available"`
}

func (h *WorkerHandler) List(c *fiber.Ctx) error {
	page := parsePage(c)
	onlyAvailable := c.QueryBool("available", false)

	workers, total, err := h.workerRepo.FindAll(c.Context(), onlyAvailable, page)
	if err != nil {
		return err
	}
	return response.List(c, workers, response.Meta{
		Total: total,
		Page:  page.Page,
		Pages: page.Pages(total),
	})
}

func (h *WorkerHandler) Get(c *fiber.Ctx) error {
	worker, err := h.workerRepo.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if worker == nil {
		return domain.ErrNotFound
	}
	return response.OK(c, worker)
}

// Create promotes a worker-role user into a dispatchable worker. Admin only.
func (h *WorkerHandler) Create(c *fiber.Ctx) error {
	var req CreateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid request body", nil)
	}
	if req.UserID == "" {
		return domain.NewValidation(map[string]string{"userId": "user id is required"})
	}

	existing, err := h.workerRepo.FindByUserID(c.Context(), req.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrConflict
	}

	worker := &domain.Worker{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		IsAvailable: true,
		Status:      domain.WorkerStatusAvailable,
		VehicleType: req.VehicleType,
	}
	if err := h.workerRepo.Save(c.Context(), worker); err != nil {
		return err
	}
	return response.Created(c, worker)
}

// SetAvailability lets a worker toggle their own availability, and an admin
// toggle anyone's.
func (h *WorkerHandler) SetAvailability(c *fiber.Ctx) error {
	var req SetAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	id := c.Params("id")
	actor := middleware.CurrentUser(c)
	if actor.Role != domain.UserRoleAdmin {
		own, err := h.workerRepo.FindByUserID(c.Context(), actor.ID)
		if err != nil {
			return err
		}
		if own == nil || own.ID != id {
			return domain.ErrForbidden
		}
	}

	status := domain.WorkerStatusAvailable
	if !req.Available {
		status = domain.WorkerStatusAssigned
	}
	if err := h.workerRepo.SetAvailability(c.Context(), id, req.Available, status); err != nil {
		return err
	}

	worker, err := h.workerRepo.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, worker)
}

func (h *WorkerHandler) Delete(c *fiber.Ctx) error {
	worker, err := h.workerRepo.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if worker == nil {
		return domain.ErrNotFound
	}
	if err := h.workerRepo.Delete(c.Context(), worker.ID); err != nil {
		return err
	}
	return response.Message(c, "worker deleted")
}

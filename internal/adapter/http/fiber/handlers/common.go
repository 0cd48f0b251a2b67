package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seu-repo/translog/internal/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// parsePage reads the shared pagination/sorting query parameters:
// page, limit, sortBy, order.
func parsePage(c *fiber.Ctx) ports.Page {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", defaultPageLimit)
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	order := c.Query("order", "desc")
	if order != "asc" {
		order = "desc"
	}

	return ports.Page{
		Page:   page,
		Limit:  limit,
		SortBy: c.Query("sortBy"),
		Order:  order,
	}
}

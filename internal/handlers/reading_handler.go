package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/readcircle/readcircle-server/internal/actor"
	"github.com/readcircle/readcircle-server/internal/dto"
	"github.com/readcircle/readcircle-server/internal/services"
)

type ReadingHandler struct {
	service *services.ReadingService
}

func NewReadingHandler(service *services.ReadingService) *ReadingHandler {
	return &ReadingHandler{service: service}
}

// List serves the composite reading feed with filters, sort and pagination.
func (h *ReadingHandler) List(c *fiber.Ctx) error {
	actorID, err := actor.ID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	query, err := parseListQuery(c)
	if err != nil {
		return respondBadRequest(c, err.Error())
	}

	records, total, err := h.service.List(actorID, query)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": records,
		"meta": dto.Meta{Total: total, Count: len(records), Offset: query.Offset},
	})
}

func (h *ReadingHandler) GetOne(c *fiber.Ctx) error {
	actorID, err := actor.ID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	readingLogID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid reading log ID")
	}

	record, err := h.service.GetOne(actorID, readingLogID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"data": record})
}

func parseListQuery(c *fiber.Ctx) (*dto.ListReadingsQuery, error) {
	query := &dto.ListReadingsQuery{
		Scope:   c.Query("scope"),
		Search:  c.Query("search"),
		SortBy:  c.Query("sort_by"),
		SortDir: c.Query("sort_dir"),
		Limit:   c.QueryInt("limit", services.DefaultPageSize),
		Offset:  c.QueryInt("offset", 0),
	}

	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				query.Statuses = append(query.Statuses, s)
			}
		}
	}

	var err error
	if query.StartFrom, err = parseDateParam(c, "start_from"); err != nil {
		return nil, err
	}
	if query.StartTo, err = parseDateParam(c, "start_to"); err != nil {
		return nil, err
	}
	if query.EndFrom, err = parseDateParam(c, "end_from"); err != nil {
		return nil, err
	}
	if query.EndTo, err = parseDateParam(c, "end_to"); err != nil {
		return nil, err
	}
	return query, nil
}

func parseDateParam(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, name+" must be a YYYY-MM-DD date")
	}
	return &t, nil
}

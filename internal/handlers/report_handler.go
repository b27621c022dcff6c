package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/readcircle/readcircle-server/internal/actor"
	"github.com/readcircle/readcircle-server/internal/dto"
	"github.com/readcircle/readcircle-server/internal/services"
)

type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	actorID, err := actor.ID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	report, err := h.service.Create(actorID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": report})
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	limit := c.QueryInt("limit", services.DefaultPageSize)
	offset := c.QueryInt("offset", 0)
	if limit < 1 || limit > services.MaxPageSize {
		limit = services.DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	reports, total, err := h.service.List(status, limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": reports,
		"meta": dto.Meta{Total: total, Count: len(reports), Offset: offset},
	})
}

func (h *ReportHandler) Action(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid report ID")
	}

	var req dto.ActionReportRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	if err := h.service.Action(reportID, &req); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

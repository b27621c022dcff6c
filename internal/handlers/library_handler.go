package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/readcircle/readcircle-server/internal/actor"
	"github.com/readcircle/readcircle-server/internal/dto"
	"github.com/readcircle/readcircle-server/internal/services"
)

type LibraryHandler struct {
	service *services.LibraryService
}

func NewLibraryHandler(service *services.LibraryService) *LibraryHandler {
	return &LibraryHandler{service: service}
}

// Upsert applies a composite book/log/quotes/reviews payload atomically.
// 201 on a pure create, 200 on an update.
func (h *LibraryHandler) Upsert(c *fiber.Ctx) error {
	actorID, err := actor.ID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	var req dto.UpsertLibraryRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	result, err := h.service.Upsert(actorID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}

	status := fiber.StatusOK
	if result.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"data": dto.UpsertLibraryResponse{
			BookID:       result.BookID,
			ReadingLogID: result.ReadingLogID,
		},
	})
}

func (h *LibraryHandler) Delete(c *fiber.Ctx) error {
	actorID, err := actor.ID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	readingLogID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid reading log ID")
	}

	resp, err := h.service.Delete(actorID, readingLogID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"data": resp})
}

// --- quotes ---

func (h *LibraryHandler) CreateQuote(c *fiber.Ctx) error {
	actorID, err := actor.ID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	readingLogID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid reading log ID")
	}

	var req dto.UpsertQuotePayload
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	quote, err := h.service.CreateQuote(actorID, readingLogID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": quote})
}

func (h *LibraryHandler) UpdateQuote(c *fiber.Ctx) error {
	actorID, err := actor.ID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	quoteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid quote ID")
	}

	var req dto.UpsertQuotePayload
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	quote, err := h.service.UpdateQuote(actorID, quoteID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"data": quote})
}

func (h *LibraryHandler) DeleteQuote(c *fiber.Ctx) error {
	actorID, err := actor.ID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	quoteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid quote ID")
	}

	if err := h.service.DeleteQuote(actorID, quoteID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// --- reviews ---

func (h *LibraryHandler) CreateReview(c *fiber.Ctx) error {
	actorID, err := actor.ID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	readingLogID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid reading log ID")
	}

	var req dto.UpsertReviewPayload
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	review, err := h.service.CreateReview(actorID, readingLogID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": review})
}

func (h *LibraryHandler) UpdateReview(c *fiber.Ctx) error {
	actorID, err := actor.ID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid review ID")
	}

	var req dto.UpsertReviewPayload
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	review, err := h.service.UpdateReview(actorID, reviewID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"data": review})
}

func (h *LibraryHandler) DeleteReview(c *fiber.Ctx) error {
	actorID, err := actor.ID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid review ID")
	}

	if err := h.service.DeleteReview(actorID, reviewID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/readcircle/readcircle-server/internal/actor"
	"github.com/readcircle/readcircle-server/internal/dto"
	"github.com/readcircle/readcircle-server/internal/services"
)

type ProfileHandler struct {
	service *services.ProfileService
}

func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) GetOwn(c *fiber.Ctx) error {
	actorID, err := actor.ID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	profile, err := h.service.GetOwn(actorID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"data": profile})
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid user ID")
	}

	profile, err := h.service.Get(userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"data": profile})
}

func (h *ProfileHandler) UpdateOwn(c *fiber.Ctx) error {
	actorID, err := actor.ID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	profile, err := h.service.Update(actorID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"data": profile})
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/readcircle/readcircle-server/internal/actor"
	"github.com/readcircle/readcircle-server/internal/dto"
	"github.com/readcircle/readcircle-server/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return respondError(c, fiber.StatusConflict, err.Error())
		}
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return respondError(c, fiber.StatusUnauthorized, err.Error())
		}
		return respondServiceError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return respondError(c, fiber.StatusUnauthorized, err.Error())
		}
		return respondServiceError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	if err := h.authService.Logout(&req); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	actorID, err := actor.ID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	var req dto.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	if err := h.authService.DeleteAccount(actorID, req.Password); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return respondError(c, fiber.StatusUnauthorized, "Incorrect password. Please try again.")
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return respondError(c, fiber.StatusNotFound, "User not found")
		}
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Account deleted successfully"})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/readcircle/readcircle-server/internal/actor"
	"github.com/readcircle/readcircle-server/internal/dto"
	"github.com/readcircle/readcircle-server/internal/models"
	"github.com/readcircle/readcircle-server/internal/services"
)

type FriendshipHandler struct {
	service *services.FriendshipService
}

func NewFriendshipHandler(service *services.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{service: service}
}

type friendshipActionFunc func(h *FriendshipHandler, c *fiber.Ctx, actorID uuid.UUID, req *dto.FriendshipActionRequest) error

// friendshipActions maps each tagged action variant to its handler. Dispatch
// goes through this table; there is no string branching in the endpoint.
var friendshipActions = map[dto.FriendshipAction]friendshipActionFunc{
	dto.FriendshipActionSendRequest: (*FriendshipHandler).actionRequest,
	dto.FriendshipActionAccept:      (*FriendshipHandler).actionAccept,
	dto.FriendshipActionReject:      (*FriendshipHandler).actionReject,
	dto.FriendshipActionCancel:      (*FriendshipHandler).actionCancel,
	dto.FriendshipActionDelete:      (*FriendshipHandler).actionDelete,
	dto.FriendshipActionBlock:       (*FriendshipHandler).actionBlock,
	dto.FriendshipActionUnblock:     (*FriendshipHandler).actionUnblock,
	dto.FriendshipActionList:        (*FriendshipHandler).actionList,
	dto.FriendshipActionReceived:    (*FriendshipHandler).actionReceived,
	dto.FriendshipActionSent:        (*FriendshipHandler).actionSent,
}

// Dispatch is the single friendship action endpoint.
func (h *FriendshipHandler) Dispatch(c *fiber.Ctx) error {
	actorID, err := actor.ID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	var req dto.FriendshipActionRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	fn, ok := friendshipActions[req.Action]
	if !ok {
		return respondBadRequest(c, "Unknown friendship action")
	}
	return fn(h, c, actorID, &req)
}

func (h *FriendshipHandler) actionRequest(c *fiber.Ctx, actorID uuid.UUID, req *dto.FriendshipActionRequest) error {
	if req.TargetID == nil {
		return respondBadRequest(c, "target_id is required")
	}

	result, err := h.service.Request(actorID, *req.TargetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	status := fiber.StatusCreated
	if result.AutoAccepted {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(fiber.Map{
		"data":          result.Friendship,
		"auto_accepted": result.AutoAccepted,
	})
}

func (h *FriendshipHandler) actionAccept(c *fiber.Ctx, actorID uuid.UUID, req *dto.FriendshipActionRequest) error {
	if req.FriendshipID == nil {
		return respondBadRequest(c, "friendship_id is required")
	}

	f, err := h.service.Accept(actorID, *req.FriendshipID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"data": f})
}

func (h *FriendshipHandler) actionReject(c *fiber.Ctx, actorID uuid.UUID, req *dto.FriendshipActionRequest) error {
	if req.FriendshipID == nil {
		return respondBadRequest(c, "friendship_id is required")
	}

	if err := h.service.Reject(actorID, *req.FriendshipID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"rejected": true}})
}

func (h *FriendshipHandler) actionCancel(c *fiber.Ctx, actorID uuid.UUID, req *dto.FriendshipActionRequest) error {
	if req.FriendshipID == nil {
		return respondBadRequest(c, "friendship_id is required")
	}

	if err := h.service.Cancel(actorID, *req.FriendshipID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"cancelled": true}})
}

func (h *FriendshipHandler) actionDelete(c *fiber.Ctx, actorID uuid.UUID, req *dto.FriendshipActionRequest) error {
	if req.FriendshipID == nil {
		return respondBadRequest(c, "friendship_id is required")
	}

	if err := h.service.Unfriend(actorID, *req.FriendshipID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func (h *FriendshipHandler) actionBlock(c *fiber.Ctx, actorID uuid.UUID, req *dto.FriendshipActionRequest) error {
	if req.TargetID == nil {
		return respondBadRequest(c, "target_id is required")
	}

	f, err := h.service.Block(actorID, *req.TargetID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"data": f})
}

func (h *FriendshipHandler) actionUnblock(c *fiber.Ctx, actorID uuid.UUID, req *dto.FriendshipActionRequest) error {
	if req.TargetID == nil {
		return respondBadRequest(c, "target_id is required")
	}

	if err := h.service.Unblock(actorID, *req.TargetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"unblocked": true}})
}

// --- list variants ---

func (h *FriendshipHandler) actionList(c *fiber.Ctx, actorID uuid.UUID, req *dto.FriendshipActionRequest) error {
	return h.listPage(c, actorID, req.Limit, req.Offset, h.service.ListFriends)
}

func (h *FriendshipHandler) actionReceived(c *fiber.Ctx, actorID uuid.UUID, req *dto.FriendshipActionRequest) error {
	return h.listPage(c, actorID, req.Limit, req.Offset, h.service.ListReceivedRequests)
}

func (h *FriendshipHandler) actionSent(c *fiber.Ctx, actorID uuid.UUID, req *dto.FriendshipActionRequest) error {
	return h.listPage(c, actorID, req.Limit, req.Offset, h.service.ListSentRequests)
}

type friendshipLister func(actorID uuid.UUID, limit, offset int) ([]models.Friendship, int64, error)

func (h *FriendshipHandler) ListFriends(c *fiber.Ctx) error {
	return h.list(c, h.service.ListFriends)
}

func (h *FriendshipHandler) ListReceived(c *fiber.Ctx) error {
	return h.list(c, h.service.ListReceivedRequests)
}

func (h *FriendshipHandler) ListSent(c *fiber.Ctx) error {
	return h.list(c, h.service.ListSentRequests)
}

func (h *FriendshipHandler) list(c *fiber.Ctx, fn friendshipLister) error {
	actorID, err := actor.ID(c)
	if err != nil {
		return respondUnauthorized(c)
	}
	return h.listPage(c, actorID, c.QueryInt("limit", services.DefaultPageSize), c.QueryInt("offset", 0), fn)
}

func (h *FriendshipHandler) listPage(c *fiber.Ctx, actorID uuid.UUID, limit, offset int, fn friendshipLister) error {
	if limit < 1 || limit > services.MaxPageSize {
		limit = services.DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	items, total, err := fn(actorID, limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": items,
		"meta": dto.Meta{Total: total, Count: len(items), Offset: offset},
	})
}

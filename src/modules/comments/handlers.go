package comments

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ctan76-dev/suckthumb/src/core/helpers"
	"github.com/ctan76-dev/suckthumb/src/core/middleware"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

type commentRequest struct {
	Text string `json:"text" form:"text"`
}

// Add handles POST /moments/:id/comments.
func (h *Handler) Add(c *fiber.Ctx) error {
	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return helpers.HandleFault(c, "Sign in to comment", err)
	}
	momentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid moment id", err)
	}

	body := new(commentRequest)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}

	comment, err := h.store.Add(momentID, userID, middleware.SessionEmail(c), body.Text)
	if err != nil {
		return helpers.HandleFault(c, "Failed to add comment", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusCreated, "Comment added", comment)
}

// List handles GET /moments/:id/comments, oldest first.
func (h *Handler) List(c *fiber.Ctx) error {
	momentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid moment id", err)
	}
	result, err := h.store.ListForMoment(momentID)
	if err != nil {
		return helpers.HandleFault(c, "Failed to fetch comments", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Comments fetched", result)
}

// Edit handles PUT /comments/:id.
func (h *Handler) Edit(c *fiber.Ctx) error {
	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return helpers.HandleFault(c, "Sign in to edit", err)
	}
	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid comment id", err)
	}

	body := new(commentRequest)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}

	comment, err := h.store.Edit(commentID, userID, body.Text)
	if err != nil {
		return helpers.HandleFault(c, "Failed to edit comment", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Comment updated", comment)
}

// Delete handles DELETE /comments/:id.
func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return helpers.HandleFault(c, "Sign in to delete", err)
	}
	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid comment id", err)
	}

	if err := h.store.Delete(commentID, userID); err != nil {
		return helpers.HandleFault(c, "Failed to delete comment", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Comment deleted", nil)
}

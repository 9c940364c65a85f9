package likes

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

// Like handles POST /moments/:id/like. Repeating it is a no-op.
func (h *Handler) Like(c *fiber.Ctx) error {
	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return helpers.HandleFault(c, "Sign in to like", err)
	}
	momentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid moment id", err)
	}

	if err := h.store.Like(momentID, userID); err != nil {
		return helpers.HandleFault(c, "Failed to like moment", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Moment liked", nil)
}

// Unlike handles DELETE /moments/:id/like. Repeating it is a no-op.
func (h *Handler) Unlike(c *fiber.Ctx) error {
	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return helpers.HandleFault(c, "Sign in to unlike", err)
	}
	momentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid moment id", err)
	}

	if err := h.store.Unlike(momentID, userID); err != nil {
		return helpers.HandleFault(c, "Failed to unlike moment", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Moment unliked", nil)
}

// Liked handles GET /moments/liked: the ids of every moment the current
// user has liked, fetched once per session to render toggle state.
func (h *Handler) Liked(c *fiber.Ctx) error {
	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return helpers.HandleFault(c, "Sign in to fetch likes", err)
	}

	ids, err := h.store.LikedMomentIDs(userID)
	if err != nil {
		return helpers.HandleFault(c, "Failed to fetch liked moments", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Liked moments fetched", ids)
}

// Count handles GET /moments/:id/likes/count from the likes table directly.
func (h *Handler) Count(c *fiber.Ctx) error {
	momentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid moment id", err)
	}
	count, err := h.store.Count(momentID)
	if err != nil {
		return helpers.HandleFault(c, "Failed to count likes", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Like count fetched", fiber.Map{"count": count})
}

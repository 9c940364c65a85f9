package wall

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ctan76-dev/suckthumb/src/core/helpers"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Fetch handles GET /wall: one-shot aggregate fetch, ranked by engagement,
// author labels masked. Public, no session required.
func (h *Handler) Fetch(c *fiber.Ctx) error {
	posts, err := h.store.Fetch()
	if err != nil {
		return helpers.HandleFault(c, "Failed to fetch wall", err)
	}
	Rank(posts)
	for i := range posts {
		posts[i].UserEmail = MaskEmail(posts[i].UserEmail)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Wall fetched successfully", posts)
}

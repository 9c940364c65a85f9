package moments

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ctan76-dev/suckthumb/src/core/helpers"
	"github.com/ctan76-dev/suckthumb/src/core/middleware"
	"github.com/ctan76-dev/suckthumb/src/core/models"
	"github.com/ctan76-dev/suckthumb/src/utils"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

type createRequest struct {
	Text string `json:"text" form:"text"`
	Link string `json:"link" form:"link"`
}

type editRequest struct {
	Text string `json:"text" form:"text"`
}

// Create handles POST /moments. An uploaded media file goes to object
// storage before the row insert; if the upload fails the moment is not
// created.
func (h *Handler) Create(c *fiber.Ctx) error {
	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return helpers.HandleFault(c, "Sign in to post", err)
	}

	body := new(createRequest)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}

	var attachment *Attachment
	if media, err := c.FormFile("media"); err == nil {
		key := utils.ObjectKey(userID.String(), media.Filename)
		_, publicURL, contentType, err := utils.UploadToSupabaseStorage(media, key)
		if err != nil {
			return helpers.HandleError(c, fiber.StatusBadGateway, "Failed to upload media", err)
		}
		attachment = &Attachment{URL: publicURL, Kind: utils.MediaTypeFor(contentType)}
	} else if body.Link != "" {
		attachment = &Attachment{URL: body.Link, Kind: models.MediaLink}
	}

	moment, err := h.store.Create(userID, middleware.SessionEmail(c), body.Text, attachment)
	if err != nil {
		return helpers.HandleFault(c, "Failed to create moment", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusCreated, "Moment created successfully", moment)
}

// List handles GET /moments.
func (h *Handler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	result, err := h.store.List(limit, offset)
	if err != nil {
		return helpers.HandleFault(c, "Failed to fetch moments", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Moments fetched successfully", result)
}

// Get handles GET /moments/:id.
func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid moment id", err)
	}
	moment, err := h.store.Get(id)
	if err != nil {
		return helpers.HandleFault(c, "Failed to fetch moment", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Moment fetched successfully", moment)
}

// Edit handles PUT /moments/:id.
func (h *Handler) Edit(c *fiber.Ctx) error {
	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return helpers.HandleFault(c, "Sign in to edit", err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid moment id", err)
	}

	body := new(editRequest)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}

	moment, err := h.store.Edit(id, userID, body.Text)
	if err != nil {
		return helpers.HandleFault(c, "Failed to edit moment", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Moment updated successfully", moment)
}

// Delete handles DELETE /moments/:id.
func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return helpers.HandleFault(c, "Sign in to delete", err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid moment id", err)
	}

	if err := h.store.Delete(id, userID); err != nil {
		return helpers.HandleFault(c, "Failed to delete moment", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Moment deleted successfully", nil)
}

func parsePagination(c *fiber.Ctx) (int, int) {
	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil || limit < 0 {
		limit = 0
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

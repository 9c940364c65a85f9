package users

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ctan76-dev/suckthumb/src/core/helpers"
	"github.com/ctan76-dev/suckthumb/src/core/middleware"
	"github.com/ctan76-dev/suckthumb/src/core/models"
	"github.com/ctan76-dev/suckthumb/src/utils"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// GetProfile handles GET /users/profile.
func (h *Handler) GetProfile(c *fiber.Ctx) error {
	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return helpers.HandleFault(c, "Sign in to view your profile", err)
	}

	user := new(models.User)
	if result := h.db.Where("id = ?", userID).First(user); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "User profile not found", result.Error)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch profile", result.Error)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "User profile retrieved successfully", profile{
		ID:        user.ID.String(),
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
	})
}

// UploadProfilePhoto handles POST /users/avatar: uploads the image first,
// then points avatar_url at the issued public URL.
func (h *Handler) UploadProfilePhoto(c *fiber.Ctx) error {
	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return helpers.HandleFault(c, "Sign in to update your avatar", err)
	}

	photo, err := c.FormFile("photo")
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "No photo attached", err)
	}

	key := utils.ObjectKey(userID.String(), photo.Filename)
	_, publicURL, _, err := utils.UploadToSupabaseStorage(photo, key)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadGateway, "Failed to upload photo", err)
	}

	result := h.db.Model(&models.User{}).Where("id = ?", userID).Update("avatar_url", publicURL)
	if result.Error != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to update profile", result.Error)
	}
	if result.RowsAffected == 0 {
		return helpers.HandleError(c, fiber.StatusNotFound, "User profile not found", nil)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Profile photo updated", fiber.Map{"avatar_url": publicURL})
}

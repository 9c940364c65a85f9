package authentication

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ctan76-dev/suckthumb/src/core/config"
	"github.com/ctan76-dev/suckthumb/src/core/helpers"
	"github.com/ctan76-dev/suckthumb/src/core/models"
)

const (
	sessionTokenTTL = 30 * 24 * time.Hour
	resetTokenTTL   = 15 * time.Minute
	resetPurpose    = "password_reset"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// issueSessionToken generates a JWT token for authenticated users.
func issueSessionToken(user *models.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)

	claims["sub"] = user.ID.String()
	claims["email"] = user.Email
	claims["avatar"] = user.AvatarURL
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(sessionTokenTTL).Unix()

	secretKey := config.Config("JWT_SECRET")
	return token.SignedString([]byte(secretKey))
}

// issueResetToken generates a short-lived token scoped to password recovery.
func issueResetToken(user *models.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)

	claims["sub"] = user.ID.String()
	claims["purpose"] = resetPurpose
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(resetTokenTTL).Unix()

	secretKey := config.Config("JWT_SECRET")
	return token.SignedString([]byte(secretKey))
}

// SignUp handles user registration.
func (h *Handler) SignUp(c *fiber.Ctx) error {
	body := new(models.User)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusUnprocessableEntity, "Invalid email or password", err)
	}

	body.ID = uuid.New()

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to hash password", err)
	}
	body.Password = string(hashedPwd)

	if result := h.db.Create(body); result.Error != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to create user account", result.Error)
	}

	token, err := issueSessionToken(body)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to generate token", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusCreated, "Account created successfully", fiber.Map{"token": token})
}

// SignIn handles user authentication.
func (h *Handler) SignIn(c *fiber.Ctx) error {
	body := new(models.User)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}

	user := new(models.User)
	if result := h.db.Where("email = ?", body.Email).First(user); result.Error != nil {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid login credentials", result.Error)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid login credentials", err)
	}

	token, err := issueSessionToken(user)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to generate token", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Sign-in successful", fiber.Map{"token": token})
}

type resetRequest struct {
	Email string `json:"email" form:"email"`
}

// ResetPassword issues a recovery token for the account. The response is
// identical whether or not the email exists, so the endpoint cannot be
// used to probe for accounts. Delivery of the token is the mailer's job.
func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	body := new(resetRequest)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}

	user := new(models.User)
	if result := h.db.Where("email = ?", body.Email).First(user); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return helpers.HandleSuccess(c, fiber.StatusOK, "Password reset email sent", nil)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to process reset request", result.Error)
	}

	token, err := issueResetToken(user)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to generate reset token", err)
	}
	sendResetMail(user.Email, token)

	return helpers.HandleSuccess(c, fiber.StatusOK, "Password reset email sent", nil)
}

type updatePasswordRequest struct {
	Token    string `json:"token" form:"token"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

// UpdatePassword completes the recovery flow: it accepts only a live reset
// token and replaces the stored hash.
func (h *Handler) UpdatePassword(c *fiber.Ctx) error {
	body := new(updatePasswordRequest)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusUnprocessableEntity, "Password too short", err)
	}

	userID, err := verifyResetToken(body.Token)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Reset link is invalid or has expired", err)
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to hash password", err)
	}

	result := h.db.Model(&models.User{}).Where("id = ?", userID).Update("password", string(hashedPwd))
	if result.Error != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to update password", result.Error)
	}
	if result.RowsAffected == 0 {
		return helpers.HandleError(c, fiber.StatusNotFound, "Account no longer exists", nil)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Password updated successfully", nil)
}

func verifyResetToken(tokenStr string) (string, error) {
	secretKey := config.Config("JWT_SECRET")
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid reset token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid reset token claims")
	}
	if purpose, _ := claims["purpose"].(string); purpose != resetPurpose {
		return "", errors.New("token is not a reset token")
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return "", errors.New("reset token has no subject")
	}
	return userID, nil
}

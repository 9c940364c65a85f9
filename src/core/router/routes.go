package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"github.com/ctan76-dev/suckthumb/src/core/middleware"
	"github.com/ctan76-dev/suckthumb/src/modules/authentication"
	"github.com/ctan76-dev/suckthumb/src/modules/comments"
	"github.com/ctan76-dev/suckthumb/src/modules/likes"
	"github.com/ctan76-dev/suckthumb/src/modules/moments"
	"github.com/ctan76-dev/suckthumb/src/modules/users"
	"github.com/ctan76-dev/suckthumb/src/modules/wall"
)

func InitialiseAndSetupRoutes(app *fiber.App, db *gorm.DB) {
	root := app.Group("/", logger.New())

	root.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	apiV1 := root.Group("/api/v1")
	setupAPIV1Routes(apiV1, db)
}

func setupAPIV1Routes(router fiber.Router, db *gorm.DB) {
	authHandler := authentication.NewHandler(db)
	momentHandler := moments.NewHandler(moments.NewStore(db))
	likeHandler := likes.NewHandler(likes.NewStore(db))
	commentHandler := comments.NewHandler(comments.NewStore(db))
	wallHandler := wall.NewHandler(wall.NewStore(db))
	userHandler := users.NewHandler(db)

	authGroup := router.Group("/auth")
	momentGroup := router.Group("/moments")
	commentGroup := router.Group("/comments")
	wallGroup := router.Group("/wall")
	userGroup := router.Group("/users")

	// Authentication routes
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/signin", authHandler.SignIn)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Post("/update-password", authHandler.UpdatePassword)

	// Moment routes; reading is public, writing requires a session
	momentGroup.Get("/", momentHandler.List)
	momentGroup.Get("/liked", middleware.Protected(), likeHandler.Liked)
	momentGroup.Get("/:id", momentHandler.Get)
	momentGroup.Post("/", middleware.Protected(), momentHandler.Create)
	momentGroup.Put("/:id", middleware.Protected(), momentHandler.Edit)
	momentGroup.Delete("/:id", middleware.Protected(), momentHandler.Delete)

	// Engagement routes
	momentGroup.Post("/:id/like", middleware.Protected(), likeHandler.Like)
	momentGroup.Delete("/:id/like", middleware.Protected(), likeHandler.Unlike)
	momentGroup.Get("/:id/likes/count", likeHandler.Count)
	momentGroup.Post("/:id/comments", middleware.Protected(), commentHandler.Add)
	momentGroup.Get("/:id/comments", commentHandler.List)
	commentGroup.Put("/:id", middleware.Protected(), commentHandler.Edit)
	commentGroup.Delete("/:id", middleware.Protected(), commentHandler.Delete)

	// The public wall
	wallGroup.Get("/", wallHandler.Fetch)

	// Profile routes
	userGroup.Get("/profile", middleware.Protected(), userHandler.GetProfile)
	userGroup.Post("/avatar", middleware.Protected(), userHandler.UploadProfilePhoto)
}

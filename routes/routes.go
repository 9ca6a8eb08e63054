package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	controller "softdesk/controllers"
	"softdesk/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	SetupAuthRoutes(app, db)
	SetupAPIRoutes(app, db)
}

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authLogger := log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Auth routes group with logging middleware
	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Public auth endpoints (no authentication required), rate limited
	// against brute-force attempts
	auth.Post("/register", middleware.LoginRateLimiter(), controller.Register)
	auth.Post("/login", middleware.LoginRateLimiter(), controller.Login)
	auth.Post("/refresh", controller.RefreshToken)

	// Protected auth endpoints (require valid JWT)
	protectedAuth := auth.Group("", middleware.Protected())
	protectedAuth.Get("/me", controller.GetCurrentUser)

	authLogger.Println("Authentication routes initialized successfully")
}

func SetupAPIRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize controllers with their respective loggers
	userController := controller.NewUserController(db, log.New(os.Stdout, "USER: ", log.LstdFlags))
	projectController := controller.NewProjectController(db, log.New(os.Stdout, "PROJECT: ", log.LstdFlags))
	contributorController := controller.NewContributorController(db, log.New(os.Stdout, "CONTRIBUTOR: ", log.LstdFlags))
	issueController := controller.NewIssueController(db, log.New(os.Stdout, "ISSUE: ", log.LstdFlags))
	commentController := controller.NewCommentController(db, log.New(os.Stdout, "COMMENT: ", log.LstdFlags))

	// API group with versioning and protection
	api := app.Group("/api/v1", middleware.Protected(), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// User routes
	users := api.Group("/users")
	users.Get("/", userController.GetUsers)
	users.Get("/:id", userController.GetUser)
	users.Delete("/:id", userController.DeleteUser)

	// Project routes
	projects := api.Group("/projects")
	projects.Post("/", projectController.CreateProject)
	projects.Get("/", projectController.GetProjects)
	projects.Get("/:id", projectController.GetProject)
	projects.Put("/:id", projectController.UpdateProject)
	projects.Patch("/:id", projectController.UpdateProject)
	projects.Delete("/:id", projectController.DeleteProject)

	// Contributor routes
	contributors := api.Group("/contributors")
	contributors.Post("/", contributorController.AddContributor)
	contributors.Get("/", contributorController.GetContributors)
	contributors.Get("/:id", contributorController.GetContributor)
	contributors.Delete("/:id", contributorController.RemoveContributor)

	// Issue routes
	issues := api.Group("/issues")
	issues.Post("/", issueController.CreateIssue)
	issues.Get("/", issueController.GetIssues)
	issues.Get("/:id", issueController.GetIssue)
	issues.Put("/:id", issueController.UpdateIssue)
	issues.Patch("/:id", issueController.UpdateIssue)
	issues.Delete("/:id", issueController.DeleteIssue)

	// Comment routes
	comments := api.Group("/comments")
	comments.Post("/", commentController.CreateComment)
	comments.Get("/", commentController.GetComments)
	comments.Get("/:id", commentController.GetComment)
	comments.Put("/:id", commentController.UpdateComment)
	comments.Patch("/:id", commentController.UpdateComment)
	comments.Delete("/:id", commentController.DeleteComment)
}

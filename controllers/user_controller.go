package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"softdesk/models"
	"softdesk/utils"
)

type UserController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewUserController(db *gorm.DB, logger *log.Logger) *UserController {
	return &UserController{
		DB:     db,
		Logger: logger,
	}
}

// GetUsers returns the list of all users. Password hashes are never
// serialized.
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := uc.DB.Find(&users).Error; err != nil {
		return respondServerError(c, "Failed to fetch users", err)
	}

	return c.JSON(users)
}

// GetUser returns a single user by ID.
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	var user models.User
	if err := uc.DB.First(&user, c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found", nil)
	}

	return c.JSON(user)
}

// DeleteUser removes an account. Users may delete their own account (right
// to erasure); staff may delete any account.
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	actor := c.Locals("user").(*models.User)

	var user models.User
	if err := uc.DB.First(&user, c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found", nil)
	}

	if !actor.IsStaff && actor.ID != user.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "You may only delete your own account", nil)
	}

	if err := uc.DB.Delete(&user).Error; err != nil {
		return respondServerError(c, "Failed to delete user", err)
	}

	uc.Logger.Printf("user %d deleted by %d", user.ID, actor.ID)
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}

package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"softdesk/models"
	"softdesk/permissions"
	"softdesk/utils"
)

type ContributorController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewContributorController(db *gorm.DB, logger *log.Logger) *ContributorController {
	return &ContributorController{
		DB:     db,
		Logger: logger,
	}
}

// AddContributor grants a user membership in a project. Only the project's
// author may do this; the write gate is the contributor object policy run
// against the row about to be created.
func (cc *ContributorController) AddContributor(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req models.AddContributorRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var project models.Project
	if err := cc.DB.First(&project, req.ProjectID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Project not found", nil)
	}

	var target models.User
	if err := cc.DB.First(&target, req.UserID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found", nil)
	}

	contributor := models.Contributor{
		UserID:    req.UserID,
		ProjectID: req.ProjectID,
	}

	if err := permissions.PermitObject(cc.DB, user, c.Method(), &contributor); err != nil {
		return respondPermissionError(c, user, err)
	}

	if err := cc.DB.Create(&contributor).Error; err != nil {
		// The (user_id, project_id) unique index rejects duplicates.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrorResponse(c, fiber.StatusConflict, "User is already a contributor of this project", nil)
		}
		return respondServerError(c, "Failed to add contributor", err)
	}

	return c.Status(fiber.StatusCreated).JSON(contributor)
}

// GetContributors lists contributor rows, optionally filtered by project.
func (cc *ContributorController) GetContributors(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if err := permissions.PermitCollection(permissions.ResourceContributor, user, c.Method()); err != nil {
		return respondPermissionError(c, user, err)
	}

	query := cc.DB.Scopes(permissions.ScopeContributors(user))
	if projectID := c.Query("project_id"); projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var contributors []models.Contributor
	if err := query.Find(&contributors).Error; err != nil {
		return respondServerError(c, "Failed to fetch contributors", err)
	}

	return c.JSON(contributors)
}

// GetContributor returns a single contributor row.
func (cc *ContributorController) GetContributor(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var contributor models.Contributor
	if err := cc.DB.First(&contributor, c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Contributor not found", nil)
	}

	if err := permissions.PermitObject(cc.DB, user, c.Method(), &contributor); err != nil {
		return respondPermissionError(c, user, err)
	}

	return c.JSON(contributor)
}

// RemoveContributor revokes a user's membership. Only the project's author
// may do this.
func (cc *ContributorController) RemoveContributor(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var contributor models.Contributor
	if err := cc.DB.First(&contributor, c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Contributor not found", nil)
	}

	if err := permissions.PermitObject(cc.DB, user, c.Method(), &contributor); err != nil {
		return respondPermissionError(c, user, err)
	}

	// Hard delete so the unique index does not block re-adding the user
	// later.
	if err := cc.DB.Unscoped().Delete(&contributor).Error; err != nil {
		return respondServerError(c, "Failed to remove contributor", err)
	}

	cc.Logger.Printf("contributor %d removed from project %d by user %d", contributor.UserID, contributor.ProjectID, user.ID)
	return c.JSON(fiber.Map{
		"message": "Contributor removed successfully",
	})
}

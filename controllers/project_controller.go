package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"softdesk/models"
	"softdesk/permissions"
	"softdesk/utils"
)

type ProjectController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewProjectController(db *gorm.DB, logger *log.Logger) *ProjectController {
	return &ProjectController{
		DB:     db,
		Logger: logger,
	}
}

// CreateProject creates a project with the acting user as its author. The
// author is always taken from the authenticated identity, never from the
// request body.
func (pc *ProjectController) CreateProject(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if err := permissions.PermitCollection(permissions.ResourceProject, user, c.Method()); err != nil {
		return respondPermissionError(c, user, err)
	}

	var req models.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		AuthorID:    user.ID,
	}

	if err := pc.DB.Create(&project).Error; err != nil {
		return respondServerError(c, "Failed to create project", err)
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetProjects lists the projects visible to the user: authored or
// contributed to, everything for staff.
func (pc *ProjectController) GetProjects(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if err := permissions.PermitCollection(permissions.ResourceProject, user, c.Method()); err != nil {
		return respondPermissionError(c, user, err)
	}

	var projects []models.Project
	if err := pc.DB.Scopes(permissions.ScopeProjects(user)).Find(&projects).Error; err != nil {
		return respondServerError(c, "Failed to fetch projects", err)
	}

	return c.JSON(projects)
}

// GetProject returns a single project. Any authenticated user may read a
// project by ID; list visibility is narrowed by the scope instead.
func (pc *ProjectController) GetProject(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var project models.Project
	if err := pc.DB.First(&project, c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Project not found", nil)
	}

	if err := permissions.PermitObject(pc.DB, user, c.Method(), &project); err != nil {
		return respondPermissionError(c, user, err)
	}

	return c.JSON(project)
}

// UpdateProject modifies a project. Only the author may do this.
func (pc *ProjectController) UpdateProject(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var project models.Project
	if err := pc.DB.First(&project, c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Project not found", nil)
	}

	if err := permissions.PermitObject(pc.DB, user, c.Method(), &project); err != nil {
		return respondPermissionError(c, user, err)
	}

	var req models.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Type != nil {
		project.Type = *req.Type
	}

	if err := pc.DB.Save(&project).Error; err != nil {
		return respondServerError(c, "Failed to update project", err)
	}

	return c.JSON(project)
}

// DeleteProject removes a project and, through the schema's cascade rules,
// its issues and comments. Only the author may do this.
func (pc *ProjectController) DeleteProject(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var project models.Project
	if err := pc.DB.First(&project, c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Project not found", nil)
	}

	if err := permissions.PermitObject(pc.DB, user, c.Method(), &project); err != nil {
		return respondPermissionError(c, user, err)
	}

	if err := pc.DB.Delete(&project).Error; err != nil {
		return respondServerError(c, "Failed to delete project", err)
	}

	pc.Logger.Printf("project %d deleted by user %d", project.ID, user.ID)
	return c.JSON(fiber.Map{
		"message": "Project deleted successfully",
	})
}

package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"softdesk/models"
	"softdesk/permissions"
	"softdesk/utils"
)

type IssueController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewIssueController(db *gorm.DB, logger *log.Logger) *IssueController {
	return &IssueController{
		DB:     db,
		Logger: logger,
	}
}

// CreateIssue files an issue in a project. The acting user must be a member
// of the project; an assignee, when given, must be a member too.
func (ic *IssueController) CreateIssue(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if err := permissions.PermitCollection(permissions.ResourceIssue, user, c.Method()); err != nil {
		return respondPermissionError(c, user, err)
	}

	var req models.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var project models.Project
	if err := ic.DB.First(&project, req.ProjectID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Project not found", nil)
	}

	// Membership is re-validated at creation time, not by the collection
	// check.
	if !user.IsStaff && !permissions.IsMember(ic.DB, &project, user) {
		return respondPermissionError(c, user, permissions.ErrForbidden)
	}

	if req.AssigneeID != nil {
		var assignee models.User
		if err := ic.DB.First(&assignee, *req.AssigneeID).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Assignee not found", nil)
		}
		if !permissions.IsMember(ic.DB, &project, &assignee) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Assignee must be a member of the project", nil)
		}
	}

	issue := models.Issue{
		Name:        req.Name,
		Description: req.Description,
		Priority:    req.Priority,
		Tag:         req.Tag,
		Status:      req.Status,
		ProjectID:   req.ProjectID,
		AuthorID:    user.ID,
		AssigneeID:  req.AssigneeID,
	}
	if issue.Priority == "" {
		issue.Priority = models.PriorityMedium
	}
	if issue.Status == "" {
		issue.Status = models.StatusToDo
	}

	if err := ic.DB.Create(&issue).Error; err != nil {
		return respondServerError(c, "Failed to create issue", err)
	}

	return c.Status(fiber.StatusCreated).JSON(issue)
}

// GetIssues lists the issues visible to the user, optionally filtered by
// project. Visibility follows project membership.
func (ic *IssueController) GetIssues(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if err := permissions.PermitCollection(permissions.ResourceIssue, user, c.Method()); err != nil {
		return respondPermissionError(c, user, err)
	}

	query := ic.DB.Scopes(permissions.ScopeIssues(user))
	if projectID := c.Query("project_id"); projectID != "" {
		query = query.Where("issues.project_id = ?", projectID)
	}

	var issues []models.Issue
	if err := query.Find(&issues).Error; err != nil {
		return respondServerError(c, "Failed to fetch issues", err)
	}

	return c.JSON(issues)
}

// GetIssue returns a single issue, visible only to project members.
func (ic *IssueController) GetIssue(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var issue models.Issue
	if err := ic.DB.First(&issue, c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Issue not found", nil)
	}

	if err := permissions.PermitObject(ic.DB, user, c.Method(), &issue); err != nil {
		return respondPermissionError(c, user, err)
	}

	return c.JSON(issue)
}

// UpdateIssue modifies an issue. Only the issue's author may do this.
func (ic *IssueController) UpdateIssue(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var issue models.Issue
	if err := ic.DB.First(&issue, c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Issue not found", nil)
	}

	if err := permissions.PermitObject(ic.DB, user, c.Method(), &issue); err != nil {
		return respondPermissionError(c, user, err)
	}

	var req models.UpdateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	if req.Name != nil {
		issue.Name = *req.Name
	}
	if req.Description != nil {
		issue.Description = *req.Description
	}
	if req.Priority != nil {
		issue.Priority = *req.Priority
	}
	if req.Tag != nil {
		issue.Tag = *req.Tag
	}
	if req.Status != nil {
		issue.Status = *req.Status
	}
	if req.AssigneeID != nil {
		var project models.Project
		if err := ic.DB.First(&project, issue.ProjectID).Error; err != nil {
			return respondServerError(c, "Failed to load project", err)
		}
		var assignee models.User
		if err := ic.DB.First(&assignee, *req.AssigneeID).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Assignee not found", nil)
		}
		if !permissions.IsMember(ic.DB, &project, &assignee) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Assignee must be a member of the project", nil)
		}
		issue.AssigneeID = req.AssigneeID
	}

	if err := ic.DB.Save(&issue).Error; err != nil {
		return respondServerError(c, "Failed to update issue", err)
	}

	return c.JSON(issue)
}

// DeleteIssue removes an issue. Only the issue's author may do this.
func (ic *IssueController) DeleteIssue(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var issue models.Issue
	if err := ic.DB.First(&issue, c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Issue not found", nil)
	}

	if err := permissions.PermitObject(ic.DB, user, c.Method(), &issue); err != nil {
		return respondPermissionError(c, user, err)
	}

	if err := ic.DB.Delete(&issue).Error; err != nil {
		return respondServerError(c, "Failed to delete issue", err)
	}

	ic.Logger.Printf("issue %d deleted by user %d", issue.ID, user.ID)
	return c.JSON(fiber.Map{
		"message": "Issue deleted successfully",
	})
}

package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"softdesk/models"
	"softdesk/permissions"
	"softdesk/utils"
)

type CommentController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewCommentController(db *gorm.DB, logger *log.Logger) *CommentController {
	return &CommentController{
		DB:     db,
		Logger: logger,
	}
}

// CreateComment adds a comment to an issue. The acting user must be a
// member of the issue's project.
func (cc *CommentController) CreateComment(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if err := permissions.PermitCollection(permissions.ResourceComment, user, c.Method()); err != nil {
		return respondPermissionError(c, user, err)
	}

	var req models.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var issue models.Issue
	if err := cc.DB.First(&issue, req.IssueID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Issue not found", nil)
	}

	project, err := issue.ResolveProject(cc.DB)
	if err != nil {
		return respondServerError(c, "Failed to load project", err)
	}
	if !user.IsStaff && !permissions.IsMember(cc.DB, project, user) {
		return respondPermissionError(c, user, permissions.ErrForbidden)
	}

	comment := models.Comment{
		Description: req.Description,
		IssueID:     req.IssueID,
		AuthorID:    user.ID,
	}

	if err := cc.DB.Create(&comment).Error; err != nil {
		return respondServerError(c, "Failed to create comment", err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments lists the comments visible to the user, optionally filtered
// by issue. Visibility follows the parent issue's project membership.
func (cc *CommentController) GetComments(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if err := permissions.PermitCollection(permissions.ResourceComment, user, c.Method()); err != nil {
		return respondPermissionError(c, user, err)
	}

	query := cc.DB.Scopes(permissions.ScopeComments(user))
	if issueID := c.Query("issue_id"); issueID != "" {
		query = query.Where("comments.issue_id = ?", issueID)
	}

	var comments []models.Comment
	if err := query.Find(&comments).Error; err != nil {
		return respondServerError(c, "Failed to fetch comments", err)
	}

	return c.JSON(comments)
}

// GetComment returns a single comment, visible only to members of the
// issue's project.
func (cc *CommentController) GetComment(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var comment models.Comment
	if err := cc.DB.First(&comment, "id = ?", c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Comment not found", nil)
	}

	if err := permissions.PermitObject(cc.DB, user, c.Method(), &comment); err != nil {
		return respondPermissionError(c, user, err)
	}

	return c.JSON(comment)
}

// UpdateComment modifies a comment. Only the comment's author may do this.
func (cc *CommentController) UpdateComment(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var comment models.Comment
	if err := cc.DB.First(&comment, "id = ?", c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Comment not found", nil)
	}

	if err := permissions.PermitObject(cc.DB, user, c.Method(), &comment); err != nil {
		return respondPermissionError(c, user, err)
	}

	var req models.UpdateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	comment.Description = req.Description
	if err := cc.DB.Save(&comment).Error; err != nil {
		return respondServerError(c, "Failed to update comment", err)
	}

	return c.JSON(comment)
}

// DeleteComment removes a comment. Only the comment's author may do this.
func (cc *CommentController) DeleteComment(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var comment models.Comment
	if err := cc.DB.First(&comment, "id = ?", c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Comment not found", nil)
	}

	if err := permissions.PermitObject(cc.DB, user, c.Method(), &comment); err != nil {
		return respondPermissionError(c, user, err)
	}

	if err := cc.DB.Delete(&comment).Error; err != nil {
		return respondServerError(c, "Failed to delete comment", err)
	}

	cc.Logger.Printf("comment %s deleted by user %d", comment.ID, user.ID)
	return c.JSON(fiber.Map{
		"message": "Comment deleted successfully",
	})
}

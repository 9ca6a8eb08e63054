package controller

import (
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"softdesk/models"
	"softdesk/permissions"
	"softdesk/utils"
)

// respondPermissionError maps the permission error taxonomy onto HTTP:
// missing identity is an authentication failure, everything else is a
// permission failure. Denials are logged with their context since they are
// the security-relevant events of this API.
func respondPermissionError(c *fiber.Ctx, user *models.User, err error) error {
	if errors.Is(err, permissions.ErrUnauthenticated) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", nil)
	}

	fields := logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}
	if user != nil {
		fields["user_id"] = user.ID
	}
	logrus.WithFields(fields).Warn("permission denied")

	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Type:      "info",
		Category:  "permission_denied",
		Data:      map[string]interface{}{"method": c.Method(), "path": c.Path()},
		Timestamp: time.Now(),
	})

	return utils.ErrorResponse(c, fiber.StatusForbidden, "You do not have permission to perform this action", nil)
}

// respondServerError reports an unexpected failure to both the console and
// Sentry, then answers with a generic 500 so internals never leak to the
// client.
func respondServerError(c *fiber.Ctx, message string, err error) error {
	logrus.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"error":  err.Error(),
	}).Error(message)

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("path", c.Path())
		scope.SetExtra("method", c.Method())
		sentry.CaptureException(err)
	})

	return utils.ErrorResponse(c, fiber.StatusInternalServerError, message, nil)
}

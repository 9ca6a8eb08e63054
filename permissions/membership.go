package permissions

import (
	"gorm.io/gorm"

	"softdesk/models"
)

// IsAuthor reports whether the user authored the project.
func IsAuthor(project *models.Project, user *models.User) bool {
	if project == nil || user == nil {
		return false
	}
	return project.AuthorID == user.ID
}

// IsContributor reports whether a contributor row links the user to the
// project. The lookup always hits current rows; membership is never cached
// across requests since contributors can be added or removed at any time.
func IsContributor(db *gorm.DB, project *models.Project, user *models.User) bool {
	if project == nil || user == nil {
		return false
	}
	var count int64
	db.Model(&models.Contributor{}).
		Where("user_id = ? AND project_id = ?", user.ID, project.ID).
		Count(&count)
	return count > 0
}

// IsMember reports whether the user is the project's author or one of its
// contributors. The author is a member even without a contributor row.
func IsMember(db *gorm.DB, project *models.Project, user *models.User) bool {
	return IsAuthor(project, user) || IsContributor(db, project, user)
}

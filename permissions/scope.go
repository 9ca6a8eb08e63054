package permissions

import (
	"gorm.io/gorm"

	"softdesk/models"
)

// Queryset scopes narrow list queries to exactly the rows the user may see,
// so unauthorized records are never serialized. They must be applied before
// any list endpoint runs; the object checks alone only protect single-record
// fetches. Each scope is idempotent.

// memberProjectIDs is a subquery for the IDs of projects where the user is
// the author or a contributor.
func memberProjectIDs(db *gorm.DB, user *models.User) *gorm.DB {
	authored := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Project{}).Select("id").Where("author_id = ?", user.ID)
	contributed := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Contributor{}).Select("project_id").Where("user_id = ?", user.ID)
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Project{}).Select("id").
		Where("id IN (?) OR id IN (?)", authored, contributed)
}

// ScopeProjects limits a project query to projects the user authored or
// contributes to. Staff see everything.
func ScopeProjects(user *models.User) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if user.IsStaff {
			return db
		}
		return db.Where("projects.id IN (?)", memberProjectIDs(db, user))
	}
}

// ScopeIssues limits an issue query to issues whose parent project passes
// the project scope rule.
func ScopeIssues(user *models.User) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if user.IsStaff {
			return db
		}
		return db.Where("issues.project_id IN (?)", memberProjectIDs(db, user))
	}
}

// ScopeComments limits a comment query to comments whose issue belongs to a
// project the user is a member of.
func ScopeComments(user *models.User) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if user.IsStaff {
			return db
		}
		issues := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.Issue{}).Select("id").
			Where("project_id IN (?)", memberProjectIDs(db, user))
		return db.Where("comments.issue_id IN (?)", issues)
	}
}

// ScopeContributors applies no narrowing beyond authentication: any
// authenticated user may list contributor rows. Individual-record actions
// are still governed by the contributor object policy.
func ScopeContributors(user *models.User) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db
	}
}

package models

import (
	"gorm.io/gorm"
)

// Project type choices
const (
	ProjectTypeBackEnd  = "back-end"
	ProjectTypeFrontEnd = "front-end"
	ProjectTypeIOS      = "iOS"
	ProjectTypeAndroid  = "Android"
)

// Project is the top-level resource. The author is set at creation and never
// changes; the author is always a member of the project even without a
// Contributor row.
type Project struct {
	gorm.Model

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Type        string `gorm:"not null" json:"type"` // back-end, front-end, iOS, Android
	AuthorID    uint   `gorm:"not null;index" json:"author_id"`

	// Relations
	Author       User          `json:"author,omitempty"`
	Contributors []Contributor `gorm:"foreignKey:ProjectID" json:"contributors,omitempty"`
	Issues       []Issue       `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"issues,omitempty"`
}

// ResolveProject returns the project itself, satisfying the common lookup
// used by the permission policies.
func (p *Project) ResolveProject(db *gorm.DB) (*Project, error) {
	return p, nil
}

// Contributor grants a user membership in a project short of authorship.
// The (user_id, project_id) pair is unique: a user cannot be added to the
// same project twice.
type Contributor struct {
	gorm.Model

	UserID    uint `gorm:"not null;uniqueIndex:idx_user_project" json:"user_id"`
	ProjectID uint `gorm:"not null;uniqueIndex:idx_user_project;index" json:"project_id"`

	// Relations
	User    User    `json:"user,omitempty"`
	Project Project `gorm:"constraint:OnDelete:CASCADE" json:"project,omitempty"`
}

// ResolveProject loads the project this contributor row belongs to.
func (c *Contributor) ResolveProject(db *gorm.DB) (*Project, error) {
	var project Project
	if err := db.First(&project, c.ProjectID).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"required,oneof=back-end front-end iOS Android"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty" validate:"omitempty,oneof=back-end front-end iOS Android"`
}

type AddContributorRequest struct {
	UserID    uint `json:"user_id" validate:"required"`
	ProjectID uint `json:"project_id" validate:"required"`
}

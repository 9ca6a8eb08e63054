package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Issue priority choices
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// Issue tag choices
const (
	TagBug     = "BUG"
	TagFeature = "FEATURE"
	TagTask    = "TASK"
)

// Issue status choices
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusFinished   = "Finished"
)

// Issue belongs to exactly one project and is deleted with it. The author is
// set at creation and never changes. The assignee is optional and is cleared
// rather than cascaded when the assigned user is deleted.
type Issue struct {
	gorm.Model

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Priority    string `gorm:"default:'MEDIUM'" json:"priority"`
	Tag         string `gorm:"not null" json:"tag"`
	Status      string `gorm:"default:'To Do'" json:"status"`
	ProjectID   uint   `gorm:"not null;index" json:"project_id"`
	AuthorID    uint   `gorm:"not null" json:"author_id"`
	AssigneeID  *uint  `json:"assignee_id,omitempty"`

	// Relations
	Project  Project   `gorm:"constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Author   User      `json:"author,omitempty"`
	Assignee *User     `gorm:"constraint:OnDelete:SET NULL" json:"assignee,omitempty"`
	Comments []Comment `gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// ResolveProject loads the project this issue belongs to.
func (i *Issue) ResolveProject(db *gorm.DB) (*Project, error) {
	var project Project
	if err := db.First(&project, i.ProjectID).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Comment belongs to exactly one issue and is deleted with it. Comments use
// a UUID primary key so they are globally addressable.
type Comment struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	Description string         `gorm:"not null" json:"description"`
	IssueID     uint           `gorm:"not null;index" json:"issue_id"`
	AuthorID    uint           `gorm:"not null" json:"author_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Issue  Issue `gorm:"constraint:OnDelete:CASCADE" json:"issue,omitempty"`
	Author User  `json:"author,omitempty"`
}

// BeforeCreate assigns the UUID primary key.
func (cm *Comment) BeforeCreate(tx *gorm.DB) error {
	if cm.ID == "" {
		cm.ID = uuid.NewString()
	}
	return nil
}

// ResolveProject walks comment -> issue -> project. Comments inherit their
// visibility from the parent issue's project.
func (cm *Comment) ResolveProject(db *gorm.DB) (*Project, error) {
	var issue Issue
	if err := db.First(&issue, cm.IssueID).Error; err != nil {
		return nil, err
	}
	return issue.ResolveProject(db)
}

type CreateIssueRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Tag         string `json:"tag" validate:"required,oneof=BUG FEATURE TASK"`
	Status      string `json:"status" validate:"omitempty,oneof='To Do' 'In Progress' Finished"`
	ProjectID   uint   `json:"project_id" validate:"required"`
	AssigneeID  *uint  `json:"assignee_id,omitempty"`
}

type UpdateIssueRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Tag         *string `json:"tag,omitempty" validate:"omitempty,oneof=BUG FEATURE TASK"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof='To Do' 'In Progress' Finished"`
	AssigneeID  *uint   `json:"assignee_id,omitempty"`
}

type CreateCommentRequest struct {
	Description string `json:"description" validate:"required"`
	IssueID     uint   `json:"issue_id" validate:"required"`
}

type UpdateCommentRequest struct {
	Description string `json:"description" validate:"required"`
}

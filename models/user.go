package models

import (
	"gorm.io/gorm"
)

// User represents an account in the system. IsStaff marks administrators,
// who bypass every permission check.
type User struct {
	gorm.Model

	// Authentication fields
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Privacy consent (GDPR)
	Age             int  `json:"age"`
	CanBeContacted  bool `gorm:"default:false" json:"can_be_contacted"`
	CanDataBeShared bool `gorm:"default:false" json:"can_data_be_shared"`

	// Account status
	IsActive bool `gorm:"default:true" json:"is_active"`
	IsStaff  bool `gorm:"default:false" json:"is_staff"`

	// Relations
	AuthoredProjects []Project     `gorm:"foreignKey:AuthorID" json:"authored_projects,omitempty"`
	Contributions    []Contributor `gorm:"foreignKey:UserID" json:"contributions,omitempty"`
}

// RegisterRequest is the payload for account creation. SoftDesk requires
// users to be at least 15 years old to consent to data processing.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=150"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	Age             int    `json:"age" validate:"required,gte=15"`
	CanBeContacted  bool   `json:"can_be_contacted"`
	CanDataBeShared bool   `json:"can_data_be_shared"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

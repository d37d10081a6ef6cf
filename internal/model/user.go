// Package model contain gorm model for recording data to database
package model

import (
	"time"

	"github.com/google/uuid"
)

// Role constants for User.Role
var (
	// RoleVisitor is a public job seeker account
	RoleVisitor = "visitor"
	// RoleStaff is a staff account that can post jobs once approved
	RoleStaff = "staff"
	// RoleAdmin is an administrator account
	RoleAdmin = "admin"
)

// EditableUserInfo is part of user record that can be edited through profile endpoints
type EditableUserInfo struct {
	Tel *string `json:"tel"`
}

// User is gorm model for the shared account record of every role
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Username string    `gorm:"uniqueIndex;not null" json:"username"`
	Email    *string   `gorm:"uniqueIndex" json:"email"`
	Password string    `gorm:"type:text" json:"-"`
	Role     string    `gorm:"type:text;not null" json:"role"`

	// Active is false until the email verification code is confirmed.
	Active bool `gorm:"type:boolean;default:true" json:"active"`

	EditableUserInfo

	ProfilePictureID *int `json:"profile_picture_id"`
	ProfilePicture   File `gorm:"foreignKey:ProfilePictureID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

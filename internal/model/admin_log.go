package model

import "time"

// Audit action constants for AdminLog.Action
var (
	// ActionApprove records an admin approving a staff profile
	ActionApprove = "approve"
	// ActionReject records an admin rejecting a staff profile
	ActionReject = "reject"
)

// AdminLog is the audit record of an admin approval decision.
// Rows are written on every approve/reject and never updated.
type AdminLog struct {
	ID              uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	Action          string    `gorm:"type:text;not null;<-:create" json:"action"`
	AdminUsername   string    `gorm:"type:text;not null;<-:create" json:"admin_username"`
	TargetUserEmail string    `gorm:"type:text;<-:create" json:"target_user_email"`
	Note            string    `gorm:"type:text;<-:create" json:"note"`
	CreatedAt       time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// ApplicationStatusSubmitted indicates that the application is awaiting review
	ApplicationStatusSubmitted = "submitted"
	// ApplicationStatusAccepted indicates that the application has been accepted
	ApplicationStatusAccepted = "accepted"
	// ApplicationStatusRejected indicates that the application has been rejected
	ApplicationStatusRejected = "rejected"
)

// RejectionCooldown is how long a rejected applicant is blocked from re-applying.
const RejectionCooldown = 6 * 30 * 24 * time.Hour // 6 months

// JobApplication represents a job application record.
// A (visitor, post) pair may only apply once; rejection sets CooldownUntil
// which blocks the visitor from any new application while still in the future.
type JobApplication struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AppliedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"applied_at"`
	Status    string    `gorm:"type:text;default:'submitted'" json:"status"`

	VisitorID uuid.UUID      `gorm:"type:uuid;not null;index" json:"visitor_id"`
	Visitor   VisitorProfile `gorm:"foreignKey:VisitorID;references:UserID" json:"-"`

	PostID  uint    `gorm:"not null;index" json:"post_id"`
	JobPost JobPost `gorm:"foreignKey:PostID;references:ID" json:"-"`

	CVID *int `json:"cv_id"`
	CV   File `gorm:"foreignKey:CVID;references:ID" json:"-"`

	CooldownUntil *time.Time `gorm:"type:timestamp" json:"cooldown_until,omitempty"`
}

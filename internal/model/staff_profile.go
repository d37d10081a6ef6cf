package model

import (
	"time"

	"github.com/google/uuid"
)

// Status constants for StaffProfile.Status
var (
	// StatusPendingVerification indicates the staff has not confirmed their email yet
	StatusPendingVerification = "Pending Verification"
	// StatusPendingApproval indicates the email is verified and an admin review is outstanding
	StatusPendingApproval = "Pending Admin Approval"
	// StatusApproved indicates an admin approved the staff account
	StatusApproved = "Approved"
	// StatusRejected indicates an admin rejected the staff account
	StatusRejected = "Rejected"
)

// VerificationCodeTTL is how long an issued verification code stays valid.
const VerificationCodeTTL = 10 * time.Minute

// ResendLimit is the maximum number of verification code resends per profile.
const ResendLimit = 5

// ResendCooldown is the minimum wait between successive code sends.
const ResendCooldown = 60 * time.Second

// EditableStaffInfo is part of staff profile that can be edited
type EditableStaffInfo struct {
	FirstName  string `gorm:"type:text" json:"first_name"`
	MiddleName string `gorm:"type:text" json:"middle_name"`
	LastName   string `gorm:"type:text" json:"last_name"`
}

// StaffProfile is gorm model holding verification and approval state of a staff account
type StaffProfile struct {
	ID     uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"user"`

	EditableStaffInfo

	VerificationCode *string    `gorm:"type:varchar(6)" json:"-"`
	IsVerified       bool       `gorm:"type:boolean;default:false" json:"is_verified"`
	ResendCount      int        `gorm:"default:0" json:"resend_count"`
	CodeSentAt       *time.Time `gorm:"type:timestamp" json:"code_sent_at"`

	Status    string `gorm:"type:text;default:'Pending Verification'" json:"status"`
	AdminNote string `gorm:"type:text" json:"admin_note"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

// CodeExpired reports whether the currently issued verification code is past its window.
// A profile without an issued code counts as expired.
func (p *StaffProfile) CodeExpired(now time.Time) bool {
	if p.VerificationCode == nil || p.CodeSentAt == nil {
		return true
	}
	return now.After(p.CodeSentAt.Add(VerificationCodeTTL))
}

// FullName joins the staff name parts, skipping an empty middle name.
func (p *StaffProfile) FullName() string {
	if p.MiddleName == "" {
		return p.FirstName + " " + p.LastName
	}
	return p.FirstName + " " + p.MiddleName + " " + p.LastName
}

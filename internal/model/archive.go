package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Removal reason constants shared by archive and delete actions
var (
	// ReasonPositionFilled indicates the opening was filled
	ReasonPositionFilled = "position_filled"
	// ReasonPostExpired indicates the posting ran its course
	ReasonPostExpired = "post_expired"
	// ReasonWithdrawn indicates the opening was withdrawn by the staff
	ReasonWithdrawn = "withdrawn"
	// ReasonOther requires a free-text justification
	ReasonOther = "other"
)

// ValidRemovalReason reports whether s is one of the removal reason constants.
func ValidRemovalReason(s string) bool {
	switch s {
	case ReasonPositionFilled, ReasonPostExpired, ReasonWithdrawn, ReasonOther:
		return true
	}
	return false
}

// ArchivedJob is an immutable snapshot of a job post taken when it was archived.
// All fields are copied so the record survives later edits or deletion of the original.
type ArchivedJob struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	OriginalID uint      `gorm:"not null;index" json:"original_id"`
	JobNumber  string    `gorm:"not null;index" json:"job_number"`
	StaffID    uuid.UUID `gorm:"type:uuid;not null" json:"staff_id"`

	Title    string         `gorm:"type:text;<-:create" json:"title"`
	Desc     string         `gorm:"type:text;<-:create" json:"desc"`
	Req      string         `gorm:"type:text;<-:create" json:"req"`
	Location string         `gorm:"type:text;<-:create" json:"location"`
	Type     string         `gorm:"type:text;<-:create" json:"type"`
	Salary   string         `gorm:"type:text;<-:create" json:"salary"`
	Tags     pq.StringArray `gorm:"type:text[];<-:create" json:"tags"`

	Reason        string    `gorm:"type:text;not null;<-:create" json:"reason"`
	Justification string    `gorm:"type:text;<-:create" json:"justification"`
	ArchivedAt    time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"archived_at"`
}

// NewArchivedJob copies the current state of a job post into an archive snapshot.
func NewArchivedJob(job JobPost, reason, justification string) ArchivedJob {
	return ArchivedJob{
		OriginalID:    job.ID,
		JobNumber:     job.JobNumber,
		StaffID:       job.StaffUserID,
		Title:         job.Title,
		Desc:          job.Desc,
		Req:           job.Req,
		Location:      job.Location,
		Type:          job.Type,
		Salary:        job.Salary,
		Tags:          job.Tags,
		Reason:        reason,
		Justification: justification,
	}
}

// DeletionLog is the audit record written when a job post is permanently deleted.
type DeletionLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	JobNumber     string    `gorm:"not null;index;<-:create" json:"job_number"`
	Title         string    `gorm:"type:text;<-:create" json:"title"`
	DeletedBy     string    `gorm:"type:text;not null;<-:create" json:"deleted_by"`
	Reason        string    `gorm:"type:text;not null;<-:create" json:"reason"`
	Justification string    `gorm:"type:text;<-:create" json:"justification"`
	DeletedAt     time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"deleted_at"`
}

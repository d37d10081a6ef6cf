package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EditableJobPostInfo is part of job post that can be edited
type EditableJobPostInfo struct {
	Title    string         `gorm:"type:text" json:"title"`
	Desc     string         `gorm:"type:text" json:"desc"`
	Req      string         `gorm:"type:text" json:"req"`
	Location string         `gorm:"type:text" json:"location"`
	Type     string         `gorm:"type:text" json:"type"`
	Salary   string         `gorm:"type:text" json:"salary"`
	Tags     pq.StringArray `gorm:"type:text[]" json:"tags"`
}

// JobPost is gorm model for store job post data in DB
type JobPost struct {
	ID          uint         `gorm:"primaryKey;autoIncrement;->" json:"id"`
	JobNumber   string       `gorm:"uniqueIndex;not null;<-:create" json:"job_number"`
	StaffUserID uuid.UUID    `gorm:"type:uuid;not null;index;<-:create" json:"staff_user_id"`
	Staff       StaffProfile `gorm:"foreignKey:StaffUserID;references:UserID" json:"staff"`

	EditableJobPostInfo

	Archived bool      `gorm:"type:boolean;default:false" json:"archived"`
	PostTime time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"post_time"`

	Applications []JobApplication `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"applications"`
}

// JobPostResponse is the response struct for job post with user application status
type JobPostResponse struct {
	ID          uint         `json:"id"`
	JobNumber   string       `json:"job_number"`
	StaffUserID uuid.UUID    `json:"staff_user_id"`
	Staff       StaffProfile `json:"staff"`
	Archived    bool         `json:"archived"`
	PostTime    time.Time    `json:"post_time"`
	UserApply   bool         `json:"user_apply"`
	EditableJobPostInfo
}

// ToJobPostResponse converts JobPost to JobPostResponse
func (j *JobPost) ToJobPostResponse(user User) (JobPostResponse, error) {

	var resp JobPostResponse

	b, err := json.Marshal(j)
	if err != nil {
		return resp, err
	}

	err = json.Unmarshal(b, &resp)
	if err != nil {
		return resp, err
	}

	userApply := false

	if user.Role == RoleVisitor {
		for _, application := range j.Applications {
			if application.VisitorID.String() == user.ID.String() {
				userApply = true
				break
			}
		}
	}
	resp.UserApply = userApply

	return resp, nil
}

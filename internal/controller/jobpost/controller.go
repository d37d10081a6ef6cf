// Package jobpost provides HTTP handlers for job post related operations.
package jobpost

import (
	"StaffBoard-backend/internal/database"
	"StaffBoard-backend/internal/model"
	"StaffBoard-backend/internal/utilities"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobPostController handles job post related endpoints
type JobPostController struct {
	DB *database.DBinstanceStruct

	// newJobNumber generates candidate job numbers. Swappable so tests can
	// force collisions against existing posts.
	newJobNumber func(time.Time) string
}

// NewJobPostController creates a new instance of JobPostController
func NewJobPostController(db *database.DBinstanceStruct) *JobPostController {
	return &JobPostController{
		DB:           db,
		newJobNumber: newJobNumber,
	}
}

const jobNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxJobNumberAttempts bounds the retry loop on job number collisions.
const maxJobNumberAttempts = 10

func randomJobNumberSuffix(length int) string {
	var sb strings.Builder
	max := big.NewInt(int64(len(jobNumberAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the platform entropy source is broken
			panic(err)
		}
		sb.WriteByte(jobNumberAlphabet[n.Int64()])
	}
	return sb.String()
}

// newJobNumber builds a candidate identifier like JOB-20250101-X7K2P9.
func newJobNumber(now time.Time) string {
	return fmt.Sprintf("JOB-%s-%s", now.Format("20060102"), randomJobNumberSuffix(6))
}

// approvedStaffProfile loads the staff profile of the given user and checks
// that it has passed admin approval. It writes the error response itself.
func (jc *JobPostController) approvedStaffProfile(c *gin.Context, user model.User) (model.StaffProfile, bool) {
	var staff model.StaffProfile
	if err := jc.DB.Where("user_id = ?", user.ID.String()).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Only staff users can manage job posts"})
			return staff, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve staff information: %s", err.Error()),
		})
		return staff, false
	}
	if staff.Status != model.StatusApproved {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Only approved staff can manage job posts",
		})
		return staff, false
	}
	return staff, true
}

// CreateJobPostHandler handles the creation of a new job post by a staff user.
// @Summary Create job post based on given json structure
// @Description Only approved staff have access to this endpoint
// @Tags Jobpost
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Jobpost body model.EditableJobPostInfo true "Input jobpost information"
// @Success 201 {object} model.JobPost "Successfully create job post"
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header, or invalid job post struct"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as approved staff"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobpost [post]
func (jc *JobPostController) CreateJobPostHandler(c *gin.Context) {

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	if _, ok := jc.approvedStaffProfile(c, user); !ok {
		return
	}

	// construct job post from request
	jobPost := model.JobPost{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&jobPost.EditableJobPostInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if strings.TrimSpace(jobPost.Title) == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Job post title must not be empty",
		})
		return
	}

	jobPost.StaffUserID = user.ID
	jobPost.PostTime = time.Now()

	// Job numbers embed the post date plus a random suffix. The unique index
	// on job_number arbitrates races, so retry with a fresh suffix on conflict.
	var created bool
	for attempt := 0; attempt < maxJobNumberAttempts; attempt++ {
		jobPost.JobNumber = jc.newJobNumber(jobPost.PostTime)
		err := jc.DB.Create(&jobPost).Error
		if err == nil {
			created = true
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			jobPost.ID = 0
			continue
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create job post: ", err),
		})
		return
	}
	if !created {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to allocate a unique job number",
		})
		return
	}

	c.JSON(http.StatusCreated, jobPost)
}

// GetPosts fetches all active (non-archived) job posts that match query from
// the database and returns them as a JSON response. This endpoint is public.
// @Summary Get active job posts based on query
// @Description Every query are not required, but they have specific use defined in their description
// @Tags Jobpost
// @Produce json
// @Param search query string false "Search from job post title with substring matching and case insensitive"
// @Param type query string false "Job type field with substring matching and case insensitive"
// @Param tag query string false "Search if tags field contain tag param, no substring matching and case insensitive"
// @Param salary query string false "Salary field, must exactly match to get result"
// @Param location query string false "Search from location with substring matching and case insensitive"
// @Param desc query boolean false "Sorting by post time in descending if true, otherwise ascending"
// @Success 200 {array} model.JobPostResponse "Return active job post(s)"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobpost [get]
func (jc *JobPostController) GetPosts(c *gin.Context) {

	// Anonymous visitors still get the board, just without per-user fields.
	user, _ := utilities.ExtractUser(c)

	rawSearch := c.Query("search")
	rawJobType := c.Query("type")
	rawTag := c.Query("tag")
	rawSalary := c.Query("salary")
	rawLocation := c.Query("location")
	rawDesc := c.Query("desc")

	var rawPosts []model.JobPost

	result := jc.DB.Preload("Staff").
		Preload("Staff.User").
		Preload("Applications").
		Where("archived = ?", false)

	if rawSearch != "" {
		result = result.Where("title ILIKE ?", "%"+rawSearch+"%")
	}

	if rawJobType != "" {
		result = result.Where("type ILIKE ?", "%"+rawJobType+"%")
	}

	if rawTag != "" {
		result = result.Where("? ILIKE ANY(tags)", rawTag)
	}

	if rawSalary != "" {
		result = result.Where("salary = ?", rawSalary)
	}

	if rawLocation != "" {
		result = result.Where("location ILIKE ?", "%"+rawLocation+"%")
	}

	result = result.Order(clause.OrderByColumn{
		Column: clause.Column{Name: "post_time"},
		Desc:   strings.ToLower(rawDesc) == "true",
	}).Find(&rawPosts)

	if err := result.Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch job post: ", err.Error()),
		})
		return
	}

	posts := []model.JobPostResponse{}
	for _, rawPost := range rawPosts {
		rawPostResp, err := rawPost.ToJobPostResponse(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprint("Failed to process job post: ", err.Error()),
			})
			return
		}
		posts = append(posts, rawPostResp)
	}

	c.JSON(http.StatusOK, posts)
}

// GetPostByNumber fetches a job post by its job number from the database
// and returns it as a JSON response.
// @Summary Get job post by job number
// @Description Retrieve a specific job post using its unique job number
// @Tags Jobpost
// @Produce json
// @Param number path string true "Job number of desired job post" example(JOB-20250101-AAA111)
// @Success 200 {object} model.JobPostResponse "Return the job post with the specified job number"
// @Failure 404 {object} utilities.ErrorResponse "Job post not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobpost/{number} [get]
func (jc *JobPostController) GetPostByNumber(c *gin.Context) {
	number := c.Param("number")

	user, _ := utilities.ExtractUser(c)

	job := model.JobPost{}
	if err := jc.DB.
		Preload("Staff").
		Preload("Staff.User").
		Preload("Applications").
		Where("job_number = ?", number).
		First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}

	rawPostResp, err := job.ToJobPostResponse(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to process job post: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, rawPostResp)
}

// MyPosts returns every job post owned by the requesting staff user,
// archived ones included.
// @Summary Get all job posts owned by the requesting staff
// @Description Only approved staff have access to this endpoint
// @Tags Jobpost
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.JobPost
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as approved staff"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobpost/mine [get]
func (jc *JobPostController) MyPosts(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var posts []model.JobPost
	if err := jc.DB.Preload("Applications").
		Where("staff_user_id = ?", user.ID.String()).
		Order("post_time DESC").
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch job post: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// EditJobPost allows a staff user to update a job post they own.
// @Summary Edit job post based on given json structure
// @Description Only staff that own the post have access to this endpoint
// @Tags Jobpost
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param number path string true "Job number of desired job post"
// @Param Jobpost body model.EditableJobPostInfo true "Input jobpost information"
// @Success 200 {object} model.JobPost "Successfully update job post"
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header, or invalid job post struct"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to edit"
// @Failure 404 {object} utilities.ErrorResponse "Post not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobpost/{number} [patch]
func (jc *JobPostController) EditJobPost(c *gin.Context) {

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	number := c.Param("number")

	job := model.JobPost{}
	if err := jc.DB.Where("job_number = ?", number).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}

	// Compare as strings to avoid type mismatches
	if job.StaffUserID.String() != user.ID.String() {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to edit this job post",
		})
		return
	}

	if job.Archived {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Archived job posts cannot be edited",
		})
		return
	}

	// Bind incoming JSON to a temporary struct to avoid overwriting ownership fields
	updated := model.JobPost{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&updated.EditableJobPostInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	if err := jc.DB.Model(&job).Updates(updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update job post: %s", err.Error()),
		})
		return
	}

	// Reload the job post to return the latest data
	if err := jc.DB.Where("id = ?", job.ID).First(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve updated job post: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

type archiveInfo struct {
	Reason        string `json:"reason" binding:"required"`
	Justification string `json:"justification"`
}

// ArchiveJobPost removes a job post from the public board while keeping an
// immutable snapshot of it. A reason is mandatory; the catch-all reason
// requires a written justification.
// @Summary Archive a job post with a removal reason
// @Description Only staff that own the post have access to this endpoint
// @Tags Jobpost
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param number path string true "Job number of desired job post"
// @Param Info body archiveInfo true "reason must be one of position_filled, post_expired, withdrawn, other"
// @Success 200 {object} model.ArchivedJob "Archive snapshot of the post"
// @Failure 400 {object} utilities.ErrorResponse "Unknown reason, or missing justification"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to archive"
// @Failure 404 {object} utilities.ErrorResponse "Post not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobpost/{number}/archive [post]
func (jc *JobPostController) ArchiveJobPost(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	number := c.Param("number")

	var info archiveInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Removal reason must be provided",
		})
		return
	}

	if !model.ValidRemovalReason(info.Reason) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unknown removal reason: %s", info.Reason),
		})
		return
	}

	if info.Reason == model.ReasonOther && strings.TrimSpace(info.Justification) == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "please specify reason",
		})
		return
	}

	job := model.JobPost{}
	if err := jc.DB.Where("job_number = ?", number).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}

	if job.StaffUserID.String() != user.ID.String() {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to archive this job post",
		})
		return
	}

	if job.Archived {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Job post is already archived",
		})
		return
	}

	snapshot := model.NewArchivedJob(job, info.Reason, info.Justification)

	err = jc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&snapshot).Error; err != nil {
			return err
		}
		return tx.Model(&job).Update("archived", true).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to archive job post: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// UnarchiveJobPost restores an archived job post to the public board and
// removes its archive record.
// @Summary Restore an archived job post
// @Description Only staff that own the post have access to this endpoint
// @Tags Jobpost
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param number path string true "Job number of desired job post"
// @Success 200 {object} model.JobPost "Restored job post"
// @Failure 400 {object} utilities.ErrorResponse "Post is not archived, or original post deleted"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to unarchive"
// @Failure 404 {object} utilities.ErrorResponse "Archive record not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobpost/{number}/unarchive [post]
func (jc *JobPostController) UnarchiveJobPost(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	number := c.Param("number")

	var archive model.ArchivedJob
	if err := jc.DB.Where("job_number = ?", number).First(&archive).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Archive record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve archive record: %s", err.Error()),
		})
		return
	}

	job := model.JobPost{}
	if err := jc.DB.Where("id = ?", archive.OriginalID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The live post was deleted after archiving, so nothing can be restored.
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "Original job post no longer exists and cannot be restored",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}

	if job.StaffUserID.String() != user.ID.String() {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to unarchive this job post",
		})
		return
	}

	err = jc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&job).Update("archived", false).Error; err != nil {
			return err
		}
		return tx.Delete(&archive).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to unarchive job post: %s", err.Error()),
		})
		return
	}

	job.Archived = false
	c.JSON(http.StatusOK, job)
}

type deleteInfo struct {
	Reason        string `json:"reason" binding:"required"`
	Justification string `json:"justification"`
}

// DeleteJobPost permanently removes a job post. The deletion is recorded in
// the deletion log together with the stated reason.
// @Summary Permanently delete a job post with a reason
// @Description Only staff that own the post or admin have access to this endpoint
// @Tags Jobpost
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param number path string true "Job number of desired job post"
// @Param Info body deleteInfo true "reason must be one of position_filled, post_expired, withdrawn, other"
// @Success 200 {object} utilities.MessageResponse "Successfully delete job post"
// @Failure 400 {object} utilities.ErrorResponse "Unknown reason, or missing justification"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to delete this post"
// @Failure 404 {object} utilities.ErrorResponse "Post not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobpost/{number} [delete]
func (jc *JobPostController) DeleteJobPost(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	number := c.Param("number")

	var info deleteInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Deletion reason must be provided",
		})
		return
	}

	if !model.ValidRemovalReason(info.Reason) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unknown removal reason: %s", info.Reason),
		})
		return
	}

	if info.Reason == model.ReasonOther && strings.TrimSpace(info.Justification) == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "please specify reason",
		})
		return
	}

	job := model.JobPost{}
	if err := jc.DB.Where("job_number = ?", number).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}

	if job.StaffUserID.String() != user.ID.String() {
		// Allow admins to bypass ownership check
		if user.Role != model.RoleAdmin {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "You are not allowed to delete this job post",
			})
			return
		}
	}

	logEntry := model.DeletionLog{
		JobNumber:     job.JobNumber,
		Title:         job.Title,
		DeletedBy:     user.Username,
		Reason:        info.Reason,
		Justification: info.Justification,
	}

	err = jc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", job.ID).Delete(&model.JobApplication{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&job).Error; err != nil {
			return err
		}
		return tx.Create(&logEntry).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete job post: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job post deleted"})
}

// ListArchived returns archive snapshots owned by the requesting staff user.
// Admins get every snapshot.
// @Summary Get archived job snapshots
// @Description Staff see their own archives, admin sees all
// @Tags Jobpost
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.ArchivedJob
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobpost/archived [get]
func (jc *JobPostController) ListArchived(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	result := jc.DB.Order("archived_at DESC")
	if user.Role != model.RoleAdmin {
		result = result.Where("staff_id = ?", user.ID.String())
	}

	var archives []model.ArchivedJob
	if err := result.Find(&archives).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch archives: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, archives)
}

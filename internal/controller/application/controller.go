// Package application provides HTTP handlers for job application operations.
package application

import (
	"StaffBoard-backend/internal/controller/file"
	"StaffBoard-backend/internal/database"
	"StaffBoard-backend/internal/model"
	"StaffBoard-backend/internal/utilities"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB      *database.DBinstanceStruct
	Storage file.StorageClient
}

// NewApplicationController creates a new instance of ApplicationController with the provided database connection.
func NewApplicationController(db *database.DBinstanceStruct, storage file.StorageClient) *ApplicationController {
	return &ApplicationController{
		DB:      db,
		Storage: storage,
	}
}

// activeCooldown returns the latest cooldown date blocking the visitor,
// or nil when the visitor may apply.
func (j *ApplicationController) activeCooldown(visitorID string, now time.Time) (*time.Time, error) {
	var rejected []model.JobApplication
	err := j.DB.
		Where("visitor_id = ? AND status = ? AND cooldown_until > ?",
			visitorID, model.ApplicationStatusRejected, now).
		Find(&rejected).Error
	if err != nil {
		return nil, err
	}

	var latest *time.Time
	for i := range rejected {
		until := rejected[i].CooldownUntil
		if until == nil {
			continue
		}
		if latest == nil || until.After(*latest) {
			latest = until
		}
	}
	return latest, nil
}

// ApplicationHandler handles the creation of a new job application by a visitor.
// The CV comes either from the multipart "cv" file or, when omitted, from the
// visitor's stored default CV.
// @Summary Create job application with a CV
// @Description Only visitor user can access this endpoint
// @Description CV file must be smaller than 5 MB with .pdf, .png, .jpg, or .jpeg extension
// @Tags Application
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param job_number formData string true "Job number of the post to apply to"
// @Param cv formData file false "CV file, defaults to the stored profile CV when omitted"
// @Success 201 {object} model.JobApplication "Successfully apply job post"
// @Failure 400 {object} utilities.ErrorResponse "Already applied, no CV available, or invalid request"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as visitor, or rejection cooldown active"
// @Failure 404 {object} utilities.ErrorResponse "Job post not found"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 5 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application [post]
func (j *ApplicationController) ApplicationHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var visitor model.VisitorProfile
	if err := j.DB.Where("user_id = ?", user.ID.String()).First(&visitor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Only visitors can apply to job posts"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve visitor information: %s", err.Error()),
		})
		return
	}

	now := time.Now()
	until, err := j.activeCooldown(user.ID.String(), now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to check application history: %s", err.Error()),
		})
		return
	}
	if until != nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: fmt.Sprintf("A recent rejection blocks new applications until %s", until.Format("2006-01-02")),
		})
		return
	}

	jobNumber := c.PostForm("job_number")
	if jobNumber == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "job_number must be provided",
		})
		return
	}

	var post model.JobPost
	if err := j.DB.Where("job_number = ?", jobNumber).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}

	if post.Archived {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "This job post is no longer accepting applications",
		})
		return
	}

	// Prevent duplicate applications: one application per visitor per post
	existing := model.JobApplication{}
	if err := j.DB.
		Where("visitor_id = ? AND post_id = ?", user.ID, post.ID).
		First(&existing).Error; err == nil {
		// Informational, not an error: the earlier application still stands.
		c.JSON(http.StatusOK, utilities.MessageResponse{
			Message: "You have already applied to this job post",
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to check existing application",
		})
		return
	}

	application := model.JobApplication{
		VisitorID: user.ID,
		PostID:    post.ID,
		Status:    model.ApplicationStatusSubmitted,
	}

	if _, err := c.FormFile("cv"); err == nil {
		fileBytes, extension := file.ReadUpload(c, "cv", file.CVExtensions)
		if fileBytes == nil {
			return
		}
		if err := file.PersistFileData(j.Storage, &application.CV, fileBytes, extension, file.CVObjectPrefix); err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to store CV: %s", err.Error()),
			})
			return
		}
	} else if visitor.ResumeID != nil {
		application.CVID = visitor.ResumeID
	} else {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "A CV file is required: attach one or upload a default CV first",
		})
		return
	}

	if err := j.DB.Session(&gorm.Session{FullSaveAssociations: true}).Create(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, application)
}

// loadOwnedApplication fetches the application and verifies the requesting
// staff user owns the post it targets. It writes error responses itself.
func (j *ApplicationController) loadOwnedApplication(c *gin.Context) (model.JobApplication, bool) {
	application := model.JobApplication{}

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return application, false
	}

	id := c.Param("id")
	if err := j.DB.Preload("JobPost").Where("id = ?", id).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return application, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return application, false
	}

	if application.JobPost.StaffUserID.String() != user.ID.String() {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Only the staff that owns the post can decide on its applications",
		})
		return application, false
	}

	return application, true
}

// AcceptApplication marks an application as accepted by the post owner.
// @Summary Accept a job application
// @Description Only the staff that owns the post have access to this endpoint
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the application"
// @Success 200 {object} model.JobApplication
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner of the post"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/{id}/accept [post]
func (j *ApplicationController) AcceptApplication(c *gin.Context) {
	application, ok := j.loadOwnedApplication(c)
	if !ok {
		return
	}

	application.Status = model.ApplicationStatusAccepted
	application.CooldownUntil = nil

	if err := j.DB.Save(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, application)
}

// RejectApplication marks an application as rejected by the post owner and
// starts the re-application cooldown for the visitor.
// @Summary Reject a job application
// @Description Only the staff that owns the post have access to this endpoint
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the application"
// @Success 200 {object} model.JobApplication
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner of the post"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/{id}/reject [post]
func (j *ApplicationController) RejectApplication(c *gin.Context) {
	application, ok := j.loadOwnedApplication(c)
	if !ok {
		return
	}

	until := time.Now().Add(model.RejectionCooldown)
	application.Status = model.ApplicationStatusRejected
	application.CooldownUntil = &until

	if err := j.DB.Save(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, application)
}

// ListForPost returns every application submitted to one of the requesting
// staff user's posts.
// @Summary Get applications of an owned job post
// @Description Only the staff that owns the post have access to this endpoint
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param number path string true "Job number of the owned post"
// @Success 200 {array} model.JobApplication
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner of the post"
// @Failure 404 {object} utilities.ErrorResponse "Job post not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobpost/{number}/applications [get]
func (j *ApplicationController) ListForPost(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	number := c.Param("number")

	var post model.JobPost
	if err := j.DB.Where("job_number = ?", number).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}

	if post.StaffUserID.String() != user.ID.String() {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Only the staff that owns the post can view its applications",
		})
		return
	}

	var applications []model.JobApplication
	if err := j.DB.Preload("Visitor").Preload("Visitor.User").
		Where("post_id = ?", post.ID).
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, applications)
}

// MyApplications returns the requesting visitor's applications.
// @Summary Get applications submitted by the requesting visitor
// @Description Only visitor user can access this endpoint
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.JobApplication
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/mine [get]
func (j *ApplicationController) MyApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var applications []model.JobApplication
	if err := j.DB.Preload("JobPost").
		Where("visitor_id = ?", user.ID.String()).
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, applications)
}

// RemoveApplication lets a visitor withdraw one of their own applications
// while it is still awaiting a decision.
// @Summary Withdraw an application
// @Description Only the visitor that submitted the application can withdraw it
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the application"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Application already decided"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the applicant"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/{id} [delete]
func (j *ApplicationController) RemoveApplication(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	application := model.JobApplication{}
	if err := j.DB.Where("id = ?", id).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}

	if application.VisitorID.String() != user.ID.String() {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to withdraw this application",
		})
		return
	}

	if application.Status != model.ApplicationStatusSubmitted {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Decided applications cannot be withdrawn",
		})
		return
	}

	if err := j.DB.Delete(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application withdrawn"})
}

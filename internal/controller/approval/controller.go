// Package approval provides the admin-side review workflow for staff registrations.
package approval

import (
	"StaffBoard-backend/internal/database"
	"StaffBoard-backend/internal/mail"
	"StaffBoard-backend/internal/model"
	"StaffBoard-backend/internal/utilities"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApprovalController handles admin approval endpoints
type ApprovalController struct {
	DB     *database.DBinstanceStruct
	Mailer mail.Mailer
}

// NewApprovalController creates a new instance of ApprovalController
func NewApprovalController(db *database.DBinstanceStruct, mailer mail.Mailer) *ApprovalController {
	return &ApprovalController{
		DB:     db,
		Mailer: mailer,
	}
}

type actionInfo struct {
	ProfileID uint   `json:"profile_id" binding:"required"`
	Action    string `json:"action" binding:"required"`
	AdminNote string `json:"admin_note"`
}

// Dashboard returns staff profile counts per approval status.
// @Summary Get staff registration counts per status
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} map[string]int64
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/dashboard [get]
func (ac *ApprovalController) Dashboard(c *gin.Context) {
	statuses := map[string]string{
		"pending_verification": model.StatusPendingVerification,
		"pending_approval":     model.StatusPendingApproval,
		"approved":             model.StatusApproved,
		"rejected":             model.StatusRejected,
	}

	stats := map[string]int64{}
	for key, status := range statuses {
		var count int64
		if err := ac.DB.Model(&model.StaffProfile{}).Where("status = ?", status).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Database error: %s", err.Error()),
			})
			return
		}
		stats[key] = count
	}

	c.JSON(http.StatusOK, stats)
}

// ListProfiles returns staff profiles, optionally filtered by exact status.
// @Summary Get staff profiles based on given query
// @Description Only admin can access this endpoint
// @Description If no query given, the server will return all staff profiles
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param status query string false "Exact status string" example(Pending Admin Approval)
// @Success 200 {array} model.StaffProfile
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/staff-approvals [get]
func (ac *ApprovalController) ListProfiles(c *gin.Context) {
	rawStatus := c.Query("status")

	result := ac.DB.Preload("User").Order("created_at DESC")
	if rawStatus != "" {
		result = result.Where("status = ?", rawStatus)
	}

	var profiles []model.StaffProfile
	if err := result.Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// Action applies an approve or reject decision to a staff profile.
// The decision is persisted first; the notification email is best-effort and
// an audit log row records the decision either way.
// @Summary Approve or reject a staff registration
// @Description Only admin can access this endpoint
// @Tags Admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Info body actionInfo true "action must be 'approve' or 'reject'; admin_note is optional"
// @Success 200 {object} model.StaffProfile
// @Failure 400 {object} utilities.ErrorResponse "Unknown action or invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Given profile ID not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/staff-approvals/action [post]
func (ac *ApprovalController) Action(c *gin.Context) {
	admin, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info actionInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Profile ID and action must be provided",
		})
		return
	}

	var newStatus, logAction string
	switch info.Action {
	case "approve":
		newStatus = model.StatusApproved
		logAction = model.ActionApprove
	case "reject":
		newStatus = model.StatusRejected
		logAction = model.ActionReject
	default:
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unknown action: %s", info.Action),
		})
		return
	}

	var profile model.StaffProfile
	err = ac.DB.Preload("User").Where("id = ?", info.ProfileID).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{
			Error: fmt.Sprintf("Profile %d does not exist in the database", info.ProfileID),
		})
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	profile.Status = newStatus
	profile.AdminNote = info.AdminNote

	if err := ac.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update profile: %s", err.Error()),
		})
		return
	}

	targetEmail := ""
	if profile.User.Email != nil {
		targetEmail = *profile.User.Email
	}

	switch logAction {
	case model.ActionApprove:
		mail.BestEffort(ac.Mailer, targetEmail,
			"Staff Account Approved",
			fmt.Sprintf("Hi %s,\n\nYour staff account has been approved. You can now log in.", profile.FullName()),
		)
	case model.ActionReject:
		mail.BestEffort(ac.Mailer, targetEmail,
			"Staff Account Rejected",
			fmt.Sprintf("Hi %s,\n\nYour staff account has been rejected. Note: %s", profile.FullName(), info.AdminNote),
		)
	}

	logEntry := model.AdminLog{
		Action:          logAction,
		AdminUsername:   admin.Username,
		TargetUserEmail: targetEmail,
		Note:            info.AdminNote,
	}
	if err := ac.DB.Create(&logEntry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to record audit log: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ListLogs returns the audit trail of approval decisions, newest first.
// @Summary Get admin approval audit log
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.AdminLog
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/logs [get]
func (ac *ApprovalController) ListLogs(c *gin.Context) {
	var logs []model.AdminLog
	if err := ac.DB.Order("created_at DESC").Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, logs)
}

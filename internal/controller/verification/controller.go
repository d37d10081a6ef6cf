// Package verification provides HTTP handlers for the email verification flow
// of staff registrations: code confirmation and code resend.
package verification

import (
	"StaffBoard-backend/internal/database"
	"StaffBoard-backend/internal/mail"
	"StaffBoard-backend/internal/model"
	"StaffBoard-backend/internal/utilities"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// VerificationController handles verification code endpoints
type VerificationController struct {
	DB     *database.DBinstanceStruct
	Mailer mail.Mailer
}

// NewVerificationController creates a new instance of VerificationController
func NewVerificationController(db *database.DBinstanceStruct, mailer mail.Mailer) *VerificationController {
	return &VerificationController{
		DB:     db,
		Mailer: mailer,
	}
}

type verifyInfo struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type resendInfo struct {
	Email string `json:"email" binding:"required,email"`
}

// findProfileByEmail loads the staff profile owning the given email address.
// It writes the error response itself when the lookup fails.
func (vc *VerificationController) findProfileByEmail(c *gin.Context, email string) (model.StaffProfile, bool) {
	var profile model.StaffProfile
	err := vc.DB.Preload("User").
		Joins("JOIN users ON users.id = staff_profiles.user_id").
		Where("LOWER(users.email) = ?", strings.ToLower(email)).
		First(&profile).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{
			Error: "No staff registration found for this email",
		})
		return profile, false

	case err != nil:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return profile, false
	}
	return profile, true
}

// VerifyEmail confirms a staff email with the issued 6-digit code.
// A correct code inside the 10-minute window activates the account and moves
// the profile from pending-verification to pending-admin-approval. A wrong
// code consumes nothing; verifying an already verified profile is a no-op.
// @Summary Confirm a staff email with the verification code
// @Tags Verification
// @Accept json
// @Produce json
// @Param Info body verifyInfo true "Registered email and the 6-digit code"
// @Success 200 {object} model.StaffProfile "Email verified, profile now pending admin approval"
// @Failure 400 {object} utilities.ErrorResponse "Invalid or expired code"
// @Failure 404 {object} utilities.ErrorResponse "No staff registration for this email"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/staff/verify [post]
func (vc *VerificationController) VerifyEmail(c *gin.Context) {
	var info verifyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email and code must be provided",
		})
		return
	}

	profile, ok := vc.findProfileByEmail(c, info.Email)
	if !ok {
		return
	}

	if profile.IsVerified {
		// Repeated verification must never re-run the transition.
		c.JSON(http.StatusOK, utilities.MessageResponse{
			Message: "Email already verified",
		})
		return
	}

	if profile.CodeExpired(time.Now()) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Verification code expired, please request a new one",
		})
		return
	}

	if profile.VerificationCode == nil || strings.TrimSpace(info.Code) != *profile.VerificationCode {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Invalid verification code",
		})
		return
	}

	profile.IsVerified = true
	profile.Status = model.StatusPendingApproval
	profile.VerificationCode = nil
	profile.User.Active = true

	if err := vc.DB.Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ResendCode issues a fresh verification code for an unverified staff profile.
// At most 5 resends are allowed per profile and at least 60 seconds must pass
// between sends.
// @Summary Resend the staff verification code
// @Tags Verification
// @Accept json
// @Produce json
// @Param Info body resendInfo true "Registered email"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Resend quota exhausted or cooldown active"
// @Failure 404 {object} utilities.ErrorResponse "No staff registration for this email"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/staff/resend [post]
func (vc *VerificationController) ResendCode(c *gin.Context) {
	var info resendInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email must be provided",
		})
		return
	}

	profile, ok := vc.findProfileByEmail(c, info.Email)
	if !ok {
		return
	}

	if profile.IsVerified {
		c.JSON(http.StatusOK, utilities.MessageResponse{
			Message: "Email already verified",
		})
		return
	}

	if profile.ResendCount >= model.ResendLimit {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Maximum resend attempts reached",
		})
		return
	}

	if profile.CodeSentAt != nil {
		elapsed := time.Since(*profile.CodeSentAt)
		if elapsed < model.ResendCooldown {
			remaining := int((model.ResendCooldown - elapsed).Seconds()) + 1
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Please wait %d seconds before requesting a new code", remaining),
			})
			return
		}
	}

	code := utilities.GenerateVerificationCode(6)
	now := time.Now()
	profile.VerificationCode = &code
	profile.CodeSentAt = &now
	profile.ResendCount++

	if err := vc.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update profile: %s", err.Error()),
		})
		return
	}

	email := ""
	if profile.User.Email != nil {
		email = *profile.User.Email
	}
	mail.BestEffort(vc.Mailer, email,
		"Staff Verification Code",
		fmt.Sprintf("Hello %s,\n\nYour verification code is: %s\nIt expires in 10 minutes.\n\nIf you didn't request this, ignore.", profile.User.Username, code),
	)

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "New code sent to your email"})
}

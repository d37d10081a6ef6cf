// Package profile expose handlers for viewing and editing the caller's own profile
package profile

import (
	"StaffBoard-backend/internal/database"
	"StaffBoard-backend/internal/model"
	"StaffBoard-backend/internal/utilities"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProfileController holds database connection for profile endpoints
type ProfileController struct {
	DB *database.DBinstanceStruct
}

// NewProfileController returns controller bound to the given database
func NewProfileController(db *database.DBinstanceStruct) *ProfileController {
	return &ProfileController{
		DB: db,
	}
}

type editStaffUser struct {
	model.EditableStaffInfo
	model.EditableUserInfo
}

type editVisitorUser struct {
	model.EditableVisitorInfo
	model.EditableUserInfo
}

// GetStaffProfile function retrieve the caller's staff profile from database
// and response as JSON format.
// @Summary Retrieve own staff profile from database
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.StaffProfile "Successfully retrieve staff profile"
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as staff"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /staff/profile [get]
func (pc *ProfileController) GetStaffProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	staff := model.StaffProfile{}
	if err := pc.DB.Preload("User").
		Where("user_id = ?", user.ID.String()).
		First(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve user information from database: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, staff)
}

// EditStaffProfile function overwrite staff profile, save into database
// ,and response edited profile as JSON format.
// @Summary Edit own staff profile
// @Description Overwrite staff profile and save into database
// @Description Sensitive field like id, verification state, and approval status can't be overwritten
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param staff_profile body editStaffUser true "Staff info to be written"
// @Success 200 {object} model.StaffProfile "Successfully overwrite"
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header or request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as staff"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /staff/profile [patch]
func (pc *ProfileController) EditStaffProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	staff := model.StaffProfile{}
	if err := pc.DB.Preload("User").
		Where("user_id = ?", user.ID.String()).
		First(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve user information from database: %s", err.Error()),
		})
		return
	}

	edited := editStaffUser{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&edited); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&staff.EditableStaffInfo, &edited.EditableStaffInfo)
	utilities.MergeNonEmpty(&staff.User.EditableUserInfo, &edited.EditableUserInfo)

	// Save updated profile to database
	if err := pc.DB.Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update user information: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, staff)
}

// GetVisitorProfile function retrieve the caller's visitor profile from database
// and response as JSON format.
// @Summary Retrieve own visitor profile from database
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.VisitorProfile "Successfully retrieve visitor profile"
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as visitor"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /visitor/profile [get]
func (pc *ProfileController) GetVisitorProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	visitor := model.VisitorProfile{}
	if err := pc.DB.Preload("User").
		Where("user_id = ?", user.ID.String()).
		First(&visitor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve user information from database: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, visitor)
}

// EditVisitorProfile function overwrite visitor profile, save into database
// ,and response edited profile as JSON format.
// @Summary Edit own visitor profile
// @Description Overwrite visitor profile and save into database
// @Description Sensitive field like id and resume file can't be overwritten
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param visitor_profile body editVisitorUser true "Visitor info to be written"
// @Success 200 {object} model.VisitorProfile "Successfully overwrite"
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header or request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as visitor"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /visitor/profile [patch]
func (pc *ProfileController) EditVisitorProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	visitor := model.VisitorProfile{}
	if err := pc.DB.Preload("User").
		Where("user_id = ?", user.ID.String()).
		First(&visitor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve user information from database: %s", err.Error()),
		})
		return
	}

	edited := editVisitorUser{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&edited); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&visitor.EditableVisitorInfo, &edited.EditableVisitorInfo)
	utilities.MergeNonEmpty(&visitor.User.EditableUserInfo, &edited.EditableUserInfo)

	if err := pc.DB.Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&visitor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update user information: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, visitor)
}

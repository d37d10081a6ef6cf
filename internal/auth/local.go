package auth

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

// LocalAuthHandler holds DB and mailer references for handler methods.
type LocalAuthHandler struct {
	DB     *database.DBinstanceStruct
	Mailer mail.Mailer
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler with the provided database connection.
func NewLocalAuthHandler(db *database.DBinstanceStruct, mailer mail.Mailer) *LocalAuthHandler {
	return &LocalAuthHandler{
		DB:     db,
		Mailer: mailer,
	}
}

type staffRegisterInfo struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FirstName       string `json:"first_name" binding:"required"`
	MiddleName      string `json:"middle_name"`
	LastName        string `json:"last_name" binding:"required"`
}

type visitorRegisterInfo struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginInfo struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordInfo struct {
	Email string `json:"email" binding:"required,email"`
}

// RegisterStaff handles staff registration.
// The account is created inactive with a pending-verification profile and a
// 6-digit code is emailed to the given address.
// @Summary Register a staff account
// @Description Email must be unused, password must satisfy the staff password policy
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body staffRegisterInfo true "Staff registration form"
// @Success 201 {object} model.StaffProfile "Account created, verification code sent"
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/staff/register [post]
func (lh *LocalAuthHandler) RegisterStaff(c *gin.Context) {
	var info staffRegisterInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Username, email, name, password, and confirm password must be provided",
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(info.Email))

	if reason, ok := utilities.ValidatePasswordStrength(info.Password); !ok {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: reason})
		return
	}

	if info.Password != info.ConfirmPassword {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Passwords do not match"})
		return
	}

	if msg, ok := lh.checkIdentifiersFree(c, info.Username, email); !ok {
		if msg != "" {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: msg})
		}
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	code := utilities.GenerateVerificationCode(6)
	now := time.Now()

	profile := model.StaffProfile{
		User: model.User{
			Username: info.Username,
			Email:    &email,
			Password: hashedPassword,
			Role:     model.RoleStaff,
			Active:   false,
		},
		EditableStaffInfo: model.EditableStaffInfo{
			FirstName:  info.FirstName,
			MiddleName: info.MiddleName,
			LastName:   info.LastName,
		},
		VerificationCode: &code,
		CodeSentAt:       &now,
		Status:           model.StatusPendingVerification,
	}

	if err := lh.DB.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create user: %s", err.Error()),
		})
		return
	}

	mail.BestEffort(lh.Mailer, email,
		"Staff Verification Code",
		fmt.Sprintf("Hello %s,\n\nYour verification code is: %s\nIt expires in 10 minutes.\n\nIf you didn't request this, ignore.", info.Username, code),
	)

	c.JSON(http.StatusCreated, profile)
}

// RegisterVisitor handles visitor (job seeker) registration.
// @Summary Register a visitor account
// @Description Username and email must be unused, password must be at least 8 characters
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body visitorRegisterInfo true "Visitor registration form"
// @Success 201 {object} model.VisitorResponse
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/register [post]
func (lh *LocalAuthHandler) RegisterVisitor(c *gin.Context) {
	var info visitorRegisterInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Username, email, and password must be provided",
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(info.Email))

	if len(info.Password) < 8 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Password should longer or equal to 8 characters",
		})
		return
	}

	if msg, ok := lh.checkIdentifiersFree(c, info.Username, email); !ok {
		if msg != "" {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: msg})
		}
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	profile := model.VisitorProfile{
		User: model.User{
			Username: info.Username,
			Email:    &email,
			Password: hashedPassword,
			Role:     model.RoleVisitor,
			Active:   true,
		},
		EditableVisitorInfo: model.EditableVisitorInfo{
			FirstName: info.FirstName,
			LastName:  info.LastName,
		},
	}

	if err := lh.DB.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create user: %s", err.Error()),
		})
		return
	}

	accessToken, _, err := GenerateStandardToken(profile.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, model.VisitorResponse{
		Profile:     profile,
		AccessToken: accessToken,
	})
}

// checkIdentifiersFree reports whether username and email are unused.
// It writes the database-error response itself and returns ok=false with an
// empty message in that case.
func (lh *LocalAuthHandler) checkIdentifiersFree(c *gin.Context, username string, email string) (string, bool) {
	var existing model.User

	err := lh.DB.Where("username = ?", username).First(&existing).Error
	switch {
	case err == nil:
		return "Username already exist", false
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Do nothing
	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return "", false
	}

	err = lh.DB.Where("LOWER(email) = ?", email).First(&existing).Error
	switch {
	case err == nil:
		return "Email already in use", false
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", true
	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return "", false
	}
}

// Login handles local login by receiving username and password.
// Staff accounts must be email-verified and admin-approved before they can log in.
// @Summary Handles local login by receiving username and password
// @Description Username must exist and password match. Staff must be verified and approved.
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} model.StaffResponse "If role is staff"
// @Success 200 {object} model.VisitorResponse "If role is visitor"
// @Success 200 {object} model.AdminResponse "If role is admin"
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 401 {object} utilities.ErrorResponse "Username not exist or password incorrect"
// @Failure 403 {object} utilities.ErrorResponse "Staff account not verified or not approved"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/login [post]
func (lh *LocalAuthHandler) Login(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Username or password is not provided",
		})
		return
	}

	var user model.User
	err := lh.DB.Where("username = ?", info.Username).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Username or password is incorrect",
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

	if user.Password == "" || !utilities.VerifyPassword(info.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Username or password is incorrect",
		})
		return
	}

	switch user.Role {
	case model.RoleStaff:
		var profile model.StaffProfile
		if err := lh.DB.Preload("User").Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to retrieve user data: %s", err.Error()),
			})
			return
		}

		switch {
		case !profile.IsVerified:
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "Please verify your email first",
			})
			return
		case profile.Status == model.StatusPendingApproval:
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "Your account is still pending admin approval",
			})
			return
		case profile.Status == model.StatusRejected:
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "Your account has been rejected by the admin",
			})
			return
		}

		accessToken, _, err := GenerateStandardToken(profile.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
			})
			return
		}

		c.JSON(http.StatusOK, model.StaffResponse{
			Profile:     profile,
			AccessToken: accessToken,
		})
	case model.RoleVisitor:
		var profile model.VisitorProfile
		if err := lh.DB.Preload("User").Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to retrieve user data: %s", err.Error()),
			})
			return
		}

		accessToken, _, err := GenerateStandardToken(profile.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
			})
			return
		}

		c.JSON(http.StatusOK, model.VisitorResponse{
			Profile:     profile,
			AccessToken: accessToken,
		})
	default:
		accessToken, _, err := GenerateStandardToken(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
			})
			return
		}

		c.JSON(http.StatusOK, model.AdminResponse{
			User:        user,
			AccessToken: accessToken,
		})
	}
}

// ForgotPassword generates a temporary password and emails it to the account owner.
// @Summary Reset a forgotten password
// @Description Generates a temporary password and sends it to the registered email
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body forgotPasswordInfo true "Registered email"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Email not provided"
// @Failure 404 {object} utilities.ErrorResponse "Email not found"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/forgot-password [post]
func (lh *LocalAuthHandler) ForgotPassword(c *gin.Context) {
	var info forgotPasswordInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Email must be provided"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(info.Email))

	var user model.User
	err := lh.DB.Where("LOWER(email) = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Email not found"})
		return
	case err == nil:
		// Do nothing
	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	tempPass := utilities.GenerateTempPassword(8)
	hashed, err := utilities.HashPassword(tempPass)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	if err := lh.DB.Model(&user).Update("password", hashed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update password: %s", err.Error()),
		})
		return
	}

	mail.BestEffort(lh.Mailer, email,
		"Temporary Password",
		fmt.Sprintf("Hello %s,\n\nYour temporary password is: %s\nPlease login and change your password immediately.", user.Username, tempPass),
	)

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Temporary password sent to your email"})
}

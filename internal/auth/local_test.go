package auth_test

import (
	. "StaffBoard-backend/internal/auth"
	"StaffBoard-backend/internal/database"
	"StaffBoard-backend/internal/mail"
	"StaffBoard-backend/internal/model"
	"StaffBoard-backend/internal/utilities"
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func newLocalHandler() *LocalAuthHandler {
	return NewLocalAuthHandler(testDB, mail.NoopMailer{})
}

func TestRegisterStaff_weakPasswordRejected(t *testing.T) {
	handler := newLocalHandler()
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterStaff, "/auth/register/staff", http.MethodPost, gin.H{
		"username":         "weak_staff",
		"email":            "weak_staff@example.com",
		"password":         "abc",
		"confirm_password": "abc",
		"first_name":       "Weak",
		"last_name":        "Password",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "8 characters")

	var count int64
	require.NoError(t, testDB.Model(&model.User{}).Where("username = ?", "weak_staff").Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRegisterStaff_success(t *testing.T) {
	handler := newLocalHandler()
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterStaff, "/auth/register/staff", http.MethodPost, gin.H{
		"username":         "fresh_staff",
		"email":            "Fresh_Staff@Example.com",
		"password":         "Abcdef12",
		"confirm_password": "Abcdef12",
		"first_name":       "Fresh",
		"last_name":        "Staff",
	})
	require.NoError(t, err)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, model.StatusPendingVerification, resp["status"])

	var user model.User
	require.NoError(t, testDB.Where("username = ?", "fresh_staff").First(&user).Error)
	assert.False(t, user.Active)
	require.NotNil(t, user.Email)
	// Email is normalised to lower case
	assert.Equal(t, "fresh_staff@example.com", *user.Email)

	var profile model.StaffProfile
	require.NoError(t, testDB.Where("user_id = ?", user.ID).First(&profile).Error)
	require.NotNil(t, profile.VerificationCode)
	assert.Len(t, *profile.VerificationCode, 6)
	assert.NotNil(t, profile.CodeSentAt)
}

func TestRegisterStaff_passwordMismatch(t *testing.T) {
	handler := newLocalHandler()
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterStaff, "/auth/register/staff", http.MethodPost, gin.H{
		"username":         "mismatch_staff",
		"email":            "mismatch_staff@example.com",
		"password":         "Abcdef12",
		"confirm_password": "Abcdef13",
		"first_name":       "Mis",
		"last_name":        "Match",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "do not match")
}

func TestRegisterStaff_duplicateUsername(t *testing.T) {
	handler := newLocalHandler()
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterStaff, "/auth/register/staff", http.MethodPost, gin.H{
		"username":         database.TestUserStaff1.Username,
		"email":            "new_email@example.com",
		"password":         "Abcdef12",
		"confirm_password": "Abcdef12",
		"first_name":       "Dup",
		"last_name":        "User",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "Username already exist")
}

func TestRegisterVisitor_success(t *testing.T) {
	handler := newLocalHandler()
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterVisitor, "/auth/register/visitor", http.MethodPost, gin.H{
		"username":   "fresh_visitor",
		"email":      "fresh_visitor@example.com",
		"password":   "longenough",
		"first_name": "Fresh",
		"last_name":  "Visitor",
	})
	require.NoError(t, err)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, resp["access_token"])

	var user model.User
	require.NoError(t, testDB.Where("username = ?", "fresh_visitor").First(&user).Error)
	assert.True(t, user.Active)
	assert.Equal(t, model.RoleVisitor, user.Role)
}

func TestLogin_adminSuccess(t *testing.T) {
	token, err := GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin_wrongPassword(t *testing.T) {
	handler := newLocalHandler()
	rec, resp, err := utilities.SimulateAPICall(handler.Login, "/auth/login", http.MethodPost, gin.H{
		"username": database.TestAdminUser.Username,
		"password": "not-the-password",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, resp["error"], "incorrect")
}

func TestLogin_unverifiedStaffBlocked(t *testing.T) {
	handler := newLocalHandler()
	rec, resp, err := utilities.SimulateAPICall(handler.Login, "/auth/login", http.MethodPost, gin.H{
		"username": database.TestUserStaff2.Username,
		"password": database.TestSeedPassword,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, resp["error"], "verify your email")
}

func TestForgotPassword_unknownEmail(t *testing.T) {
	handler := newLocalHandler()
	rec, resp, err := utilities.SimulateAPICall(handler.ForgotPassword, "/auth/forgot-password", http.MethodPost, gin.H{
		"email": "ghost@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, resp["error"], "Email not found")
}

func TestForgotPassword_rotatesPassword(t *testing.T) {
	// Dedicated account so the shared seed password stays usable for other tests
	handler := newLocalHandler()
	_, _, err := utilities.SimulateAPICall(handler.RegisterVisitor, "/auth/register/visitor", http.MethodPost, gin.H{
		"username": "forgetful_visitor",
		"email":    "forgetful@example.com",
		"password": "longenough",
	})
	require.NoError(t, err)

	rec, _, err := utilities.SimulateAPICall(handler.ForgotPassword, "/auth/forgot-password", http.MethodPost, gin.H{
		"email": "forgetful@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	// Old password no longer works
	rec, _, err = utilities.SimulateAPICall(handler.Login, "/auth/login", http.MethodPost, gin.H{
		"username": "forgetful_visitor",
		"password": "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

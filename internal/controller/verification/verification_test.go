package verification

import (
	"StaffBoard-backend/internal/database"
	"StaffBoard-backend/internal/mail"
	"StaffBoard-backend/internal/model"
	"StaffBoard-backend/internal/testutil"
	"StaffBoard-backend/internal/utilities"
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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

func newTestRouter() *gin.Engine {
	r := gin.Default()
	vc := NewVerificationController(testDB, mail.NoopMailer{})
	r.POST("/auth/staff/verify", vc.VerifyEmail)
	r.POST("/auth/staff/resend", vc.ResendCode)
	return r
}

// seedPendingStaff inserts an unverified staff registration with the given
// code state and returns the profile.
func seedPendingStaff(t *testing.T, username, email, code string, sentAt time.Time, resendCount int) model.StaffProfile {
	t.Helper()

	hashed, err := utilities.HashPassword(database.TestSeedPassword)
	require.NoError(t, err)

	profile := model.StaffProfile{
		User: model.User{
			ID:       uuid.New(),
			Username: username,
			Email:    &email,
			Password: hashed,
			Role:     model.RoleStaff,
			Active:   false,
		},
		EditableStaffInfo: model.EditableStaffInfo{
			FirstName: "Test",
			LastName:  "Staff",
		},
		VerificationCode: &code,
		CodeSentAt:       &sentAt,
		ResendCount:      resendCount,
		Status:           model.StatusPendingVerification,
	}
	require.NoError(t, testDB.Create(&profile).Error)
	return profile
}

func TestVerifyEmail_success(t *testing.T) {
	profile := seedPendingStaff(t, "verify_ok", "verify_ok@example.com", "654321", time.Now(), 0)

	r := newTestRouter()
	rec, _ := testutil.MakeJSONRequest(gin.H{
		"email": "verify_ok@example.com",
		"code":  "654321",
	}, "", r, "/auth/staff/verify", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.StaffProfile
	require.NoError(t, testDB.Preload("User").Where("id = ?", profile.ID).First(&got).Error)
	assert.True(t, got.IsVerified)
	assert.Equal(t, model.StatusPendingApproval, got.Status)
	assert.Nil(t, got.VerificationCode)
	assert.True(t, got.User.Active)
}

func TestVerifyEmail_repeatIsNoOp(t *testing.T) {
	seedPendingStaff(t, "verify_twice", "verify_twice@example.com", "111222", time.Now(), 0)

	r := newTestRouter()
	rec, _ := testutil.MakeJSONRequest(gin.H{
		"email": "verify_twice@example.com",
		"code":  "111222",
	}, "", r, "/auth/staff/verify", http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code)

	// Second attempt must not re-run the transition
	rec, resp := testutil.MakeJSONRequest(gin.H{
		"email": "verify_twice@example.com",
		"code":  "111222",
	}, "", r, "/auth/staff/verify", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, resp["message"], "already verified")

	var got model.StaffProfile
	require.NoError(t, testDB.Joins("JOIN users ON users.id = staff_profiles.user_id").
		Where("users.username = ?", "verify_twice").First(&got).Error)
	assert.Equal(t, model.StatusPendingApproval, got.Status)
}

func TestVerifyEmail_invalidCodeConsumesNothing(t *testing.T) {
	profile := seedPendingStaff(t, "verify_bad", "verify_bad@example.com", "333444", time.Now(), 0)

	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(gin.H{
		"email": "verify_bad@example.com",
		"code":  "000000",
	}, "", r, "/auth/staff/verify", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "Invalid verification code")

	var got model.StaffProfile
	require.NoError(t, testDB.Where("id = ?", profile.ID).First(&got).Error)
	assert.False(t, got.IsVerified)
	assert.Equal(t, model.StatusPendingVerification, got.Status)
	require.NotNil(t, got.VerificationCode)
	assert.Equal(t, "333444", *got.VerificationCode)
}

func TestVerifyEmail_expiredCode(t *testing.T) {
	seedPendingStaff(t, "verify_old", "verify_old@example.com", "555666",
		time.Now().Add(-model.VerificationCodeTTL-time.Minute), 0)

	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(gin.H{
		"email": "verify_old@example.com",
		"code":  "555666",
	}, "", r, "/auth/staff/verify", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "expired")
}

func TestVerifyEmail_unknownEmail(t *testing.T) {
	r := newTestRouter()
	rec, _ := testutil.MakeJSONRequest(gin.H{
		"email": "nobody@example.com",
		"code":  "123456",
	}, "", r, "/auth/staff/verify", http.MethodPost)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResendCode_issuesNewCodeAndCounts(t *testing.T) {
	profile := seedPendingStaff(t, "resend_ok", "resend_ok@example.com", "777888",
		time.Now().Add(-2*model.ResendCooldown), 0)

	r := newTestRouter()
	rec, _ := testutil.MakeJSONRequest(gin.H{
		"email": "resend_ok@example.com",
	}, "", r, "/auth/staff/resend", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.StaffProfile
	require.NoError(t, testDB.Where("id = ?", profile.ID).First(&got).Error)
	assert.Equal(t, 1, got.ResendCount)
	require.NotNil(t, got.VerificationCode)
	assert.NotEqual(t, "777888", *got.VerificationCode)
	assert.Len(t, *got.VerificationCode, 6)
	require.NotNil(t, got.CodeSentAt)
	assert.WithinDuration(t, time.Now(), *got.CodeSentAt, time.Minute)
}

func TestResendCode_cooldownActive(t *testing.T) {
	seedPendingStaff(t, "resend_fast", "resend_fast@example.com", "999000", time.Now(), 0)

	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(gin.H{
		"email": "resend_fast@example.com",
	}, "", r, "/auth/staff/resend", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "wait")
}

func TestResendCode_limitReached(t *testing.T) {
	// Past the cooldown, but out of resend quota: the limit wins regardless of time.
	profile := seedPendingStaff(t, "resend_max", "resend_max@example.com", "121212",
		time.Now().Add(-time.Hour), model.ResendLimit)

	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(gin.H{
		"email": "resend_max@example.com",
	}, "", r, "/auth/staff/resend", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "Maximum resend attempts reached")

	var got model.StaffProfile
	require.NoError(t, testDB.Where("id = ?", profile.ID).First(&got).Error)
	assert.Equal(t, model.ResendLimit, got.ResendCount)
}

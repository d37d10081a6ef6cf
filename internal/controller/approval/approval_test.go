package approval

import (
	"StaffBoard-backend/internal/auth"
	"StaffBoard-backend/internal/database"
	"StaffBoard-backend/internal/mail"
	"StaffBoard-backend/internal/middleware"
	"StaffBoard-backend/internal/model"
	"StaffBoard-backend/internal/testutil"
	"StaffBoard-backend/internal/utilities"
	"context"
	"net/http"
	"net/http/httptest"
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
	ac := NewApprovalController(testDB, mail.NoopMailer{})
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAdmin))
	admin.GET("/dashboard", ac.Dashboard)
	admin.GET("/staff-approvals", ac.ListProfiles)
	admin.POST("/staff-approvals/action", ac.Action)
	admin.GET("/logs", ac.ListLogs)
	return r
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	require.NoError(t, err)
	return token
}

// seedAwaitingApproval inserts a verified staff profile waiting for a decision.
func seedAwaitingApproval(t *testing.T, username, email string) model.StaffProfile {
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
			Active:   true,
		},
		EditableStaffInfo: model.EditableStaffInfo{
			FirstName: "Waiting",
			LastName:  "Reviewer",
		},
		IsVerified: true,
		Status:     model.StatusPendingApproval,
	}
	require.NoError(t, testDB.Create(&profile).Error)
	return profile
}

func TestAction_rejectWithNote(t *testing.T) {
	profile := seedAwaitingApproval(t, "reject_me", "reject_me@example.com")

	r := newTestRouter()
	rec, _ := testutil.MakeJSONRequest(gin.H{
		"profile_id": profile.ID,
		"action":     "reject",
		"admin_note": "incomplete documents",
	}, adminToken(t), r, "/admin/staff-approvals/action", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.StaffProfile
	require.NoError(t, testDB.Where("id = ?", profile.ID).First(&got).Error)
	assert.Equal(t, model.StatusRejected, got.Status)
	assert.Equal(t, "incomplete documents", got.AdminNote)

	var logEntry model.AdminLog
	require.NoError(t, testDB.
		Where("action = ? AND target_user_email = ?", model.ActionReject, "reject_me@example.com").
		First(&logEntry).Error)
	assert.Equal(t, database.TestAdminUser.Username, logEntry.AdminUsername)
	assert.Equal(t, "incomplete documents", logEntry.Note)
}

func TestAction_approve(t *testing.T) {
	profile := seedAwaitingApproval(t, "approve_me", "approve_me@example.com")

	r := newTestRouter()
	rec, _ := testutil.MakeJSONRequest(gin.H{
		"profile_id": profile.ID,
		"action":     "approve",
	}, adminToken(t), r, "/admin/staff-approvals/action", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.StaffProfile
	require.NoError(t, testDB.Where("id = ?", profile.ID).First(&got).Error)
	assert.Equal(t, model.StatusApproved, got.Status)

	var count int64
	require.NoError(t, testDB.Model(&model.AdminLog{}).
		Where("action = ? AND target_user_email = ?", model.ActionApprove, "approve_me@example.com").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAction_unknownActionNoMutation(t *testing.T) {
	profile := seedAwaitingApproval(t, "escalate_me", "escalate_me@example.com")

	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(gin.H{
		"profile_id": profile.ID,
		"action":     "escalate",
	}, adminToken(t), r, "/admin/staff-approvals/action", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "Unknown action")

	var got model.StaffProfile
	require.NoError(t, testDB.Where("id = ?", profile.ID).First(&got).Error)
	assert.Equal(t, model.StatusPendingApproval, got.Status)
}

func TestAction_profileNotFound(t *testing.T) {
	r := newTestRouter()
	rec, _ := testutil.MakeJSONRequest(gin.H{
		"profile_id": 99999,
		"action":     "approve",
	}, adminToken(t), r, "/admin/staff-approvals/action", http.MethodPost)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAction_wrongRole(t *testing.T) {
	staffToken, err := auth.GetAccessToken(t, testDB, database.TestUserStaff1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(gin.H{
		"profile_id": 1,
		"action":     "approve",
	}, staffToken, r, "/admin/staff-approvals/action", http.MethodPost)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, resp["error"], "permission")
}

func TestListProfiles_statusFilter(t *testing.T) {
	seedAwaitingApproval(t, "list_me", "list_me@example.com")

	r := newTestRouter()
	req, _ := http.NewRequest(http.MethodGet, "/admin/staff-approvals?status=Pending%20Admin%20Approval", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var profiles []model.StaffProfile
	require.NoError(t, testDB.Where("status = ?", model.StatusPendingApproval).Find(&profiles).Error)
	for _, p := range profiles {
		assert.Equal(t, model.StatusPendingApproval, p.Status)
	}
	assert.NotEmpty(t, profiles)
}

func TestDashboard_counts(t *testing.T) {
	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(nil, adminToken(t), r, "/admin/dashboard", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	for _, key := range []string{"pending_verification", "pending_approval", "approved", "rejected"} {
		assert.Contains(t, resp, key)
	}
}

package application

import (
	"StaffBoard-backend/internal/auth"
	"StaffBoard-backend/internal/database"
	"StaffBoard-backend/internal/middleware"
	"StaffBoard-backend/internal/model"
	"StaffBoard-backend/internal/testutil"
	"StaffBoard-backend/internal/utilities"
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
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
	ac := NewApplicationController(testDB, nil)

	visitor := r.Group("")
	visitor.Use(middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleVisitor))
	visitor.POST("/application", ac.ApplicationHandler)
	visitor.GET("/application/mine", ac.MyApplications)
	visitor.DELETE("/application/:id", ac.RemoveApplication)

	staff := r.Group("")
	staff.Use(middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleStaff))
	staff.POST("/application/:id/accept", ac.AcceptApplication)
	staff.POST("/application/:id/reject", ac.RejectApplication)
	staff.GET("/jobpost/:number/applications", ac.ListForPost)
	return r
}

var pdfStub = []byte("%PDF-1.4 stub")

// seedVisitor inserts a visitor account and mints a token for it.
func seedVisitor(t *testing.T, username, email string) (model.VisitorProfile, string) {
	t.Helper()

	hashed, err := utilities.HashPassword(database.TestSeedPassword)
	require.NoError(t, err)

	profile := model.VisitorProfile{
		User: model.User{
			ID:       uuid.New(),
			Username: username,
			Email:    &email,
			Password: hashed,
			Role:     model.RoleVisitor,
			Active:   true,
		},
		EditableVisitorInfo: model.EditableVisitorInfo{
			FirstName: "Appl",
			LastName:  "Icant",
		},
	}
	require.NoError(t, testDB.Create(&profile).Error)

	token, _, err := auth.GenerateStandardToken(profile.UserID)
	require.NoError(t, err)
	return profile, token
}

func staff1Token(t *testing.T) string {
	t.Helper()
	token, err := auth.GetAccessToken(t, testDB, database.TestUserStaff1.Username, database.TestSeedPassword)
	require.NoError(t, err)
	return token
}

func applyWithCV(t *testing.T, r *gin.Engine, token, jobNumber, fileName string) (*int, map[string]interface{}) {
	t.Helper()
	rec, resp := testutil.MakeMultipartRequest(
		map[string]string{"job_number": jobNumber},
		map[string][]byte{"cv": pdfStub},
		map[string]string{"cv": fileName},
		token, r, "/application", http.MethodPost,
	)
	code := rec.Code
	return &code, resp
}

func TestApply_success(t *testing.T) {
	visitor, token := seedVisitor(t, "apply_ok", "apply_ok@example.com")

	r := newTestRouter()
	code, resp := applyWithCV(t, r, token, database.TestJobPost1.JobNumber, "cv.pdf")

	require.Equal(t, http.StatusCreated, *code)
	assert.Equal(t, model.ApplicationStatusSubmitted, resp["status"])

	var got model.JobApplication
	require.NoError(t, testDB.
		Where("visitor_id = ? AND post_id = ?", visitor.UserID, database.TestJobPost1.ID).
		First(&got).Error)
	require.NotNil(t, got.CVID)
}

func TestApply_duplicateIsInformational(t *testing.T) {
	_, token := seedVisitor(t, "apply_twice", "apply_twice@example.com")

	r := newTestRouter()
	code, _ := applyWithCV(t, r, token, database.TestJobPost1.JobNumber, "cv.pdf")
	require.Equal(t, http.StatusCreated, *code)

	code, resp := applyWithCV(t, r, token, database.TestJobPost1.JobNumber, "cv.pdf")
	assert.Equal(t, http.StatusOK, *code)
	assert.Contains(t, resp["message"], "already applied")
}

func TestApply_badExtension(t *testing.T) {
	_, token := seedVisitor(t, "apply_exe", "apply_exe@example.com")

	r := newTestRouter()
	code, resp := applyWithCV(t, r, token, database.TestJobPost1.JobNumber, "cv.exe")

	assert.Equal(t, http.StatusUnsupportedMediaType, *code)
	assert.Contains(t, resp["error"], "Unsupported file extension")
}

func TestApply_mismatchedContentType(t *testing.T) {
	_, token := seedVisitor(t, "apply_liar", "apply_liar@example.com")

	// A .pdf filename whose part declares a different content type
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("job_number", database.TestJobPost1.JobNumber))
	fw, err := testutil.CreateFormFilePart(writer, "cv", "cv.pdf", "image/png")
	require.NoError(t, err)
	_, err = fw.Write(pdfStub)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/application", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	r := newTestRouter()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, rec.Body.String(), "content type")
}

func TestApply_expiredCooldownAllows(t *testing.T) {
	visitor, token := seedVisitor(t, "apply_thawed", "apply_thawed@example.com")

	// The rejection cooldown has already lapsed
	until := time.Now().Add(-24 * time.Hour)
	rejected := model.JobApplication{
		VisitorID:     visitor.UserID,
		PostID:        database.TestJobPost2.ID,
		Status:        model.ApplicationStatusRejected,
		CooldownUntil: &until,
	}
	require.NoError(t, testDB.Create(&rejected).Error)

	r := newTestRouter()
	code, resp := applyWithCV(t, r, token, database.TestJobPost1.JobNumber, "cv.pdf")

	require.Equal(t, http.StatusCreated, *code)
	assert.Equal(t, model.ApplicationStatusSubmitted, resp["status"])

	var count int64
	require.NoError(t, testDB.Model(&model.JobApplication{}).
		Where("visitor_id = ? AND post_id = ?", visitor.UserID, database.TestJobPost1.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestApply_noCVAvailable(t *testing.T) {
	_, token := seedVisitor(t, "apply_nocv", "apply_nocv@example.com")

	r := newTestRouter()
	rec, resp := testutil.MakeMultipartRequest(
		map[string]string{"job_number": database.TestJobPost1.JobNumber},
		nil, nil, token, r, "/application", http.MethodPost,
	)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "CV")
}

func TestApply_cooldownBlocksAndNamesDate(t *testing.T) {
	visitor, token := seedVisitor(t, "apply_cooled", "apply_cooled@example.com")

	// A past rejection whose cooldown is still running
	until := time.Now().Add(30 * 24 * time.Hour)
	rejected := model.JobApplication{
		VisitorID:     visitor.UserID,
		PostID:        database.TestJobPost2.ID,
		Status:        model.ApplicationStatusRejected,
		CooldownUntil: &until,
	}
	require.NoError(t, testDB.Create(&rejected).Error)

	r := newTestRouter()
	code, resp := applyWithCV(t, r, token, database.TestJobPost1.JobNumber, "cv.pdf")

	assert.Equal(t, http.StatusForbidden, *code)
	assert.Contains(t, resp["error"], until.Format("2006-01-02"))

	var count int64
	require.NoError(t, testDB.Model(&model.JobApplication{}).
		Where("visitor_id = ? AND post_id = ?", visitor.UserID, database.TestJobPost1.ID).
		Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestReject_setsCooldown(t *testing.T) {
	visitor, _ := seedVisitor(t, "get_rejected", "get_rejected@example.com")

	application := model.JobApplication{
		VisitorID: visitor.UserID,
		PostID:    database.TestJobPost1.ID,
		Status:    model.ApplicationStatusSubmitted,
	}
	require.NoError(t, testDB.Create(&application).Error)

	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(nil, staff1Token(t), r,
		fmt.Sprintf("/application/%d/reject", application.ID), http.MethodPost)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ApplicationStatusRejected, resp["status"])

	var got model.JobApplication
	require.NoError(t, testDB.Where("id = ?", application.ID).First(&got).Error)
	require.NotNil(t, got.CooldownUntil)
	assert.WithinDuration(t, time.Now().Add(model.RejectionCooldown), *got.CooldownUntil, time.Minute)
}

func TestAccept_notOwnerForbidden(t *testing.T) {
	visitor, _ := seedVisitor(t, "get_poached", "get_poached@example.com")

	application := model.JobApplication{
		VisitorID: visitor.UserID,
		PostID:    database.TestJobPost1.ID,
		Status:    model.ApplicationStatusSubmitted,
	}
	require.NoError(t, testDB.Create(&application).Error)

	// An approved staff that does not own TestJobPost1
	hashed, err := utilities.HashPassword(database.TestSeedPassword)
	require.NoError(t, err)
	intruder := model.StaffProfile{
		User: model.User{
			ID:       uuid.New(),
			Username: "decide_intruder",
			Email:    testutil.StringPtr("decide_intruder@example.com"),
			Password: hashed,
			Role:     model.RoleStaff,
			Active:   true,
		},
		IsVerified: true,
		Status:     model.StatusApproved,
	}
	require.NoError(t, testDB.Create(&intruder).Error)
	intruderToken, _, err := auth.GenerateStandardToken(intruder.UserID)
	require.NoError(t, err)

	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(nil, intruderToken, r,
		fmt.Sprintf("/application/%d/accept", application.ID), http.MethodPost)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, resp["error"], "owns the post")

	var got model.JobApplication
	require.NoError(t, testDB.Where("id = ?", application.ID).First(&got).Error)
	assert.Equal(t, model.ApplicationStatusSubmitted, got.Status)
}

func TestListForPost_owner(t *testing.T) {
	r := newTestRouter()
	req, _ := http.NewRequest(http.MethodGet, "/jobpost/"+database.TestJobPost1.JobNumber+"/applications", nil)
	req.Header.Set("Authorization", "Bearer "+staff1Token(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRemoveApplication_ownSubmittedOnly(t *testing.T) {
	visitor, token := seedVisitor(t, "withdraw_me", "withdraw_me@example.com")

	application := model.JobApplication{
		VisitorID: visitor.UserID,
		PostID:    database.TestJobPost2.ID,
		Status:    model.ApplicationStatusSubmitted,
	}
	require.NoError(t, testDB.Create(&application).Error)

	r := newTestRouter()
	rec, _ := testutil.MakeJSONRequest(nil, token, r,
		fmt.Sprintf("/application/%d", application.ID), http.MethodDelete)
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, testDB.Model(&model.JobApplication{}).
		Where("id = ?", application.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRemoveApplication_decidedCannotBeWithdrawn(t *testing.T) {
	visitor, token := seedVisitor(t, "withdraw_late", "withdraw_late@example.com")

	application := model.JobApplication{
		VisitorID: visitor.UserID,
		PostID:    database.TestJobPost2.ID,
		Status:    model.ApplicationStatusAccepted,
	}
	require.NoError(t, testDB.Create(&application).Error)

	r := newTestRouter()
	rec, resp := testutil.MakeJSONRequest(nil, token, r,
		fmt.Sprintf("/application/%d", application.ID), http.MethodDelete)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "cannot be withdrawn")
}

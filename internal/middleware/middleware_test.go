package middleware

import (
	"StaffBoard-backend/internal/auth"
	"StaffBoard-backend/internal/database"
	"StaffBoard-backend/internal/model"
	"StaffBoard-backend/internal/testutil"
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

func protectedRouter(roles ...string) *gin.Engine {
	r := gin.Default()
	handlers := []gin.HandlerFunc{RequireAuth(testDB)}
	if len(roles) > 0 {
		handlers = append(handlers, CheckRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/protected", handlers...)
	return r
}

func TestRequireAuth_missingHeader(t *testing.T) {
	r := protectedRouter()
	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/protected", http.MethodGet)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "authorization header")
}

func TestRequireAuth_garbageToken(t *testing.T) {
	r := protectedRouter()
	rec, _ := testutil.MakeJSONRequest(nil, "not-a-jwt", r, "/protected", http.MethodGet)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_validToken(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	require.NoError(t, err)

	r := protectedRouter()
	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/protected", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckRole_wrongRole(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserVisitor1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	r := protectedRouter(model.RoleAdmin)
	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/protected", http.MethodGet)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, resp["error"], "permission")
}

func TestCheckRole_allowedRole(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserVisitor1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	r := protectedRouter(model.RoleVisitor, model.RoleAdmin)
	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/protected", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
}

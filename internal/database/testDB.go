package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "StaffBoard-backend/internal/model"
	"StaffBoard-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context) error

// Exported test users & profiles
var (
	TestAdminUser    m.User
	TestUserStaff1   m.User
	TestUserStaff2   m.User
	TestUserVisitor1 m.User
	TestUserVisitor2 m.User
	TestStaff1       m.StaffProfile
	TestStaff2       m.StaffProfile
	TestVisitor1     m.VisitorProfile
	TestVisitor2     m.VisitorProfile

	// Exported plain password shared by all seeded users
	TestSeedPassword = "SeedPass123!"

	// TestSeedCode is the verification code issued to the unverified seed staff
	TestSeedCode = "123456"

	// Exported seeded job posts (owned by TestStaff1)
	TestJobPost1 m.JobPost
	TestJobPost2 m.JobPost
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	// Seed sample staff and visitor users
	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

func ptr(s string) *string { return &s }

// seedTestData inserts sample staff and visitor records if the database is empty.
// TestStaff1 is verified and approved; TestStaff2 is still pending verification
// with TestSeedCode freshly issued.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	// Ignore admin user that got create during NewDBInstance
	if userCount > 1 {
		return loadTestData(db)
	}

	userSpecs := []struct {
		username string
		email    *string
		role     string
		active   bool
	}{
		{"staff_user_1", ptr("staff1@example.com"), m.RoleStaff, true},
		{"staff_user_2", ptr("staff2@example.com"), m.RoleStaff, false},
		{"visitor_user_1", ptr("visitor1@example.com"), m.RoleVisitor, true},
		{"visitor_user_2", ptr("visitor2@example.com"), m.RoleVisitor, true},
		{"admin_user", ptr("admin@example.com"), m.RoleAdmin, true},
	}

	// Pre-hash shared password for all seeded users
	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	users := make([]m.User, 0, len(userSpecs))
	for _, s := range userSpecs {
		users = append(users, m.User{
			ID:       uuid.New(),
			Username: s.username,
			Email:    s.email,
			Role:     s.role,
			Active:   s.active,
			Password: hashedPwd,
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}

	for _, u := range users {
		switch u.Username {
		case "staff_user_1":
			TestUserStaff1 = u
		case "staff_user_2":
			TestUserStaff2 = u
		case "visitor_user_1":
			TestUserVisitor1 = u
		case "visitor_user_2":
			TestUserVisitor2 = u
		case "admin_user":
			TestAdminUser = u
		}
	}

	now := time.Now()
	staffProfiles := []m.StaffProfile{
		{
			UserID: TestUserStaff1.ID,
			EditableStaffInfo: m.EditableStaffInfo{
				FirstName: "Alice",
				LastName:  "Nguyen",
			},
			IsVerified: true,
			Status:     m.StatusApproved,
		},
		{
			UserID: TestUserStaff2.ID,
			EditableStaffInfo: m.EditableStaffInfo{
				FirstName:  "Bob",
				MiddleName: "M",
				LastName:   "Santos",
			},
			VerificationCode: ptr(TestSeedCode),
			CodeSentAt:       &now,
			Status:           m.StatusPendingVerification,
		},
	}
	if err := db.Create(&staffProfiles).Error; err != nil {
		return err
	}
	TestStaff1 = staffProfiles[0]
	TestStaff2 = staffProfiles[1]

	visitorProfiles := []m.VisitorProfile{
		{
			UserID: TestUserVisitor1.ID,
			EditableVisitorInfo: m.EditableVisitorInfo{
				FirstName: "Carol",
				LastName:  "Reyes",
			},
		},
		{
			UserID: TestUserVisitor2.ID,
			EditableVisitorInfo: m.EditableVisitorInfo{
				FirstName: "Dan",
				LastName:  "Lim",
			},
		},
	}
	if err := db.Create(&visitorProfiles).Error; err != nil {
		return err
	}
	TestVisitor1 = visitorProfiles[0]
	TestVisitor2 = visitorProfiles[1]

	jobPosts := []m.JobPost{
		{
			JobNumber:   "JOB-20250101-AAA111",
			StaffUserID: TestUserStaff1.ID,
			EditableJobPostInfo: m.EditableJobPostInfo{
				Title:    "Backend Engineer",
				Desc:     "Build and operate our job board services",
				Req:      "Go, PostgreSQL",
				Location: "Bangkok",
				Type:     "Full-time",
				Salary:   "60000",
			},
		},
		{
			JobNumber:   "JOB-20250102-BBB222",
			StaffUserID: TestUserStaff1.ID,
			EditableJobPostInfo: m.EditableJobPostInfo{
				Title:    "Data Analyst",
				Desc:     "Analyze hiring funnel data",
				Req:      "SQL",
				Location: "Remote",
				Type:     "Part-time",
				Salary:   "30000",
			},
		},
	}
	if err := db.Create(&jobPosts).Error; err != nil {
		return err
	}
	TestJobPost1 = jobPosts[0]
	TestJobPost2 = jobPosts[1]

	return nil
}

// loadTestData re-reads previously seeded rows into the exported variables.
func loadTestData(db *DBinstanceStruct) error {
	lookups := []struct {
		username string
		dst      *m.User
	}{
		{"staff_user_1", &TestUserStaff1},
		{"staff_user_2", &TestUserStaff2},
		{"visitor_user_1", &TestUserVisitor1},
		{"visitor_user_2", &TestUserVisitor2},
		{"admin_user", &TestAdminUser},
	}
	for _, l := range lookups {
		if err := db.Where("username = ?", l.username).First(l.dst).Error; err != nil {
			return err
		}
	}

	if err := db.Where("user_id = ?", TestUserStaff1.ID).First(&TestStaff1).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", TestUserStaff2.ID).First(&TestStaff2).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", TestUserVisitor1.ID).First(&TestVisitor1).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", TestUserVisitor2.ID).First(&TestVisitor2).Error; err != nil {
		return err
	}
	if err := db.Where("job_number = ?", "JOB-20250101-AAA111").First(&TestJobPost1).Error; err != nil {
		return err
	}
	return db.Where("job_number = ?", "JOB-20250102-BBB222").First(&TestJobPost2).Error
}

// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"StaffBoard-backend/internal/auth"
	"StaffBoard-backend/internal/controller/application"
	"StaffBoard-backend/internal/controller/approval"
	"StaffBoard-backend/internal/controller/file"
	"StaffBoard-backend/internal/controller/jobpost"
	"StaffBoard-backend/internal/controller/profile"
	"StaffBoard-backend/internal/controller/verification"
	"StaffBoard-backend/internal/middleware"
	"StaffBoard-backend/internal/model"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	// Init swagger doc
	_ "StaffBoard-backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const maxUploadBytes = 5 << 20

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	lAuth := auth.NewLocalAuthHandler(s.DB, s.Mailer)
	logout := auth.NewLogoutController(s.Blacklist)
	verifyCtrl := verification.NewVerificationController(s.DB, s.Mailer)
	approvalCtrl := approval.NewApprovalController(s.DB, s.Mailer)
	jobCtrl := jobpost.NewJobPostController(s.DB)
	appCtrl := application.NewApplicationController(s.DB, s.Storage)
	profileCtrl := profile.NewProfileController(s.DB)
	fileCtrl := file.NewFileController(s.DB, s.Storage)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins, // Add your frontend URL
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Enable cookies/auth
	}))

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.Use(middleware.EnvRateLimitMiddleware())
			authRoute.POST("login", lAuth.Login)
			authRoute.POST("register/staff", lAuth.RegisterStaff)
			authRoute.POST("register/visitor", lAuth.RegisterVisitor)
			authRoute.POST("forgot-password", lAuth.ForgotPassword)

			authRoute.POST("staff/verify", verifyCtrl.VerifyEmail)
			authRoute.POST("staff/resend", verifyCtrl.ResendCode)
		}

		// Public job board
		v1.GET("/jobpost", jobCtrl.GetPosts)
		v1.GET("/jobpost/:number", jobCtrl.GetPostByNumber)

		// Any routes
		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB), middleware.JwtBlacklistCheck(s.Blacklist))

			needAuth.POST("/auth/logout", logout.LogoutHandler)

			fileRoute := needAuth.Group("/file")
			{
				fileRoute.GET(":id", fileCtrl.GetFile)
			}

			needAuth.POST("/profile/picture", middleware.SizeLimit(maxUploadBytes), fileCtrl.UploadProfilePicture)

			// Visitor routes: apply role check once for all visitor endpoints
			needVisitor := needAuth.Group("")
			{
				needVisitor.Use(middleware.CheckRole(model.RoleVisitor))
				needVisitor.GET("visitor/profile", profileCtrl.GetVisitorProfile)
				needVisitor.PATCH("visitor/profile", profileCtrl.EditVisitorProfile)
				needVisitor.POST("visitor/profile/resume", middleware.SizeLimit(maxUploadBytes), fileCtrl.UploadResume)
				needVisitor.POST("application", middleware.SizeLimit(maxUploadBytes), appCtrl.ApplicationHandler)
				needVisitor.GET("application/mine", appCtrl.MyApplications)
				needVisitor.DELETE("application/:id", appCtrl.RemoveApplication)
			}

			// Job post management (staff only)
			needStaff := needAuth.Group("")
			{
				needStaff.Use(middleware.CheckRole(model.RoleStaff))
				needStaff.GET("staff/profile", profileCtrl.GetStaffProfile)
				needStaff.PATCH("staff/profile", profileCtrl.EditStaffProfile)
				needStaff.POST("jobpost", jobCtrl.CreateJobPostHandler)
				needStaff.GET("jobpost/mine", jobCtrl.MyPosts)
				needStaff.PATCH("jobpost/:number", jobCtrl.EditJobPost)
				needStaff.POST("jobpost/:number/archive", jobCtrl.ArchiveJobPost)
				needStaff.POST("jobpost/:number/unarchive", jobCtrl.UnarchiveJobPost)
				needStaff.GET("jobpost/:number/applications", appCtrl.ListForPost)
				needStaff.POST("application/:id/accept", appCtrl.AcceptApplication)
				needStaff.POST("application/:id/reject", appCtrl.RejectApplication)
			}

			needStaffAdmin := needAuth.Group("")
			{
				needStaffAdmin.Use(middleware.CheckRole(model.RoleStaff, model.RoleAdmin))
				needStaffAdmin.GET("jobpost/archived", jobCtrl.ListArchived)
				needStaffAdmin.DELETE("jobpost/:number", jobCtrl.DeleteJobPost)
			}

			needAdmin := needAuth.Group("/admin")
			{
				needAdmin.Use(middleware.CheckRole(model.RoleAdmin))
				needAdmin.GET("dashboard", approvalCtrl.Dashboard)
				needAdmin.GET("staff-approvals", approvalCtrl.ListProfiles)
				needAdmin.POST("staff-approvals/action", approvalCtrl.Action)
				needAdmin.GET("logs", approvalCtrl.ListLogs)
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}

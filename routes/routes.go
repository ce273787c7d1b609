package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"

	controller "estatecrm/controllers"
	"estatecrm/middleware"
	"estatecrm/models"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authLogger := log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Auth routes group with logging middleware
	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Public auth endpoints
	auth.Post("/login", middleware.LoginRateLimiter(), controller.Login)
	auth.Post("/refresh", controller.RefreshToken)

	// Protected auth endpoints (require valid JWT)
	protectedAuth := auth.Group("", middleware.Protected())
	protectedAuth.Post("/logout", controller.Logout)
	protectedAuth.Post("/change-password", controller.ChangePassword)
	protectedAuth.Get("/me", controller.GetCurrentUser)

	authLogger.Println("Authentication routes initialized successfully")
}

func SetupAPIRoutes(app *fiber.App, db *gorm.DB) {
	leadController := controller.NewLeadController(db, log.New(os.Stdout, "LEAD: ", log.LstdFlags))
	activityController := controller.NewActivityController(db, log.New(os.Stdout, "ACTIVITY: ", log.LstdFlags))
	meetingController := controller.NewMeetingController(db, log.New(os.Stdout, "MEETING: ", log.LstdFlags))
	userController := controller.NewUserController(db, log.New(os.Stdout, "USER: ", log.LstdFlags))
	propertyController := controller.NewPropertyController(db, log.New(os.Stdout, "PROPERTY: ", log.LstdFlags))
	dashboardController := controller.NewDashboardController(db, log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags))
	reportController := controller.NewReportController(db, log.New(os.Stdout, "REPORT: ", log.LstdFlags))

	// API group with versioning and protection
	api := app.Group("/api/v1", middleware.Protected(), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	managersOnly := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleSalesSupervisor)
	adminOnly := middleware.RequireRoles(models.RoleSuperAdmin)

	// Dashboard routes (all roles; data is scoped per role inside)
	dashboard := api.Group("/dashboard")
	dashboard.Get("/stats", dashboardController.GetDashboardStats)
	dashboard.Get("/recent-leads", dashboardController.GetRecentLeads)
	dashboard.Get("/recent-activities", dashboardController.GetRecentActivities)

	// Lead routes; listing is role-scoped, creation and deletion are
	// restricted to supervisors and admins
	lead := api.Group("/leads")
	lead.Post("/", managersOnly, leadController.CreateLead)
	lead.Get("/", leadController.GetLeads)
	lead.Get("/:id", leadController.GetLead)
	lead.Put("/:id", leadController.UpdateLead)
	lead.Put("/:id/status", leadController.UpdateLeadStatus)
	lead.Delete("/:id", managersOnly, leadController.DeleteLead)

	// Activity timeline per lead (append-only)
	lead.Get("/:id/activities", activityController.GetLeadActivities)
	lead.Post("/:id/comments", activityController.AddComment)
	lead.Post("/:id/calls", activityController.LogCall)
	lead.Post("/:id/files", activityController.SendFile)

	// Meeting / calendar routes
	meeting := api.Group("/meetings")
	meeting.Post("/", meetingController.CreateMeeting)
	meeting.Get("/", meetingController.GetMeetings)
	meeting.Put("/:id", meetingController.UpdateMeeting)
	meeting.Delete("/:id", meetingController.DeleteMeeting)

	// Property listings (supervisors and admins)
	property := api.Group("/properties", managersOnly)
	property.Get("/", propertyController.GetProperties)
	property.Get("/:id", propertyController.GetProperty)

	// Team performance (supervisors and admins)
	api.Get("/performance/agents", managersOnly, reportController.GetAgentPerformance)

	// User management and reports (admin only)
	user := api.Group("/users", adminOnly)
	user.Get("/", userController.GetUsers)
	user.Post("/", userController.CreateUser)
	user.Put("/:id", userController.UpdateUser)
	user.Delete("/:id", userController.DeleteUser)

	api.Get("/reports/summary", adminOnly, reportController.GetReportSummary)

	// WebSocket route for the live activity feed
	app.Get("/api/v1/activities/feed", websocket.New(func(c *websocket.Conn) {
		controller.HandleActivityFeedWS(c)
	}))

	log.Println("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Setup health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupAuthRoutes(app, db)
	SetupAPIRoutes(app, db)

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}

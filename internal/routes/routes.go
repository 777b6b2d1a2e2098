package routes

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/escolavall/escola_backend_v1/internal/config"
	"github.com/escolavall/escola_backend_v1/internal/controllers"
	"github.com/escolavall/escola_backend_v1/internal/middleware"
	"github.com/escolavall/escola_backend_v1/internal/models"
	"github.com/escolavall/escola_backend_v1/internal/services"
	"github.com/escolavall/escola_backend_v1/internal/ws"
)

// Register wires every route against one canonical table. Mutating attendance
// and roster routes are always authenticated; their read counterparts join
// them when cfg.ProtectReads is set.
func Register(r *gin.Engine, db *gorm.DB, cfg *config.Config, chatHub *ws.ChatHub) {
	expiresIn := 168 * time.Hour
	if hours, err := strconv.Atoi(cfg.JWTExpiresHours); err == nil && hours > 0 {
		expiresIn = time.Duration(hours) * time.Hour
	}

	rosterSvc := &services.RosterService{DB: db}
	attendanceSvc := &services.AttendanceService{DB: db}
	frequencySvc := &services.FrequencyService{DB: db, Roster: rosterSvc}

	authCtrl := &controllers.AuthController{DB: db, JWTSecret: cfg.JWTSecret, ExpiresIn: expiresIn}
	userCtrl := &controllers.UserController{DB: db}
	turmaCtrl := &controllers.TurmaController{DB: db}
	rosterCtrl := &controllers.RosterController{Roster: rosterSvc}
	attendanceCtrl := &controllers.AttendanceController{Attendance: attendanceSvc}
	frequencyCtrl := &controllers.FrequencyController{Frequency: frequencySvc}
	activityCtrl := &controllers.ActivityController{DB: db}
	assessmentCtrl := &controllers.AssessmentController{DB: db}
	announcementCtrl := &controllers.AnnouncementController{DB: db}
	scheduleCtrl := &controllers.ScheduleController{DB: db}
	chatCtrl := &controllers.ChatController{DB: db, Hub: chatHub}

	authMW := middleware.AuthMiddleware(db, cfg.JWTSecret)

	api := r.Group("/api/v1")

	// Public
	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)

	// Reads: open by default, behind auth when configured.
	reads := api.Group("")
	if cfg.ProtectReads {
		reads.Use(authMW)
	}
	{
		reads.GET("/users", userCtrl.List)
		reads.GET("/classes", turmaCtrl.List)
		reads.GET("/classes/:id", turmaCtrl.Get)
		reads.GET("/roster/:turmaId", rosterCtrl.ListMembers)
		reads.GET("/attendance", attendanceCtrl.Query)
		reads.GET("/attendance/:turmaId", attendanceCtrl.GetByTurma)
		reads.GET("/frequency/:turmaId", frequencyCtrl.ByTurma)
		reads.GET("/activities", activityCtrl.List)
		reads.GET("/assessments", assessmentCtrl.List)
		reads.GET("/announcements", announcementCtrl.List)
		reads.GET("/schedules", scheduleCtrl.List)
	}

	// Authenticated
	authed := api.Group("", authMW)
	{
		authed.GET("/auth/me", authCtrl.Me)

		staff := authed.Group("", middleware.RequireRoles(models.RoleProfessor))
		{
			staff.POST("/classes", turmaCtrl.Create)
			staff.POST("/roster", rosterCtrl.Enroll)
			staff.DELETE("/roster/:turmaId/:userId", rosterCtrl.Unenroll)
			staff.POST("/attendance", attendanceCtrl.Submit)

			staff.POST("/activities", activityCtrl.Create)
			staff.PATCH("/activities/:id", activityCtrl.Update)
			staff.DELETE("/activities/:id", activityCtrl.Delete)

			staff.POST("/assessments", assessmentCtrl.Create)
			staff.PATCH("/assessments/:id", assessmentCtrl.Update)
			staff.DELETE("/assessments/:id", assessmentCtrl.Delete)

			staff.POST("/announcements", announcementCtrl.Create)
			staff.DELETE("/announcements/:id", announcementCtrl.Delete)

			staff.POST("/schedules", scheduleCtrl.Create)
			staff.PUT("/schedules/:id", scheduleCtrl.Update)
			staff.DELETE("/schedules/:id", scheduleCtrl.Delete)
		}

		// /chat holds the lookup routes; /chats/:id stays purely parametric so
		// gin's router never sees a static segment next to the wildcard.
		authed.POST("/chats", chatCtrl.Create)
		authed.POST("/chat/direct", chatCtrl.Direct)
		authed.GET("/chat/user/:userId", chatCtrl.ListForUser)
		authed.GET("/chats/:id/messages", chatCtrl.Messages)
		authed.POST("/chats/:id/messages", chatCtrl.SendMessage)

		authed.GET("/ws/chat", ws.ChatHandler(chatHub))
	}
}

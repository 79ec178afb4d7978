package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"doabli/internal/handlers"
)

// Handlers groups everything SetupRoutes mounts.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Projects    *handlers.ProjectHandler
	Tasks       *handlers.TaskHandler
	Comments    *handlers.CommentHandler
	Attachments *handlers.AttachmentHandler
	Pages       *handlers.PageHandler
	Members     *handlers.MemberHandler
	Dashboard   *handlers.DashboardHandler
	Automations *handlers.AutomationHandler
	Onboarding  *handlers.OnboardingHandler
	WS          http.HandlerFunc
}

// Guards are the session and project-role middlewares built by package middleware.
type Guards struct {
	Session      gin.HandlerFunc
	ReadOnly     gin.HandlerFunc
	ProjectAdmin gin.HandlerFunc
}

func SetupRoutes(r *gin.Engine, h Handlers, g Guards) *gin.Engine {
	// ---- public
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.POST("/api/auth/callback", h.Auth.Callback)
	r.GET("/api/logout", h.Auth.Logout)

	// ---- protected
	r.Use(g.Session)

	if h.WS != nil {
		r.GET("/ws", gin.WrapF(h.WS))
	}

	api := r.Group("/api")
	api.GET("/auth/user", h.Auth.CurrentUser)

	// PROJECTS
	projects := api.Group("/projects")
	{
		projects.GET("", h.Projects.List)
		projects.POST("", h.Projects.Create)
	}
	project := api.Group("/projects/:id", g.ReadOnly)
	{
		project.GET("", h.Projects.GetByID)
		project.PATCH("", h.Projects.Update)
		project.DELETE("", h.Projects.Delete)
		project.GET("/board", h.Tasks.Board)
		project.POST("/board/rebalance", h.Tasks.Rebalance)
		project.GET("/members", h.Members.ListMembers)
		project.DELETE("/members/:userId", g.ProjectAdmin, h.Members.Remove)
		project.GET("/invitations", h.Members.ListInvitations)
	}

	// TASKS
	tasks := api.Group("/tasks")
	{
		tasks.GET("", h.Tasks.List)
		tasks.POST("", h.Tasks.Create)
		tasks.GET("/:id", h.Tasks.GetByID)
		tasks.PUT("/:id", h.Tasks.Update)
		tasks.PATCH("/:id", h.Tasks.Update)
		tasks.PUT("/:id/position", h.Tasks.UpdatePosition)
		tasks.PUT("/:id/move", h.Tasks.Move)
		tasks.DELETE("/:id", h.Tasks.Delete)

		tasks.GET("/:id/comments", h.Comments.List)
		tasks.POST("/:id/comments", h.Comments.Create)
		tasks.GET("/:id/attachments", h.Attachments.List)
		tasks.POST("/:id/attachments", h.Attachments.Upload)
	}
	api.DELETE("/comments/:id", h.Comments.Delete)
	api.GET("/attachments/:id/download", h.Attachments.Download)
	api.DELETE("/attachments/:id", h.Attachments.Delete)

	// PAGES
	pages := api.Group("/pages")
	{
		pages.GET("", h.Pages.List)
		pages.POST("", h.Pages.Create)
		pages.GET("/:id", h.Pages.GetByID)
		pages.PATCH("/:id", h.Pages.Update)
		pages.DELETE("/:id", h.Pages.Delete)
		pages.GET("/:id/pdf", h.Pages.PDF)
	}

	api.POST("/invitations", h.Members.Invite)
	api.GET("/dashboard/stats", h.Dashboard.Stats)
	api.GET("/dashboard/upcoming", h.Dashboard.Upcoming)
	api.GET("/calendar", h.Dashboard.Calendar)

	// AUTOMATIONS (stored only)
	automations := api.Group("/automations")
	{
		automations.GET("", h.Automations.List)
		automations.POST("", h.Automations.Create)
		automations.PATCH("/:id", h.Automations.Update)
		automations.DELETE("/:id", h.Automations.Delete)
	}

	api.POST("/onboarding", h.Onboarding.Complete)

	return r
}

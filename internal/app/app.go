package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	_ "doabli/docs"
	"doabli/internal/config"
	"doabli/internal/db"
	"doabli/internal/handlers"
	"doabli/internal/middleware"
	"doabli/internal/pdf"
	"doabli/internal/realtime"
	"doabli/internal/repositories"
	"doabli/internal/routes"
	"doabli/internal/services"
)

const (
	shutdownTimeout = 10 * time.Second
	purgeInterval   = time.Hour
)

// Server is the assembled application: router, websocket hub and the services behind them.
type Server struct {
	Router      *gin.Engine
	Hub         *realtime.Hub
	Auth        services.AuthService
	Attachments services.AttachmentService
}

// Build wires repositories, services, handlers and routes over an open database.
func Build(cfg *config.Config, conn *sqlx.DB) *Server {
	// === Repos ===
	userRepo := repositories.NewUserRepository(conn)
	sessionRepo := repositories.NewSessionRepository(conn)
	projectRepo := repositories.NewProjectRepository(conn)
	taskRepo := repositories.NewTaskRepository(conn)
	commentRepo := repositories.NewCommentRepository(conn)
	attachmentRepo := repositories.NewAttachmentRepository(conn)
	pageRepo := repositories.NewPageRepository(conn)
	memberRepo := repositories.NewMemberRepository(conn)
	automationRepo := repositories.NewAutomationRepository(conn)
	invitationRepo := repositories.NewInvitationRepository(conn)

	// === Services ===
	var mailer services.EmailService
	if cfg.Email.Enabled() {
		mailer = services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	} else {
		log.Printf("[app] smtp not configured, invitations are recorded without e-mail")
	}

	authService := services.NewAuthService(userRepo, sessionRepo, cfg.Auth.IDTokenSecret, cfg.Auth.Issuer, cfg.Session.TTL())
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, cfg.Location())
	commentService := services.NewCommentService(commentRepo, taskRepo)
	attachmentService := services.NewAttachmentService(attachmentRepo, taskRepo, cfg.Files.RootDir)
	pageService := services.NewPageService(pageRepo)
	automationService := services.NewAutomationService(automationRepo)
	invitationService := services.NewInvitationService(invitationRepo, memberRepo, projectRepo, userRepo, mailer, cfg.App.PublicURL)
	onboardingService := services.NewOnboardingService(userRepo, projectService, taskService)

	// === Realtime ===
	hub := realtime.NewHub(cfg.Server.CORSOrigin)
	notifier := realtime.NewNotifier(hub)
	if cfg.Telegram.Enabled() {
		sink, err := realtime.NewTelegramSink(cfg.Telegram.BotToken, cfg.Telegram.ChatID, "")
		if err != nil {
			log.Printf("[app][tg][warn] telegram disabled: %v", err)
		} else {
			notifier = realtime.NewNotifier(hub, sink)
		}
	}

	// === Handlers ===
	h := routes.Handlers{
		Auth: handlers.NewAuthHandler(authService, handlers.CookieOptions{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL(),
			Secure: cfg.Session.Secure,
		}),
		Projects:    handlers.NewProjectHandler(projectService),
		Tasks:       handlers.NewTaskHandler(taskService, notifier),
		Comments:    handlers.NewCommentHandler(commentService),
		Attachments: handlers.NewAttachmentHandler(attachmentService),
		Pages:       handlers.NewPageHandler(pageService, pdf.NewPageRenderer(cfg.Files.FontPath)),
		Members:     handlers.NewMemberHandler(invitationService),
		Dashboard:   handlers.NewDashboardHandler(taskService),
		Automations: handlers.NewAutomationHandler(automationService),
		Onboarding:  handlers.NewOnboardingHandler(onboardingService, notifier),
		WS:          hub.ServeWS,
	}
	g := routes.Guards{
		Session:      middleware.AuthMiddleware(authService, cfg.Session.CookieName),
		ReadOnly:     middleware.ReadOnlyGuard(memberRepo),
		ProjectAdmin: middleware.RequireProjectAdmin(projectService, memberRepo),
	}

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(cfg.Server.CORSOrigin))
	routes.SetupRoutes(router, h, g)

	return &Server{Router: router, Hub: hub, Auth: authService, Attachments: attachmentService}
}

// Run serves until ctx is cancelled, then drains connections.
func Run(ctx context.Context, cfg *config.Config) error {
	conn, err := db.Open(ctx, cfg.Database.DSN, cfg.Database.MaxOpenConns)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("[app][db][err] close: %v", err)
		}
	}()

	srv := Build(cfg, conn)
	go every(ctx, purgeInterval, "[app][sessions]", srv.Auth.PurgeExpired)
	go every(ctx, purgeInterval, "[app][attachments]", srv.Attachments.SweepOrphans)

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[app] listening on %s", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		srv.Hub.Close()
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Printf("[app] shutting down")
	srv.Hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// every runs a cleanup job on each tick until ctx is done.
func every(ctx context.Context, interval time.Duration, tag string, job func(context.Context) (int64, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := job(ctx)
			if err != nil {
				log.Printf("%s[err] %v", tag, err)
				continue
			}
			if n > 0 {
				log.Printf("%s removed %d", tag, n)
			}
		}
	}
}

func corsMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		allow := origin
		if origin == "*" {
			if reqOrigin := c.GetHeader("Origin"); reqOrigin != "" {
				allow = reqOrigin
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", allow)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type")
		c.Writer.Header().Add("Vary", "Origin")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

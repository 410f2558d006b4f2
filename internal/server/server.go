// Package server exposes the HTTP surface over fiber. Handlers stay thin:
// parse and validate the payload, enforce the mutation policy, call into the
// repositories, and let the central error handler translate rich errors into
// status codes.
package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/classlog/classlog/internal/auth"
	"github.com/classlog/classlog/internal/config"
	"github.com/classlog/classlog/internal/repository"
	"github.com/classlog/classlog/internal/storage"
)

// Logger is the minimal logging surface handlers need.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Server owns the fiber app and the wiring every handler needs.
type Server struct {
	cfg      config.Config
	app      *fiber.App
	repos    repository.Manager
	resolver *auth.SessionResolver
	files    storage.FileStore
	logger   Logger
}

// New builds the fiber app with every route registered. Listen still has to
// be called by the caller.
func New(cfg config.Config, repos repository.Manager, resolver *auth.SessionResolver, files storage.FileStore, logger Logger) *Server {
	s := &Server{
		cfg:      cfg,
		repos:    repos,
		resolver: resolver,
		files:    files,
		logger:   logger,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "classlog",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
		// Leave headroom above the media limit so multipart framing does not
		// trip the body limit before our own size check runs.
		BodyLimit: int(cfg.MaxUploadSize) + (1 << 20),
	})

	s.registerRoutes()

	return s
}

// App exposes the underlying fiber app, mostly for tests that drive requests
// through app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.handleHealth)
	s.app.Static("/uploads", s.cfg.UploadDir)

	api := s.app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", s.handleRegister)
	authGroup.Post("/login", s.handleLogin)
	authGroup.Get("/me", s.requireAuth, s.handleMe)
	authGroup.Post("/logout", s.handleLogout)

	users := api.Group("/users", s.requireAuth)
	users.Get("/", s.handleListUsers)
	users.Get("/me", s.handleMe)
	users.Put("/me", s.handleUpdateProfile)
	users.Get("/stats/summary", s.handleUserStats)
	users.Get("/:id", s.handleGetUser)

	activities := api.Group("/activities", s.requireAuth)
	activities.Get("/", s.handleListActivities)
	activities.Post("/", s.handleCreateActivity)
	activities.Get("/stats/summary", s.handleActivityStats)
	activities.Get("/:id", s.handleGetActivity)
	activities.Put("/:id", s.handleUpdateActivity)
	activities.Delete("/:id", s.handleDeleteActivity)

	media := api.Group("/media", s.requireAuth)
	media.Get("/", s.handleListMedia)
	media.Post("/upload", s.handleUploadMedia)
	media.Get("/stats/summary", s.handleMediaStats)
	media.Get("/:id", s.handleGetMedia)
	media.Delete("/:id", s.handleDeleteMedia)

	comments := api.Group("/comments", s.requireAuth)
	comments.Get("/media/:mediaID", s.handleListComments)
	comments.Post("/", s.handleCreateComment)
	comments.Get("/:id", s.handleGetComment)
	comments.Delete("/:id", s.handleDeleteComment)

	notifications := api.Group("/notifications", s.requireAuth)
	notifications.Get("/", s.handleListNotifications)
	notifications.Get("/stats", s.handleNotificationStats)
	notifications.Put("/mark-all-read", s.handleMarkAllNotificationsRead)
	notifications.Put("/:id/read", s.handleMarkNotificationRead)
	notifications.Delete("/:id", s.handleDeleteNotification)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "ok",
		"environment": s.cfg.Environment,
	})
}

package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/config"
	"github.com/heritage-catalog/internal/delivery/http/handler"
	"github.com/heritage-catalog/internal/delivery/http/middleware"
	"github.com/heritage-catalog/internal/pkg/errors"
	"github.com/heritage-catalog/internal/pkg/utils"
)

// HealthChecker - зависимость, проверяемая в /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handlers - набор обработчиков API
type Handlers struct {
	Site         *handler.SiteHandler
	Contribution *handler.ContributionHandler
	Event        *handler.EventHandler
	Comment      *handler.CommentHandler
	User         *handler.UserHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
	checks   map[string]HealthChecker
}

// NewServer - создание нового HTTP сервера.
// checks - зависимости для /health; nil значение означает, что зависимость отключена.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	handlers Handlers,
	checks map[string]HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Heritage Catalog",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
		checks:   checks,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - доступ к fiber.App (используется в тестах через app.Test)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.Metrics())
	s.app.Use(middleware.CORS(s.config.CORS.AllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	s.app.Get("/health", s.health)

	api := s.app.Group("/api/v1")
	api.Use(middleware.RateLimit(s.config.RateLimit.RequestsPerMinute, s.config.RateLimit.Burst))
	api.Get("/health", s.health)

	// Sites; статические пути регистрируются раньше /sites/:id
	sites := api.Group("/sites")
	sites.Get("/search", s.handlers.Site.Search)
	sites.Get("/nearby", s.handlers.Site.Nearby)
	sites.Get("/dates", s.handlers.Site.ByDateRange)
	sites.Post("/", s.handlers.Site.Create)
	sites.Get("/", s.handlers.Site.List)
	sites.Get("/:id", s.handlers.Site.Get)
	sites.Put("/:id", s.handlers.Site.Update)
	sites.Delete("/:id", s.handlers.Site.Delete)

	// Contributions and moderation
	contributions := api.Group("/contributions")
	contributions.Post("/", s.handlers.Contribution.Create)
	contributions.Get("/all", s.handlers.Contribution.List)
	contributions.Get("/by-status", s.handlers.Contribution.ListByStatus)
	contributions.Patch("/:id/approve", s.handlers.Contribution.Approve)
	contributions.Patch("/:id/reject", s.handlers.Contribution.Reject)
	contributions.Get("/:id/history", s.handlers.Contribution.History)
	contributions.Get("/:id", s.handlers.Contribution.Get)
	contributions.Put("/:id", s.handlers.Contribution.Update)
	contributions.Delete("/:id", s.handlers.Contribution.Delete)

	events := api.Group("/events")
	events.Post("/", s.handlers.Event.Create)
	events.Get("/", s.handlers.Event.List)
	events.Get("/:id", s.handlers.Event.Get)
	events.Put("/:id", s.handlers.Event.Update)
	events.Delete("/:id", s.handlers.Event.Delete)

	comments := api.Group("/comments")
	comments.Post("/", s.handlers.Comment.Create)
	comments.Get("/", s.handlers.Comment.List)
	comments.Get("/:id", s.handlers.Comment.Get)
	comments.Put("/:id", s.handlers.Comment.Update)
	comments.Delete("/:id", s.handlers.Comment.Delete)

	users := api.Group("/users")
	users.Post("/", s.handlers.User.Create)
	users.Get("/", s.handlers.User.List)
	users.Get("/:id", s.handlers.User.Get)
	users.Put("/:id", s.handlers.User.Update)
	users.Delete("/:id", s.handlers.User.Delete)
}

// health godoc
// @Summary Проверка состояния
// @Description Пингует PostgreSQL и Redis. 503, если недоступна хотя бы одна включённая зависимость.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	code := fiber.StatusOK
	deps := make(fiber.Map, len(s.checks))
	for name, check := range s.checks {
		if check == nil {
			deps[name] = "disabled"
			continue
		}
		if err := check.Health(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			deps[name] = "unavailable"
			status = "unhealthy"
			code = fiber.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       status,
		"dependencies": deps,
		"time":         time.Now().UTC(),
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки Fiber и паники в общий формат ответа
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		appErr, ok := errors.As(err)
		if !ok {
			appErr = errors.ErrInternalServer
			if e, isFiber := err.(*fiber.Error); isFiber {
				appErr = errors.New(statusCode(e.Code), e.Message, e.Code)
			}
		}

		if appErr.StatusCode >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", appErr.StatusCode),
				zap.Error(err),
			)
		}

		return utils.SendError(c, appErr)
	}
}

func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "INTERNAL_SERVER_ERROR"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}

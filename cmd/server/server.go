package server

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"event-manager-api/internal/adapters/config"
	"event-manager-api/internal/adapters/controller/http/middlewares"
	"event-manager-api/internal/adapters/controller/http/setup"
	postgresStorage "event-manager-api/internal/adapters/database/postgres"
	"event-manager-api/internal/domain/policy"
	"event-manager-api/internal/domain/service"
	"event-manager-api/internal/domain/utils/validator"
	"event-manager-api/pkg/logger"
	"event-manager-api/pkg/logger/types"
)

type Server struct {
	App    *fiber.App
	Logger *types.Logger
	listen string
}

// New assembles storages, services and the HTTP surface.
func New(cfg *config.Config) (*Server, error) {
	httpLogger, err := logger.Named("http")
	if err != nil {
		return nil, err
	}
	participationLogger, err := logger.Named("participation")
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "Event Management API",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middlewares.RequestLogger(httpLogger))

	userStorage := postgresStorage.NewUserStorage(cfg.Database)
	eventStorage := postgresStorage.NewEventStorage(cfg.Database)
	attendeeStorage := postgresStorage.NewEventAttendeeStorage(cfg.Database)

	accessPolicy := policy.New(cfg.Auth.MasterUsername)

	setup.Setup(app, setup.Dependencies{
		AuthService:  service.NewAuthService(userStorage, cfg.Redis.Tokens, cfg.Auth),
		UserService:  service.NewUserService(userStorage, accessPolicy),
		EventService: service.NewEventService(eventStorage, userStorage, accessPolicy),
		AttendeeService: service.NewEventAttendeeService(
			participationLogger,
			attendeeStorage,
			eventStorage,
			userStorage,
		),
		Validator: validator.New(),
	})

	return &Server{
		App:    app,
		Logger: httpLogger,
		listen: cfg.Listen,
	}, nil
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() {
	go func() {
		s.Logger.Infof("Listening on %s", s.listen)
		if err := s.App.Listen(s.listen); err != nil {
			s.Logger.Panicf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	s.Logger.Info("Shutting down")
	if err := s.App.ShutdownWithTimeout(10 * time.Second); err != nil {
		s.Logger.Errorf("Shutdown failed: %v", err)
	}
}

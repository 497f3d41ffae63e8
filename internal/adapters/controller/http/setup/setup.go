package setup

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"event-manager-api/internal/adapters/controller/http/handlers"
	"event-manager-api/internal/adapters/controller/http/middlewares"
	"event-manager-api/internal/domain/service"
)

type Dependencies struct {
	AuthService     *service.AuthService
	UserService     *service.UserService
	EventService    *service.EventService
	AttendeeService *service.EventAttendeeService
	Validator       *validator.Validate
}

// Setup registers every route on the app.
func Setup(app *fiber.App, deps Dependencies) {
	userHandler := handlers.NewUserHandler(deps.UserService, deps.AuthService, deps.Validator)
	eventHandler := handlers.NewEventHandler(deps.EventService, deps.Validator)
	participationHandler := handlers.NewParticipationHandler(deps.AttendeeService)

	authRequired := middlewares.Auth(deps.AuthService)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome to the Event Management API"})
	})

	users := app.Group("/users")
	users.Post("/register", authRequired, userHandler.Register)
	users.Post("/login", userHandler.Login)
	users.Post("/logout", authRequired, userHandler.Logout)
	users.Get("/users", authRequired, userHandler.List)
	users.Get("/users/:id", authRequired, userHandler.Get)
	users.Put("/users/:id", authRequired, userHandler.Update)
	users.Delete("/users/:id", authRequired, userHandler.Delete)

	events := app.Group("/events")
	events.Post("/events", authRequired, eventHandler.Create)
	events.Put("/events/:id", authRequired, eventHandler.Update)
	events.Delete("/events/:id", authRequired, eventHandler.Delete)
	events.Get("/events", eventHandler.List)
	events.Get("/events/:id", eventHandler.Get)

	participation := app.Group("/event-participation")
	participation.Post("/events/:id/join", authRequired, participationHandler.Join)
	participation.Delete("/events/:id/leave", authRequired, participationHandler.Leave)
}

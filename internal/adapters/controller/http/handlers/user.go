package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"event-manager-api/internal/adapters/controller/http/middlewares"
	"event-manager-api/internal/domain/dto"
	"event-manager-api/internal/domain/service"
)

type UserHandler struct {
	userService *service.UserService
	authService *service.AuthService
	validator   *validator.Validate
}

func NewUserHandler(userService *service.UserService, authService *service.AuthService, validator *validator.Validate) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
		validator:   validator,
	}
}

func claimsFrom(c *fiber.Ctx) service.Claims {
	claims, _ := c.Locals(middlewares.ClaimsKey).(service.Claims)
	return claims
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

// Register creates a new user. Admin role claim required.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var draft dto.UserCreate
	if err := c.BodyParser(&draft); err != nil {
		return respondValidation(c, err)
	}
	if err := h.validator.Struct(draft); err != nil {
		return respondValidation(c, err)
	}

	user, err := h.userService.Register(c.UserContext(), claimsFrom(c), draft)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

// Login authenticates form credentials and returns a bearer token.
func (h *UserHandler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	token, err := h.authService.Login(c.UserContext(), username, password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Logout revokes the presented token until it expires on its own.
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals(middlewares.TokenKey).(string)
	if err := h.authService.Logout(c.UserContext(), token); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Successfully logged out"})
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.UserContext(), claimsFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewUserResponses(users))
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondValidation(c, err)
	}

	user, err := h.userService.Get(c.UserContext(), claimsFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondValidation(c, err)
	}

	var patch dto.UserUpdate
	if err = c.BodyParser(&patch); err != nil {
		return respondValidation(c, err)
	}
	if err = h.validator.Struct(patch); err != nil {
		return respondValidation(c, err)
	}

	user, err := h.userService.Update(c.UserContext(), claimsFrom(c), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondValidation(c, err)
	}

	if err = h.userService.Delete(c.UserContext(), claimsFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

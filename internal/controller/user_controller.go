package controller

import (
	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chess-server/internal/service"
)

type UserController struct {
	userService *service.UserService
	logger      *log.Logger
}

func NewUserController(userService *service.UserService, logger *log.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (uc *UserController) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, uc.logger, service.ErrBadRequest)
	}

	auth, err := uc.userService.Register(req.Username, req.Password, req.Email)
	if err != nil {
		return sendError(c, uc.logger, err)
	}
	return c.JSON(auth)
}

func (uc *UserController) Login(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, uc.logger, service.ErrBadRequest)
	}

	auth, err := uc.userService.Login(req.Username, req.Password)
	if err != nil {
		return sendError(c, uc.logger, err)
	}
	return c.JSON(auth)
}

func (uc *UserController) Logout(c *fiber.Ctx) error {
	if err := uc.userService.Logout(c.Get(fiber.HeaderAuthorization)); err != nil {
		return sendError(c, uc.logger, err)
	}
	return c.JSON(fiber.Map{})
}

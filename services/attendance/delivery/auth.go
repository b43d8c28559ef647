package delivery

import (
	"attendance/config"
	"attendance/domain"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"
)

type authHandler struct {
	auc domain.AuthUseCase
}

func NewAuthDelivery(app *fiber.App, uc domain.AuthUseCase) {
	handler := &authHandler{
		auc: uc,
	}

	app.Post("/register", handler.Register)
	app.Post("/login", handler.Login)
}

func (ah *authHandler) Register(c *fiber.Ctx) error {
	var req domain.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(nil, fiber.StatusBadRequest, "Register")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if _, err := govalidator.ValidateStruct(&req); err != nil {
		var validatorResponse []string
		validationErrors := govalidator.ErrorsByField(err)
		for i := range validationErrors {
			validatorResponse = append(validatorResponse, validationErrors[i])
		}
		config.PrintLogInfo(nil, fiber.StatusBadRequest, "Register")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   validatorResponse,
			"message": "Invalid request body",
		})
	}

	if err := ah.auc.Register(c.Context(), &req); err != nil {
		status := statusFor(err)
		config.PrintLogInfo(&req.Email, status, "Register")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": errMessage(err),
		})
	}

	config.PrintLogInfo(&req.Email, fiber.StatusCreated, "Register")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully.",
	})
}

func (ah *authHandler) Login(c *fiber.Ctx) error {
	var req domain.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(nil, fiber.StatusBadRequest, "Login")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if _, err := govalidator.ValidateStruct(&req); err != nil {
		var validatorResponse []string
		validationErrors := govalidator.ErrorsByField(err)
		for i := range validationErrors {
			validatorResponse = append(validatorResponse, validationErrors[i])
		}
		config.PrintLogInfo(&req.Email, fiber.StatusBadRequest, "Login")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   validatorResponse,
			"message": "Invalid request body",
		})
	}

	resp, err := ah.auc.Login(c.Context(), &req)
	if err != nil {
		status := statusFor(err)
		config.PrintLogInfo(&req.Email, status, "Login")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Invalid email or password",
		})
	}

	config.PrintLogInfo(&req.Email, fiber.StatusOK, "Login")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data":    resp,
	})
}

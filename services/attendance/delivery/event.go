package delivery

import (
	"errors"

	"attendance/config"
	"attendance/domain"
	"attendance/middleware"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"
)

type eventHandler struct {
	suc domain.SubmissionUseCase
}

func NewEventDelivery(app *fiber.App, uc domain.SubmissionUseCase, provider domain.IdentityProvider, users domain.UserRepo) {
	handler := &eventHandler{
		suc: uc,
	}

	route := app.Group("/event", middleware.AuthRequired(provider, users))
	route.Post("/create", handler.CreateEvent)
}

func submissionOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

func (eh *eventHandler) CreateEvent(c *fiber.Ctx) error {
	actor := actorFrom(c)

	var req domain.EventPayload
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(actorEmail(c), fiber.StatusBadRequest, "CreateEvent")
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
		config.PrintLogInfo(actorEmail(c), fiber.StatusBadRequest, "CreateEvent")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   validatorResponse,
			"message": "Invalid request body",
		})
	}

	result, err := eh.suc.Submit(c.Context(), actor, &req)
	if err != nil {
		config.SubmissionCounter.WithLabelValues("unknown", submissionOutcome(err)).Inc()
		status := statusFor(err)
		config.PrintLogInfo(actorEmail(c), status, "CreateEvent")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": errMessage(err),
		})
	}

	config.SubmissionCounter.WithLabelValues(result.Kind, "ok").Inc()

	message := "Event created successfully."
	if result.Kind == "request" {
		message = "Request created successfully."
	}

	config.PrintLogInfo(actorEmail(c), fiber.StatusCreated, "CreateEvent")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    result,
	})
}

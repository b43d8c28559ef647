package delivery

import (
	"attendance/config"
	"attendance/domain"
	"attendance/middleware"

	"github.com/gofiber/fiber/v2"
)

type notificationHandler struct {
	nuc domain.NotificationUseCase
}

func NewNotificationDelivery(app *fiber.App, uc domain.NotificationUseCase, provider domain.IdentityProvider, users domain.UserRepo) {
	handler := &notificationHandler{
		nuc: uc,
	}

	route := app.Group("/notification", middleware.AuthRequired(provider, users))
	route.Get("/inbox", handler.GetInbox)
	route.Post("/read/:id", handler.MarkRead)
}

func (nh *notificationHandler) GetInbox(c *fiber.Ctx) error {
	inbox, err := nh.nuc.GetInbox(c.Context(), actorFrom(c))
	if err != nil {
		status := statusFor(err)
		config.PrintLogInfo(actorEmail(c), status, "GetInbox")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": errMessage(err),
		})
	}

	config.PrintLogInfo(actorEmail(c), fiber.StatusOK, "GetInbox")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Inbox retrieved successfully",
		"data":    inbox,
	})
}

func (nh *notificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		config.PrintLogInfo(actorEmail(c), fiber.StatusBadRequest, "MarkRead")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Notification id is required",
		})
	}

	if err := nh.nuc.MarkRead(c.Context(), actorFrom(c), id); err != nil {
		status := statusFor(err)
		config.PrintLogInfo(actorEmail(c), status, "MarkRead")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": errMessage(err),
		})
	}

	config.PrintLogInfo(actorEmail(c), fiber.StatusOK, "MarkRead")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Notification marked as read",
	})
}

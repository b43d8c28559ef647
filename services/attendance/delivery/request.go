package delivery

import (
	"attendance/config"
	"attendance/domain"
	"attendance/middleware"

	"github.com/gofiber/fiber/v2"
)

type requestHandler struct {
	auc domain.AdjudicationUseCase
}

func NewRequestDelivery(app *fiber.App, uc domain.AdjudicationUseCase, provider domain.IdentityProvider, users domain.UserRepo) {
	handler := &requestHandler{
		auc: uc,
	}

	route := app.Group("/attendance-request",
		middleware.AuthRequired(provider, users),
		middleware.RoleRequired(domain.RoleAdmin))
	route.Get("/get-all", handler.GetAllPending)
	route.Post("/approve", handler.Approve)
	route.Post("/reject", handler.Reject)
}

func (rh *requestHandler) adjudicate(c *fiber.Ctx, action string,
	decide func(actor *domain.User, id int) (*domain.AttendanceRequest, error)) error {

	actor := actorFrom(c)

	id := c.QueryInt("id")
	if id <= 0 {
		config.AdjudicationCounter.WithLabelValues(action, "error").Inc()
		config.PrintLogInfo(actorEmail(c), fiber.StatusBadRequest, action)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Request id is required",
		})
	}

	consumed, err := decide(actor, id)
	if err != nil {
		config.AdjudicationCounter.WithLabelValues(action, "error").Inc()
		status := statusFor(err)
		config.PrintLogInfo(actorEmail(c), status, action)
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": errMessage(err),
		})
	}

	config.AdjudicationCounter.WithLabelValues(action, "ok").Inc()
	config.PrintLogInfo(actorEmail(c), fiber.StatusOK, action)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Attendance request " + action + "d",
		"data":    consumed,
	})
}

func (rh *requestHandler) Approve(c *fiber.Ctx) error {
	return rh.adjudicate(c, "approve", func(actor *domain.User, id int) (*domain.AttendanceRequest, error) {
		return rh.auc.Approve(c.Context(), actor, id)
	})
}

func (rh *requestHandler) Reject(c *fiber.Ctx) error {
	return rh.adjudicate(c, "reject", func(actor *domain.User, id int) (*domain.AttendanceRequest, error) {
		return rh.auc.Reject(c.Context(), actor, id)
	})
}

func (rh *requestHandler) GetAllPending(c *fiber.Ctx) error {
	requests, err := rh.auc.GetAllPending(c.Context(), actorFrom(c))
	if err != nil {
		status := statusFor(err)
		config.PrintLogInfo(actorEmail(c), status, "GetAllPending")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": errMessage(err),
		})
	}

	config.PrintLogInfo(actorEmail(c), fiber.StatusOK, "GetAllPending")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Pending requests retrieved successfully",
		"data":    requests,
	})
}

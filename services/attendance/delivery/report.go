package delivery

import (
	"time"

	"attendance/config"
	"attendance/domain"
	"attendance/middleware"

	"github.com/gofiber/fiber/v2"
)

type reportHandler struct {
	ruc domain.ReportUseCase
}

func NewReportDelivery(app *fiber.App, uc domain.ReportUseCase, provider domain.IdentityProvider, users domain.UserRepo) {
	handler := &reportHandler{
		ruc: uc,
	}

	route := app.Group("/report",
		middleware.AuthRequired(provider, users),
		middleware.RoleRequired(domain.RoleAdmin))
	route.Get("/weekly", handler.Weekly)
}

func (rh *reportHandler) Weekly(c *fiber.Ctx) error {
	anchor := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			config.PrintLogInfo(actorEmail(c), fiber.StatusBadRequest, "WeeklyReport")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid date, expected YYYY-MM-DD",
			})
		}
		anchor = parsed
	}

	report, err := rh.ruc.WeeklyReport(c.Context(), anchor)
	if err != nil {
		status := statusFor(err)
		config.PrintLogInfo(actorEmail(c), status, "WeeklyReport")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": errMessage(err),
		})
	}

	config.PrintLogInfo(actorEmail(c), fiber.StatusOK, "WeeklyReport")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Weekly report retrieved successfully",
		"data":    report,
	})
}

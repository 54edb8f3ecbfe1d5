package delivery

import (
	"errors"

	"sinifplanim/config"
	"sinifplanim/domain"
	"sinifplanim/middleware"

	"github.com/gofiber/fiber/v2"
)

type scheduleHandler struct {
	suc domain.ScheduleUseCase
}

func NewScheduleDelivery(app *fiber.App, uc domain.ScheduleUseCase) {
	handler := &scheduleHandler{
		suc: uc,
	}

	group := app.Group("/schedule", middleware.AuthRequired())
	group.Get("/get", handler.deliveryGetSchedule)
	group.Put("/save", handler.deliverySaveSchedule)
}

func (sh *scheduleHandler) deliveryGetSchedule(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	schedule, err := sh.suc.GetSchedule(c.Context(), userToken.UserID)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "GetSchedule")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to retrieve schedule",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetSchedule")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Schedule retrieved successfully",
		"data":    schedule,
	})
}

func (sh *scheduleHandler) deliverySaveSchedule(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var schedule domain.WeeklySchedule
	if err := c.BodyParser(&schedule); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "SaveSchedule")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := sh.suc.SaveSchedule(c.Context(), userToken.UserID, &schedule); err != nil {
		if errors.Is(err, domain.ErrPersistFailed) {
			config.PrintLogInfo(&userToken.Username, fiber.StatusAccepted, "SaveSchedule")
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"success": true,
				"message": "Schedule accepted, but saving failed; it may be lost on reload",
			})
		}

		status := fiber.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidScheduleCell) {
			status = fiber.StatusBadRequest
		}
		config.PrintLogInfo(&userToken.Username, status, "SaveSchedule")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save schedule",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "SaveSchedule")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Schedule saved successfully",
	})
}

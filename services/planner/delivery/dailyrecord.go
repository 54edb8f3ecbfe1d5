package delivery

import (
	"errors"

	"sinifplanim/config"
	"sinifplanim/domain"
	"sinifplanim/middleware"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"
)

type dailyRecordHandler struct {
	ruc domain.DailyRecordUseCase
}

func NewDailyRecordDelivery(app *fiber.App, uc domain.DailyRecordUseCase) {
	handler := &dailyRecordHandler{
		ruc: uc,
	}

	route := app.Group("/record", middleware.AuthRequired())
	route.Get("/get/:class_id/:date", handler.deliveryGetRecordsForDate)
	route.Post("/event/insert", handler.deliveryInsertEvent)
	route.Post("/event/insert-bulk", handler.deliveryInsertBulkEvents)
	route.Delete("/event/rm", handler.deliveryRemoveEvent)
}

type addEventRequest struct {
	ClassID   string                `json:"classId" valid:"required~Class ID is required"`
	StudentID string                `json:"studentId" valid:"required~Student ID is required"`
	Date      string                `json:"date" valid:"required~Date is required"`
	Event     domain.NewRecordEvent `json:"event"`
}

type addBulkEventsRequest struct {
	ClassID    string                `json:"classId" valid:"required~Class ID is required"`
	StudentIDs []string              `json:"studentIds"`
	Date       string                `json:"date" valid:"required~Date is required"`
	Event      domain.NewRecordEvent `json:"event"`
}

type removeEventRequest struct {
	ClassID   string `json:"classId" valid:"required~Class ID is required"`
	StudentID string `json:"studentId" valid:"required~Student ID is required"`
	Date      string `json:"date" valid:"required~Date is required"`
	EventID   string `json:"eventId" valid:"required~Event ID is required"`
}

func (rh *dailyRecordHandler) deliveryGetRecordsForDate(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)
	classID := c.Params("class_id")
	date := c.Params("date")

	records, err := rh.ruc.GetRecordsForDate(c.Context(), userToken.UserID, classID, date)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidDate) {
			status = fiber.StatusBadRequest
		}
		config.PrintLogInfo(&userToken.Username, status, "GetRecordsForDate")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Failed to retrieve daily records",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetRecordsForDate")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Daily records retrieved successfully",
		"data":    records,
	})
}

func (rh *dailyRecordHandler) deliveryInsertEvent(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var req addEventRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "InsertEvent")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := govalidator.ValidateStruct(&req); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "InsertEvent")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   govalidator.ErrorsByField(err),
		})
	}

	record, err := rh.ruc.AddEvent(c.Context(), userToken.UserID, req.ClassID, req.StudentID, req.Date, req.Event)
	if err != nil {
		// A failed persist is a warning, not a rollback: the event was
		// applied and may be lost on reload.
		if errors.Is(err, domain.ErrPersistFailed) {
			config.PrintLogInfo(&userToken.Username, fiber.StatusAccepted, "InsertEvent")
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"success": true,
				"message": "Event recorded, but saving failed; it may be lost on reload",
				"data":    record,
			})
		}

		status := fiber.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidDate) || errors.Is(err, domain.ErrInvalidEvent) {
			status = fiber.StatusBadRequest
		}
		config.PrintLogInfo(&userToken.Username, status, "InsertEvent")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Failed to record event",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "InsertEvent")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Event recorded successfully",
		"data":    record,
	})
}

func (rh *dailyRecordHandler) deliveryInsertBulkEvents(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var req addBulkEventsRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "InsertBulkEvents")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := govalidator.ValidateStruct(&req); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "InsertBulkEvents")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   govalidator.ErrorsByField(err),
		})
	}

	if len(req.StudentIDs) == 0 {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "InsertBulkEvents")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "At least one student is required",
		})
	}

	err := rh.ruc.AddBulkEvents(c.Context(), userToken.UserID, req.ClassID, req.StudentIDs, req.Date, req.Event)
	if err != nil {
		if errors.Is(err, domain.ErrPersistFailed) {
			config.PrintLogInfo(&userToken.Username, fiber.StatusAccepted, "InsertBulkEvents")
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"success": true,
				"message": "Events recorded, but saving failed; they may be lost on reload",
			})
		}

		status := fiber.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidDate) || errors.Is(err, domain.ErrInvalidEvent) {
			status = fiber.StatusBadRequest
		}
		config.PrintLogInfo(&userToken.Username, status, "InsertBulkEvents")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Failed to record events",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "InsertBulkEvents")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Events recorded successfully",
	})
}

func (rh *dailyRecordHandler) deliveryRemoveEvent(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var req removeEventRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "RemoveEvent")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := govalidator.ValidateStruct(&req); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "RemoveEvent")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   govalidator.ErrorsByField(err),
		})
	}

	err := rh.ruc.RemoveEvent(c.Context(), userToken.UserID, req.ClassID, req.StudentID, req.Date, req.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrPersistFailed) {
			config.PrintLogInfo(&userToken.Username, fiber.StatusAccepted, "RemoveEvent")
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"success": true,
				"message": "Event removed, but saving failed; the change may be lost on reload",
			})
		}

		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "RemoveEvent")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to remove event",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "RemoveEvent")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Event removed successfully",
	})
}

package delivery

import (
	"sinifplanim/config"
	"sinifplanim/domain"
	"sinifplanim/middleware"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"
)

type notifHandler struct {
	nuc domain.NotificationUseCase
}

func NewNotificationDelivery(app *fiber.App, uc domain.NotificationUseCase) {
	handler := &notifHandler{
		nuc: uc,
	}

	group := app.Group("/notification", middleware.AuthRequired())
	group.Get("/get-all", handler.deliveryGetNotifications)
	group.Post("/mark-read", handler.deliveryMarkAsRead)
	group.Post("/insert", middleware.RoleRequired("admin"), handler.deliveryInsertNotification)
	group.Delete("/rm/:id", middleware.RoleRequired("admin"), handler.deliveryDeleteNotification)
}

type markAsReadRequest struct {
	IDs []string `json:"ids"`
}

func (nh *notifHandler) deliveryGetNotifications(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	notifications, unread, err := nh.nuc.GetNotificationsForUser(c.Context(), userToken.UserID)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "GetNotifications")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to retrieve notifications",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetNotifications")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":      true,
		"message":      "Notifications retrieved successfully",
		"data":         notifications,
		"unread_count": unread,
	})
}

func (nh *notifHandler) deliveryMarkAsRead(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var req markAsReadRequest
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "MarkAsRead")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := nh.nuc.MarkAsRead(c.Context(), userToken.UserID, req.IDs); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "MarkAsRead")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to mark notifications as read",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "MarkAsRead")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Notifications marked as read",
	})
}

func (nh *notifHandler) deliveryInsertNotification(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var notification domain.Notification
	if err := c.BodyParser(&notification); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "InsertNotification")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := govalidator.ValidateStruct(&notification); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "InsertNotification")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   govalidator.ErrorsByField(err),
		})
	}

	// The author is always the signed-in admin, never taken from the body.
	notification.Author = domain.NotificationAuthor{
		UID:  userToken.Username,
		Name: userToken.Name,
	}

	if err := nh.nuc.CreateNotification(c.Context(), &notification); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "InsertNotification")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create notification",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "InsertNotification")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Notification created successfully",
		"data":    notification,
	})
}

func (nh *notifHandler) deliveryDeleteNotification(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	if err := nh.nuc.DeleteNotification(c.Context(), c.Params("id")); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "DeleteNotification")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete notification",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "DeleteNotification")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Notification deleted successfully",
	})
}

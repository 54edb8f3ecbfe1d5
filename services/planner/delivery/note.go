package delivery

import (
	"errors"

	"sinifplanim/config"
	"sinifplanim/domain"
	"sinifplanim/middleware"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"
)

type noteHandler struct {
	nuc domain.NoteUseCase
}

func NewNoteDelivery(app *fiber.App, uc domain.NoteUseCase) {
	handler := &noteHandler{
		nuc: uc,
	}

	group := app.Group("/note", middleware.AuthRequired())
	group.Post("/insert", handler.deliveryInsertNote)
	group.Get("/get-all", handler.deliveryGetAllNotes)
	group.Put("/modify/:id", handler.deliveryModifyNote)
	group.Delete("/rm/:id", handler.deliveryDeleteNote)
}

func (nh *noteHandler) deliveryInsertNote(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var note domain.Note
	if err := c.BodyParser(&note); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "InsertNote")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := govalidator.ValidateStruct(&note); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "InsertNote")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   govalidator.ErrorsByField(err),
		})
	}

	note.UserID = userToken.UserID
	if err := nh.nuc.CreateNote(c.Context(), &note); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "InsertNote")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create note",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "InsertNote")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Note created successfully",
		"data":    note,
	})
}

func (nh *noteHandler) deliveryGetAllNotes(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	notes, err := nh.nuc.GetNotesByUser(c.Context(), userToken.UserID)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "GetAllNotes")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to retrieve notes",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetAllNotes")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Notes retrieved successfully",
		"data":    notes,
	})
}

func (nh *noteHandler) deliveryModifyNote(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var note domain.Note
	if err := c.BodyParser(&note); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ModifyNote")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := govalidator.ValidateStruct(&note); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ModifyNote")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   govalidator.ErrorsByField(err),
		})
	}

	note.ID = c.Params("id")
	note.UserID = userToken.UserID
	if err := nh.nuc.UpdateNote(c.Context(), &note); err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, domain.ErrNoteNotFound) {
			status = fiber.StatusNotFound
		}
		config.PrintLogInfo(&userToken.Username, status, "ModifyNote")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update note",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "ModifyNote")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Note updated successfully",
		"data":    note,
	})
}

func (nh *noteHandler) deliveryDeleteNote(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	if err := nh.nuc.DeleteNote(c.Context(), userToken.UserID, c.Params("id")); err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, domain.ErrNoteNotFound) {
			status = fiber.StatusNotFound
		}
		config.PrintLogInfo(&userToken.Username, status, "DeleteNote")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete note",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "DeleteNote")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Note deleted successfully",
	})
}

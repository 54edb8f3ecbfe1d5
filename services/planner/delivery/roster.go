package delivery

import (
	"errors"

	"sinifplanim/config"
	"sinifplanim/domain"
	"sinifplanim/middleware"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"
)

type rosterHandler struct {
	ruc domain.RosterUseCase
}

func NewRosterDelivery(app *fiber.App, uc domain.RosterUseCase) {
	handler := &rosterHandler{
		ruc: uc,
	}

	classes := app.Group("/class", middleware.AuthRequired())
	classes.Post("/insert", handler.deliveryInsertClass)
	classes.Get("/get-all", handler.deliveryGetAllClasses)
	classes.Put("/modify/:id", handler.deliveryModifyClass)
	classes.Delete("/rm/:id", handler.deliveryDeleteClass)

	students := app.Group("/student", middleware.AuthRequired())
	students.Post("/insert", handler.deliveryInsertStudent)
	students.Post("/insert-bulk/:class_id", handler.deliveryImportStudents)
	students.Get("/get-by-class/:class_id", handler.deliveryGetStudentsByClass)
	students.Put("/modify/:id", handler.deliveryModifyStudent)
	students.Delete("/rm/:class_id/:id", handler.deliveryDeleteStudent)
}

func rosterErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrDuplicateClassName), errors.Is(err, domain.ErrDuplicateStudentNumber):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrClassNotFound), errors.Is(err, domain.ErrStudentNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func (rh *rosterHandler) deliveryInsertClass(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var class domain.ClassInfo
	if err := c.BodyParser(&class); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "InsertClass")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := govalidator.ValidateStruct(&class); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "InsertClass")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   govalidator.ErrorsByField(err),
		})
	}

	class.UserID = userToken.UserID
	if err := rh.ruc.CreateClass(c.Context(), &class); err != nil {
		status := rosterErrorStatus(err)
		config.PrintLogInfo(&userToken.Username, status, "InsertClass")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create class",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "InsertClass")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Class created successfully",
		"data":    class,
	})
}

func (rh *rosterHandler) deliveryGetAllClasses(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	classes, err := rh.ruc.GetAllClasses(c.Context(), userToken.UserID)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "GetAllClasses")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to retrieve classes",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetAllClasses")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Classes retrieved successfully",
		"data":    classes,
	})
}

func (rh *rosterHandler) deliveryModifyClass(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var class domain.ClassInfo
	if err := c.BodyParser(&class); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ModifyClass")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := govalidator.ValidateStruct(&class); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ModifyClass")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   govalidator.ErrorsByField(err),
		})
	}

	class.ID = c.Params("id")
	class.UserID = userToken.UserID
	if err := rh.ruc.UpdateClass(c.Context(), &class); err != nil {
		status := rosterErrorStatus(err)
		config.PrintLogInfo(&userToken.Username, status, "ModifyClass")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update class",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "ModifyClass")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Class updated successfully",
		"data":    class,
	})
}

func (rh *rosterHandler) deliveryDeleteClass(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	if err := rh.ruc.DeleteClass(c.Context(), userToken.UserID, c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrPersistFailed) {
			config.PrintLogInfo(&userToken.Username, fiber.StatusAccepted, "DeleteClass")
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"success": true,
				"message": "Class deleted, but its records could not be saved as removed",
			})
		}

		status := rosterErrorStatus(err)
		config.PrintLogInfo(&userToken.Username, status, "DeleteClass")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete class",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "DeleteClass")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Class deleted successfully",
	})
}

func (rh *rosterHandler) deliveryInsertStudent(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var student domain.Student
	if err := c.BodyParser(&student); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "InsertStudent")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := govalidator.ValidateStruct(&student); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "InsertStudent")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   govalidator.ErrorsByField(err),
		})
	}

	if err := rh.ruc.CreateStudent(c.Context(), userToken.UserID, &student); err != nil {
		status := rosterErrorStatus(err)
		config.PrintLogInfo(&userToken.Username, status, "InsertStudent")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create student",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "InsertStudent")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Student created successfully",
		"data":    student,
	})
}

// deliveryImportStudents takes the parsed student list of a pasted roster and
// inserts it as one batch.
func (rh *rosterHandler) deliveryImportStudents(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var students []domain.Student
	if err := c.BodyParser(&students); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ImportStudents")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	for i := range students {
		students[i].ClassID = c.Params("class_id")
		if _, err := govalidator.ValidateStruct(&students[i]); err != nil {
			config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ImportStudents")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Validation failed",
				"error":   govalidator.ErrorsByField(err),
			})
		}
	}

	if err := rh.ruc.ImportStudents(c.Context(), userToken.UserID, c.Params("class_id"), students); err != nil {
		status := rosterErrorStatus(err)
		config.PrintLogInfo(&userToken.Username, status, "ImportStudents")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Failed to import students",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "ImportStudents")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Students imported successfully",
		"data":    students,
	})
}

func (rh *rosterHandler) deliveryGetStudentsByClass(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	students, err := rh.ruc.GetStudentsByClass(c.Context(), userToken.UserID, c.Params("class_id"))
	if err != nil {
		status := rosterErrorStatus(err)
		config.PrintLogInfo(&userToken.Username, status, "GetStudentsByClass")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Failed to retrieve students",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetStudentsByClass")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Students retrieved successfully",
		"data":    students,
	})
}

func (rh *rosterHandler) deliveryModifyStudent(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	var student domain.Student
	if err := c.BodyParser(&student); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ModifyStudent")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := govalidator.ValidateStruct(&student); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ModifyStudent")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   govalidator.ErrorsByField(err),
		})
	}

	student.ID = c.Params("id")
	if err := rh.ruc.UpdateStudent(c.Context(), userToken.UserID, &student); err != nil {
		status := rosterErrorStatus(err)
		config.PrintLogInfo(&userToken.Username, status, "ModifyStudent")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update student",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "ModifyStudent")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Student updated successfully",
		"data":    student,
	})
}

func (rh *rosterHandler) deliveryDeleteStudent(c *fiber.Ctx) error {
	userToken, _ := c.Locals("user").(*domain.Claims)

	err := rh.ruc.DeleteStudent(c.Context(), userToken.UserID, c.Params("class_id"), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrPersistFailed) {
			config.PrintLogInfo(&userToken.Username, fiber.StatusAccepted, "DeleteStudent")
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"success": true,
				"message": "Student deleted, but their records could not be saved as removed",
			})
		}

		status := rosterErrorStatus(err)
		config.PrintLogInfo(&userToken.Username, status, "DeleteStudent")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete student",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "DeleteStudent")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Student deleted successfully",
	})
}

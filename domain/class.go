package domain

import (
	"context"
	"errors"
	"time"
)

// ClassInfo is a class in the signed-in teacher's roster. Names are unique
// per teacher, compared case-insensitively.
type ClassInfo struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name" valid:"required~Class name is required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Student belongs to exactly one class. The student number is unique within
// the class, not globally.
type Student struct {
	ID            string    `json:"id"`
	ClassID       string    `json:"class_id" valid:"required~Class ID is required"`
	StudentNumber int       `json:"student_number" valid:"required~Student number is required"`
	FirstName     string    `json:"first_name" valid:"required~First name is required"`
	LastName      string    `json:"last_name" valid:"required~Last name is required"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

var (
	ErrClassNotFound          = errors.New("class not found")
	ErrStudentNotFound        = errors.New("student not found")
	ErrDuplicateClassName     = errors.New("a class with this name already exists")
	ErrDuplicateStudentNumber = errors.New("a student with this number already exists in the class")
)

type RosterRepo interface {
	CreateClass(ctx context.Context, class *ClassInfo) error
	GetAllClasses(ctx context.Context, userID int) (*[]ClassInfo, error)
	GetClassByID(ctx context.Context, userID int, classID string) (*ClassInfo, error)
	UpdateClass(ctx context.Context, class *ClassInfo) error
	DeleteClass(ctx context.Context, userID int, classID string) error

	CreateStudent(ctx context.Context, student *Student) error
	CreateStudents(ctx context.Context, classID string, students []Student) error
	GetStudentsByClass(ctx context.Context, classID string) (*[]Student, error)
	UpdateStudent(ctx context.Context, student *Student) error
	DeleteStudent(ctx context.Context, classID, studentID string) error
}

type RosterUseCase interface {
	CreateClass(ctx context.Context, class *ClassInfo) error
	GetAllClasses(ctx context.Context, userID int) (*[]ClassInfo, error)
	UpdateClass(ctx context.Context, class *ClassInfo) error
	DeleteClass(ctx context.Context, userID int, classID string) error

	CreateStudent(ctx context.Context, userID int, student *Student) error
	ImportStudents(ctx context.Context, userID int, classID string, students []Student) error
	GetStudentsByClass(ctx context.Context, userID int, classID string) (*[]Student, error)
	UpdateStudent(ctx context.Context, userID int, student *Student) error
	DeleteStudent(ctx context.Context, userID int, classID, studentID string) error
}

package usecase

import (
	"context"
	"time"

	"sinifplanim/domain"

	"github.com/google/uuid"
)

// rosterUC owns class/student CRUD and triggers the daily-record cascades;
// the record store only executes them.
type rosterUC struct {
	rosterRepo domain.RosterRepo
	recordUC   domain.DailyRecordUseCase
	TimeOut    time.Duration
}

func NewRosterUseCase(repo domain.RosterRepo, recordUC domain.DailyRecordUseCase, timeOut time.Duration) domain.RosterUseCase {
	return &rosterUC{
		rosterRepo: repo,
		recordUC:   recordUC,
		TimeOut:    timeOut,
	}
}

func (rUC *rosterUC) CreateClass(ctx context.Context, class *domain.ClassInfo) error {
	ctx, cancel := context.WithTimeout(ctx, rUC.TimeOut)
	defer cancel()

	class.ID = uuid.NewString()
	return rUC.rosterRepo.CreateClass(ctx, class)
}

func (rUC *rosterUC) GetAllClasses(ctx context.Context, userID int) (*[]domain.ClassInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, rUC.TimeOut)
	defer cancel()

	return rUC.rosterRepo.GetAllClasses(ctx, userID)
}

func (rUC *rosterUC) UpdateClass(ctx context.Context, class *domain.ClassInfo) error {
	ctx, cancel := context.WithTimeout(ctx, rUC.TimeOut)
	defer cancel()

	return rUC.rosterRepo.UpdateClass(ctx, class)
}

func (rUC *rosterUC) DeleteClass(ctx context.Context, userID int, classID string) error {
	ctx, cancel := context.WithTimeout(ctx, rUC.TimeOut)
	defer cancel()

	if err := rUC.rosterRepo.DeleteClass(ctx, userID, classID); err != nil {
		return err
	}

	return rUC.recordUC.DeleteRecordsForClass(ctx, userID, classID)
}

func (rUC *rosterUC) CreateStudent(ctx context.Context, userID int, student *domain.Student) error {
	ctx, cancel := context.WithTimeout(ctx, rUC.TimeOut)
	defer cancel()

	if _, err := rUC.rosterRepo.GetClassByID(ctx, userID, student.ClassID); err != nil {
		return err
	}

	student.ID = uuid.NewString()
	return rUC.rosterRepo.CreateStudent(ctx, student)
}

func (rUC *rosterUC) ImportStudents(ctx context.Context, userID int, classID string, students []domain.Student) error {
	ctx, cancel := context.WithTimeout(ctx, rUC.TimeOut)
	defer cancel()

	if _, err := rUC.rosterRepo.GetClassByID(ctx, userID, classID); err != nil {
		return err
	}

	for i := range students {
		students[i].ID = uuid.NewString()
	}
	return rUC.rosterRepo.CreateStudents(ctx, classID, students)
}

func (rUC *rosterUC) GetStudentsByClass(ctx context.Context, userID int, classID string) (*[]domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, rUC.TimeOut)
	defer cancel()

	if _, err := rUC.rosterRepo.GetClassByID(ctx, userID, classID); err != nil {
		return nil, err
	}

	return rUC.rosterRepo.GetStudentsByClass(ctx, classID)
}

func (rUC *rosterUC) UpdateStudent(ctx context.Context, userID int, student *domain.Student) error {
	ctx, cancel := context.WithTimeout(ctx, rUC.TimeOut)
	defer cancel()

	if _, err := rUC.rosterRepo.GetClassByID(ctx, userID, student.ClassID); err != nil {
		return err
	}

	return rUC.rosterRepo.UpdateStudent(ctx, student)
}

func (rUC *rosterUC) DeleteStudent(ctx context.Context, userID int, classID, studentID string) error {
	ctx, cancel := context.WithTimeout(ctx, rUC.TimeOut)
	defer cancel()

	if _, err := rUC.rosterRepo.GetClassByID(ctx, userID, classID); err != nil {
		return err
	}

	if err := rUC.rosterRepo.DeleteStudent(ctx, classID, studentID); err != nil {
		return err
	}

	return rUC.recordUC.DeleteRecordsForStudent(ctx, userID, classID, studentID)
}

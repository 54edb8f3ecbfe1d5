package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"sinifplanim/domain"
	"sinifplanim/services/planner/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRosterRepo keeps the roster in memory with the same uniqueness rules the
// postgres repository enforces.
type fakeRosterRepo struct {
	classes  []domain.ClassInfo
	students []domain.Student
}

func (f *fakeRosterRepo) CreateClass(ctx context.Context, class *domain.ClassInfo) error {
	for _, c := range f.classes {
		if c.UserID == class.UserID && strings.EqualFold(c.Name, class.Name) {
			return domain.ErrDuplicateClassName
		}
	}
	f.classes = append(f.classes, *class)
	return nil
}

func (f *fakeRosterRepo) GetAllClasses(ctx context.Context, userID int) (*[]domain.ClassInfo, error) {
	out := []domain.ClassInfo{}
	for _, c := range f.classes {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return &out, nil
}

func (f *fakeRosterRepo) GetClassByID(ctx context.Context, userID int, classID string) (*domain.ClassInfo, error) {
	for _, c := range f.classes {
		if c.UserID == userID && c.ID == classID {
			return &c, nil
		}
	}
	return nil, domain.ErrClassNotFound
}

func (f *fakeRosterRepo) UpdateClass(ctx context.Context, class *domain.ClassInfo) error {
	for i, c := range f.classes {
		if c.UserID == class.UserID && c.ID == class.ID {
			f.classes[i].Name = class.Name
			return nil
		}
	}
	return domain.ErrClassNotFound
}

func (f *fakeRosterRepo) DeleteClass(ctx context.Context, userID int, classID string) error {
	for i, c := range f.classes {
		if c.UserID == userID && c.ID == classID {
			f.classes = append(f.classes[:i], f.classes[i+1:]...)
			return nil
		}
	}
	return domain.ErrClassNotFound
}

func (f *fakeRosterRepo) CreateStudent(ctx context.Context, student *domain.Student) error {
	for _, s := range f.students {
		if s.ClassID == student.ClassID && s.StudentNumber == student.StudentNumber {
			return domain.ErrDuplicateStudentNumber
		}
	}
	f.students = append(f.students, *student)
	return nil
}

func (f *fakeRosterRepo) CreateStudents(ctx context.Context, classID string, students []domain.Student) error {
	for _, s := range students {
		if err := f.CreateStudent(ctx, &s); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRosterRepo) GetStudentsByClass(ctx context.Context, classID string) (*[]domain.Student, error) {
	out := []domain.Student{}
	for _, s := range f.students {
		if s.ClassID == classID {
			out = append(out, s)
		}
	}
	return &out, nil
}

func (f *fakeRosterRepo) UpdateStudent(ctx context.Context, student *domain.Student) error {
	for i, s := range f.students {
		if s.ID == student.ID {
			f.students[i] = *student
			return nil
		}
	}
	return domain.ErrStudentNotFound
}

func (f *fakeRosterRepo) DeleteStudent(ctx context.Context, classID, studentID string) error {
	for i, s := range f.students {
		if s.ClassID == classID && s.ID == studentID {
			f.students = append(f.students[:i], f.students[i+1:]...)
			return nil
		}
	}
	return domain.ErrStudentNotFound
}

func newRosterFixture(t *testing.T) (domain.RosterUseCase, domain.DailyRecordUseCase, *fakeRosterRepo) {
	t.Helper()
	blob := repository.NewMemoryBlobStore()
	blob.Seed("daily_records:1", "[]")
	recordUC := NewDailyRecordUseCase(blob, 5*time.Second)

	repo := &fakeRosterRepo{}
	return NewRosterUseCase(repo, recordUC, 5*time.Second), recordUC, repo
}

func TestCreateClassAssignsID(t *testing.T) {
	uc, _, _ := newRosterFixture(t)

	class := &domain.ClassInfo{UserID: 1, Name: "6A"}
	require.NoError(t, uc.CreateClass(context.Background(), class))
	assert.NotEmpty(t, class.ID)
}

func TestDeleteClassCascadesToRecords(t *testing.T) {
	uc, recordUC, repo := newRosterFixture(t)
	ctx := context.Background()

	class := &domain.ClassInfo{UserID: 1, Name: "6A"}
	require.NoError(t, uc.CreateClass(ctx, class))

	_, err := recordUC.AddEvent(ctx, 1, class.ID, "s1", "2024-05-01", statusEvent("+"))
	require.NoError(t, err)
	_, err = recordUC.AddEvent(ctx, 1, "other-class", "s2", "2024-05-01", statusEvent("+"))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteClass(ctx, 1, class.ID))
	assert.Empty(t, repo.classes)

	records, err := recordUC.GetRecordsForDate(ctx, 1, class.ID, "2024-05-01")
	require.NoError(t, err)
	assert.Empty(t, records, "class records must go with the class")

	others, err := recordUC.GetRecordsForDate(ctx, 1, "other-class", "2024-05-01")
	require.NoError(t, err)
	assert.Len(t, others, 1, "other classes are untouched")
}

func TestDeleteStudentCascadesToRecords(t *testing.T) {
	uc, recordUC, _ := newRosterFixture(t)
	ctx := context.Background()

	class := &domain.ClassInfo{UserID: 1, Name: "6A"}
	require.NoError(t, uc.CreateClass(ctx, class))

	student := &domain.Student{ClassID: class.ID, StudentNumber: 7, FirstName: "Elif", LastName: "Kaya"}
	require.NoError(t, uc.CreateStudent(ctx, 1, student))

	_, err := recordUC.AddEvent(ctx, 1, class.ID, student.ID, "2024-05-01", noteEvent("kitabını unutmuş"))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteStudent(ctx, 1, class.ID, student.ID))

	records, err := recordUC.GetRecordsForDate(ctx, 1, class.ID, "2024-05-01")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDuplicateClassNameRejected(t *testing.T) {
	uc, _, _ := newRosterFixture(t)
	ctx := context.Background()

	require.NoError(t, uc.CreateClass(ctx, &domain.ClassInfo{UserID: 1, Name: "6A"}))
	err := uc.CreateClass(ctx, &domain.ClassInfo{UserID: 1, Name: "6a"})
	assert.ErrorIs(t, err, domain.ErrDuplicateClassName)

	// Same name under a different teacher is fine.
	assert.NoError(t, uc.CreateClass(ctx, &domain.ClassInfo{UserID: 2, Name: "6A"}))
}

func TestStudentOpsRequireOwnedClass(t *testing.T) {
	uc, _, _ := newRosterFixture(t)
	ctx := context.Background()

	class := &domain.ClassInfo{UserID: 1, Name: "6A"}
	require.NoError(t, uc.CreateClass(ctx, class))

	// Another teacher cannot add students to this class.
	err := uc.CreateStudent(ctx, 2, &domain.Student{ClassID: class.ID, StudentNumber: 1, FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, domain.ErrClassNotFound)

	_, err = uc.GetStudentsByClass(ctx, 2, class.ID)
	assert.ErrorIs(t, err, domain.ErrClassNotFound)
}

func TestImportStudentsAssignsIDs(t *testing.T) {
	uc, _, repo := newRosterFixture(t)
	ctx := context.Background()

	class := &domain.ClassInfo{UserID: 1, Name: "6A"}
	require.NoError(t, uc.CreateClass(ctx, class))

	students := []domain.Student{
		{ClassID: class.ID, StudentNumber: 1, FirstName: "Ali", LastName: "Demir"},
		{ClassID: class.ID, StudentNumber: 2, FirstName: "Zeynep", LastName: "Ak"},
	}
	require.NoError(t, uc.ImportStudents(ctx, 1, class.ID, students))

	require.Len(t, repo.students, 2)
	assert.NotEmpty(t, repo.students[0].ID)
	assert.NotEqual(t, repo.students[0].ID, repo.students[1].ID)
}

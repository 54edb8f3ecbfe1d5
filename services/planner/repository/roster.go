package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sinifplanim/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type rosterRepository struct {
	db *pgxpool.Pool
}

func NewRosterRepository(database *pgxpool.Pool) domain.RosterRepo {
	return &rosterRepository{
		db: database,
	}
}

func (rr *rosterRepository) CreateClass(ctx context.Context, class *domain.ClassInfo) error {
	duplicateCheckQuery := `
		SELECT id FROM classes
		WHERE user_id = $1 AND LOWER(name) = LOWER($2);
	`
	var existingID string

	err := rr.db.QueryRow(ctx, duplicateCheckQuery, class.UserID, class.Name).Scan(&existingID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("could not check for duplicate class: %v", err)
	}

	if existingID != "" {
		return domain.ErrDuplicateClassName
	}

	insertQuery := `
		INSERT INTO classes (id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`

	now := time.Now()

	_, err = rr.db.Exec(ctx, insertQuery, class.ID, class.UserID, class.Name, now, now)
	if err != nil {
		return fmt.Errorf("could not insert class: %v", err)
	}

	class.CreatedAt = now
	class.UpdatedAt = now

	return nil
}

func (rr *rosterRepository) GetAllClasses(ctx context.Context, userID int) (*[]domain.ClassInfo, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM classes
		WHERE user_id = $1
		ORDER BY LOWER(name);
	`

	rows, err := rr.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("could not get all classes: %v", err)
	}
	defer rows.Close()

	var classes []domain.ClassInfo
	for rows.Next() {
		var class domain.ClassInfo
		err := rows.Scan(&class.ID, &class.UserID, &class.Name, &class.CreatedAt, &class.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("could not scan class: %v", err)
		}
		classes = append(classes, class)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %v", err)
	}

	return &classes, nil
}

func (rr *rosterRepository) GetClassByID(ctx context.Context, userID int, classID string) (*domain.ClassInfo, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM classes
		WHERE id = $1 AND user_id = $2;
	`

	var class domain.ClassInfo
	err := rr.db.QueryRow(ctx, query, classID, userID).Scan(&class.ID, &class.UserID, &class.Name, &class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClassNotFound
		}
		return nil, fmt.Errorf("could not get class: %v", err)
	}

	return &class, nil
}

func (rr *rosterRepository) UpdateClass(ctx context.Context, class *domain.ClassInfo) error {
	duplicateCheckQuery := `
		SELECT id FROM classes
		WHERE user_id = $1 AND LOWER(name) = LOWER($2) AND id <> $3;
	`
	var existingID string

	err := rr.db.QueryRow(ctx, duplicateCheckQuery, class.UserID, class.Name, class.ID).Scan(&existingID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("could not check for duplicate class: %v", err)
	}

	if existingID != "" {
		return domain.ErrDuplicateClassName
	}

	query := `
		UPDATE classes
		SET name = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4;
	`

	now := time.Now()
	tag, err := rr.db.Exec(ctx, query, class.Name, now, class.ID, class.UserID)
	if err != nil {
		return fmt.Errorf("could not update class: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClassNotFound
	}

	class.UpdatedAt = now
	return nil
}

// Deleting a class deletes its students too; daily records are cascaded by the
// roster usecase through the record store.
func (rr *rosterRepository) DeleteClass(ctx context.Context, userID int, classID string) error {
	query := `
		DELETE FROM classes
		WHERE id = $1 AND user_id = $2;
	`

	tag, err := rr.db.Exec(ctx, query, classID, userID)
	if err != nil {
		return fmt.Errorf("could not delete class: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClassNotFound
	}

	return nil
}

func (rr *rosterRepository) CreateStudent(ctx context.Context, student *domain.Student) error {
	duplicateCheckQuery := `
		SELECT id FROM students
		WHERE class_id = $1 AND student_number = $2;
	`
	var existingID string

	err := rr.db.QueryRow(ctx, duplicateCheckQuery, student.ClassID, student.StudentNumber).Scan(&existingID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("could not check for duplicate student number: %v", err)
	}

	if existingID != "" {
		return domain.ErrDuplicateStudentNumber
	}

	insertQuery := `
		INSERT INTO students (id, class_id, student_number, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	now := time.Now()

	_, err = rr.db.Exec(ctx, insertQuery, student.ID, student.ClassID, student.StudentNumber, student.FirstName, student.LastName, now, now)
	if err != nil {
		return fmt.Errorf("could not insert student: %v", err)
	}

	student.CreatedAt = now
	student.UpdatedAt = now

	return nil
}

// CreateStudents imports a whole list in one transaction so a duplicate number
// anywhere in the batch leaves the roster untouched.
func (rr *rosterRepository) CreateStudents(ctx context.Context, classID string, students []domain.Student) error {
	tx, err := rr.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("could not begin import: %v", err)
	}
	defer tx.Rollback(ctx)

	insertQuery := `
		INSERT INTO students (id, class_id, student_number, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	now := time.Now()
	seen := make(map[int]bool, len(students))

	for i := range students {
		student := &students[i]

		if seen[student.StudentNumber] {
			return domain.ErrDuplicateStudentNumber
		}
		seen[student.StudentNumber] = true

		var existingID string
		err := tx.QueryRow(ctx, `SELECT id FROM students WHERE class_id = $1 AND student_number = $2`, classID, student.StudentNumber).Scan(&existingID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("could not check for duplicate student number: %v", err)
		}
		if existingID != "" {
			return domain.ErrDuplicateStudentNumber
		}

		_, err = tx.Exec(ctx, insertQuery, student.ID, classID, student.StudentNumber, student.FirstName, student.LastName, now, now)
		if err != nil {
			return fmt.Errorf("could not insert student: %v", err)
		}

		student.ClassID = classID
		student.CreatedAt = now
		student.UpdatedAt = now
	}

	return tx.Commit(ctx)
}

func (rr *rosterRepository) GetStudentsByClass(ctx context.Context, classID string) (*[]domain.Student, error) {
	query := `
		SELECT id, class_id, student_number, first_name, last_name, created_at, updated_at
		FROM students
		WHERE class_id = $1
		ORDER BY student_number;
	`

	rows, err := rr.db.Query(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("could not get students: %v", err)
	}
	defer rows.Close()

	var students []domain.Student
	for rows.Next() {
		var student domain.Student
		err := rows.Scan(&student.ID, &student.ClassID, &student.StudentNumber, &student.FirstName, &student.LastName, &student.CreatedAt, &student.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("could not scan student: %v", err)
		}
		students = append(students, student)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %v", err)
	}

	return &students, nil
}

func (rr *rosterRepository) UpdateStudent(ctx context.Context, student *domain.Student) error {
	duplicateCheckQuery := `
		SELECT id FROM students
		WHERE class_id = $1 AND student_number = $2 AND id <> $3;
	`
	var existingID string

	err := rr.db.QueryRow(ctx, duplicateCheckQuery, student.ClassID, student.StudentNumber, student.ID).Scan(&existingID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("could not check for duplicate student number: %v", err)
	}

	if existingID != "" {
		return domain.ErrDuplicateStudentNumber
	}

	query := `
		UPDATE students
		SET student_number = $1, first_name = $2, last_name = $3, updated_at = $4
		WHERE id = $5 AND class_id = $6;
	`

	now := time.Now()
	tag, err := rr.db.Exec(ctx, query, student.StudentNumber, student.FirstName, student.LastName, now, student.ID, student.ClassID)
	if err != nil {
		return fmt.Errorf("could not update student: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStudentNotFound
	}

	student.UpdatedAt = now
	return nil
}

func (rr *rosterRepository) DeleteStudent(ctx context.Context, classID, studentID string) error {
	query := `
		DELETE FROM students
		WHERE id = $1 AND class_id = $2;
	`

	tag, err := rr.db.Exec(ctx, query, studentID, classID)
	if err != nil {
		return fmt.Errorf("could not delete student: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStudentNotFound
	}

	return nil
}

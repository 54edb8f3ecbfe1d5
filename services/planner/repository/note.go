package repository

import (
	"context"
	"fmt"
	"time"

	"sinifplanim/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type noteRepository struct {
	db *pgxpool.Pool
}

func NewNoteRepository(database *pgxpool.Pool) domain.NoteRepo {
	return &noteRepository{
		db: database,
	}
}

func (nr *noteRepository) CreateNote(ctx context.Context, note *domain.Note) error {
	query := `
		INSERT INTO notes (id, user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	now := time.Now()
	_, err := nr.db.Exec(ctx, query, note.ID, note.UserID, note.Title, note.Content, now, now)
	if err != nil {
		return fmt.Errorf("could not insert note: %v", err)
	}

	note.CreatedAt = now
	note.UpdatedAt = now
	return nil
}

func (nr *noteRepository) GetNotesByUser(ctx context.Context, userID int) (*[]domain.Note, error) {
	query := `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		ORDER BY updated_at DESC;
	`

	rows, err := nr.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("could not get notes: %v", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var note domain.Note
		err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("could not scan note: %v", err)
		}
		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %v", err)
	}

	return &notes, nil
}

func (nr *noteRepository) UpdateNote(ctx context.Context, note *domain.Note) error {
	query := `
		UPDATE notes
		SET title = $1, content = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5;
	`

	now := time.Now()
	tag, err := nr.db.Exec(ctx, query, note.Title, note.Content, now, note.ID, note.UserID)
	if err != nil {
		return fmt.Errorf("could not update note: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoteNotFound
	}

	note.UpdatedAt = now
	return nil
}

func (nr *noteRepository) DeleteNote(ctx context.Context, userID int, noteID string) error {
	query := `
		DELETE FROM notes
		WHERE id = $1 AND user_id = $2;
	`

	tag, err := nr.db.Exec(ctx, query, noteID, userID)
	if err != nil {
		return fmt.Errorf("could not delete note: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoteNotFound
	}

	return nil
}

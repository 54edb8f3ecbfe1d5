package domain

import (
	"context"
	"errors"
	"time"
)

// Note is a private free-form note owned by one teacher.
type Note struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	Title     string    `json:"title" valid:"required~Title is required"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var ErrNoteNotFound = errors.New("note not found")

type NoteRepo interface {
	CreateNote(ctx context.Context, note *Note) error
	GetNotesByUser(ctx context.Context, userID int) (*[]Note, error)
	UpdateNote(ctx context.Context, note *Note) error
	DeleteNote(ctx context.Context, userID int, noteID string) error
}

type NoteUseCase interface {
	CreateNote(ctx context.Context, note *Note) error
	GetNotesByUser(ctx context.Context, userID int) (*[]Note, error)
	UpdateNote(ctx context.Context, note *Note) error
	DeleteNote(ctx context.Context, userID int, noteID string) error
}

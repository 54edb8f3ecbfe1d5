package usecase

import (
	"context"
	"time"

	"sinifplanim/domain"

	"github.com/google/uuid"
)

type noteUC struct {
	noteRepo domain.NoteRepo
	TimeOut  time.Duration
}

func NewNoteUseCase(repo domain.NoteRepo, timeOut time.Duration) domain.NoteUseCase {
	return &noteUC{
		noteRepo: repo,
		TimeOut:  timeOut,
	}
}

func (nUC *noteUC) CreateNote(ctx context.Context, note *domain.Note) error {
	ctx, cancel := context.WithTimeout(ctx, nUC.TimeOut)
	defer cancel()

	note.ID = uuid.NewString()
	return nUC.noteRepo.CreateNote(ctx, note)
}

func (nUC *noteUC) GetNotesByUser(ctx context.Context, userID int) (*[]domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, nUC.TimeOut)
	defer cancel()

	return nUC.noteRepo.GetNotesByUser(ctx, userID)
}

func (nUC *noteUC) UpdateNote(ctx context.Context, note *domain.Note) error {
	ctx, cancel := context.WithTimeout(ctx, nUC.TimeOut)
	defer cancel()

	return nUC.noteRepo.UpdateNote(ctx, note)
}

func (nUC *noteUC) DeleteNote(ctx context.Context, userID int, noteID string) error {
	ctx, cancel := context.WithTimeout(ctx, nUC.TimeOut)
	defer cancel()

	return nUC.noteRepo.DeleteNote(ctx, userID, noteID)
}

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

type blobRepository struct {
	db *pgxpool.Pool
}

// NewBlobRepository backs the key-value blob collaborator with postgres.
func NewBlobRepository(database *pgxpool.Pool) domain.BlobStore {
	return &blobRepository{
		db: database,
	}
}

func (br *blobRepository) Read(ctx context.Context, key string) (string, bool, error) {
	query := `
		SELECT value FROM blobs
		WHERE key = $1;
	`

	var value string
	err := br.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("could not read blob %q: %v", key, err)
	}

	return value, true, nil
}

func (br *blobRepository) Write(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO blobs (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at;
	`

	_, err := br.db.Exec(ctx, query, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("could not write blob %q: %v", key, err)
	}

	return nil
}

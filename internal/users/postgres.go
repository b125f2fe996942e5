package users

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkravets/video2mp3/internal/users/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Open connects to the user store, applies pending migrations and returns a
// ready repository. The returned *sql.DB is owned by the caller and must be
// closed on shutdown.
func Open(ctx context.Context, dsn string) (*PostgresRepository, *sql.DB, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	repo, err := NewPostgresRepository(db)
	if err != nil {
		return nil, nil, fmt.Errorf("user repo creation error: %w", err)
	}

	return repo, db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}

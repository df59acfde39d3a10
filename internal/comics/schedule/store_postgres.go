// Copyright (c) 2026 ComicHub. All rights reserved.

package schedule

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/database/schema"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/dberr"
)

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed schedule store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (repository *postgresRepository) ListByComic(ctx context.Context, comicID int64) ([]*Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s`,
		schema.ComicsSchedule.ComicID,
		schema.ComicsSchedule.UpdateDay,
		schema.ComicsSchedule.UpdateType,
		schema.ComicsSchedule.UpdateWeek,
		schema.ComicsSchedule.Table,
		schema.ComicsSchedule.ComicID,
		schema.ComicsSchedule.UpdateDay,
	)

	rows, err := repository.pool.Query(ctx, query, comicID)
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry := &Entry{}
		if err := rows.Scan(&entry.ComicID, &entry.UpdateDay, &entry.UpdateType, &entry.UpdateWeek); err != nil {
			return nil, dberr.Wrap(err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

/*
ReplaceWeekly deletes the comic's calendar and inserts one weekly entry per
weekday inside a single transaction.
*/
func (repository *postgresRepository) ReplaceWeekly(ctx context.Context, comicID int64, updateDays []int) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err)
	}
	defer transaction.Rollback(ctx)

	deleteQuery := fmt.Sprintf(`
		DELETE FROM %s WHERE %s = $1`,
		schema.ComicsSchedule.Table, schema.ComicsSchedule.ComicID,
	)
	if _, err := transaction.Exec(ctx, deleteQuery, comicID); err != nil {
		return dberr.Wrap(err)
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		schema.ComicsSchedule.Table,
		schema.ComicsSchedule.ComicID,
		schema.ComicsSchedule.UpdateDay,
		schema.ComicsSchedule.UpdateType,
	)
	for _, day := range updateDays {
		if _, err := transaction.Exec(ctx, insertQuery, comicID, day, UpdateWeekly); err != nil {
			return dberr.Wrap(err)
		}
	}

	return transaction.Commit(ctx)
}

func (repository *postgresRepository) Upsert(ctx context.Context, entry *Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s)
		DO UPDATE SET %s = $3, %s = $4`,
		schema.ComicsSchedule.Table,
		schema.ComicsSchedule.ComicID,
		schema.ComicsSchedule.UpdateDay,
		schema.ComicsSchedule.UpdateType,
		schema.ComicsSchedule.UpdateWeek,
		schema.ComicsSchedule.ComicID, schema.ComicsSchedule.UpdateDay,
		schema.ComicsSchedule.UpdateType, schema.ComicsSchedule.UpdateWeek,
	)

	_, err := repository.pool.Exec(ctx, query,
		entry.ComicID, entry.UpdateDay, entry.UpdateType, entry.UpdateWeek)
	return dberr.Wrap(err)
}

// Copyright (c) 2026 ComicHub. All rights reserved.

package release

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/database/schema"
)

// postgresStore implements [Store] using pgx.
//
// All updates are optimistic conditional writes (WHERE published = FALSE) so
// they commute with manual publishes performed through the content API.
type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgreSQL backed release store.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &postgresStore{pool: pool}
}

// FrontierPages computes the lowest unpublished page number per
// (comic, chapter) group. Chapterless pages form their own group with a
// NULL chapter, scanned into a nil pointer.
func (store *postgresStore) FrontierPages(ctx context.Context) ([]Frontier, error) {
	query := fmt.Sprintf(`
		SELECT MIN(%s), %s, %s
		FROM %s
		WHERE %s = FALSE
		GROUP BY %s, %s
		ORDER BY %s`,
		schema.ComicsPage.PageNumber,
		schema.ComicsPage.ComicID,
		schema.ComicsPage.ChapterID,
		schema.ComicsPage.Table,
		schema.ComicsPage.Published,
		schema.ComicsPage.ComicID, schema.ComicsPage.ChapterID,
		schema.ComicsPage.ComicID,
	)

	rows, err := store.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query frontier pages: %w", err)
	}
	defer rows.Close()

	var frontiers []Frontier
	for rows.Next() {
		var frontier Frontier
		if err := rows.Scan(&frontier.PageNumber, &frontier.ComicID, &frontier.ChapterID); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan frontier row: %w", err)
		}
		frontiers = append(frontiers, frontier)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: frontier iteration failed: %w", err)
	}

	return frontiers, nil
}

// ReleaseDueToday checks the comic's calendar for a row matching the given
// weekday, either weekly or pinned to the given week of the month.
func (store *postgresStore) ReleaseDueToday(ctx context.Context, comicID int64, weekday, weekOfMonth int) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE %s = $1
			  AND %s = $2
			  AND (%s = '%s' OR %s = $3)
		)`,
		schema.ComicsSchedule.Table,
		schema.ComicsSchedule.ComicID,
		schema.ComicsSchedule.UpdateDay,
		schema.ComicsSchedule.UpdateType, UpdateTypeWeekly,
		schema.ComicsSchedule.UpdateWeek,
	)

	var due bool
	if err := store.pool.QueryRow(ctx, query, comicID, weekday, weekOfMonth).Scan(&due); err != nil {
		return false, fmt.Errorf("postgres: failed to check release schedule: %w", err)
	}
	return due, nil
}

// PublishPage flips the exact frontier page. The chapterID branch keeps the
// NULL comparison explicit because "chapterid = NULL" never matches.
func (store *postgresStore) PublishPage(ctx context.Context, comicID int64, chapterID *int64, pageNumber int) error {
	var query string
	var args []any

	if chapterID == nil {
		query = fmt.Sprintf(`
			UPDATE %s
			SET %s = TRUE
			WHERE %s = $1 AND %s = $2 AND %s IS NULL AND %s = FALSE`,
			schema.ComicsPage.Table,
			schema.ComicsPage.Published,
			schema.ComicsPage.PageNumber,
			schema.ComicsPage.ComicID,
			schema.ComicsPage.ChapterID,
			schema.ComicsPage.Published,
		)
		args = []any{pageNumber, comicID}
	} else {
		query = fmt.Sprintf(`
			UPDATE %s
			SET %s = TRUE
			WHERE %s = $1 AND %s = $2 AND %s = $3 AND %s = FALSE`,
			schema.ComicsPage.Table,
			schema.ComicsPage.Published,
			schema.ComicsPage.PageNumber,
			schema.ComicsPage.ComicID,
			schema.ComicsPage.ChapterID,
			schema.ComicsPage.Published,
		)
		args = []any{pageNumber, comicID, *chapterID}
	}

	if _, err := store.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("postgres: failed to publish page: %w", err)
	}
	return nil
}

// PublishChapter conditionally publishes the chapter and reports its parent
// volume. No row returned means the chapter was already published.
func (store *postgresStore) PublishChapter(ctx context.Context, chapterID int64) (ChapterPublishOutcome, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = TRUE
		WHERE %s = FALSE AND %s = $1
		RETURNING %s`,
		schema.ComicsChapter.Table,
		schema.ComicsChapter.Published,
		schema.ComicsChapter.Published,
		schema.ComicsChapter.ID,
		schema.ComicsChapter.VolumeID,
	)

	var volumeID *int64
	err := store.pool.QueryRow(ctx, query, chapterID).Scan(&volumeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ChapterPublishOutcome{Published: false}, nil
		}
		return ChapterPublishOutcome{}, fmt.Errorf("postgres: failed to publish chapter: %w", err)
	}

	return ChapterPublishOutcome{Published: true, VolumeID: volumeID}, nil
}

// PublishVolume conditionally publishes the volume.
func (store *postgresStore) PublishVolume(ctx context.Context, volumeID int64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = TRUE
		WHERE %s = FALSE AND %s = $1`,
		schema.ComicsVolume.Table,
		schema.ComicsVolume.Published,
		schema.ComicsVolume.Published,
		schema.ComicsVolume.ID,
	)

	if _, err := store.pool.Exec(ctx, query, volumeID); err != nil {
		return fmt.Errorf("postgres: failed to publish volume: %w", err)
	}
	return nil
}

// PublishComic conditionally publishes the comic.
func (store *postgresStore) PublishComic(ctx context.Context, comicID int64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = TRUE
		WHERE %s = FALSE AND %s = $1`,
		schema.ComicsComic.Table,
		schema.ComicsComic.Published,
		schema.ComicsComic.Published,
		schema.ComicsComic.ID,
	)

	if _, err := store.pool.Exec(ctx, query, comicID); err != nil {
		return fmt.Errorf("postgres: failed to publish comic: %w", err)
	}
	return nil
}

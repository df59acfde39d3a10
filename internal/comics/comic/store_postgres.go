// Copyright (c) 2026 ComicHub. All rights reserved.

package comic

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/apperr"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/database/schema"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed catalogue store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// comicColumns is the scan order shared by every comic row query.
var comicColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.ComicsComic.ID,
	schema.ComicsComic.AccountID,
	schema.ComicsComic.Title,
	schema.ComicsComic.ComicURL,
	schema.ComicsComic.ThumbnailURL,
	schema.ComicsComic.Tagline,
	schema.ComicsComic.Description,
	schema.ComicsComic.Organization,
	schema.ComicsComic.Published,
	schema.ComicsComic.CreatedAt,
)

func scanComic(row interface{ Scan(...any) error }) (*Comic, error) {
	comic := &Comic{}
	err := row.Scan(
		&comic.ID, &comic.AccountID, &comic.Title, &comic.ComicURL,
		&comic.ThumbnailURL, &comic.Tagline, &comic.Description,
		&comic.Organization, &comic.Published, &comic.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return comic, nil
}

// # Comic Creation

/*
Create inserts the comic row and seeds the default hierarchy.

Description: Runs in a transaction. The volumes organization seeds volume 1
containing chapter 1; the chapters organization seeds a volumeless chapter 1;
the pages organization seeds nothing and pages attach with a NULL chapter.
*/
func (repository *postgresRepository) Create(ctx context.Context, comic *Comic) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err)
	}
	defer transaction.Rollback(ctx)

	insertComic := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s`,
		schema.ComicsComic.Table,
		schema.ComicsComic.AccountID,
		schema.ComicsComic.Title,
		schema.ComicsComic.ComicURL,
		schema.ComicsComic.ThumbnailURL,
		schema.ComicsComic.Tagline,
		schema.ComicsComic.Description,
		schema.ComicsComic.Organization,
		schema.ComicsComic.ID, schema.ComicsComic.CreatedAt,
	)
	err = transaction.QueryRow(ctx, insertComic,
		comic.AccountID, comic.Title, comic.ComicURL, comic.ThumbnailURL,
		comic.Tagline, comic.Description, comic.Organization,
	).Scan(&comic.ID, &comic.CreatedAt)
	if err != nil {
		return dberr.Wrap(err)
	}

	switch comic.Organization {
	case OrganizationVolumes:
		insertVolume := fmt.Sprintf(`
			INSERT INTO %s (%s, %s) VALUES ($1, 1) RETURNING %s`,
			schema.ComicsVolume.Table,
			schema.ComicsVolume.ComicID, schema.ComicsVolume.VolumeNumber,
			schema.ComicsVolume.ID,
		)
		var volumeID int64
		if err := transaction.QueryRow(ctx, insertVolume, comic.ID).Scan(&volumeID); err != nil {
			return dberr.Wrap(err)
		}

		insertChapter := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, 1)`,
			schema.ComicsChapter.Table,
			schema.ComicsChapter.ComicID, schema.ComicsChapter.VolumeID,
			schema.ComicsChapter.ChapterNumber,
		)
		if _, err := transaction.Exec(ctx, insertChapter, comic.ID, volumeID); err != nil {
			return dberr.Wrap(err)
		}

	case OrganizationChapters:
		insertChapter := fmt.Sprintf(`
			INSERT INTO %s (%s, %s) VALUES ($1, 1)`,
			schema.ComicsChapter.Table,
			schema.ComicsChapter.ComicID, schema.ComicsChapter.ChapterNumber,
		)
		if _, err := transaction.Exec(ctx, insertChapter, comic.ID); err != nil {
			return dberr.Wrap(err)
		}
	}

	return transaction.Commit(ctx)
}

// # Comic Retrieval

func (repository *postgresRepository) ListPublished(ctx context.Context, limit, offset int) ([]*Comic, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = TRUE ORDER BY %s DESC LIMIT $1 OFFSET $2`,
		comicColumns, schema.ComicsComic.Table,
		schema.ComicsComic.Published, schema.ComicsComic.CreatedAt,
	)
	return repository.listComics(ctx, query, limit, offset)
}

func (repository *postgresRepository) CountPublished(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s WHERE %s = TRUE`,
		schema.ComicsComic.Table, schema.ComicsComic.Published,
	)

	var total int
	if err := repository.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err)
	}
	return total, nil
}

func (repository *postgresRepository) ListByOwner(ctx context.Context, accountID int64) ([]*Comic, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		comicColumns, schema.ComicsComic.Table,
		schema.ComicsComic.AccountID, schema.ComicsComic.CreatedAt,
	)
	return repository.listComics(ctx, query, accountID)
}

func (repository *postgresRepository) listComics(ctx context.Context, query string, args ...any) ([]*Comic, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	defer rows.Close()

	var comics []*Comic
	for rows.Next() {
		comic, err := scanComic(rows)
		if err != nil {
			return nil, dberr.Wrap(err)
		}
		comics = append(comics, comic)
	}
	return comics, rows.Err()
}

/*
FindByURL retrieves a comic and hydrates its full hierarchy.

Description: Loads the comic row, then its volumes, chapters, and pages in
three ordered queries, and assembles the tree in memory. Chapters without a
volume and pages without a chapter attach directly to the comic. The reader
view filters every level to published rows.
*/
func (repository *postgresRepository) FindByURL(ctx context.Context, comicURL string, includeUnpublished bool) (*Comic, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1`,
		comicColumns, schema.ComicsComic.Table, schema.ComicsComic.ComicURL,
	)
	if !includeUnpublished {
		query += fmt.Sprintf(" AND %s = TRUE", schema.ComicsComic.Published)
	}

	comic, err := scanComic(repository.pool.QueryRow(ctx, query, comicURL))
	if err != nil {
		return nil, dberr.Wrap(err)
	}

	if err := repository.hydrate(ctx, comic, includeUnpublished); err != nil {
		return nil, err
	}
	return comic, nil
}

func (repository *postgresRepository) hydrate(ctx context.Context, comic *Comic, includeUnpublished bool) error {
	publishedFilter := func(column string) string {
		if includeUnpublished {
			return ""
		}
		return fmt.Sprintf(" AND %s = TRUE", column)
	}

	// Volumes, ordered by number.
	volumeQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1%s ORDER BY %s`,
		schema.ComicsVolume.ID, schema.ComicsVolume.ComicID,
		schema.ComicsVolume.Name, schema.ComicsVolume.VolumeNumber,
		schema.ComicsVolume.Published,
		schema.ComicsVolume.Table, schema.ComicsVolume.ComicID,
		publishedFilter(schema.ComicsVolume.Published),
		schema.ComicsVolume.VolumeNumber,
	)
	volumeRows, err := repository.pool.Query(ctx, volumeQuery, comic.ID)
	if err != nil {
		return dberr.Wrap(err)
	}
	defer volumeRows.Close()

	volumesByID := make(map[int64]*Volume)
	for volumeRows.Next() {
		volume := &Volume{}
		if err := volumeRows.Scan(&volume.ID, &volume.ComicID, &volume.Name, &volume.VolumeNumber, &volume.Published); err != nil {
			return dberr.Wrap(err)
		}
		volumesByID[volume.ID] = volume
		comic.Volumes = append(comic.Volumes, volume)
	}
	volumeRows.Close()

	// Chapters, attached to their volume or directly to the comic.
	chapterQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1%s ORDER BY %s`,
		schema.ComicsChapter.ID, schema.ComicsChapter.ComicID,
		schema.ComicsChapter.VolumeID, schema.ComicsChapter.Name,
		schema.ComicsChapter.ChapterNumber, schema.ComicsChapter.Published,
		schema.ComicsChapter.Table, schema.ComicsChapter.ComicID,
		publishedFilter(schema.ComicsChapter.Published),
		schema.ComicsChapter.ChapterNumber,
	)
	chapterRows, err := repository.pool.Query(ctx, chapterQuery, comic.ID)
	if err != nil {
		return dberr.Wrap(err)
	}
	defer chapterRows.Close()

	chaptersByID := make(map[int64]*Chapter)
	for chapterRows.Next() {
		chapter := &Chapter{}
		if err := chapterRows.Scan(&chapter.ID, &chapter.ComicID, &chapter.VolumeID, &chapter.Name, &chapter.ChapterNumber, &chapter.Published); err != nil {
			return dberr.Wrap(err)
		}
		chaptersByID[chapter.ID] = chapter
		if chapter.VolumeID != nil {
			if volume, ok := volumesByID[*chapter.VolumeID]; ok {
				volume.Chapters = append(volume.Chapters, chapter)
				continue
			}
		}
		comic.Chapters = append(comic.Chapters, chapter)
	}
	chapterRows.Close()

	// Pages, attached to their chapter or directly to the comic.
	pageQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1%s ORDER BY %s`,
		schema.ComicsPage.ID, schema.ComicsPage.ComicID,
		schema.ComicsPage.ChapterID, schema.ComicsPage.PageNumber,
		schema.ComicsPage.AltText, schema.ComicsPage.FileKey,
		schema.ComicsPage.Published,
		schema.ComicsPage.Table, schema.ComicsPage.ComicID,
		publishedFilter(schema.ComicsPage.Published),
		schema.ComicsPage.PageNumber,
	)
	pageRows, err := repository.pool.Query(ctx, pageQuery, comic.ID)
	if err != nil {
		return dberr.Wrap(err)
	}
	defer pageRows.Close()

	for pageRows.Next() {
		page := &Page{}
		if err := pageRows.Scan(&page.ID, &page.ComicID, &page.ChapterID, &page.PageNumber, &page.AltText, &page.FileKey, &page.Published); err != nil {
			return dberr.Wrap(err)
		}
		if page.ChapterID != nil {
			if chapter, ok := chaptersByID[*page.ChapterID]; ok {
				chapter.Pages = append(chapter.Pages, page)
				continue
			}
		}
		comic.Pages = append(comic.Pages, page)
	}
	return pageRows.Err()
}

func (repository *postgresRepository) URLTaken(ctx context.Context, comicURL string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.ComicsComic.Table, schema.ComicsComic.ComicURL,
	)
	var taken bool
	if err := repository.pool.QueryRow(ctx, query, comicURL).Scan(&taken); err != nil {
		return false, dberr.Wrap(err)
	}
	return taken, nil
}

// # Ownership Resolution

func (repository *postgresRepository) OwnerOfComic(ctx context.Context, comicID int64) (int64, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1`,
		schema.ComicsComic.AccountID, schema.ComicsComic.Table, schema.ComicsComic.ID,
	)
	var accountID int64
	if err := repository.pool.QueryRow(ctx, query, comicID).Scan(&accountID); err != nil {
		return 0, dberr.Wrap(err)
	}
	return accountID, nil
}

func (repository *postgresRepository) OwnerOfVolume(ctx context.Context, volumeID int64) (int64, error) {
	query := fmt.Sprintf(`
		SELECT c.%s FROM %s c JOIN %s v ON v.%s = c.%s WHERE v.%s = $1`,
		schema.ComicsComic.AccountID,
		schema.ComicsComic.Table, schema.ComicsVolume.Table,
		schema.ComicsVolume.ComicID, schema.ComicsComic.ID,
		schema.ComicsVolume.ID,
	)
	var accountID int64
	if err := repository.pool.QueryRow(ctx, query, volumeID).Scan(&accountID); err != nil {
		return 0, dberr.Wrap(err)
	}
	return accountID, nil
}

func (repository *postgresRepository) OwnerOfChapter(ctx context.Context, chapterID int64) (int64, error) {
	query := fmt.Sprintf(`
		SELECT c.%s FROM %s c JOIN %s ch ON ch.%s = c.%s WHERE ch.%s = $1`,
		schema.ComicsComic.AccountID,
		schema.ComicsComic.Table, schema.ComicsChapter.Table,
		schema.ComicsChapter.ComicID, schema.ComicsComic.ID,
		schema.ComicsChapter.ID,
	)
	var accountID int64
	if err := repository.pool.QueryRow(ctx, query, chapterID).Scan(&accountID); err != nil {
		return 0, dberr.Wrap(err)
	}
	return accountID, nil
}

func (repository *postgresRepository) OwnerOfPage(ctx context.Context, pageID int64) (int64, error) {
	query := fmt.Sprintf(`
		SELECT c.%s FROM %s c JOIN %s p ON p.%s = c.%s WHERE p.%s = $1`,
		schema.ComicsComic.AccountID,
		schema.ComicsComic.Table, schema.ComicsPage.Table,
		schema.ComicsPage.ComicID, schema.ComicsComic.ID,
		schema.ComicsPage.ID,
	)
	var accountID int64
	if err := repository.pool.QueryRow(ctx, query, pageID).Scan(&accountID); err != nil {
		return 0, dberr.Wrap(err)
	}
	return accountID, nil
}

// # Hierarchy Mutation

func (repository *postgresRepository) AddVolume(ctx context.Context, volume *Volume) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s`,
		schema.ComicsVolume.Table,
		schema.ComicsVolume.ComicID, schema.ComicsVolume.Name,
		schema.ComicsVolume.VolumeNumber,
		schema.ComicsVolume.ID,
	)
	err := repository.pool.QueryRow(ctx, query, volume.ComicID, volume.Name, volume.VolumeNumber).Scan(&volume.ID)
	return dberr.Wrap(err)
}

func (repository *postgresRepository) AddChapter(ctx context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s`,
		schema.ComicsChapter.Table,
		schema.ComicsChapter.ComicID, schema.ComicsChapter.Name,
		schema.ComicsChapter.VolumeID, schema.ComicsChapter.ChapterNumber,
		schema.ComicsChapter.ID,
	)
	err := repository.pool.QueryRow(ctx, query, chapter.ComicID, chapter.Name, chapter.VolumeID, chapter.ChapterNumber).Scan(&chapter.ID)
	return dberr.Wrap(err)
}

func (repository *postgresRepository) AddPage(ctx context.Context, page *Page) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5) RETURNING %s`,
		schema.ComicsPage.Table,
		schema.ComicsPage.ComicID, schema.ComicsPage.ChapterID,
		schema.ComicsPage.PageNumber, schema.ComicsPage.AltText,
		schema.ComicsPage.FileKey,
		schema.ComicsPage.ID,
	)
	err := repository.pool.QueryRow(ctx, query, page.ComicID, page.ChapterID, page.PageNumber, page.AltText, page.FileKey).Scan(&page.ID)
	return dberr.Wrap(err)
}

func (repository *postgresRepository) UpdateMetadata(ctx context.Context, comicID int64, title, description, tagline string, published bool) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
		schema.ComicsComic.Table,
		schema.ComicsComic.Title, schema.ComicsComic.Description,
		schema.ComicsComic.Tagline, schema.ComicsComic.Published,
		schema.ComicsComic.ID,
	)
	result, err := repository.pool.Exec(ctx, query, comicID, title, description, tagline, published)
	if err != nil {
		return dberr.Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *postgresRepository) UpdateThumbnail(ctx context.Context, comicID int64, fileKey string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.ComicsComic.Table, schema.ComicsComic.ThumbnailURL, schema.ComicsComic.ID,
	)
	result, err := repository.pool.Exec(ctx, query, comicID, fileKey)
	if err != nil {
		return dberr.Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Structural Moves

/*
MovePage relocates a page to another chapter within the same comic.

Description: Executes within an ACID transaction.
 1. Verifies the target chapter shares the page's comic.
 2. Appends the page at MAX(pageNumber)+1 in the target and resets it to
    unpublished, so the release job picks it up again.
 3. Shifts the source chapter's later page numbers down to close the gap.
*/
func (repository *postgresRepository) MovePage(ctx context.Context, pageID, chapterID int64) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err)
	}
	defer transaction.Rollback(ctx)

	sameComicQuery := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE %s = $1
			  AND %s = (SELECT %s FROM %s WHERE %s = $2)
		)`,
		schema.ComicsChapter.Table,
		schema.ComicsChapter.ID,
		schema.ComicsChapter.ComicID,
		schema.ComicsPage.ComicID, schema.ComicsPage.Table, schema.ComicsPage.ID,
	)
	var sameComic bool
	if err := transaction.QueryRow(ctx, sameComicQuery, chapterID, pageID).Scan(&sameComic); err != nil {
		return dberr.Wrap(err)
	}
	if !sameComic {
		return apperr.Unprocessable("Page can only move to a chapter in the same comic")
	}

	nextNumberQuery := fmt.Sprintf(`
		SELECT COALESCE(MAX(%s) + 1, 1) FROM %s WHERE %s = $1`,
		schema.ComicsPage.PageNumber, schema.ComicsPage.Table, schema.ComicsPage.ChapterID,
	)
	var nextNumber int
	if err := transaction.QueryRow(ctx, nextNumberQuery, chapterID).Scan(&nextNumber); err != nil {
		return dberr.Wrap(err)
	}

	oldSlotQuery := fmt.Sprintf(`
		SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.ComicsPage.ComicID, schema.ComicsPage.ChapterID, schema.ComicsPage.PageNumber,
		schema.ComicsPage.Table, schema.ComicsPage.ID,
	)
	var comicID int64
	var oldChapterID *int64
	var oldPageNumber int
	if err := transaction.QueryRow(ctx, oldSlotQuery, pageID).Scan(&comicID, &oldChapterID, &oldPageNumber); err != nil {
		return dberr.Wrap(err)
	}

	moveQuery := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = FALSE WHERE %s = $3`,
		schema.ComicsPage.Table,
		schema.ComicsPage.ChapterID, schema.ComicsPage.PageNumber,
		schema.ComicsPage.Published, schema.ComicsPage.ID,
	)
	if _, err := transaction.Exec(ctx, moveQuery, chapterID, nextNumber, pageID); err != nil {
		return dberr.Wrap(err)
	}

	if err := shiftPageNumbersDown(ctx, transaction, comicID, oldChapterID, oldPageNumber); err != nil {
		return err
	}

	return transaction.Commit(ctx)
}

/*
MoveChapter relocates a chapter to another volume within the same comic.

Description: Mirrors MovePage one level up. The chapter's pages also reset
to unpublished so the whole moved unit re-enters the release queue.
*/
func (repository *postgresRepository) MoveChapter(ctx context.Context, chapterID, volumeID int64) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err)
	}
	defer transaction.Rollback(ctx)

	sameComicQuery := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE %s = $1
			  AND %s = (SELECT %s FROM %s WHERE %s = $2)
		)`,
		schema.ComicsVolume.Table,
		schema.ComicsVolume.ID,
		schema.ComicsVolume.ComicID,
		schema.ComicsChapter.ComicID, schema.ComicsChapter.Table, schema.ComicsChapter.ID,
	)
	var sameComic bool
	if err := transaction.QueryRow(ctx, sameComicQuery, volumeID, chapterID).Scan(&sameComic); err != nil {
		return dberr.Wrap(err)
	}
	if !sameComic {
		return apperr.Unprocessable("Chapter can only move to a volume in the same comic")
	}

	nextNumberQuery := fmt.Sprintf(`
		SELECT COALESCE(MAX(%s) + 1, 1) FROM %s WHERE %s = $1`,
		schema.ComicsChapter.ChapterNumber, schema.ComicsChapter.Table, schema.ComicsChapter.VolumeID,
	)
	var nextNumber int
	if err := transaction.QueryRow(ctx, nextNumberQuery, volumeID).Scan(&nextNumber); err != nil {
		return dberr.Wrap(err)
	}

	oldSlotQuery := fmt.Sprintf(`
		SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.ComicsChapter.VolumeID, schema.ComicsChapter.ChapterNumber,
		schema.ComicsChapter.Table, schema.ComicsChapter.ID,
	)
	var oldVolumeID *int64
	var oldChapterNumber int
	if err := transaction.QueryRow(ctx, oldSlotQuery, chapterID).Scan(&oldVolumeID, &oldChapterNumber); err != nil {
		return dberr.Wrap(err)
	}

	unpublishPagesQuery := fmt.Sprintf(`
		UPDATE %s SET %s = FALSE WHERE %s = $1`,
		schema.ComicsPage.Table, schema.ComicsPage.Published, schema.ComicsPage.ChapterID,
	)
	if _, err := transaction.Exec(ctx, unpublishPagesQuery, chapterID); err != nil {
		return dberr.Wrap(err)
	}

	moveQuery := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = FALSE WHERE %s = $3`,
		schema.ComicsChapter.Table,
		schema.ComicsChapter.VolumeID, schema.ComicsChapter.ChapterNumber,
		schema.ComicsChapter.Published, schema.ComicsChapter.ID,
	)
	if _, err := transaction.Exec(ctx, moveQuery, volumeID, nextNumber, chapterID); err != nil {
		return dberr.Wrap(err)
	}

	if oldVolumeID != nil {
		shiftQuery := fmt.Sprintf(`
			UPDATE %s SET %s = %s - 1 WHERE %s = $1 AND %s > $2`,
			schema.ComicsChapter.Table,
			schema.ComicsChapter.ChapterNumber, schema.ComicsChapter.ChapterNumber,
			schema.ComicsChapter.VolumeID, schema.ComicsChapter.ChapterNumber,
		)
		if _, err := transaction.Exec(ctx, shiftQuery, *oldVolumeID, oldChapterNumber); err != nil {
			return dberr.Wrap(err)
		}
	}

	return transaction.Commit(ctx)
}

// shiftPagesQuery builds the UPDATE that closes a numbering gap after a
// page moves out or is deleted. The chapterless variant must scope by comic:
// a NULL chapterid alone matches the chapterless pages of every comic.
func shiftPagesQuery(chapterless bool) string {
	if chapterless {
		return fmt.Sprintf(`
			UPDATE %s SET %s = %s - 1 WHERE %s = $1 AND %s IS NULL AND %s > $2`,
			schema.ComicsPage.Table,
			schema.ComicsPage.PageNumber, schema.ComicsPage.PageNumber,
			schema.ComicsPage.ComicID,
			schema.ComicsPage.ChapterID, schema.ComicsPage.PageNumber,
		)
	}
	return fmt.Sprintf(`
		UPDATE %s SET %s = %s - 1 WHERE %s = $1 AND %s > $2`,
		schema.ComicsPage.Table,
		schema.ComicsPage.PageNumber, schema.ComicsPage.PageNumber,
		schema.ComicsPage.ChapterID, schema.ComicsPage.PageNumber,
	)
}

// shiftPageNumbersDown closes the numbering gap left behind in the page's
// source group. A nil chapterID targets the comic's chapterless pages.
func shiftPageNumbersDown(ctx context.Context, transaction pgx.Tx, comicID int64, chapterID *int64, pageNumber int) error {
	if chapterID == nil {
		if _, err := transaction.Exec(ctx, shiftPagesQuery(true), comicID, pageNumber); err != nil {
			return dberr.Wrap(err)
		}
		return nil
	}

	if _, err := transaction.Exec(ctx, shiftPagesQuery(false), *chapterID, pageNumber); err != nil {
		return dberr.Wrap(err)
	}
	return nil
}

// # Deletion

/*
DeletePage removes the page and closes the numbering gap it leaves behind.
*/
func (repository *postgresRepository) DeletePage(ctx context.Context, pageID int64) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err)
	}
	defer transaction.Rollback(ctx)

	deleteQuery := fmt.Sprintf(`
		DELETE FROM %s WHERE %s = $1 RETURNING %s, %s, %s`,
		schema.ComicsPage.Table, schema.ComicsPage.ID,
		schema.ComicsPage.ComicID, schema.ComicsPage.ChapterID, schema.ComicsPage.PageNumber,
	)
	var comicID int64
	var chapterID *int64
	var pageNumber int
	if err := transaction.QueryRow(ctx, deleteQuery, pageID).Scan(&comicID, &chapterID, &pageNumber); err != nil {
		return dberr.Wrap(err)
	}

	if err := shiftPageNumbersDown(ctx, transaction, comicID, chapterID, pageNumber); err != nil {
		return err
	}

	return transaction.Commit(ctx)
}

/*
DeleteChapter removes the chapter with its pages and renumbers the source
volume's remaining chapters.
*/
func (repository *postgresRepository) DeleteChapter(ctx context.Context, chapterID int64) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err)
	}
	defer transaction.Rollback(ctx)

	// Page rows go with the chapter via ON DELETE CASCADE.
	deleteQuery := fmt.Sprintf(`
		DELETE FROM %s WHERE %s = $1 RETURNING %s, %s`,
		schema.ComicsChapter.Table, schema.ComicsChapter.ID,
		schema.ComicsChapter.VolumeID, schema.ComicsChapter.ChapterNumber,
	)
	var volumeID *int64
	var chapterNumber int
	if err := transaction.QueryRow(ctx, deleteQuery, chapterID).Scan(&volumeID, &chapterNumber); err != nil {
		return dberr.Wrap(err)
	}

	if volumeID != nil {
		shiftQuery := fmt.Sprintf(`
			UPDATE %s SET %s = %s - 1 WHERE %s = $1 AND %s > $2`,
			schema.ComicsChapter.Table,
			schema.ComicsChapter.ChapterNumber, schema.ComicsChapter.ChapterNumber,
			schema.ComicsChapter.VolumeID, schema.ComicsChapter.ChapterNumber,
		)
		if _, err := transaction.Exec(ctx, shiftQuery, *volumeID, chapterNumber); err != nil {
			return dberr.Wrap(err)
		}
	}

	return transaction.Commit(ctx)
}

func (repository *postgresRepository) DeleteVolume(ctx context.Context, volumeID int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE %s = $1`,
		schema.ComicsVolume.Table, schema.ComicsVolume.ID,
	)
	result, err := repository.pool.Exec(ctx, query, volumeID)
	if err != nil {
		return dberr.Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *postgresRepository) DeleteComic(ctx context.Context, comicID int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE %s = $1`,
		schema.ComicsComic.Table, schema.ComicsComic.ID,
	)
	result, err := repository.pool.Exec(ctx, query, comicID)
	if err != nil {
		return dberr.Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// Copyright (c) 2026 ComicHub. All rights reserved.

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/database/schema"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed account store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// accountColumns is the scan order shared by every account row query.
var accountColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.ComicsAccount.ID,
	schema.ComicsAccount.Username,
	schema.ComicsAccount.Email,
	schema.ComicsAccount.Password,
	schema.ComicsAccount.Role,
	schema.ComicsAccount.Biography,
	schema.ComicsAccount.ProfileURL,
	schema.ComicsAccount.EmailVerified,
	schema.ComicsAccount.Banned,
	schema.ComicsAccount.Joined,
)

func scanAccount(row interface{ Scan(...any) error }) (*Account, error) {
	account := &Account{}
	err := row.Scan(
		&account.ID, &account.Username, &account.Email, &account.PasswordHash,
		&account.Role, &account.Biography, &account.ProfileURL,
		&account.EmailVerified, &account.Banned, &account.Joined,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (repository *postgresRepository) Create(ctx context.Context, account *Account) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s`,
		schema.ComicsAccount.Table,
		schema.ComicsAccount.Username,
		schema.ComicsAccount.Email,
		schema.ComicsAccount.Password,
		schema.ComicsAccount.Role,
		schema.ComicsAccount.EmailVerified,
		schema.ComicsAccount.ID, schema.ComicsAccount.Joined,
	)

	err := repository.pool.QueryRow(ctx, query,
		account.Username, strings.ToLower(account.Email), account.PasswordHash,
		account.Role, account.EmailVerified,
	).Scan(&account.ID, &account.Joined)
	return dberr.Wrap(err)
}

func (repository *postgresRepository) FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*Account, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1 OR %s = $2`,
		accountColumns, schema.ComicsAccount.Table,
		schema.ComicsAccount.Username, schema.ComicsAccount.Email,
	)

	account, err := scanAccount(repository.pool.QueryRow(ctx, query,
		usernameOrEmail, strings.ToLower(usernameOrEmail)))
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	return account, nil
}

func (repository *postgresRepository) FindByID(ctx context.Context, accountID int64) (*Account, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1`,
		accountColumns, schema.ComicsAccount.Table, schema.ComicsAccount.ID,
	)

	account, err := scanAccount(repository.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	return account, nil
}

func (repository *postgresRepository) UpdatePassword(ctx context.Context, accountID int64, passwordHash string) (*Account, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2 WHERE %s = $1
		RETURNING %s`,
		schema.ComicsAccount.Table, schema.ComicsAccount.Password,
		schema.ComicsAccount.ID,
		accountColumns,
	)

	account, err := scanAccount(repository.pool.QueryRow(ctx, query, accountID, passwordHash))
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	return account, nil
}

func (repository *postgresRepository) MarkEmailVerified(ctx context.Context, accountID int64) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = TRUE WHERE %s = $1`,
		schema.ComicsAccount.Table, schema.ComicsAccount.EmailVerified,
		schema.ComicsAccount.ID,
	)
	result, err := repository.pool.Exec(ctx, query, accountID)
	if err != nil {
		return dberr.Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Moderation

func (repository *postgresRepository) Ban(ctx context.Context, accountID int64) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = TRUE WHERE %s = $1`,
		schema.ComicsAccount.Table, schema.ComicsAccount.Banned,
		schema.ComicsAccount.ID,
	)
	result, err := repository.pool.Exec(ctx, query, accountID)
	if err != nil {
		return dberr.Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *postgresRepository) BanState(ctx context.Context, username string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1`,
		schema.ComicsAccount.Banned, schema.ComicsAccount.Table,
		schema.ComicsAccount.Username,
	)
	var banned bool
	if err := repository.pool.QueryRow(ctx, query, username).Scan(&banned); err != nil {
		return false, dberr.Wrap(err)
	}
	return banned, nil
}

func (repository *postgresRepository) AdminExists(ctx context.Context) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE %s = 'admin')`,
		schema.ComicsAccount.Table, schema.ComicsAccount.Role,
	)
	var exists bool
	if err := repository.pool.QueryRow(ctx, query).Scan(&exists); err != nil {
		return false, dberr.Wrap(err)
	}
	return exists, nil
}

// # Availability

func (repository *postgresRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.ComicsAccount.Table, schema.ComicsAccount.Username,
	)
	var taken bool
	if err := repository.pool.QueryRow(ctx, query, username).Scan(&taken); err != nil {
		return false, dberr.Wrap(err)
	}
	return taken, nil
}

func (repository *postgresRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.ComicsAccount.Table, schema.ComicsAccount.Email,
	)
	var taken bool
	if err := repository.pool.QueryRow(ctx, query, strings.ToLower(email)).Scan(&taken); err != nil {
		return false, dberr.Wrap(err)
	}
	return taken, nil
}

// # Profiles

/*
ProfileByURL loads the public profile and the account's comics in two
queries.
*/
func (repository *postgresRepository) ProfileByURL(ctx context.Context, profileURL string) (*Profile, error) {
	profileQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.ComicsAccount.ID,
		schema.ComicsAccount.Username,
		schema.ComicsAccount.Biography,
		schema.ComicsAccount.Joined,
		schema.ComicsAccount.Table,
		schema.ComicsAccount.ProfileURL,
	)

	profile := &Profile{}
	var accountID int64
	err := repository.pool.QueryRow(ctx, profileQuery, profileURL).
		Scan(&accountID, &profile.Username, &profile.Biography, &profile.Joined)
	if err != nil {
		return nil, dberr.Wrap(err)
	}

	comicsQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC`,
		schema.ComicsComic.ID,
		schema.ComicsComic.Title,
		schema.ComicsComic.ComicURL,
		schema.ComicsComic.Description,
		schema.ComicsComic.ThumbnailURL,
		schema.ComicsComic.Table,
		schema.ComicsComic.AccountID,
		schema.ComicsComic.CreatedAt,
	)
	rows, err := repository.pool.Query(ctx, comicsQuery, accountID)
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	defer rows.Close()

	profile.Comics = []ProfileComic{}
	for rows.Next() {
		var comic ProfileComic
		if err := rows.Scan(&comic.ComicID, &comic.Title, &comic.ComicURL, &comic.Description, &comic.ThumbnailURL); err != nil {
			return nil, dberr.Wrap(err)
		}
		profile.Comics = append(profile.Comics, comic)
	}
	return profile, rows.Err()
}

func (repository *postgresRepository) EnableProfile(ctx context.Context, accountID int64, profileURL string, biography *string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.ComicsAccount.Table,
		schema.ComicsAccount.ProfileURL, schema.ComicsAccount.Biography,
		schema.ComicsAccount.ID,
	)
	result, err := repository.pool.Exec(ctx, query, accountID, profileURL, biography)
	if err != nil {
		return dberr.Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *postgresRepository) EditProfile(ctx context.Context, accountID int64, username string, biography *string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.ComicsAccount.Table,
		schema.ComicsAccount.Username, schema.ComicsAccount.Biography,
		schema.ComicsAccount.ID,
	)
	result, err := repository.pool.Exec(ctx, query, accountID, username, biography)
	if err != nil {
		return dberr.Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

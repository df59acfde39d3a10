// Copyright (c) 2026 ComicHub. All rights reserved.

package message

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

// NewPostgresRepository constructs a PostgreSQL backed message store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (repository *postgresRepository) Create(ctx context.Context, message *Message) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s`,
		schema.ComicsMessage.Table,
		schema.ComicsMessage.SenderID,
		schema.ComicsMessage.ReceiverID,
		schema.ComicsMessage.Subject,
		schema.ComicsMessage.Content,
		schema.ComicsMessage.ID, schema.ComicsMessage.TimeSent,
	)

	err := repository.pool.QueryRow(ctx, query,
		message.SenderID, message.ReceiverID, message.Subject, message.Content,
	).Scan(&message.ID, &message.TimeSent)
	return dberr.Wrap(err)
}

func (repository *postgresRepository) ReceiverOf(ctx context.Context, messageID int64) (int64, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1`,
		schema.ComicsMessage.ReceiverID, schema.ComicsMessage.Table,
		schema.ComicsMessage.ID,
	)
	var receiverID int64
	if err := repository.pool.QueryRow(ctx, query, messageID).Scan(&receiverID); err != nil {
		return 0, dberr.Wrap(err)
	}
	return receiverID, nil
}

func (repository *postgresRepository) MarkRead(ctx context.Context, messageID int64) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = TRUE WHERE %s = $1`,
		schema.ComicsMessage.Table, schema.ComicsMessage.Read,
		schema.ComicsMessage.ID,
	)
	result, err := repository.pool.Exec(ctx, query, messageID)
	if err != nil {
		return dberr.Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *postgresRepository) ListInbox(ctx context.Context, receiverID int64) ([]*Message, error) {
	query := fmt.Sprintf(`
		SELECT msg.%s, msg.%s, acc.%s, msg.%s, msg.%s, msg.%s, msg.%s, msg.%s
		FROM %s msg
		JOIN %s acc ON msg.%s = acc.%s
		WHERE msg.%s = $1
		ORDER BY msg.%s DESC`,
		schema.ComicsMessage.ID,
		schema.ComicsMessage.SenderID,
		schema.ComicsAccount.Username,
		schema.ComicsMessage.ReceiverID,
		schema.ComicsMessage.Subject,
		schema.ComicsMessage.Content,
		schema.ComicsMessage.Read,
		schema.ComicsMessage.TimeSent,
		schema.ComicsMessage.Table,
		schema.ComicsAccount.Table,
		schema.ComicsMessage.SenderID, schema.ComicsAccount.ID,
		schema.ComicsMessage.ReceiverID,
		schema.ComicsMessage.TimeSent,
	)

	rows, err := repository.pool.Query(ctx, query, receiverID)
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		message := &Message{}
		err := rows.Scan(
			&message.ID, &message.SenderID, &message.SenderUsername,
			&message.ReceiverID, &message.Subject, &message.Content,
			&message.Read, &message.TimeSent,
		)
		if err != nil {
			return nil, dberr.Wrap(err)
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}

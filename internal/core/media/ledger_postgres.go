// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/fisheye/internal/platform/database/schema"
	"github.com/taibuivan/fisheye/internal/platform/dberr"
)

// PostgresLedger stores counters in catalog.media_likes.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger wraps a connected pool.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// Counts implements [Ledger].
func (ledger *PostgresLedger) Counts(ctx context.Context, mediaIDs []int) (map[int]int, error) {
	counts := make(map[int]int)
	if len(mediaIDs) == 0 {
		return counts, nil
	}

	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = ANY($1)`,
		schema.CatalogMediaLikes.MediaID, schema.CatalogMediaLikes.Likes,
		schema.CatalogMediaLikes.Table, schema.CatalogMediaLikes.MediaID)

	rows, err := ledger.db.Query(ctx, query, mediaIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "list_media_likes")
	}
	defer rows.Close()

	for rows.Next() {
		var mediaID, likes int
		if err := rows.Scan(&mediaID, &likes); err != nil {
			return nil, dberr.Wrap(err, "scan_media_likes")
		}
		counts[mediaID] = likes
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_media_likes")
	}

	return counts, nil
}

// Increment implements [Ledger] with a single upsert.
func (ledger *PostgresLedger) Increment(ctx context.Context, mediaID, base int) (int, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s AS ml (%s, %s)
		VALUES ($1, $2 + 1)
		ON CONFLICT (%s) DO UPDATE
		SET %s = ml.%s + 1, %s = NOW()
		RETURNING %s
	`,
		schema.CatalogMediaLikes.Table, schema.CatalogMediaLikes.MediaID, schema.CatalogMediaLikes.Likes,
		schema.CatalogMediaLikes.MediaID,
		schema.CatalogMediaLikes.Likes, schema.CatalogMediaLikes.Likes, schema.CatalogMediaLikes.UpdatedAt,
		schema.CatalogMediaLikes.Likes,
	)

	var likes int
	if err := ledger.db.QueryRow(ctx, query, mediaID, base).Scan(&likes); err != nil {
		return 0, dberr.Wrap(err, "increment_media_likes")
	}
	return likes, nil
}

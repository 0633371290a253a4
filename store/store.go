// Package store owns persistence for user and practice-session records,
// backed by Bun over sqlite.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Open connects to the sqlite database behind the given DSN.
func Open(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// Init creates the schema if it does not exist yet. The unique index on
// lower(email) backs the application-level duplicate check so a signup race
// cannot slip a second casing of the same address in.
func Init(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*User)(nil),
		(*Session)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	if _, err := db.NewCreateIndex().
		Model((*User)(nil)).
		Index("users_email_lower_idx").
		Unique().
		IfNotExists().
		ColumnExpr("lower(email)").
		Exec(ctx); err != nil {
		return fmt.Errorf("create email index: %w", err)
	}

	return nil
}

package postgres

import (
	"context"
	_ "embed"
	"strings"
)

//go:embed migrations/schema.sql
var schemaSQL string

// Migrate ensures the users, products, collections and membership tables
// exist. The schema uses one statement per table, so splitting on ';' is safe.
func (db *Database) Migrate(ctx context.Context) error {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	statements := strings.Split(schemaSQL, ";")
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Package migrations embeds the schema and applies it with goose.
package migrations

import (
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var files embed.FS

// Up applies every pending migration to the database at dsn.
func Up(dsn string) error {
	db, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(files)
	if err = goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

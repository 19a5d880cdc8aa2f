// Package database gestiona el esquema con migraciones goose embebidas en el binario.
package database

import (
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/Clinivet-api/pkg/logger"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migrate abre una conexión database/sql (driver pgx) y aplica las migraciones
// pendientes. El pool pgx del resto de la app es independiente de esta conexión.
func Migrate(dsn string, log *logger.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("abrir conexión para migraciones: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	log.Info().Msg("aplicando migraciones pendientes")
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	log.Info().Msg("migraciones al día")
	return nil
}

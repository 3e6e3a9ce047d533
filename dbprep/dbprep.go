// nonogram.go - a nonogram puzzle solver and web service.
// Copyright (C) 2024 the nonogram.go authors.
//
// Licensed under the MIT license.  See the LICENSE file for details.

// Package dbprep prepares the storage layer: it walks the
// database schema up or down through the embedded migrations and
// can flush the cache for a fresh start.
package dbprep

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// EnsureData brings the schema up to the current version.
// Already-current is fine; EnsureData runs at every startup.
func EnsureData() error {
	return run(func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			return err
		}
		return nil
	})
}

// RemoveData walks the schema all the way back down, dropping
// the stored puzzles with it.
func RemoveData() error {
	return run(func(m *migrate.Migrate) error {
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			return err
		}
		return nil
	})
}

// SchemaVersion reports the schema's current migration version,
// 0 if no migration has ever run.
func SchemaVersion() (uint, error) {
	var version uint
	err := run(func(m *migrate.Migrate) error {
		v, dirty, err := m.Version()
		if err == migrate.ErrNilVersion {
			return nil
		}
		if err != nil {
			return err
		}
		if dirty {
			return fmt.Errorf("schema version %d is dirty; fix the database by hand", v)
		}
		version = v
		return nil
	})
	return version, err
}

// ReinitializeAll flushes the cache and rebuilds the schema from
// nothing.  Everything stored is lost.
func ReinitializeAll() error {
	if err := ClearCache(); err != nil {
		return err
	}
	if err := RemoveData(); err != nil {
		return err
	}
	return EnsureData()
}

// run builds a migrator over the embedded migrations, hands it
// to the body, and closes it.
func run(body func(m *migrate.Migrate) error) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("Couldn't open embedded migrations: %v", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL())
	if err != nil {
		return fmt.Errorf("Couldn't connect migrator to database: %v", err)
	}
	defer m.Close()
	return body(m)
}

// migrateURL rewrites the DATABASE_URL scheme to the one the
// migrator's pgx/v5 driver registers under.
func migrateURL() string {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://localhost/nonogram?sslmode=disable"
	}
	for _, scheme := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(url, scheme) {
			return "pgx5://" + strings.TrimPrefix(url, scheme)
		}
	}
	return url
}

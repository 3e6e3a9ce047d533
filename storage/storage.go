// nonogram.go - a nonogram puzzle solver and web service.
// Copyright (C) 2024 the nonogram.go authors.
//
// Licensed under the MIT license.  See the LICENSE file for details.

// Package storage persists puzzles and solve sessions.  Redis
// holds the fast-moving data (cached solutions, sessions) and
// Postgres holds the durable puzzle store.  Connect once at
// startup; every operation fails cleanly until then.
package storage

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"

	"github.com/HGGNIGAN/nonogram.go/dbprep"
)

// Connect makes sure the database schema is in place, then opens
// the cache and database connections.  It returns identifiers
// for both, for startup logging.
func Connect(ctx context.Context) (cacheId, databaseId string, err error) {
	if err = dbprep.EnsureData(); err != nil {
		err = fmt.Errorf("Couldn't initialize database: %v", err)
		return
	}

	rdInit()
	rdMutex.Lock()
	defer rdMutex.Unlock()
	cacheId, err = rdConnect()
	if err != nil {
		return
	}

	pgInit()
	pgMutex.Lock()
	defer pgMutex.Unlock()
	databaseId, err = pgConnect(ctx)
	if err != nil {
		return
	}
	return
}

// Close shuts both connections down.
func Close() {
	rdMutex.Lock()
	rdClose()
	rdMutex.Unlock()
	pgMutex.Lock()
	pgClose()
	pgMutex.Unlock()
}

/*

cache using Redis

*/

// Redis connection data
var (
	rdc     redis.Conn // open connection, if any
	rdUrl   string     // URL for the open connection
	rdMutex sync.Mutex // prevent concurrent connection use
)

// rdInit - look up Redis info from the environment
func rdInit() {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		rdUrl = "redis://localhost:6379/"
	} else {
		rdUrl = url
	}
}

// rdConnect: connect to the given Redis URL.  Returns the
// connection id, if successful, an error otherwise.
func rdConnect() (string, error) {
	conn, err := redis.DialURL(rdUrl)
	if err != nil {
		return "", fmt.Errorf("Couldn't connect to cache at %q: %v", rdUrl, err)
	}
	rdc = conn
	return rdUrl, nil
}

// rdClose: close the open Redis connection, if any.
func rdClose() {
	if rdc != nil {
		rdc.Close()
		rdc = nil
	}
}

// rdExecute: execute the body with the Redis mutex and
// connection.  Because Redis connections can go away without
// warning, we ping first and reconnect if the ping fails.
func rdExecute(body func(conn redis.Conn) error) error {
	rdMutex.Lock()
	defer rdMutex.Unlock()
	if rdc == nil {
		return fmt.Errorf("No cache connection; call Connect first")
	}
	if _, err := rdc.Do("PING"); err != nil {
		rdClose()
		if _, err := rdConnect(); err != nil {
			return fmt.Errorf("Failed to reconnect to cache at %q: %v", rdUrl, err)
		}
	}
	return body(rdc)
}

/*

persistence using Postgres

*/

// Postgres connection data
var (
	pgConn  *pgx.Conn  // open database, if any
	pgUrl   string     // URL for the open connection
	pgMutex sync.Mutex // prevent concurrent connection use
)

// pgInit - look up Postgres info from the environment
func pgInit() {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		pgUrl = "postgres://localhost/nonogram?sslmode=disable"
	} else {
		pgUrl = url
	}
}

// pgConnect: open the Postgres database.  Returns the connection
// id, if successful, an error otherwise.
func pgConnect(ctx context.Context) (string, error) {
	conn, err := pgx.Connect(ctx, pgUrl)
	if err != nil {
		return "", fmt.Errorf("Couldn't connect to db at %q: %v", pgUrl, err)
	}
	pgConn = conn
	return pgUrl, nil
}

// pgClose: close the open Postgres connection, if any.
func pgClose() {
	if pgConn != nil {
		pgConn.Close(context.Background())
		pgConn = nil
	}
}

// pgExecute: execute the body inside a single transaction.  If
// the body errs out the transaction is rolled back, otherwise
// it's committed.
func pgExecute(ctx context.Context, body func(tx pgx.Tx) error) error {
	pgMutex.Lock()
	defer pgMutex.Unlock()
	if pgConn == nil {
		return fmt.Errorf("No database connection; call Connect first")
	}
	tx, err := pgConn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("Can't open a transaction against database: %v", err)
	}
	if err := body(tx); err != nil {
		tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

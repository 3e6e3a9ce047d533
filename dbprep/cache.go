// nonogram.go - a nonogram puzzle solver and web service.
// Copyright (C) 2024 the nonogram.go authors.
//
// Licensed under the MIT license.  See the LICENSE file for details.

package dbprep

import (
	"fmt"
	"os"

	"github.com/gomodule/redigo/redis"
)

// ClearCache flushes everything out of Redis: cached solutions
// and live sessions alike.
func ClearCache() error {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/"
	}
	conn, err := redis.DialURL(url)
	if err != nil {
		return fmt.Errorf("Couldn't connect to cache at %q: %v", url, err)
	}
	defer conn.Close()
	if _, err := conn.Do("FLUSHALL"); err != nil {
		return fmt.Errorf("Couldn't flush cache at %q: %v", url, err)
	}
	return nil
}

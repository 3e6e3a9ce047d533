// nonogram.go - a nonogram puzzle solver and web service.
// Copyright (C) 2024 the nonogram.go authors.
//
// Licensed under the MIT license.  See the LICENSE file for details.

// Clear and re-initialize the nonogram storage system.
package main

import (
	"fmt"
	"log"

	"github.com/HGGNIGAN/nonogram.go/dbprep"
)

func main() {
	log.Printf("Removing existing data storage and cache...")
	if err := clearStorage(); err != nil {
		log.Fatalf("Couldn't clear storage: %v", err)
	}
	log.Printf("Database re-initialized.")
}

func clearStorage() error {
	if err := dbprep.ClearCache(); err != nil {
		return fmt.Errorf("Couldn't clear cache: %v", err)
	}

	// tear down the existing schema, then rebuild it
	version, err := dbprep.SchemaVersion()
	if err != nil {
		return fmt.Errorf("Couldn't get initial data schema version: %v", err)
	}
	if version > 0 {
		if err := dbprep.RemoveData(); err != nil {
			return fmt.Errorf("Couldn't remove database: %v", err)
		}
	}
	if err := dbprep.EnsureData(); err != nil {
		return fmt.Errorf("Couldn't rebuild database: %v", err)
	}
	version, err = dbprep.SchemaVersion()
	if err != nil {
		return fmt.Errorf("Couldn't get upgraded data schema version: %v", err)
	}
	if version == 0 {
		return fmt.Errorf("Database schema still at version 0, shouldn't be.")
	}
	return nil
}

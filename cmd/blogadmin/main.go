// Command blogadmin manages categories, locations, post moderation and
// accounts against the configured database.
package main

import (
	"blogicum/internal/config"
	"blogicum/internal/db"
	"os"
)

func connect() (db.Repository, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	return db.NewStore(gdb), nil
}

func main() {
	if err := newRootCmd(connect).Execute(); err != nil {
		os.Exit(1)
	}
}

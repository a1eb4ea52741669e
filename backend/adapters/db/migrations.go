package db

import (
	_ "embed"
	"fmt"
)

//go:embed migrations/01_create_tasks.up.sql
var createTasksUp string

//go:embed migrations/02_create_subtasks.up.sql
var createSubTasksUp string

func (db *DB) Migrate() error {
	db.log.Debug("running migrations")

	if _, err := db.conn.Exec(createTasksUp); err != nil {
		return fmt.Errorf("apply tasks migration: %w", err)
	}

	if _, err := db.conn.Exec(createSubTasksUp); err != nil {
		return fmt.Errorf("apply subtasks migration: %w", err)
	}

	db.log.Debug("migrations finished")
	return nil
}

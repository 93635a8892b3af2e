package database

import (
	"fmt"

	applog "github.com/yukikurage/task-notes-api/internal/logger"
	"gorm.io/gorm"
)

type indexDef struct {
	table   string
	name    string
	columns string
}

// Composite indexes backing the owner-scoped, newest-first read accessors.
var indexes = []indexDef{
	{"tasks", "idx_tasks_owner_created", "owner_id, created_at"},
	{"notes", "idx_notes_owner_created", "owner_id, created_at"},
}

// AddIndexes creates any missing index from the list above.
func AddIndexes(db *gorm.DB, log *applog.Logger) error {
	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("Index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("Created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}

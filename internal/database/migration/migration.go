// Package migration bootstraps the schema from the table descriptors. It creates what is
// missing and never alters existing tables.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"docstore/internal/schema"
	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// stepsFor renders the CREATE TABLE and CREATE INDEX statements for t.
func stepsFor(d schema.Dialect, t *schema.Table) []migrationStep {
	steps := []migrationStep{{Name: "create_table_" + t.Name(), SQL: t.CreateSQL(d)}}
	indexes := t.IndexSQL(d)
	for _, c := range t.Columns() {
		if !c.Indexed {
			continue
		}
		steps = append(steps, migrationStep{
			Name: fmt.Sprintf("create_index_%s_%s", t.Name(), c.Name),
			SQL:  indexes[len(steps)-1],
		})
	}
	return steps
}

// EnsureMigrated creates every table in tables that does not exist yet, with its indexes.
func EnsureMigrated(ctx context.Context, db *sql.DB, d schema.Dialect, tables []*schema.Table, log *zap.Logger) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.Stringer("dialect", d))
	log.Info("schema check", zap.String("event", "db_migration_check"), zap.String("status", "starting"))

	for _, t := range tables {
		var exists bool
		if err := db.QueryRowContext(ctx, d.TableExistsSQL(t.Name())).Scan(&exists); err != nil {
			log.Error("schema check failed",
				zap.String("event", "db_migration_failed"),
				zap.String("status", "error"),
				zap.String("table", t.Name()),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
			return fmt.Errorf("failed to check table %s: %w", t.Name(), err)
		}
		if exists {
			log.Info("table exists, skipping",
				zap.String("event", "db_migration_skip"),
				zap.String("status", "success"),
				zap.String("table", t.Name()),
			)
			continue
		}

		for _, step := range stepsFor(d, t) {
			stepStart := time.Now()
			if _, err := db.ExecContext(ctx, step.SQL); err != nil {
				log.Error("migration step failed",
					zap.String("event", "db_migration_failed"),
					zap.String("status", "error"),
					zap.String("migration_step", step.Name),
					zap.Error(err),
					zap.Int64("duration_ms", time.Since(start).Milliseconds()),
					zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
				)
				return fmt.Errorf("migration step %s failed: %w", step.Name, err)
			}
			log.Info("migration step applied",
				zap.String("event", "db_migration_step"),
				zap.String("status", "success"),
				zap.String("migration_step", step.Name),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
		}
	}

	log.Info("schema ready",
		zap.String("event", "db_migration_success"),
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}

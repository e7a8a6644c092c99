// Package database provides the SQLite connection and migration runner for
// the Slotboard snapshot store.
//
// The store holds the last good hub snapshot per configuration entry so
// the dashboard can keep rendering while the hub is unreachable. SQLite is
// opened with WAL mode and a single-connection pool, matching its
// single-writer model.
//
// Migrations are embedded via the migrations package and applied in
// version order at startup, each in its own transaction.
//
// Usage:
//
//	db, err := database.Open(database.Config{Path: cfg.Database.Path})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
package database

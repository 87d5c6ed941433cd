// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections based on
// the application's configuration. The identity service stores its persisted settings
// (manifest list, display names, feature toggles) through this connection.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns back the integrity check that verifies the
// settings table has the columns the service expects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "settings", []string{"name", "value"})
package database

// Package database handles database connections for the session store.
//
// It wraps GORM and configures either a MySQL connection (production) or a SQLite
// file / in-memory database (local development and tests).
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database

package kv

// Schema DDL for the kv table. The two dialects differ only in the blob type.
const (
	createKVSQLite = `CREATE TABLE IF NOT EXISTS kv (
    key_name TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at TEXT NOT NULL
);`

	createKVPostgres = `CREATE TABLE IF NOT EXISTS kv (
    key_name TEXT PRIMARY KEY,
    value BYTEA NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// Queries are written with ? placeholders and rebound per driver.
const (
	selectValue = `SELECT value FROM kv WHERE key_name = ?`
	upsertValue = `INSERT INTO kv (key_name, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (key_name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	deleteValue = `DELETE FROM kv WHERE key_name = ?`
)

// sqliteFileName is the database file created inside DataDir.
const sqliteFileName = "rolodex.db"

package db

// DDL for the ephemeral names table, kept in sync with db/<dialect>/schema.sql.
// Neither statement uses IF NOT EXISTS: creating the table twice is an error.
const (
	SQLiteSchema = `CREATE TABLE names (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL
)`

	// A temporary table is scoped to the session, so it vanishes with the
	// connection that created it.
	MySQLSchema = `CREATE TEMPORARY TABLE names (
	id   BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	name TEXT NOT NULL
)`
)

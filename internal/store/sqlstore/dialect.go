package sqlstore

import (
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"names_demo/internal/db"
)

// Dialect pairs a database/sql driver with the DDL that creates the
// ephemeral names table on it.
type Dialect struct {
	Name   string
	Driver string
	Schema string
}

var (
	SQLite = Dialect{Name: "sqlite", Driver: "sqlite", Schema: db.SQLiteSchema}
	MySQL  = Dialect{Name: "mysql", Driver: "mysql", Schema: db.MySQLSchema}
)

func DialectFor(name string) (Dialect, error) {
	switch name {
	case SQLite.Name:
		return SQLite, nil
	case MySQL.Name:
		return MySQL, nil
	default:
		return Dialect{}, fmt.Errorf("unknown store driver %q", name)
	}
}

// isMemoryDSN accepts only SQLite DSNs that never touch the filesystem.
func isMemoryDSN(dsn string) bool {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file::memory:") {
		return true
	}
	_, query, ok := strings.Cut(dsn, "?")
	if !ok {
		return false
	}
	for _, param := range strings.Split(query, "&") {
		if param == "mode=memory" {
			return true
		}
	}
	return false
}

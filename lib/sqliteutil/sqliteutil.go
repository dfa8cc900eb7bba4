package sqliteutil

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// opens a database and ensures the given schema exists.
// `target` may be a local file path, ":memory:", or a libsql:// url
// pointing to a remote replica.
func OpenDB(schema, target string) (*sql.DB, error) {
	var db *sql.DB
	var err error

	if strings.HasPrefix(target, "libsql://") {
		db, err = sql.Open("libsql", target)
	} else {
		db, err = sql.Open("sqlite", fmt.Sprintf("file:%s", target))
	}
	if err != nil {
		return nil, err
	}

	if target == ":memory:" {
		// concurrent connections to :memory: each get their own database
		db.SetMaxOpenConns(1)
	}

	_, err = db.Exec(schema)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

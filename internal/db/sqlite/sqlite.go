package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // register driver

	"github.com/bgunnarsson/askcourses/internal/db"
)

// Open opens the database file read-only. A "file:" URI keeps its other
// parameters but always has read-only mode forced on.
func Open(path string) (*db.Conn, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty sqlite path")
	}

	sqldb, err := sql.Open("sqlite", readOnlyDSN(path))
	if err != nil {
		return nil, err
	}

	// Sane defaults for a CLI tool.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, err
	}

	// BLOB columns scan as []byte and stay unsupported; TEXT is always a
	// string with this driver, so the shared classifier is enough.
	return db.NewConn(sqldb, db.Options{}), nil
}

const readOnlyParams = "mode=ro&_pragma=query_only(1)"

func readOnlyDSN(path string) string {
	if !strings.HasPrefix(path, "file:") {
		return fmt.Sprintf("file:%s?%s", path, readOnlyParams)
	}

	base, query, _ := strings.Cut(path, "?")
	params := []string{}
	for _, p := range strings.Split(query, "&") {
		if p == "" || strings.HasPrefix(p, "mode=") {
			continue
		}
		params = append(params, p)
	}
	params = append(params, readOnlyParams)
	return base + "?" + strings.Join(params, "&")
}

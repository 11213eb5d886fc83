package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx stdlib driver

	"github.com/bgunnarsson/askcourses/internal/db"
)

func Open(dsn string) (*db.Conn, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty postgres DSN")
	}

	sqldb, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// One statement per run; keep the pool tiny.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, err
	}

	return db.NewConn(sqldb, db.Options{ReadOnlyTx: true, Classify: classify}), nil
}

func classify(v any, dbType string) db.Value {
	switch x := v.(type) {
	case []byte:
		if dbType == "BYTEA" {
			return db.Unsupported("bytea")
		}
		return db.Text(string(x))
	case bool:
		return db.Text(strconv.FormatBool(x))
	default:
		return db.Classify(v, dbType)
	}
}

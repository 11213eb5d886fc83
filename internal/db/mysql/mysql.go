package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/bgunnarsson/askcourses/internal/db"
)

func Open(dsn string) (*db.Conn, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty mysql DSN")
	}

	sqldb, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

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

var integerTypes = map[string]bool{
	"TINYINT":   true,
	"SMALLINT":  true,
	"MEDIUMINT": true,
	"INT":       true,
	"BIGINT":    true,
}

var binaryTypes = map[string]bool{
	"BINARY":     true,
	"VARBINARY":  true,
	"BLOB":       true,
	"TINYBLOB":   true,
	"MEDIUMBLOB": true,
	"LONGBLOB":   true,
}

// The text protocol hands every value back as []byte, so the column type
// decides the variant.
func classify(v any, dbType string) db.Value {
	b, ok := v.([]byte)
	if !ok {
		return db.Classify(v, dbType)
	}
	switch {
	case integerTypes[dbType]:
		n, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			// UNSIGNED BIGINT beyond int64
			return db.Text(string(b))
		}
		return db.Integer(n)
	case binaryTypes[dbType]:
		return db.Unsupported(dbType)
	default:
		return db.Text(string(b))
	}
}

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// ClassifyFunc maps one scanned driver value to a cell variant. dbType is the
// upper-cased DatabaseTypeName of the column, or "" when the driver has none.
type ClassifyFunc func(v any, dbType string) Value

type Options struct {
	// ReadOnlyTx requests a read-only transaction. Leave false for drivers
	// that reject the option; the transaction is rolled back either way.
	ReadOnlyTx bool
	Classify   ClassifyFunc
}

// Conn is the executor shared by every driver package.
type Conn struct {
	db   *sql.DB
	opts Options
}

func NewConn(sqldb *sql.DB, opts Options) *Conn {
	if opts.Classify == nil {
		opts.Classify = Classify
	}
	return &Conn{db: sqldb, opts: opts}
}

func (c *Conn) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Query checks the statement with CheckStatement, then runs it inside a
// transaction that is never committed and materializes every row.
func (c *Conn) Query(ctx context.Context, sqlStr string) (*Rows, error) {
	if err := CheckStatement(sqlStr); err != nil {
		return nil, err
	}

	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: c.opts.ReadOnlyTx})
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colNames, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	header := make([]Column, len(colNames))
	for i, name := range colNames {
		typ := ""
		if i < len(colTypes) && colTypes[i] != nil {
			typ = strings.ToUpper(colTypes[i].DatabaseTypeName())
		}
		header[i] = Column{Name: name, Type: typ}
	}

	var data []Row
	for rows.Next() {
		raw := make([]any, len(colNames))
		ptrs := make([]any, len(colNames))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(raw))
		for i, v := range raw {
			row[i] = c.opts.Classify(v, header[i].Type)
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Rows{
		Columns: header,
		Data:    data,
	}, nil
}

// Classify handles the driver values every backend shares. Driver packages
// wrap it for their own special cases.
func Classify(v any, _ string) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case string:
		return Text(x)
	case int64:
		return Integer(x)
	case int32:
		return Integer(int64(x))
	case int16:
		return Integer(int64(x))
	case int8:
		return Integer(int64(x))
	case int:
		return Integer(int64(x))
	case time.Time:
		return Text(x.Format(time.RFC3339Nano))
	default:
		return Unsupported(fmt.Sprintf("%T", v))
	}
}

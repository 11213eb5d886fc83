package db

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	return sqldb, mock
}

func assertSQLMock(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %v", err)
	}
}

func TestConnQueryMaterializesRowsAndRollsBack(t *testing.T) {
	sqldb, mock := newSQLMock(t)
	const q = "SELECT crn, course_title, credit_hours, attributes FROM sections"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(q)).
		WillReturnRows(sqlmock.NewRows([]string{"crn", "course_title", "credit_hours", "attributes"}).
			AddRow("20101", "Intro to Object-Oriented Programming", int64(3), nil).
			AddRow("20102", "Data Structures & Algorithms", int64(3), "ETHS"))
	mock.ExpectRollback()

	conn := NewConn(sqldb, Options{})
	rows, err := conn.Query(context.Background(), q)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	assertSQLMock(t, mock)

	if len(rows.Columns) != 4 {
		t.Fatalf("got %d columns, want 4", len(rows.Columns))
	}
	if rows.Columns[1].Name != "course_title" {
		t.Errorf("Columns[1].Name = %q", rows.Columns[1].Name)
	}
	if len(rows.Data) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows.Data))
	}

	first := rows.Data[0]
	if first[0] != Text("20101") {
		t.Errorf("crn = %+v", first[0])
	}
	if first[2] != Integer(3) {
		t.Errorf("credit_hours = %+v", first[2])
	}
	if first[3].Kind != KindNull {
		t.Errorf("attributes kind = %v, want null", first[3].Kind)
	}
	if rows.Data[1][3] != Text("ETHS") {
		t.Errorf("attributes = %+v", rows.Data[1][3])
	}
}

func TestConnQueryRejectsBeforeTouchingDatabase(t *testing.T) {
	sqldb, mock := newSQLMock(t)
	conn := NewConn(sqldb, Options{})

	_, err := conn.Query(context.Background(), "DROP TABLE sections")
	if !errors.Is(err, ErrNotReadOnly) {
		t.Fatalf("Query() error = %v, want ErrNotReadOnly", err)
	}
	assertSQLMock(t, mock)
}

func TestConnQueryEmptyStatement(t *testing.T) {
	sqldb, mock := newSQLMock(t)
	conn := NewConn(sqldb, Options{})

	_, err := conn.Query(context.Background(), "")
	if !errors.Is(err, ErrEmptyStatement) {
		t.Fatalf("Query() error = %v, want ErrEmptyStatement", err)
	}
	assertSQLMock(t, mock)
}

func TestConnQuerySurfacesDatabaseError(t *testing.T) {
	sqldb, mock := newSQLMock(t)
	const q = "SELECT nope FROM missing"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(q)).WillReturnError(errors.New("no such table: missing"))
	mock.ExpectRollback()

	conn := NewConn(sqldb, Options{})
	_, err := conn.Query(context.Background(), q)
	if err == nil || err.Error() != "no such table: missing" {
		t.Fatalf("Query() error = %v", err)
	}
	assertSQLMock(t, mock)
}

func TestConnQueryCustomClassifier(t *testing.T) {
	sqldb, mock := newSQLMock(t)
	const q = "SELECT flag FROM t"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(q)).
		WillReturnRows(sqlmock.NewRows([]string{"flag"}).AddRow(true))
	mock.ExpectRollback()

	conn := NewConn(sqldb, Options{Classify: func(v any, dbType string) Value {
		if b, ok := v.(bool); ok {
			if b {
				return Text("yes")
			}
			return Text("no")
		}
		return Classify(v, dbType)
	}})
	rows, err := conn.Query(context.Background(), q)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	assertSQLMock(t, mock)

	if rows.Data[0][0] != Text("yes") {
		t.Errorf("flag = %+v", rows.Data[0][0])
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{name: "nil", in: nil, want: Null()},
		{name: "string", in: "CS", want: Text("CS")},
		{name: "int64", in: int64(42), want: Integer(42)},
		{name: "int32", in: int32(-7), want: Integer(-7)},
		{name: "float", in: 3.5, want: Unsupported("float64")},
		{name: "blob", in: []byte{0x01}, want: Unsupported("[]uint8")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.in, ""); got != tt.want {
				t.Errorf("Classify(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

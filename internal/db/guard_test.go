package db

import (
	"errors"
	"testing"
)

func TestCheckStatement(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want error
	}{
		{name: "select", sql: "SELECT crn FROM sections"},
		{name: "trailing semicolon", sql: "SELECT crn FROM sections;\n"},
		{name: "lowercase with", sql: "with t as (select 1) select * from t"},
		{name: "parenthesised", sql: "(SELECT 1) UNION (SELECT 2)"},
		{name: "leading comment", sql: "-- open sections\nSELECT crn FROM sections"},
		{name: "semicolon in string", sql: "SELECT 'a;b' AS x"},
		{name: "semicolon in comment", sql: "SELECT 1 /* ; DROP TABLE sections; */"},
		{name: "escaped quote", sql: "SELECT 'it''s; fine'"},
		{name: "empty", sql: "", want: ErrEmptyStatement},
		{name: "only semicolons", sql: " ; ;", want: ErrEmptyStatement},
		{name: "only comment", sql: "-- nothing here", want: ErrEmptyStatement},
		{name: "two selects", sql: "SELECT 1; SELECT 2;", want: ErrMultipleStatements},
		{name: "select then drop", sql: "SELECT 1; DROP TABLE sections", want: ErrMultipleStatements},
		{name: "delete", sql: "DELETE FROM sections", want: ErrNotReadOnly},
		{name: "attach", sql: "ATTACH DATABASE 'x.db' AS x", want: ErrNotReadOnly},
		{name: "pragma", sql: "PRAGMA writable_schema = 1", want: ErrNotReadOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckStatement(tt.sql)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("CheckStatement(%q) error = %v", tt.sql, err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("CheckStatement(%q) error = %v, want %v", tt.sql, err, tt.want)
			}
		})
	}
}

func TestSplitStatementsKeepsQuotedText(t *testing.T) {
	got := splitStatements(`SELECT "a;b", [c;d], ` + "`e;f`" + ` FROM t;`)
	if len(got) != 1 {
		t.Fatalf("got %d statements, want 1: %q", len(got), got)
	}
	want := `SELECT "a;b", [c;d], ` + "`e;f`" + ` FROM t`
	if got[0] != want {
		t.Errorf("statement = %q, want %q", got[0], want)
	}
}

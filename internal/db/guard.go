package db

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyStatement     = errors.New("empty statement")
	ErrMultipleStatements = errors.New("multiple statements are not allowed")
	ErrNotReadOnly        = errors.New("only read-only queries are allowed")
)

var readOnlyKeywords = map[string]bool{
	"SELECT":  true,
	"WITH":    true,
	"VALUES":  true,
	"EXPLAIN": true,
}

// CheckStatement accepts exactly one statement whose leading keyword is a
// query keyword. It is a shape check only: a CTE prefixing a DML statement
// passes and is left to the read-only connection to refuse.
func CheckStatement(sqlStr string) error {
	stmts := splitStatements(sqlStr)
	switch {
	case len(stmts) == 0:
		return ErrEmptyStatement
	case len(stmts) > 1:
		return fmt.Errorf("%w (got %d)", ErrMultipleStatements, len(stmts))
	}

	kw := leadingKeyword(stmts[0])
	if !readOnlyKeywords[kw] {
		return fmt.Errorf("%w: statement starts with %q", ErrNotReadOnly, kw)
	}
	return nil
}

// splitStatements cuts on top-level semicolons. Comments are replaced by a
// single space; quoted strings and identifiers are copied through untouched.
// Blank statements (a trailing ";" for instance) are dropped.
func splitStatements(s string) []string {
	var (
		out []string
		cur strings.Builder
	)
	flush := func() {
		if stmt := strings.TrimSpace(cur.String()); stmt != "" {
			out = append(out, stmt)
		}
		cur.Reset()
	}

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '-' && i+1 < len(s) && s[i+1] == '-':
			for i < len(s) && s[i] != '\n' {
				i++
			}
			cur.WriteByte(' ')

		case ch == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				i = len(s)
			} else {
				i += 2 + end + 1
			}
			cur.WriteByte(' ')

		case ch == '\'' || ch == '"' || ch == '`' || ch == '[':
			closer := ch
			if ch == '[' {
				closer = ']'
			}
			j := i + 1
			for j < len(s) && s[j] != closer {
				j++
			}
			if j < len(s) {
				j++
			}
			cur.WriteString(s[i:j])
			i = j - 1

		case ch == ';':
			flush()

		default:
			cur.WriteByte(ch)
		}
	}
	flush()

	return out
}

func leadingKeyword(stmt string) string {
	stmt = strings.TrimLeft(stmt, "( \t\r\n")
	end := 0
	for end < len(stmt) && isWordByte(stmt[end]) {
		end++
	}
	return strings.ToUpper(stmt[:end])
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

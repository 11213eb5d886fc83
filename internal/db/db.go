package db

import (
	"context"
	"strconv"
)

type Column struct {
	Name string
	Type string
}

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindInteger
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	default:
		return "unsupported"
	}
}

// Value is a single result cell. Only the field matching Kind is meaningful;
// for KindUnsupported, Type names the driver or column type that could not be
// mapped.
type Value struct {
	Kind Kind
	Text string
	Int  int64
	Type string
}

func Null() Value { return Value{Kind: KindNull} }

func Text(s string) Value { return Value{Kind: KindText, Text: s} }

func Integer(n int64) Value { return Value{Kind: KindInteger, Int: n} }

func Unsupported(typ string) Value { return Value{Kind: KindUnsupported, Type: typ} }

// String is a debugging aid; rendering goes through the print package.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "NULL"
	case KindText:
		return v.Text
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	default:
		return "<" + v.Type + ">"
	}
}

type Row []Value

type Rows struct {
	Columns []Column
	Data    []Row
}

type DB interface {
	Close() error
	Query(ctx context.Context, sql string) (*Rows, error)
}

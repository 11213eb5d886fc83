package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/bgunnarsson/askcourses/internal/db"
	"github.com/bgunnarsson/askcourses/internal/print"
	"github.com/bgunnarsson/askcourses/internal/prompt"
	"github.com/bgunnarsson/askcourses/internal/sanitize"
)

// Generator turns a conversation into the model's raw reply.
type Generator interface {
	Generate(ctx context.Context, conv prompt.Conversation) (string, error)
}

// ProgressFunc runs work while telling the user something is happening.
type ProgressFunc func(ctx context.Context, label string, work func() error) error

type Pipeline struct {
	Generator    Generator
	DB           db.DB
	Schema       string
	QueryTimeout time.Duration // 0 disables the limit
	Verbose      bool          // echo the sanitized SQL to Streams.Err
	Progress     ProgressFunc  // optional, wraps generation
	Streams      Streams
	Log          *zap.Logger
}

func (p *Pipeline) Close() error {
	if p.DB == nil {
		return nil
	}
	return p.DB.Close()
}

// Ask runs Build → Generate → Sanitize → Execute → Render for one question.
// Each stage aborts the run on failure; Streams.Out is written only once the
// whole table has been rendered.
func (p *Pipeline) Ask(ctx context.Context, question string) error {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}

	conv := prompt.Build(p.Schema, question)

	var raw string
	generate := func() error {
		var err error
		raw, err = p.Generator.Generate(ctx, conv)
		return err
	}

	start := time.Now()
	var err error
	if p.Progress != nil {
		err = p.Progress(ctx, "Writing a query…", generate)
	} else {
		err = generate()
	}
	if err != nil {
		return fmt.Errorf("generate query: %w", err)
	}
	log.Debug("generated query", zap.Duration("took", time.Since(start)), zap.Int("bytes", len(raw)))

	sqlText := sanitize.SQL(raw)
	if p.Verbose {
		fmt.Fprintln(writerOrDiscard(p.Streams.Err), sqlText)
	}

	qctx := ctx
	if p.QueryTimeout > 0 {
		var cancel context.CancelFunc
		qctx, cancel = context.WithTimeout(ctx, p.QueryTimeout)
		defer cancel()
	}

	start = time.Now()
	rows, err := p.DB.Query(qctx, sqlText)
	if err != nil {
		return fmt.Errorf("execute query: %w", err)
	}
	log.Debug("executed query", zap.Duration("took", time.Since(start)), zap.Int("rows", len(rows.Data)))

	if err := print.RenderTable(writerOrDiscard(p.Streams.Out), rows); err != nil {
		return fmt.Errorf("render results: %w", err)
	}
	return nil
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

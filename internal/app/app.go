package app

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/bgunnarsson/askcourses/internal/config"
	"github.com/bgunnarsson/askcourses/internal/db"
	"github.com/bgunnarsson/askcourses/internal/db/mssql"
	"github.com/bgunnarsson/askcourses/internal/db/mysql"
	"github.com/bgunnarsson/askcourses/internal/db/postgres"
	"github.com/bgunnarsson/askcourses/internal/db/sqlite"
	"github.com/bgunnarsson/askcourses/internal/llm"
	"github.com/bgunnarsson/askcourses/internal/schema"
)

type Driver string

const (
	DriverSqlite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverMssql    Driver = "mssql"
	DriverMysql    Driver = "mysql"
)

// central factory
func openDB(driver Driver, dsn string) (db.DB, error) {
	switch driver {
	case "", DriverSqlite:
		return sqlite.Open(dsn)
	case DriverPostgres:
		return postgres.Open(dsn)
	case DriverMssql:
		return mssql.Open(dsn)
	case DriverMysql:
		return mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

// Streams carries the process outputs. Out only ever receives the table.
type Streams struct {
	Out io.Writer
	Err io.Writer
}

// New wires a Pipeline from cfg: schema descriptor, database handle and model
// client. Any failure here is a configuration error. Callers must Close the
// returned pipeline.
func New(cfg config.Config, streams Streams, log *zap.Logger) (*Pipeline, error) {
	schemaText, err := schema.Load(cfg.SchemaFile)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	database, err := openDB(Driver(cfg.Database.Driver), cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	client, err := llm.NewClient(llm.Config{
		BaseURL: cfg.AI.BaseURL,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	})
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("configure model client: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("pipeline ready",
		zap.String("driver", cfg.Database.Driver),
		zap.String("model", client.Model()),
		zap.Bool("custom_schema", cfg.SchemaFile != ""))

	return &Pipeline{
		Generator:    client,
		DB:           database,
		Schema:       schemaText,
		QueryTimeout: cfg.Database.QueryTimeout,
		Streams:      streams,
		Log:          log,
	}, nil
}

// Package datarecording stores simulation records into SQLite databases.
//
// Each table is declared with a sample struct whose exported fields become
// the columns. Rows are buffered in memory and written in one transaction
// when the buffer fills up, on Flush, on Close, or when the program exits
// through atexit.
package datarecording

import (
	"database/sql"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/tebeka/atexit"
)

// DataRecorder records rows into named tables.
type DataRecorder interface {
	// CreateTable declares a table whose columns are the fields of
	// sampleEntry. It panics if sampleEntry is not a flat struct.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers a row. The entry must have the type the table was
	// created with.
	InsertData(tableName string, entry any)

	// ListTables returns the table names in order.
	ListTables() []string

	// Flush writes the buffered rows.
	Flush()

	// Close writes the buffered rows and closes the database.
	Close() error
}

// DefaultBatchSize is the number of rows buffered before they are written.
const DefaultBatchSize = 100000

// An Option adjusts a recorder when it is created.
type Option func(r *sqliteRecorder)

// WithBatchSize sets how many rows are buffered before they are written.
func WithBatchSize(n int) Option {
	return func(r *sqliteRecorder) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// New creates a DataRecorder backed by the file path + ".sqlite3". An empty
// path picks a unique name. It refuses to write into an existing file.
func New(path string, opts ...Option) (DataRecorder, error) {
	db, err := openNewDB(path)
	if err != nil {
		return nil, err
	}

	return newRecorder(db, opts), nil
}

// NewWithDB creates a DataRecorder on an open database.
func NewWithDB(db *sql.DB, opts ...Option) DataRecorder {
	return newRecorder(db, opts)
}

func newRecorder(db *sql.DB, opts []Option) *sqliteRecorder {
	r := &sqliteRecorder{
		db:        db,
		batchSize: DefaultBatchSize,
		tables:    make(map[string]*tableBuffer),
	}

	for _, opt := range opts {
		opt(r)
	}

	atexit.Register(r.Flush)

	return r
}

package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"sort"

	"github.com/fatih/structs"
	"github.com/rs/xid"
)

func openNewDB(path string) (*sql.DB, error) {
	if path == "" {
		path = "cachesim_recording_" + xid.New().String()
	}

	filename := path + ".sqlite3"

	if _, err := os.Stat(filename); err == nil {
		return nil, fmt.Errorf("file %s already exists", filename)
	}

	return sql.Open("sqlite3", filename)
}

type tableBuffer struct {
	entryType reflect.Type
	insertSQL string
	rows      []any
}

type sqliteRecorder struct {
	db        *sql.DB
	tables    map[string]*tableBuffer
	batchSize int
	numRows   int
}

func (r *sqliteRecorder) CreateTable(tableName string, sampleEntry any) {
	entryType := reflect.TypeOf(sampleEntry)
	if err := validateEntryType(entryType); err != nil {
		panic(fmt.Errorf("table %s: %w", tableName, err))
	}

	r.mustExec(createTableSQL(tableName, sampleEntry))

	r.tables[tableName] = &tableBuffer{
		entryType: entryType,
		insertSQL: insertSQL(tableName, sampleEntry),
	}
}

func (r *sqliteRecorder) InsertData(tableName string, entry any) {
	buf, found := r.tables[tableName]
	if !found {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != buf.entryType {
		panic(fmt.Sprintf("table %s expects %s, got %T",
			tableName, buf.entryType, entry))
	}

	buf.rows = append(buf.rows, entry)
	r.numRows++

	if r.numRows >= r.batchSize {
		r.Flush()
	}
}

func (r *sqliteRecorder) ListTables() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *sqliteRecorder) Flush() {
	if r.numRows == 0 {
		return
	}

	if err := r.writeBuffered(); err != nil {
		panic(err)
	}

	r.numRows = 0
}

func (r *sqliteRecorder) writeBuffered() error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	for _, buf := range r.tables {
		if err := writeRows(tx, buf); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	for _, buf := range r.tables {
		buf.rows = nil
	}

	return nil
}

func writeRows(tx *sql.Tx, buf *tableBuffer) error {
	if len(buf.rows) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(buf.insertSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range buf.rows {
		if _, err := stmt.Exec(structs.Values(row)...); err != nil {
			return fmt.Errorf("%s: %w", buf.insertSQL, err)
		}
	}

	return nil
}

func (r *sqliteRecorder) Close() error {
	r.Flush()
	return r.db.Close()
}

func (r *sqliteRecorder) mustExec(query string) {
	if _, err := r.db.Exec(query); err != nil {
		panic(fmt.Errorf("failed to execute %q: %w", query, err))
	}
}

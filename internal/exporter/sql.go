package exporter

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/huandu/go-sqlbuilder"
)

// SQL implements an exporter for storing triples inside an sql database.
// Triples are stored as labels in a single table with one column per role.
type SQL struct {
	DB          *sql.DB
	Table       string // name of the table, defaults to DefaultTable
	BatchSize   int    // number of triples to insert at once
	MaxQueryVar int    // Maximum number of query variables (overrides BatchSize)

	dbLock sync.Mutex
	batch  [][]any
}

const (
	DefaultTable = "triples"

	subjectColumn   = "subject"
	predicateColumn = "predicate"
	objectColumn    = "object"
)

var (
	errInsufficientQueryVars = errors.New("insufficient query variables")
	columns                  = []string{subjectColumn, predicateColumn, objectColumn}
)

func (sql *SQL) table() string {
	if sql.Table == "" {
		return DefaultTable
	}
	return sql.Table
}

// exec executes an sql query
func (sql *SQL) exec(query string, args []any) (err error) {
	sql.dbLock.Lock()
	defer sql.dbLock.Unlock()

	_, err = sql.DB.Exec(query, args...)
	return
}

// execInsert executes an insert into the given table, the given columns, and the given values.
// When this would exceed limits on maximum number of query variables, multiple inserts are executed.
func (sql *SQL) execInsert(table string, columns []string, values [][]any) error {
	// nothing to insert!
	if len(values) == 0 {
		return nil
	}

	// determine the chunk size based on total number of query variables
	chunkSize := sql.MaxQueryVar / len(columns)
	if chunkSize == 0 {
		return errInsufficientQueryVars
	}

	// maybe the user requested an even smaller batch size!
	if sql.BatchSize > 0 && sql.BatchSize < chunkSize {
		chunkSize = sql.BatchSize
	}

	for i := 0; i < len(values); i += chunkSize {
		insert := sqlbuilder.InsertInto(table)
		insert.Cols(columns...)

		chunkEnd := min(i+chunkSize, len(values))
		for _, v := range values[i:chunkEnd] {
			insert.Values(v...)
		}

		if err := sql.exec(insert.Build()); err != nil {
			return err
		}
	}

	return nil
}

// Begin (re-)creates the table.
func (sql *SQL) Begin(count uint64) error {
	if err := sql.exec("DROP TABLE IF EXISTS "+sql.table()+";", nil); err != nil {
		return err
	}

	table := sqlbuilder.CreateTable(sql.table()).IfNotExists()
	for _, column := range columns {
		table.Define(column, "TEXT", "NOT NULL")
	}
	return sql.exec(table.Build())
}

// Add queues a triple for insertion, inserting a batch once it is full.
func (sql *SQL) Add(triple Triple) error {
	sql.batch = append(sql.batch, []any{string(triple.Subject), string(triple.Predicate), string(triple.Object)})
	if len(sql.batch) < sql.BatchSize {
		return nil
	}
	return sql.flush()
}

// End inserts any remaining triples.
func (sql *SQL) End() error {
	return sql.flush()
}

func (sql *SQL) flush() error {
	batch := sql.batch
	sql.batch = sql.batch[:0]
	return sql.execInsert(sql.table(), columns, batch)
}

func (sql *SQL) Close() error {
	return sql.DB.Close() // close the database
}

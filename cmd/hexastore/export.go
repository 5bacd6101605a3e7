package main

import (
	"database/sql"
	"os"

	"github.com/FAU-CDI/hexastore/internal/exporter"
	"github.com/FAU-CDI/hexastore/internal/status"
	triplestore "github.com/FAU-CDI/hexastore/internal/triplestore/hexastore"
	"github.com/FAU-CDI/hexastore/internal/triplestore/imap"
	"github.com/FAU-CDI/hexastore/pkg/progress"
	_ "github.com/glebarez/go-sqlite"
	_ "github.com/go-sql-driver/mysql"
)

const (
	sqliteMaxQueryVar = 32766 // see https://www.sqlite.org/limits.html
	sqlBatchSize      = 1000
)

func doSQL(store *triplestore.Store, nodes *imap.NodeMap, proto, addr string, st *status.Status) {
	db, err := sql.Open(proto, addr)
	if err != nil {
		st.LogFatal("open sql", err)
	}

	target := &exporter.SQL{
		DB: db,

		BatchSize:   sqlBatchSize,
		MaxQueryVar: sqliteMaxQueryVar,
	}
	err = st.DoStage(status.StageExportSQL, func() error {
		return exporter.Export(store, nodes, triplestore.Pattern{}, target, st)
	})
	if err != nil {
		st.LogFatal("export sql", err)
	}
	if err := target.Close(); err != nil {
		st.LogFatal("close sql", err)
	}
}

func doNTriples(store *triplestore.Store, nodes *imap.NodeMap, path string, st *status.Status) {
	file, err := os.Create(path) // #nosec G304 -- explicit parameter
	if err != nil {
		st.LogFatal("create ntriples", err)
	}

	// report the bytes written instead of the number of triples
	target := &exporter.NTriples{Writer: file}
	if rewritable := st.Rewritable(); rewritable != nil {
		target.Writer = &progress.Writer{
			Writer:     file,
			Rewritable: progress.Rewritable{Writer: rewritable.Writer, FlushInterval: progress.DefaultFlushInterval},
		}
	}

	err = st.DoStage(status.StageExportNTriples, func() error {
		return exporter.Export(store, nodes, triplestore.Pattern{}, target, nil)
	})
	if err != nil {
		st.LogFatal("export ntriples", err)
	}
	if err := file.Close(); err != nil {
		st.LogFatal("close ntriples", err)
	}
}

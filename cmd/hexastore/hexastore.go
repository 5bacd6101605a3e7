// Command hexastore loads an nquads file into an in-memory hexastore.
// It can report statistics, answer a single triple pattern, dump the indexes, and export the triples.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/FAU-CDI/hexastore"
	"github.com/FAU-CDI/hexastore/internal/loader"
	"github.com/FAU-CDI/hexastore/internal/query"
	"github.com/FAU-CDI/hexastore/internal/status"
	triplestore "github.com/FAU-CDI/hexastore/internal/triplestore/hexastore"
	"github.com/FAU-CDI/hexastore/internal/triplestore/imap"
	"github.com/FAU-CDI/hexastore/internal/triplestore/index"
	"github.com/FAU-CDI/hexastore/pkg/perf"
	"github.com/pkg/profile"
)

// cspell:words nquads ntriples

const usage = "Usage: hexastore [-help] [...flags] /path/to/nquads"

var errMultipleExports = errors.New("at most one of -sqlite, -mysql and -ntriples may be given")

func main() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	st := status.New(os.Stderr, level)
	defer st.Close()

	if debugProfile != "" {
		defer profile.Start(profile.ProfilePath(debugProfile)).Stop()
	}
	if debugServer != "" {
		go listenDebug(st)
	}

	var exports int
	for _, target := range []string{sqlite, mysql, ntriples} {
		if target != "" {
			exports++
		}
	}
	if exports > 1 {
		st.Log(usage)
		st.LogFatal("parse arguments", errMultipleExports)
	}

	orders, err := index.ParseOrders(ordersFlag)
	if err != nil {
		st.Log(usage)
		st.LogFatal("parse orders", err)
	}

	nq, err := hexastore.FindSource(nArgs...)
	if err != nil {
		st.Log(usage)
		st.LogFatal("find source", err)
	}

	// setup the node map
	var engine imap.Engine = imap.MemoryEngine{}
	if cache != "" {
		st.Log("caching nodes on-disk", "path", cache)
		engine = imap.DiskEngine{Path: cache}
	}

	var nodes imap.NodeMap
	if err := nodes.Reset(engine); err != nil {
		st.LogFatal("reset node map", err)
	}
	defer func() {
		if err := nodes.Close(); err != nil {
			st.LogError("close node map", err)
		}
	}()

	// and load the triples
	store := triplestore.New(orders...)
	st.Log("loading triples", "nquads", nq, "orders", store.Orders())

	opts := loader.DefaultOptions()
	opts.CompactInterval = compactInterval

	var stats loader.Stats
	took, err := perf.Measure(func() (err error) {
		stats, err = loader.LoadFile(nq, &nodes, store, opts, st)
		return err
	})
	if err != nil {
		st.LogFatal("load triples", err)
	}
	st.Log("finished loading", "read", stats.Read, "inserted", stats.Inserted, "took", took)

	if benchMode {
		if err := doBench(store, took, st); err != nil {
			st.LogError("bench", err)
		}
	}

	if terms.Given() {
		if err := st.DoStage(status.StageQuery, func() error {
			return query.Run(os.Stdout, store, &nodes, terms)
		}); err != nil {
			st.LogFatal("query", err)
		}
	}

	if dump {
		if err := st.DoStage(status.StageDump, func() error {
			return doDump(os.Stdout, store)
		}); err != nil {
			st.LogFatal("dump", err)
		}
	}

	switch {
	case sqlite != "":
		doSQL(store, &nodes, "sqlite", sqlite, st)
	case mysql != "":
		doSQL(store, &nodes, "mysql", mysql, st)
	case ntriples != "":
		doNTriples(store, &nodes, ntriples, st)
	}

	st.Log("finished", "took", st.Diff(), "now", perf.Now())
}

func doBench(store *triplestore.Store, took perf.Diff, st *status.Status) error {
	return st.DoStage(status.StageBench, func() error {
		footprint := perf.Footprint{
			Diff:     took,
			Reported: store.MemorySize(),
			Items:    store.Count(),
		}
		st.Log("memory", "footprint", footprint)
		st.StoreStats(store.Stats())

		for _, order := range store.Orders() {
			idx, _ := store.Index(order)
			st.Log("index", "order", order, "triples", idx.Count(), "size", perf.Footprint{Reported: idx.MemorySize(), Items: idx.Count()})
		}
		return nil
	})
}

func doDump(w io.Writer, store *triplestore.Store) error {
	for _, order := range store.Orders() {
		idx, _ := store.Index(order)
		if err := idx.Dump(w); err != nil {
			return fmt.Errorf("failed to dump %s: %w", order, err)
		}
	}
	return nil
}

// ===================

var nArgs []string

var ordersFlag = "spo,sop,pso,pos,osp,ops"
var cache string
var compactInterval = loader.DefaultOptions().CompactInterval

var terms query.Terms
var dump bool

var sqlite string
var mysql string
var ntriples string

var benchMode bool
var verbose bool
var debugServer string
var debugProfile string

func init() {
	flag.StringVar(&ordersFlag, "orders", ordersFlag, "comma-separated list of index orders to maintain")
	flag.StringVar(&cache, "cache", cache, "During loading, cache the node map in the given directory as opposed to memory")
	flag.IntVar(&compactInterval, "compact", compactInterval, "Compact the node map every given number of triples, 0 to disable")

	flag.StringVar(&terms.Subject, "subject", terms.Subject, "subject of the pattern to query, '?name' for a named variable")
	flag.StringVar(&terms.Predicate, "predicate", terms.Predicate, "predicate of the pattern to query, '?name' for a named variable")
	flag.StringVar(&terms.Object, "object", terms.Object, "object of the pattern to query, '?name' for a named variable")
	flag.BoolVar(&dump, "dump", dump, "dump the structure of every index to standard output")

	flag.StringVar(&sqlite, "sqlite", sqlite, "export triples into the given sqlite database")
	flag.StringVar(&mysql, "mysql", mysql, "export triples into the given mysql database")
	flag.StringVar(&ntriples, "ntriples", ntriples, "export triples into the given ntriples file")

	flag.BoolVar(&benchMode, "bench", benchMode, "benchmarking mode: report memory usage of the store")
	flag.BoolVar(&verbose, "verbose", verbose, "enable debug logging")
	flag.StringVar(&debugServer, "debug-listen", debugServer, "start a profiling server on the given address")
	flag.StringVar(&debugProfile, "debug-profile", debugProfile, "write out a cpu profile to the given path")

	flag.Parse()
	nArgs = flag.Args()
}

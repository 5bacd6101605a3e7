package exporter

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FAU-CDI/hexastore/internal/triplestore/hexastore"
	"github.com/FAU-CDI/hexastore/internal/triplestore/imap"
	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
	_ "github.com/glebarez/go-sqlite"
)

var testTriples = [][3]impl.Label{
	{"<http://example.com/alice>", "<http://xmlns.com/foaf/0.1/knows>", "<http://example.com/bob>"},
	{"<http://example.com/alice>", "<http://xmlns.com/foaf/0.1/name>", `"Alice"@en`},
	{"<http://example.com/bob>", "<http://xmlns.com/foaf/0.1/name>", `"Bob"`},
	{"_:b0", "<http://xmlns.com/foaf/0.1/knows>", "<http://example.com/alice>"},
}

func newTestStore(t *testing.T) (*hexastore.Store, *imap.NodeMap) {
	t.Helper()

	var nodes imap.NodeMap
	if err := nodes.Reset(imap.MemoryEngine{}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { nodes.Close() })

	store := hexastore.NewHexastore()
	for _, labels := range testTriples {
		var triple impl.Triple
		for i, label := range labels {
			id, err := nodes.Internalize(label)
			if err != nil {
				t.Fatal(err)
			}
			triple.Set(impl.Position(i), id)
		}
		store.Insert(triple)
	}
	return store, &nodes
}

// recorder records all exported triples.
type recorder struct {
	count   uint64
	triples []Triple
	ended   bool
}

func (r *recorder) Begin(count uint64) error { r.count = count; return nil }
func (r *recorder) Add(triple Triple) error  { r.triples = append(r.triples, triple); return nil }
func (r *recorder) End() error               { r.ended = true; return nil }
func (r *recorder) Close() error             { return nil }

func TestExport(t *testing.T) {
	store, nodes := newTestStore(t)

	var all recorder
	if err := Export(store, nodes, hexastore.Pattern{}, &all, nil); err != nil {
		t.Fatal(err)
	}
	if all.count != 4 || len(all.triples) != 4 || !all.ended {
		t.Errorf("Export() recorded count = %d, %d triples, ended = %v", all.count, len(all.triples), all.ended)
	}

	name, _, _ := nodes.Get("<http://xmlns.com/foaf/0.1/name>")
	var names recorder
	if err := Export(store, nodes, hexastore.Pattern{Predicate: name}, &names, nil); err != nil {
		t.Fatal(err)
	}
	if names.count != 0 || len(names.triples) != 2 {
		t.Errorf("Export() of pattern recorded count = %d, %d triples", names.count, len(names.triples))
	}
	for _, triple := range names.triples {
		if triple.Predicate != "<http://xmlns.com/foaf/0.1/name>" {
			t.Errorf("Export() of pattern returned %v", triple)
		}
	}
}

func TestSQL(t *testing.T) {
	store, nodes := newTestStore(t)

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "export.db"))
	if err != nil {
		t.Fatal(err)
	}

	exporter := &SQL{DB: db, BatchSize: 3, MaxQueryVar: 32766}
	if err := Export(store, nodes, hexastore.Pattern{}, exporter, nil); err != nil {
		t.Fatalf("Export() returned error: %s", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + DefaultTable).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 4 {
		t.Errorf("table holds %d rows, want 4", count)
	}

	var subject string
	if err := db.QueryRow("SELECT subject FROM "+DefaultTable+" WHERE object = ?", `"Bob"`).Scan(&subject); err != nil {
		t.Fatal(err)
	}
	if subject != "<http://example.com/bob>" {
		t.Errorf("subject = %q", subject)
	}

	// exporting again replaces the table
	if err := Export(store, nodes, hexastore.Pattern{}, exporter, nil); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM " + DefaultTable).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 4 {
		t.Errorf("table holds %d rows after second export, want 4", count)
	}

	if err := exporter.Close(); err != nil {
		t.Error(err)
	}
}

func TestSQL_InsufficientQueryVars(t *testing.T) {
	exporter := &SQL{MaxQueryVar: 2}
	if err := exporter.execInsert(DefaultTable, columns, [][]any{{"a", "b", "c"}}); err == nil {
		t.Error("execInsert() did not fail")
	}
}

func TestNTriples(t *testing.T) {
	store, nodes := newTestStore(t)

	var builder strings.Builder
	if err := Export(store, nodes, hexastore.Pattern{}, &NTriples{Writer: &builder}, nil); err != nil {
		t.Fatalf("Export() returned error: %s", err)
	}

	lines := strings.Split(strings.TrimSpace(builder.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("wrote %d lines, want 4:\n%s", len(lines), builder.String())
	}
	if !strings.Contains(builder.String(), "<http://example.com/alice> <http://xmlns.com/foaf/0.1/knows> <http://example.com/bob> .") {
		t.Errorf("output is missing a triple:\n%s", builder.String())
	}
	for _, line := range lines {
		if !strings.HasSuffix(line, " .") {
			t.Errorf("line %q is not terminated", line)
		}
	}
}

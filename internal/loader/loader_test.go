package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FAU-CDI/hexastore/internal/triplestore/hexastore"
	"github.com/FAU-CDI/hexastore/internal/triplestore/imap"
	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
	"github.com/FAU-CDI/hexastore/internal/triplestore/index"
)

const testQuads = `<http://example.com/alice> <http://xmlns.com/foaf/0.1/knows> <http://example.com/bob> <http://example.com/graph> .
<http://example.com/alice> <http://xmlns.com/foaf/0.1/name> "Alice"@en .
<http://example.com/bob> <http://xmlns.com/foaf/0.1/name> "Bob" .
_:b0 <http://xmlns.com/foaf/0.1/knows> <http://example.com/alice> .
<http://example.com/alice> <http://xmlns.com/foaf/0.1/knows> <http://example.com/bob> .
`

func newNodeMap(t *testing.T) *imap.NodeMap {
	t.Helper()

	var nodes imap.NodeMap
	if err := nodes.Reset(imap.MemoryEngine{}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { nodes.Close() })
	return &nodes
}

func TestLoad_Quads(t *testing.T) {
	nodes := newNodeMap(t)
	store := hexastore.New(index.SPO, index.POS)

	stats, err := Load(&QuadSource{Reader: strings.NewReader(testQuads)}, nodes, store, DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Load() returned error: %s", err)
	}

	// the last quad only differs in the graph
	if stats.Read != 5 || stats.Inserted != 4 {
		t.Errorf("Load() = %+v, want 5 read and 4 inserted", stats)
	}
	if store.Count() != 4 {
		t.Errorf("Count() = %d, want 4", store.Count())
	}

	name, ok, err := nodes.Get("<http://xmlns.com/foaf/0.1/name>")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	names, err := store.Match(hexastore.Pattern{Predicate: name}).Drain()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Fatalf("found %d names, want 2", len(names))
	}

	var labels []string
	for _, triple := range names {
		label, err := nodes.Externalize(triple.Object)
		if err != nil {
			t.Fatal(err)
		}
		labels = append(labels, string(label))
	}
	if got := strings.Join(labels, " "); got != `"Alice"@en "Bob"` && got != `"Bob" "Alice"@en` {
		t.Errorf("names = %s", got)
	}
}

func TestLoad_Reopen(t *testing.T) {
	nodes := newNodeMap(t)
	store := hexastore.New()
	source := &QuadSource{Reader: strings.NewReader(testQuads)}

	for round := range 2 {
		stats, err := Load(source, nodes, store, Options{CompactInterval: 2}, nil)
		if err != nil {
			t.Fatalf("round %d: Load() returned error: %s", round, err)
		}
		if stats.Read != 5 {
			t.Errorf("round %d: read %d triples, want 5", round, stats.Read)
		}
	}
	if store.Count() != 4 {
		t.Errorf("Count() = %d, want 4", store.Count())
	}
}

func TestLoad_Invalid(t *testing.T) {
	nodes := newNodeMap(t)
	store := hexastore.New()

	source := &QuadSource{Reader: strings.NewReader("<http://example.com/a> <http://example.com/b> .\n")}
	if _, err := Load(source, nodes, store, DefaultOptions(), nil); err == nil {
		t.Error("Load() did not reject an invalid statement")
	}
}

func TestLoad_Slice(t *testing.T) {
	nodes := newNodeMap(t)
	store := hexastore.New()

	source := &SliceSource{Triples: [][3]impl.Label{
		{"<a>", "<b>", "<c>"},
		{"<c>", "<b>", "<a>"},
	}}
	if _, err := Load(source, nodes, store, DefaultOptions(), nil); err != nil {
		t.Fatal(err)
	}

	a, _, _ := nodes.Get("<a>")
	b, _, _ := nodes.Get("<b>")
	c, _, _ := nodes.Get("<c>")
	if !store.Contains(impl.Triple{Subject: c, Predicate: b, Object: a}) {
		t.Error("store does not contain loaded triple")
	}
	if a != 1 || b != 2 || c != 3 {
		t.Errorf("ids = %d, %d, %d, want 1, 2, 3", a, b, c)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.nq")
	if err := os.WriteFile(path, []byte(testQuads), 0o600); err != nil {
		t.Fatal(err)
	}

	nodes := newNodeMap(t)
	store := hexastore.New()
	if _, err := LoadFile(path, nodes, store, DefaultOptions(), nil); err != nil {
		t.Fatal(err)
	}
	if store.Count() != 4 {
		t.Errorf("Count() = %d, want 4", store.Count())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.nq"), nodes, store, DefaultOptions(), nil); err == nil {
		t.Error("LoadFile() did not fail for a missing file")
	}
}

package index

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"testing"

	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
	"golang.org/x/exp/slices"
)

func ExampleIndex() {
	index := New(SOP)

	index.Insert(impl.Triple{Subject: 1, Predicate: 2, Object: 3})
	index.Insert(impl.Triple{Subject: 1, Predicate: 4, Object: 3})
	index.Insert(impl.Triple{Subject: 1, Predicate: 2, Object: 3}) // already exists

	fmt.Println(index.Count())
	for cursor := index.Cursor(); !cursor.Finished(); cursor.Next() {
		triple, _ := cursor.Current()
		fmt.Println(triple)
	}

	index.Dump(os.Stdout)

	// Output: 2
	// { 1, 2, 3 }
	// { 1, 4, 3 }
	// Index(sop, triples=2)
	// - subject 1 (1 entries)
	//   - object 3: predicate Set(size=2, cap=2)[2, 4]
}

// collect returns all triples returned by the cursor.
func collect(t testing.TB, cursor *Cursor) (triples []impl.Triple) {
	t.Helper()
	for ; !cursor.Finished(); cursor.Next() {
		triple, err := cursor.Current()
		if err != nil {
			t.Fatalf("Current() returned error: %s", err)
		}
		triples = append(triples, triple)
	}
	return triples
}

func TestIndex_Single(t *testing.T) {
	for _, order := range Orders() {
		t.Run(order.String(), func(t *testing.T) {
			index := New(order)
			want := impl.Triple{Subject: 1, Predicate: 2, Object: 3}

			if !index.Insert(want) {
				t.Error("Insert() reported existing triple")
			}
			if got := index.Count(); got != 1 {
				t.Errorf("Count() = %d, want 1", got)
			}

			got := collect(t, index.Cursor())
			if len(got) != 1 || got[0] != want {
				t.Errorf("Cursor() yielded %v, want [%v]", got, want)
			}
		})
	}
}

func TestIndex_Grid(t *testing.T) {
	index := New(SOP)
	for i := impl.ID(1); i <= 3; i++ {
		for j := impl.ID(4); j <= 6; j++ {
			for k := impl.ID(7); k <= 8; k++ {
				index.Insert(impl.Triple{Subject: i, Predicate: j, Object: k})
			}
		}
	}
	if got := index.Count(); got != 18 {
		t.Fatalf("Count() = %d, want 18", got)
	}

	// neither triple exists
	if index.Remove(impl.Triple{Subject: 0, Predicate: 4, Object: 7}) {
		t.Error("Remove() reported removing a missing triple")
	}
	if index.Remove(impl.Triple{Subject: 0, Predicate: 4, Object: 8}) {
		t.Error("Remove() reported removing a missing triple")
	}
	if got := index.Count(); got != 18 {
		t.Errorf("Count() = %d after removing missing triples, want 18", got)
	}

	if got := len(collect(t, index.Cursor())); got != 18 {
		t.Errorf("Cursor() yielded %d triples, want 18", got)
	}
}

func TestIndex_Idempotent(t *testing.T) {
	index := New(PSO)
	triple := impl.Triple{Subject: 5, Predicate: 6, Object: 7}

	index.Insert(triple)
	size := index.MemorySize()

	if index.Insert(triple) {
		t.Error("second Insert() reported a new triple")
	}
	if index.Count() != 1 {
		t.Errorf("Count() = %d, want 1", index.Count())
	}
	if index.MemorySize() != size {
		t.Errorf("MemorySize() changed on duplicate insert")
	}

	if !index.Remove(triple) {
		t.Error("Remove() did not remove existing triple")
	}
	if index.Remove(triple) {
		t.Error("second Remove() reported removing a triple")
	}
	if index.Count() != 0 {
		t.Errorf("Count() = %d, want 0", index.Count())
	}
}

func randomTriples(source *rand.Rand, n int, limit int) []impl.Triple {
	triples := make([]impl.Triple, n)
	for i := range triples {
		triples[i] = impl.Triple{
			Subject:   impl.ID(source.Intn(limit) + 1),
			Predicate: impl.ID(source.Intn(limit) + 1),
			Object:    impl.ID(source.Intn(limit) + 1),
		}
	}
	return triples
}

func TestIndex_Properties(t *testing.T) {
	source := rand.New(rand.NewSource(1))

	for _, order := range Orders() {
		t.Run(order.String(), func(t *testing.T) {
			index := New(order)
			want := make(map[impl.Triple]struct{})

			// random inserts and removes
			for _, triple := range randomTriples(source, 3000, 12) {
				_, had := want[triple]
				if source.Intn(4) == 0 {
					if index.Remove(triple) != had {
						t.Fatalf("Remove(%v) disagrees with model", triple)
					}
					delete(want, triple)
				} else {
					if index.Insert(triple) == had {
						t.Fatalf("Insert(%v) disagrees with model", triple)
					}
					want[triple] = struct{}{}
				}
			}

			got := collect(t, index.Cursor())

			// count consistency
			if uint64(len(got)) != index.Count() || len(got) != len(want) {
				t.Errorf("traversal yielded %d triples, Count() = %d, model has %d", len(got), index.Count(), len(want))
			}

			// sortedness in the order of the index
			keys := func(triple impl.Triple) [3]impl.ID {
				a, b, c := order.Project(triple)
				return [3]impl.ID{a, b, c}
			}
			for i := 1; i < len(got); i++ {
				prev, next := keys(got[i-1]), keys(got[i])
				if slices.Compare(prev[:], next[:]) >= 0 {
					t.Fatalf("traversal not strictly ascending at %d: %v, %v", i, got[i-1], got[i])
				}
			}
			for _, triple := range got {
				if _, ok := want[triple]; !ok {
					t.Errorf("traversal yielded unexpected %v", triple)
				}
				if !index.Contains(triple) {
					t.Errorf("Contains(%v) = false for traversed triple", triple)
				}
			}

			// round trip: remove everything in random order
			source.Shuffle(len(got), func(i, j int) { got[i], got[j] = got[j], got[i] })
			for _, triple := range got {
				if !index.Remove(triple) {
					t.Fatalf("Remove(%v) did not remove traversed triple", triple)
				}
			}
			if index.Count() != 0 {
				t.Errorf("Count() = %d after removing everything", index.Count())
			}
			if index.root.Len() != 0 {
				t.Errorf("root has %d residual entries", index.root.Len())
			}
			if !index.Cursor().Finished() {
				t.Error("cursor over empty index is not finished")
			}
		})
	}
}

func TestIndex_Lookup(t *testing.T) {
	index := New(POS)
	for _, triple := range []impl.Triple{
		{Subject: 1, Predicate: 10, Object: 100},
		{Subject: 2, Predicate: 10, Object: 100},
		{Subject: 3, Predicate: 10, Object: 200},
		{Subject: 1, Predicate: 20, Object: 100},
	} {
		index.Insert(triple)
	}

	tests := []struct {
		name   string
		prefix []impl.ID
		want   int
	}{
		{"nothing bound", nil, 4},
		{"predicate bound", []impl.ID{10}, 3},
		{"predicate and object bound", []impl.ID{10, 100}, 2},
		{"all bound", []impl.ID{10, 100, 2}, 1},
		{"missing root", []impl.ID{30}, 0},
		{"missing branch", []impl.ID{20, 200}, 0},
		{"missing leaf", []impl.ID{10, 200, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, index.Lookup(tt.prefix...))
			if len(got) != tt.want {
				t.Fatalf("Lookup() yielded %d triples, want %d: %v", len(got), tt.want, got)
			}
			for _, triple := range got {
				a, b, c := index.order.Project(triple)
				for i, id := range []impl.ID{a, b, c}[:len(tt.prefix)] {
					if id != tt.prefix[i] {
						t.Errorf("Lookup() yielded %v outside of prefix", triple)
					}
				}
			}
		})
	}
}

func TestCursor_Errors(t *testing.T) {
	index := New(SPO)
	index.Insert(impl.Triple{Subject: 1, Predicate: 2, Object: 3})
	index.Insert(impl.Triple{Subject: 1, Predicate: 2, Object: 4})

	t.Run("finished", func(t *testing.T) {
		cursor := index.Lookup(9)
		if !cursor.Finished() {
			t.Fatal("Lookup() of missing key is not finished")
		}
		if _, err := cursor.Current(); !errors.Is(err, ErrFinished) {
			t.Errorf("Current() returned %v, want ErrFinished", err)
		}
		if err := cursor.Next(); !errors.Is(err, ErrFinished) {
			t.Errorf("Next() returned %v, want ErrFinished", err)
		}
	})

	t.Run("invalidated", func(t *testing.T) {
		cursor := index.Cursor()
		index.Insert(impl.Triple{Subject: 2, Predicate: 2, Object: 2})

		if _, err := cursor.Current(); !errors.Is(err, ErrInvalidated) {
			t.Errorf("Current() returned %v, want ErrInvalidated", err)
		}
		if err := cursor.Next(); !errors.Is(err, ErrInvalidated) {
			t.Errorf("Next() returned %v, want ErrInvalidated", err)
		}
		if !cursor.Finished() {
			t.Error("Next() did not finish invalidated cursor")
		}
	})

	t.Run("no-op modification", func(t *testing.T) {
		cursor := index.Cursor()
		index.Insert(impl.Triple{Subject: 1, Predicate: 2, Object: 3}) // exists
		index.Remove(impl.Triple{Subject: 7, Predicate: 7, Object: 7}) // missing

		if _, err := cursor.Current(); err != nil {
			t.Errorf("Current() returned %v after no-op modification", err)
		}
	})

	t.Run("closed", func(t *testing.T) {
		cursor := index.Cursor()
		cursor.Close()
		cursor.Close()
		if _, err := cursor.Current(); !errors.Is(err, ErrFinished) {
			t.Errorf("Current() returned %v, want ErrFinished", err)
		}
	})
}

func TestIndex_Clone(t *testing.T) {
	index := New(OSP)
	for _, triple := range randomTriples(rand.New(rand.NewSource(7)), 200, 5) {
		index.Insert(triple)
	}

	clone := index.Clone()
	cursor := clone.Cursor()

	// modifying the original does not affect the clone
	index.Reset()

	got := collect(t, cursor)
	if uint64(len(got)) != clone.Count() {
		t.Errorf("clone yielded %d triples, want %d", len(got), clone.Count())
	}
	if index.Count() != 0 {
		t.Errorf("Count() = %d after Reset()", index.Count())
	}
}

func TestParseOrder(t *testing.T) {
	for _, order := range Orders() {
		got, err := ParseOrder(order.String())
		if err != nil || got != order {
			t.Errorf("ParseOrder(%q) = %v, %v", order.String(), got, err)
		}
	}

	if _, err := ParseOrder("spp"); err == nil {
		t.Error("ParseOrder(\"spp\") did not return an error")
	}

	orders, err := ParseOrders("SPO, ops,")
	if err != nil || !slices.Equal(orders, []Order{SPO, OPS}) {
		t.Errorf("ParseOrders() = %v, %v", orders, err)
	}
}

func TestOrder_Project(t *testing.T) {
	triple := impl.Triple{Subject: 1, Predicate: 2, Object: 3}
	for _, order := range Orders() {
		a, b, c := order.Project(triple)
		if got := order.Triple(a, b, c); got != triple {
			t.Errorf("%s: Triple(Project(%v)) = %v", order, triple, got)
		}
	}

	if a, b, c := OPS.Project(triple); a != 3 || b != 2 || c != 1 {
		t.Errorf("OPS.Project() = %d, %d, %d", a, b, c)
	}
}

func BenchmarkIndex_Insert(b *testing.B) {
	triples := randomTriples(rand.New(rand.NewSource(0)), 10_000, 100)
	b.ResetTimer()

	for range b.N {
		index := New(SPO)
		for _, triple := range triples {
			index.Insert(triple)
		}
	}
}

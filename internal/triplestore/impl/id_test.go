package impl

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"
)

func ExampleID() {
	// create a new zero -- which isn't valid
	var zero ID
	fmt.Println(zero)
	fmt.Println(zero.Valid())

	// increment the id -- it is now valid
	fmt.Println(zero.Inc())
	fmt.Println(zero.Valid())

	// create the value 10
	var ten ID
	for range 10 {
		ten.Inc()
	}

	// compare it with other ids
	fmt.Println(zero.Compare(ten)) // 1 < 10
	fmt.Println(ten.Compare(zero)) // 10 > 1
	fmt.Println(ten.Compare(ten))  // 10 == 10

	// Output: ID(0)
	// false
	// ID(1)
	// true
	// -1
	// 1
	// 0
}

func TestID_Inc_Overflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Inc() did not panic on overflow")
		}
	}()

	id := ^ID(0)
	id.Inc()
}

func BenchmarkID_Compare(b *testing.B) {
	idI, idJ := ID(10000), ID(12)
	for range b.N {
		idI.Compare(idJ)
	}
}

const (
	testEncodeSeed = 1000
	testEncodeN    = 1000
)

// Test that encoded ids sort like their numerical values.
func TestID_Encode(t *testing.T) {
	source := rand.New(rand.NewSource(testEncodeSeed))

	bytesI := make([]byte, IDLen)
	bytesJ := make([]byte, IDLen)

	for range testEncodeN {
		i := ID(source.Uint32())
		j := ID(source.Uint32())

		i.Encode(bytesI)
		j.Encode(bytesJ)

		if got, want := bytes.Compare(bytesI, bytesJ), i.Compare(j); got != want {
			t.Errorf("bytes.Compare(%s, %s) = %d, want %d", i, j, got, want)
		}

		var decoded ID
		if err := UnmarshalID(&decoded, bytesI); err != nil {
			t.Fatalf("UnmarshalID() returned error %s", err)
		}
		if decoded != i {
			t.Errorf("UnmarshalID() got = %s, want = %s", decoded, i)
		}
	}
}

func TestMarshalIDs(t *testing.T) {
	encoded := make([]byte, 3*IDLen)
	if err := MarshalIDs(encoded, 1, 2, 3); err != nil {
		t.Fatalf("MarshalIDs() returned error: %s", err)
	}
	for i, want := range []ID{1, 2, 3} {
		var got ID
		got.Decode(encoded[i*IDLen:])
		if got != want {
			t.Errorf("MarshalIDs()[%d] = %s, want = %s", i, got, want)
		}
	}
	if err := MarshalIDs(encoded[:IDLen], 1, 2); err == nil {
		t.Error("MarshalIDs() did not fail on a short destination")
	}

	var id ID
	if err := UnmarshalID(&id, []byte{1, 2}); err == nil {
		t.Error("UnmarshalID() did not fail on short input")
	}
}

func TestTriple_GetSet(t *testing.T) {
	var triple Triple
	for i, p := range []Position{Subject, Predicate, Object} {
		triple.Set(p, ID(i+1))
	}

	want := Triple{Subject: 1, Predicate: 2, Object: 3}
	if triple != want {
		t.Errorf("Set() got = %s, want = %s", triple, want)
	}
	for i, p := range []Position{Subject, Predicate, Object} {
		if got := triple.Get(p); got != ID(i+1) {
			t.Errorf("Get(%s) = %s, want = %s", p, got, ID(i+1))
		}
	}
}

func TestTriple_Compare(t *testing.T) {
	tests := []struct {
		a, b Triple
		want int
	}{
		{Triple{1, 2, 3}, Triple{1, 2, 3}, 0},
		{Triple{1, 2, 3}, Triple{1, 2, 4}, -1},
		{Triple{1, 3, 0}, Triple{1, 2, 9}, 1},
		{Triple{0, 9, 9}, Triple{1, 0, 0}, -1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

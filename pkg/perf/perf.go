// Package perf measures time and heap usage of operations.
package perf

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
)

// Snapshot holds heap metrics at a specific point in time.
type Snapshot struct {
	Time    time.Time
	Bytes   int64 // heap and stack in use
	Objects int64 // live heap objects
}

// Now measures the heap and returns a snapshot for the current time.
// Measuring triggers (several) garbage collections and may take up to one second.
func Now() (s Snapshot) {
	s.Bytes, s.Objects = measureHeap()
	s.Time = time.Now()
	return
}

// Sub returns the difference between two snapshots.
func (s Snapshot) Sub(other Snapshot) Diff {
	return Diff{
		Time:    s.Time.Sub(other.Time),
		Bytes:   s.Bytes - other.Bytes,
		Objects: s.Objects - other.Objects,
	}
}

func (s Snapshot) String() string {
	return fmt.Sprintf("%s (%s) used at %s", humanBytes(s.Bytes), humanObjects(s.Objects), s.Time.Format(time.Stamp))
}

// Diff is the difference between two snapshots.
type Diff struct {
	Time    time.Duration
	Bytes   int64
	Objects int64
}

// Since returns the difference between start and now.
func Since(start Snapshot) Diff {
	return Now().Sub(start)
}

// Measure calls f and measures the time and heap growth caused by it.
func Measure(f func() error) (Diff, error) {
	start := Now()
	err := f()
	return Since(start), err
}

func (diff Diff) String() string {
	return fmt.Sprintf("%s, %s, %s", diff.Time, humanBytes(diff.Bytes), humanObjects(diff.Objects))
}

// Footprint compares the measured heap growth of building a structure with the size the structure reports itself.
type Footprint struct {
	Diff     Diff    // measured while building
	Reported uintptr // size reported by the structure
	Items    uint64  // number of items held by the structure
}

// PerItem returns the reported number of bytes per item.
func (fp Footprint) PerItem() float64 {
	if fp.Items == 0 {
		return 0
	}
	return float64(fp.Reported) / float64(fp.Items)
}

func (fp Footprint) String() string {
	return fmt.Sprintf(
		"%s item(s), %s reported (%.1f B/item), %s measured in %s",
		humanize.Comma(int64(fp.Items)), humanize.Bytes(uint64(fp.Reported)), fp.PerItem(), humanBytes(fp.Diff.Bytes), fp.Diff.Time,
	)
}

func humanBytes(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.Bytes(uint64(-bytes))
	}
	return humanize.Bytes(uint64(bytes))
}

func humanObjects(objects int64) string {
	if objects == 1 || objects == -1 {
		return fmt.Sprintf("%d object", objects)
	}
	return fmt.Sprintf("%d objects", objects)
}

const (
	heapStableThreshold = 10 * 1024                    // heap changes below this many bytes are considered stable
	heapSleep           = 50 * time.Millisecond        // time to wait between two measurements
	heapMaxCycles       = int(time.Second / heapSleep) // maximum number of measurements
)

// measureHeap runs the garbage collector until the heap size is stable, then returns the heap usage.
// See https://dev.to/vearutop/estimating-memory-footprint-of-dynamic-structures-in-go-2apf.
func measureHeap() (bytes int64, objects int64) {
	var stats runtime.MemStats

	var prevHeap, heap uint64
	var prevGC, gc uint32

	for i := 0; i < heapMaxCycles; i++ {
		runtime.ReadMemStats(&stats)
		gc = stats.NumGC
		heap = stats.HeapInuse

		if prevGC != 0 && gc > prevGC && math.Abs(float64(heap)-float64(prevHeap)) < heapStableThreshold {
			break
		}

		prevHeap = heap
		prevGC = gc

		time.Sleep(heapSleep)
		runtime.GC()
	}

	return int64(heap + stats.StackInuse), int64(stats.HeapObjects)
}

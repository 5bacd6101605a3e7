// Package status provides Status
package status

// spellchecker:words rewritable

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/FAU-CDI/hexastore/internal/triplestore/hexastore"
	"github.com/FAU-CDI/hexastore/pkg/perf"
	"github.com/FAU-CDI/hexastore/pkg/progress"
	"github.com/tkw1536/pkglib/lazy"
)

// Status holds information about the current stage of the program.
// Updating the status writes out detailed information to an underlying io.Writer.
//
// Status is safe to access concurrently, however the caller is responsible for only logging to one stage at a time.
//
// A nil Status is valid, and discards any information written to it.
type Status struct {
	done atomic.Bool  // if set, no further changes may be made
	m    sync.RWMutex // m protects changes to current and all

	logger     *slog.Logger
	rewritable *progress.Rewritable

	store lazy.Lazy[hexastore.Stats] // most recent statistics of the store

	current StageStats   // current holds information about the current stage
	all     []StageStats // all hold information about the old stages
}

// New creates a new status which writes output to the given io.Writer.
// If w is nil, returns a nil Status.
func New(w io.Writer, level slog.Level) *Status {
	if w == nil {
		return nil
	}
	return &Status{
		logger:     slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
		rewritable: &progress.Rewritable{Writer: w, FlushInterval: progress.DefaultFlushInterval},
	}
}

// Rewritable returns the rewritable associated with this status.
// It is automatically closed at the end of each stage.
func (st *Status) Rewritable() *progress.Rewritable {
	if st == nil {
		return nil
	}
	return st.rewritable
}

// Log logs an informational message with the provided key, value field pairs.
// When status or the associated logger are nil, no logging occurs.
func (st *Status) Log(message string, fields ...any) {
	if st == nil || st.logger == nil {
		return
	}
	st.logger.Info(message, fields...)
}

// LogDebug logs a debug message with the provided key, value field pairs.
// When status or the associated logger are nil, no logging occurs.
func (st *Status) LogDebug(message string, fields ...any) {
	if st == nil || st.logger == nil {
		return
	}
	st.logger.Debug(message, fields...)
}

// LogError logs an error message containing the provided error and the provided key, value field pairs.
func (st *Status) LogError(message string, err error, fields ...any) {
	if st == nil || st.logger == nil {
		return
	}

	st.logger.Error("FAILED "+message, append([]any{"err", err}, fields...)...)
}

// LogFatal is like LogError followed by os.Exit(1).
// When status or the associated logger are nil, os.Exit(1) is called immediately.
func (st *Status) LogFatal(message string, err error) {
	st.LogError(message, err)
	os.Exit(1)
}

// StoreStats records the most recent statistics of the store.
// If st is nil or done, this call has no effect.
func (st *Status) StoreStats(stats hexastore.Stats) {
	if st == nil || st.done.Load() {
		return
	}
	st.store.Set(stats)
	st.LogDebug("store", "stats", stats)
}

// Stats returns the statistics recorded using StoreStats.
func (st *Status) Stats() hexastore.Stats {
	if st == nil {
		var zero hexastore.Stats
		return zero
	}
	return st.store.Get(nil)
}

// Close marks this status as done.
// Future edits will have no effect.
func (st *Status) Close() {
	if st == nil {
		return
	}
	st.done.Store(true)
}

// Done checks if further edits made to this status have any effect.
func (st *Status) Done() bool {
	return st == nil || st.done.Load()
}

// All returns the stats of all stages so far, including the current one.
func (st *Status) All() []StageStats {
	if st == nil {
		return []StageStats{}
	}

	st.m.RLock()
	defer st.m.RUnlock()

	all := append([]StageStats{}, st.all...)
	if st.current.Stage != StageInitial {
		all = append(all, st.current)
	}
	return all
}

// Diff returns a performance diff starting at the first, and ending at the last stage.
// If status is nil, a nil diff is returned.
func (st *Status) Diff() perf.Diff {
	if st == nil {
		var zero perf.Diff
		return zero
	}

	st.m.RLock()
	defer st.m.RUnlock()

	first := st.current.Start
	last := st.current.End

	for _, ss := range st.all {
		if first.Time.IsZero() || ss.Start.Time.Before(first.Time) {
			first = ss.Start
		}
		if last.Time.IsZero() || ss.End.Time.After(last.Time) {
			last = ss.End
		}
	}

	return last.Sub(first)
}

// Start starts a new stage, updating the current property.
// Any changes are written to the underlying writer.
//
// If st is nil or done, this function has no effect.
func (st *Status) Start(stage Stage) {
	if st == nil || st.done.Load() {
		return
	}

	st.m.Lock()
	defer st.m.Unlock()

	// end the previous stage (if any)
	st.end()

	// start a new stage
	st.current.Stage = stage
	st.current.Start = perf.Now()

	if st.logger != nil {
		st.logger.Info("start", "stage", stage)
	}
}

// End ends the current stage if any.
// Any changes are flushed to the underlying writer.
//
// If st is nil or done, this function has no effect.
func (st *Status) End() (prev StageStats) {
	if st == nil || st.done.Load() {
		return
	}

	st.m.Lock()
	defer st.m.Unlock()

	return st.end()
}

// end implements End.
// st.m must be held for writing.
func (st *Status) end() (prev StageStats) {
	// store the current stage (if any)
	if st.current.Stage != StageInitial {
		st.current.End = perf.Now()
		st.all = append(st.all, st.current)
		prev = st.current
	}

	// and reset the current stage
	st.current = *new(StageStats)

	if prev.Stage == StageInitial {
		return
	}

	// write the final status into the rewritable
	// and force a rewrite!
	if st.rewritable != nil {
		st.rewritable.Flush(true)
		st.rewritable.Close() // reset it!
	}

	if st.logger != nil {
		if prev.Total != 0 || prev.Current != 0 {
			st.logger.Info("end", "stage", prev.Stage, "took", prev.Diff(), "current", prev.Current, "total", prev.Total)
		} else {
			st.logger.Info("end", "stage", prev.Stage, "took", prev.Diff())
		}
	}
	return
}

// DoStage is a convenience wrapper to start a new stage, call f, and log the resulting error if any.
//
// If st is nil, immediately invokes f.
func (st *Status) DoStage(stage Stage, f func() error) error {
	if st == nil || st.done.Load() {
		return f()
	}

	st.Start(stage)

	err := f()

	st.m.Lock()
	defer st.m.Unlock()

	st.end()
	if err != nil {
		st.LogError("failed stage", err, "stage", stage)
		return err
	}
	return nil
}

// SetCT sets the current and total for the current stage.
// If total is 0, the total is unknown.
//
// If st is nil or done, this function has no effect.
func (st *Status) SetCT(current, total int) {
	if st == nil || st.done.Load() {
		return
	}

	var progress string

	st.m.Lock()
	{
		st.current.Current = current
		st.current.Total = total
		progress = st.current.Progress()
	}
	st.m.Unlock()

	if st.rewritable != nil && progress != "" {
		st.rewritable.Write(progress)
	}
}

// StageStats holds the stats for a specific stage
type StageStats struct {
	Stage Stage

	Start perf.Snapshot // At the start of the stage
	End   perf.Snapshot // At the end of the stage

	Current int
	Total   int
}

// Progress returns a string holding progress information on the given stage
func (ss StageStats) Progress() string {
	switch {
	case ss.Total == 0 && ss.Current == 0:
		return ""
	case ss.Total != 0 && ss.Current < ss.Total:
		return fmt.Sprintf("%s: %d/%d", string(ss.Stage), ss.Current, ss.Total)
	default:
		return fmt.Sprintf("%s: %d", string(ss.Stage), ss.Current)
	}
}

// Diff returns a diff of the given stage
func (ss StageStats) Diff() perf.Diff {
	return ss.End.Sub(ss.Start)
}

// Stage represents a stage of the program
type Stage string

const (
	StageInitial        Stage = ""
	StageLoad           Stage = "load"
	StageCompact        Stage = "compact"
	StageQuery          Stage = "query"
	StageDump           Stage = "dump"
	StageBench          Stage = "bench"
	StageExportSQL      Stage = "export/sql"
	StageExportNTriples Stage = "export/ntriples"
)

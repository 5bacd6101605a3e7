// Package progress reports progress of long-running reads and writes on a single terminal line.
package progress

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultFlushInterval is a reasonable default flush interval
const DefaultFlushInterval = time.Second / 30

// Rewritable is a single line of output that is rewritten in place.
// Writes are rate-limited to at most one per FlushInterval.
type Rewritable struct {
	Writer        io.Writer
	FlushInterval time.Duration // minimum time between two flushes

	lastFlush time.Time
	longest   int    // longest content ever flushed
	content   string // current content
}

// Write replaces the content of the line.
func (rw *Rewritable) Write(value string) {
	rw.content = value
	rw.Flush(false)
}

// Flush writes out the current content.
// Unless force is set, the write is skipped when the previous one was too recent.
func (rw *Rewritable) Flush(force bool) {
	if !force && time.Since(rw.lastFlush) <= rw.FlushInterval {
		return
	}

	if len(rw.content) > rw.longest {
		rw.longest = len(rw.content)
	}

	// overwrite leftovers of longer previous content
	blank := strings.Repeat(" ", rw.longest-len(rw.content))
	fmt.Fprintf(rw.Writer, "\r%s%s", rw.content, blank)

	rw.lastFlush = time.Now()
}

// Close clears the line.
func (rw *Rewritable) Close() {
	rw.content = ""
	rw.Flush(true)
	rw.Writer.Write([]byte("\r"))
}

// Reader reports the number of bytes read from an underlying reader.
type Reader struct {
	io.Reader
	Bytes int64 // number of bytes read so far
	Total int64 // expected total number of bytes, 0 if unknown

	Rewritable
}

func (cr *Reader) Read(bytes []byte) (int, error) {
	count, err := cr.Reader.Read(bytes)
	cr.Bytes += int64(count)
	cr.Rewritable.Write(report("Read", cr.Bytes, cr.Total))
	return count, err
}

// Writer reports the number of bytes written to an underlying writer.
type Writer struct {
	io.Writer
	Bytes int64 // number of bytes written so far

	Rewritable
}

func (cw *Writer) Write(bytes []byte) (int, error) {
	count, err := cw.Writer.Write(bytes)
	cw.Bytes += int64(count)
	cw.Rewritable.Write(report("Wrote", cw.Bytes, 0))
	return count, err
}

func report(verb string, bytes, total int64) string {
	if total <= 0 {
		return fmt.Sprintf("%s %s", verb, humanize.Bytes(uint64(bytes)))
	}
	return fmt.Sprintf("%s %s of %s (%d%%)", verb, humanize.Bytes(uint64(bytes)), humanize.Bytes(uint64(total)), bytes*100/total)
}

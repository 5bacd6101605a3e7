package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/FAU-CDI/hexastore/internal/status"
	"github.com/FAU-CDI/hexastore/internal/triplestore/hexastore"
	"github.com/FAU-CDI/hexastore/internal/triplestore/imap"
	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
	"github.com/FAU-CDI/hexastore/pkg/progress"
)

// Options configure how triples are loaded.
type Options struct {
	CompactInterval int // Interval at which to compact the node map. Set <= 0 to disable.
}

// DefaultOptions returns a reasonable set of default options.
func DefaultOptions() Options {
	return Options{CompactInterval: 100_000}
}

func (opts Options) shouldCompact(index int) bool {
	return opts.CompactInterval > 0 && index > 0 && index%opts.CompactInterval == 0
}

// Stats holds statistics about a load.
type Stats struct {
	Read     int // number of triples read
	Inserted int // number of triples new to the store
}

// LoadFile is like Load, but reads N-Quads from the given path.
func LoadFile(path string, nodes *imap.NodeMap, store *hexastore.Store, opts Options, st *status.Status) (stats Stats, e error) {
	file, err := os.Open(path) // #nosec G304 -- explicit parameter
	if err != nil {
		return stats, fmt.Errorf("failed to open path: %w", err)
	}
	defer func() {
		if e2 := file.Close(); e2 != nil {
			e = errors.Join(e, fmt.Errorf("failed to close file: %w", e2))
		}
	}()

	var reader io.ReadSeeker = file
	if rewritable := st.Rewritable(); rewritable != nil {
		info, err := file.Stat()
		if err != nil {
			return stats, fmt.Errorf("failed to stat file: %w", err)
		}
		reader = &seekReader{
			Reader: progress.Reader{
				Reader:     file,
				Total:      info.Size(),
				Rewritable: progress.Rewritable{Writer: rewritable.Writer, FlushInterval: progress.DefaultFlushInterval},
			},
			seeker: file,
		}
	}

	return Load(&QuadSource{Reader: reader}, nodes, store, opts, st)
}

// seekReader reports reading progress of a seekable file.
type seekReader struct {
	progress.Reader
	seeker io.Seeker
}

func (sr *seekReader) Seek(offset int64, whence int) (int64, error) {
	pos, err := sr.seeker.Seek(offset, whence)
	sr.Bytes = pos
	return pos, err
}

// Load reads all triples from source, internalizes their labels into nodes and inserts them into store.
func Load(source Source, nodes *imap.NodeMap, store *hexastore.Store, opts Options, st *status.Status) (stats Stats, err error) {
	err = st.DoStage(status.StageLoad, func() error {
		var err error
		stats, err = load(source, nodes, store, opts, st)
		return err
	})
	st.StoreStats(store.Stats())
	if err != nil {
		return stats, err
	}

	st.Log("loaded triples", "read", stats.Read, "inserted", stats.Inserted)
	return stats, nil
}

func load(source Source, nodes *imap.NodeMap, store *hexastore.Store, opts Options, st *status.Status) (stats Stats, err error) {
	if err := source.Open(); err != nil {
		return stats, fmt.Errorf("failed to open source: %w", err)
	}
	defer func() {
		if e2 := source.Close(); e2 != nil {
			err = errors.Join(err, fmt.Errorf("failed to close source: %w", e2))
		}
	}()

	for {
		tok := source.Next()
		switch {
		case errors.Is(tok.Err, io.EOF):
			st.SetCT(stats.Read, stats.Read)
			return stats, nil
		case tok.Err != nil:
			return stats, fmt.Errorf("failed to read triple %d: %w", stats.Read+1, tok.Err)
		}

		stats.Read++

		triple, err := internalize(nodes, tok)
		if err != nil {
			return stats, err
		}
		if store.Insert(triple) {
			stats.Inserted++
		}

		if opts.shouldCompact(stats.Read) {
			if err := nodes.Compact(); err != nil {
				return stats, fmt.Errorf("failed to compact node map: %w", err)
			}
		}
	}
}

func internalize(nodes *imap.NodeMap, tok Token) (triple impl.Triple, err error) {
	if triple.Subject, err = nodes.Internalize(tok.Subject); err != nil {
		return triple, fmt.Errorf("failed to internalize subject: %w", err)
	}
	if triple.Predicate, err = nodes.Internalize(tok.Predicate); err != nil {
		return triple, fmt.Errorf("failed to internalize predicate: %w", err)
	}
	if triple.Object, err = nodes.Internalize(tok.Object); err != nil {
		return triple, fmt.Errorf("failed to internalize object: %w", err)
	}
	return triple, nil
}

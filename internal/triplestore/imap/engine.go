package imap

import (
	"fmt"
	"path/filepath"

	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
)

// Engine creates the storages backing a [NodeMap].
type Engine interface {
	Forward() (HashMap[impl.Label, impl.ID], error)
	Reverse() (HashMap[impl.ID, impl.Label], error)
}

var (
	_ Engine = MemoryEngine{}
	_ Engine = DiskEngine{}
)

// MemoryEngine keeps both directions of a node map in memory.
type MemoryEngine struct{}

func (MemoryEngine) Forward() (HashMap[impl.Label, impl.ID], error) {
	return NewMemory[impl.Label, impl.ID](0), nil
}

func (MemoryEngine) Reverse() (HashMap[impl.ID, impl.Label], error) {
	return NewMemory[impl.ID, impl.Label](0), nil
}

// DiskEngine keeps both directions of a node map in leveldb databases inside Path.
// Any previous content of the databases is removed.
type DiskEngine struct {
	Path string
}

func (de DiskEngine) Forward() (HashMap[impl.Label, impl.ID], error) {
	ds, err := NewDisk[impl.Label, impl.ID](filepath.Join(de.Path, "forward.leveldb"))
	if err != nil {
		return nil, fmt.Errorf("failed to create forward map: %w", err)
	}

	ds.MarshalKey = marshalLabel
	ds.UnmarshalKey = unmarshalLabel
	ds.MarshalValue = impl.MarshalID
	ds.UnmarshalValue = impl.UnmarshalID

	return ds, nil
}

func (de DiskEngine) Reverse() (HashMap[impl.ID, impl.Label], error) {
	ds, err := NewDisk[impl.ID, impl.Label](filepath.Join(de.Path, "reverse.leveldb"))
	if err != nil {
		return nil, fmt.Errorf("failed to create reverse map: %w", err)
	}

	ds.MarshalKey = impl.MarshalID
	ds.UnmarshalKey = impl.UnmarshalID
	ds.MarshalValue = marshalLabel
	ds.UnmarshalValue = unmarshalLabel

	return ds, nil
}

func marshalLabel(label impl.Label) ([]byte, error) {
	return []byte(label), nil
}

func unmarshalLabel(dest *impl.Label, src []byte) error {
	*dest = impl.Label(src)
	return nil
}

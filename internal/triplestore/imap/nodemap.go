// Package imap maps the labels of RDF terms to node ids and back.
package imap

import (
	"errors"
	"fmt"
	"sync"

	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
)

var (
	ErrClosed    = errors.New("map is closed")
	ErrUnknownID = errors.New("unknown node id")
)

// NodeMap holds forward and reverse mapping from labels to node ids.
//
// A NodeMap may be read concurrently; however any operations which change internal state are not safe to access concurrently.
// The zero NodeMap is not ready for use; it should be initialized using a call to [NodeMap.Reset].
type NodeMap struct {
	forward HashMap[impl.Label, impl.ID] // mapping from labels to their ids
	reverse HashMap[impl.ID, impl.Label] // mapping from ids back to their labels

	id impl.ID // last id handed out
}

// Reset resets this map to be empty, closing any previously opened storages.
func (mp *NodeMap) Reset(engine Engine) error {
	if err := mp.Close(); err != nil {
		return err
	}

	var err error

	mp.forward, err = engine.Forward()
	if err != nil {
		return err
	}

	mp.reverse, err = engine.Reverse()
	if err != nil {
		return errors.Join(err, mp.Close())
	}

	mp.id.Reset()
	return nil
}

// Internalize returns the id of the given label, creating a new id if the label is not yet known.
// Ids are handed out sequentially starting at 1.
func (mp *NodeMap) Internalize(label impl.Label) (impl.ID, error) {
	id, _, err := mp.InternalizeNew(label)
	return id, err
}

// InternalizeNew is like Internalize, but additionally reports if a new id was created.
func (mp *NodeMap) InternalizeNew(label impl.Label) (id impl.ID, created bool, err error) {
	if mp.forward == nil {
		return 0, false, ErrClosed
	}

	id, ok, err := mp.forward.Get(label)
	if err != nil {
		return 0, false, fmt.Errorf("failed to lookup label: %w", err)
	}
	if ok {
		return id, false, nil
	}

	id = mp.id.Inc()
	if err := mp.forward.Set(label, id); err != nil {
		return 0, false, fmt.Errorf("failed to store label: %w", err)
	}
	if err := mp.reverse.Set(id, label); err != nil {
		return 0, false, fmt.Errorf("failed to store id: %w", err)
	}
	return id, true, nil
}

// Get returns the id of the given label.
// If the label is not known, returns ok = false and does not modify the map.
func (mp *NodeMap) Get(label impl.Label) (id impl.ID, ok bool, err error) {
	if mp.forward == nil {
		return 0, false, ErrClosed
	}
	return mp.forward.Get(label)
}

// Externalize returns the label of the given id.
// If the id is not known, returns an error wrapping [ErrUnknownID].
func (mp *NodeMap) Externalize(id impl.ID) (impl.Label, error) {
	if mp.reverse == nil {
		return "", ErrClosed
	}

	label, ok, err := mp.reverse.Get(id)
	if err != nil {
		return "", fmt.Errorf("failed to lookup id: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownID, id)
	}
	return label, nil
}

// Count returns the number of labels in this map.
func (mp *NodeMap) Count() (uint64, error) {
	if mp.forward == nil {
		return 0, ErrClosed
	}
	return mp.forward.Count()
}

// Compact asks both storages to optimize their internal data structures.
func (mp *NodeMap) Compact() error {
	if mp.forward == nil {
		return ErrClosed
	}

	var errs [2]error

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		errs[0] = mp.forward.Compact()
	}()

	go func() {
		defer wg.Done()
		errs[1] = mp.reverse.Compact()
	}()

	wg.Wait()
	return errors.Join(errs[:]...)
}

// Close closes any storages related to this map.
//
// Calling close multiple times results in err = nil.
func (mp *NodeMap) Close() error {
	var errs [2]error

	if mp.forward != nil {
		errs[0] = mp.forward.Close()
		mp.forward = nil
	}
	if mp.reverse != nil {
		errs[1] = mp.reverse.Close()
		mp.reverse = nil
	}

	return errors.Join(errs[:]...)
}

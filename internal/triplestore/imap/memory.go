package imap

import "runtime"

// Memory is a [HashMap] backed by a go map.
type Memory[Key comparable, Value any] struct {
	mp map[Key]Value
}

// NewMemory creates a new memory storage with room for size elements.
func NewMemory[Key comparable, Value any](size int) *Memory[Key, Value] {
	return &Memory[Key, Value]{
		mp: make(map[Key]Value, size),
	}
}

// Compact is a no-op.
func (*Memory[Key, Value]) Compact() error {
	return nil
}

func (ims *Memory[Key, Value]) Set(key Key, value Value) error {
	if ims.mp == nil {
		return ErrClosed
	}

	ims.mp[key] = value
	return nil
}

// Get returns the given value if it exists.
func (ims *Memory[Key, Value]) Get(key Key) (Value, bool, error) {
	value, ok := ims.mp[key]
	return value, ok, nil
}

func (ims *Memory[Key, Value]) Has(key Key) (bool, error) {
	_, ok := ims.mp[key]
	return ok, nil
}

// Delete deletes the given key from this storage.
func (ims *Memory[Key, Value]) Delete(key Key) error {
	delete(ims.mp, key)
	return nil
}

// Iterate calls f for all entries in Storage.
// there is no guarantee on order.
func (ims *Memory[Key, Value]) Iterate(f func(Key, Value) error) error {
	for key, value := range ims.mp {
		if err := f(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Close closes this storage, deleting all values.
func (ims *Memory[Key, Value]) Close() error {
	ims.mp = nil
	runtime.GC() // re-claim all the memory if needed
	return nil
}

func (ims *Memory[Key, Value]) Count() (uint64, error) {
	return uint64(len(ims.mp)), nil
}

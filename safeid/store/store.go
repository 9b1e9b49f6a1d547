// Package store defines where peers keep the records they are asked to hold.
package store

import (
	"errors"

	"github.com/TheusHen/safeid/safeid/name"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Entry is a stored record as seen by the routing layer: its address, kind,
// optional owner and serialised bytes. The store does not interpret Payload.
type Entry struct {
	Name     name.Name
	TypeTag  uint64
	Owner    name.Name
	HasOwner bool
	Payload  []byte
}

// Clone returns a copy of e that shares no memory with it.
func (e Entry) Clone() Entry {
	e.Payload = append([]byte(nil), e.Payload...)
	return e
}

// Store is a name-addressed record store.
// Implementations can be backed by memory, disk, a DHT, etc.
type Store interface {
	Put(entry Entry) error
	Get(n name.Name) (Entry, error)
	List() ([]Entry, error)
}

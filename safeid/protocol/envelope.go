package protocol

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/TheusHen/safeid/safeid/name"
)

var ErrInvalidEnvelope = errors.New("protocol: invalid envelope")

// Envelope carries one serialised record between peers in PUT and VALUE
// frames. Payload is always the uncompressed record encoding.
type Envelope struct {
	TypeTag  uint64
	Name     name.Name
	Owner    name.Name
	HasOwner bool
	Payload  []byte
}

type wireEnvelope struct {
	_       struct{} `cbor:",toarray"`
	TypeTag uint64
	Name    []byte
	Owner   []byte
	RawSize uint32 // non-zero when Payload is an LZ4 block
	Payload []byte
}

func EncodeEnvelope(e Envelope) ([]byte, error) {
	w := wireEnvelope{
		TypeTag: e.TypeTag,
		Name:    e.Name.Slice(),
		Payload: e.Payload,
	}
	if block, ok := compressBlock(e.Payload); ok {
		w.RawSize, w.Payload = uint32(len(e.Payload)), block
	}
	if e.HasOwner {
		w.Owner = e.Owner.Slice()
	}
	return cbor.Marshal(w)
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	var w wireEnvelope
	if err := cbor.Unmarshal(b, &w); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	n, err := name.FromBytes(w.Name)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}
	e := Envelope{TypeTag: w.TypeTag, Name: n, Payload: w.Payload}
	if len(w.Owner) > 0 {
		owner, err := name.FromBytes(w.Owner)
		if err != nil {
			return Envelope{}, fmt.Errorf("%w: owner: %w", ErrInvalidEnvelope, err)
		}
		e.Owner, e.HasOwner = owner, true
	}
	if w.RawSize != 0 {
		e.Payload, err = uncompressBlock(w.Payload, w.RawSize)
		if err != nil {
			return Envelope{}, err
		}
	}
	return e, nil
}

// GET frames carry the raw 64-byte name being looked up.

func EncodeGet(n name.Name) []byte { return n.Slice() }

func DecodeGet(b []byte) (name.Name, error) {
	n, err := name.FromBytes(b)
	if err != nil {
		return name.Name{}, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}
	return n, nil
}

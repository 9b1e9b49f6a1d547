package record

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/TheusHen/safeid/safeid/keys"
	"github.com/TheusHen/safeid/safeid/name"
)

const (
	// TypeTag identifies AnMpid records to the routing layer.
	TypeTag uint64 = 103
	// WireTag is the CBOR tag written in front of an encoded AnMpid.
	WireTag uint64 = 5483001
)

// AnMpid is an anonymous message-identity record.
//
// Two records are equal when their public signing and encryption keys match;
// secret keys and the correlation name do not take part. Use Equal, the type
// is not comparable with ==.
type AnMpid struct {
	_ [0]func()

	keys            keys.KeyPairSet
	correlationName name.Name
}

func New(ks keys.KeyPairSet, correlationName name.Name) AnMpid {
	return AnMpid{keys: ks, correlationName: correlationName}
}

// Generate creates a record with fresh key pairs and a random correlation name.
func Generate() (AnMpid, error) {
	ks, err := keys.GenerateKeyPairSet()
	if err != nil {
		return AnMpid{}, err
	}
	n, err := name.Random()
	if err != nil {
		return AnMpid{}, err
	}
	return New(ks, n), nil
}

// GenerateFrom is Generate with an explicit randomness source.
func GenerateFrom(r io.Reader) (AnMpid, error) {
	ks, err := keys.GenerateKeyPairSetFrom(r)
	if err != nil {
		return AnMpid{}, err
	}
	n, err := name.RandomFrom(r)
	if err != nil {
		return AnMpid{}, err
	}
	return New(ks, n), nil
}

func (a AnMpid) PublicKeys() (keys.SigningPublicKey, keys.EncryptionPublicKey) {
	return a.keys.PublicKeys()
}

// SecretKeys exposes the secret halves for signing and decryption. They must
// not be serialised anywhere except through Encode.
func (a AnMpid) SecretKeys() (keys.SigningSecretKey, keys.EncryptionSecretKey) {
	return a.keys.SecretKeys()
}

func (a AnMpid) KeyPairSet() keys.KeyPairSet { return a.keys }

func (a AnMpid) CorrelationName() name.Name { return a.correlationName }

// Address is recomputed from the public keys on every call.
func (a AnMpid) Address() name.Name {
	return name.Derive(a.keys.PublicKeys())
}

func (a AnMpid) Equal(other AnMpid) bool {
	sp, ep := a.keys.PublicKeys()
	osp, oep := other.keys.PublicKeys()
	return sp == osp && ep == oep
}

// Clone returns an independent copy; no key bytes are shared with a.
func (a AnMpid) Clone() AnMpid {
	return New(a.keys, a.correlationName)
}

func (a AnMpid) TypeTag() uint64 { return TypeTag }

func (a AnMpid) SerialisedBytes() ([]byte, error) { return Encode(a) }

// Owner is the correlation name; an AnMpid always has one.
func (a AnMpid) Owner() (name.Name, bool) { return a.correlationName, true }

func (a AnMpid) String() string {
	return fmt.Sprintf("AnMpid(address: %s, owner: %s)", a.Address().Short(), a.correlationName.Short())
}

// LogValue keeps secret keys out of structured logs.
func (a AnMpid) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("address", a.Address().Short()),
		slog.String("owner", a.correlationName.Short()),
	)
}

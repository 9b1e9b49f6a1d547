// Package name defines the 64-byte names used to address records on the network.
package name

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"io"

	"github.com/mr-tron/base58"

	"github.com/TheusHen/safeid/safeid/keys"
)

const Size = sha512.Size

var ErrInvalidEncoding = errors.New("name: invalid encoding")

// Name is a network address or an opaque correlation identifier.
type Name [Size]byte

// Derive returns SHA-512(signingPublic || encryptionPublic).
// Anyone holding the public halves can recompute it, which makes the
// resulting address self-certifying.
func Derive(signingPublic keys.SigningPublicKey, encryptionPublic keys.EncryptionPublicKey) Name {
	buf := make([]byte, 0, keys.SigningPublicKeySize+keys.EncryptionPublicKeySize)
	buf = append(buf, signingPublic[:]...)
	buf = append(buf, encryptionPublic[:]...)
	return Name(sha512.Sum512(buf))
}

func Random() (Name, error) {
	return RandomFrom(rand.Reader)
}

// RandomFrom fills every byte of a new Name from r.
func RandomFrom(r io.Reader) (Name, error) {
	var n Name
	if _, err := io.ReadFull(r, n[:]); err != nil {
		return Name{}, err
	}
	return n, nil
}

func FromBytes(b []byte) (Name, error) {
	var n Name
	if err := keys.CheckSize("name", b, Size); err != nil {
		return Name{}, err
	}
	copy(n[:], b)
	return n, nil
}

func ParseHex(s string) (Name, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Name{}, ErrInvalidEncoding
	}
	return FromBytes(b)
}

func ParseBase58(s string) (Name, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Name{}, ErrInvalidEncoding
	}
	return FromBytes(b)
}

func (n Name) Slice() []byte { return n[:] }

func (n Name) IsZero() bool { return n == Name{} }

func (n Name) String() string { return hex.EncodeToString(n[:]) }

func (n Name) Base58() string { return base58.Encode(n[:]) }

// Short returns the first 8 bytes in hex, for logs.
func (n Name) Short() string { return hex.EncodeToString(n[:8]) }

package keys

import (
	"crypto/ed25519"
	"crypto/subtle"
)

const (
	SigningPublicKeySize    = ed25519.PublicKeySize
	SigningSecretKeySize    = ed25519.PrivateKeySize
	EncryptionPublicKeySize = 32
	EncryptionSecretKeySize = 32
)

// SigningPublicKey is an Ed25519 verification key.
type SigningPublicKey [SigningPublicKeySize]byte

// SigningSecretKey is an Ed25519 private key (seed || public key).
type SigningSecretKey [SigningSecretKeySize]byte

// EncryptionPublicKey is a Curve25519 public key for NaCl box.
type EncryptionPublicKey [EncryptionPublicKeySize]byte

// EncryptionSecretKey is a Curve25519 secret key for NaCl box.
type EncryptionSecretKey [EncryptionSecretKeySize]byte

func (k SigningPublicKey) Slice() []byte    { return k[:] }
func (k SigningSecretKey) Slice() []byte    { return k[:] }
func (k EncryptionPublicKey) Slice() []byte { return k[:] }
func (k EncryptionSecretKey) Slice() []byte { return k[:] }

// Equal compares secret keys in constant time.
func (k SigningSecretKey) Equal(o SigningSecretKey) bool {
	return subtle.ConstantTimeCompare(k[:], o[:]) == 1
}

// Equal compares secret keys in constant time.
func (k EncryptionSecretKey) Equal(o EncryptionSecretKey) bool {
	return subtle.ConstantTimeCompare(k[:], o[:]) == 1
}

func SigningPublicKeyFromBytes(b []byte) (SigningPublicKey, error) {
	var out SigningPublicKey
	if err := CheckSize("signing public key", b, len(out)); err != nil {
		return SigningPublicKey{}, err
	}
	copy(out[:], b)
	return out, nil
}

func SigningSecretKeyFromBytes(b []byte) (SigningSecretKey, error) {
	var out SigningSecretKey
	if err := CheckSize("signing secret key", b, len(out)); err != nil {
		return SigningSecretKey{}, err
	}
	copy(out[:], b)
	return out, nil
}

func EncryptionPublicKeyFromBytes(b []byte) (EncryptionPublicKey, error) {
	var out EncryptionPublicKey
	if err := CheckSize("encryption public key", b, len(out)); err != nil {
		return EncryptionPublicKey{}, err
	}
	copy(out[:], b)
	return out, nil
}

func EncryptionSecretKeyFromBytes(b []byte) (EncryptionSecretKey, error) {
	var out EncryptionSecretKey
	if err := CheckSize("encryption secret key", b, len(out)); err != nil {
		return EncryptionSecretKey{}, err
	}
	copy(out[:], b)
	return out, nil
}

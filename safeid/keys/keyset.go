package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"
)

// KeyPairSet holds one signing key pair and one encryption key pair.
// It is immutable; accessors hand out copies.
type KeyPairSet struct {
	signingPublic    SigningPublicKey
	signingSecret    SigningSecretKey
	encryptionPublic EncryptionPublicKey
	encryptionSecret EncryptionSecretKey
}

func NewKeyPairSet(signingPublic SigningPublicKey, signingSecret SigningSecretKey,
	encryptionPublic EncryptionPublicKey, encryptionSecret EncryptionSecretKey) KeyPairSet {
	return KeyPairSet{
		signingPublic:    signingPublic,
		signingSecret:    signingSecret,
		encryptionPublic: encryptionPublic,
		encryptionSecret: encryptionSecret,
	}
}

func GenerateKeyPairSet() (KeyPairSet, error) {
	return GenerateKeyPairSetFrom(rand.Reader)
}

// GenerateKeyPairSetFrom draws both key pairs from r.
func GenerateKeyPairSetFrom(r io.Reader) (KeyPairSet, error) {
	pub, priv, err := ed25519.GenerateKey(r)
	if err != nil {
		return KeyPairSet{}, err
	}
	encPub, encSec, err := box.GenerateKey(r)
	if err != nil {
		return KeyPairSet{}, err
	}
	var ks KeyPairSet
	copy(ks.signingPublic[:], pub)
	copy(ks.signingSecret[:], priv)
	ks.encryptionPublic = *encPub
	ks.encryptionSecret = *encSec
	return ks, nil
}

func (ks KeyPairSet) SigningPublic() SigningPublicKey       { return ks.signingPublic }
func (ks KeyPairSet) SigningSecret() SigningSecretKey       { return ks.signingSecret }
func (ks KeyPairSet) EncryptionPublic() EncryptionPublicKey { return ks.encryptionPublic }
func (ks KeyPairSet) EncryptionSecret() EncryptionSecretKey { return ks.encryptionSecret }

func (ks KeyPairSet) PublicKeys() (SigningPublicKey, EncryptionPublicKey) {
	return ks.signingPublic, ks.encryptionPublic
}

func (ks KeyPairSet) SecretKeys() (SigningSecretKey, EncryptionSecretKey) {
	return ks.signingSecret, ks.encryptionSecret
}

// Validate checks that each secret key is the one behind its public key.
// Only the holder of the real secrets can produce a set that passes.
func (ks KeyPairSet) Validate() error {
	priv := ed25519.NewKeyFromSeed(ks.signingSecret[:ed25519.SeedSize])
	if subtle.ConstantTimeCompare(priv, ks.signingSecret[:]) != 1 {
		return fmt.Errorf("%w: signing", ErrKeyMismatch)
	}
	pub, err := curve25519.X25519(ks.encryptionSecret[:], curve25519.Basepoint)
	if err != nil || subtle.ConstantTimeCompare(pub, ks.encryptionPublic[:]) != 1 {
		return fmt.Errorf("%w: encryption", ErrKeyMismatch)
	}
	return nil
}

func (ks KeyPairSet) Sign(message []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(ks.signingSecret[:]), message)
}

func Verify(publicKey SigningPublicKey, message, signature []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(publicKey[:]), message, signature)
}

// SealTo encrypts message for the holder of recipient's secret key.
// The sender stays anonymous.
func SealTo(recipient EncryptionPublicKey, message []byte) ([]byte, error) {
	pub := [EncryptionPublicKeySize]byte(recipient)
	out, err := box.SealAnonymous(nil, message, &pub, rand.Reader)
	if err != nil {
		return nil, ErrSealFailed
	}
	return out, nil
}

// Open decrypts a message produced by SealTo for this key set.
func (ks KeyPairSet) Open(sealed []byte) ([]byte, error) {
	pub := [EncryptionPublicKeySize]byte(ks.encryptionPublic)
	sec := [EncryptionSecretKeySize]byte(ks.encryptionSecret)
	out, ok := box.OpenAnonymous(nil, sealed, &pub, &sec)
	if !ok {
		return nil, ErrOpenFailed
	}
	return out, nil
}

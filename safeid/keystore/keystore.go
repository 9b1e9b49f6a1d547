// Package keystore keeps an encoded identity record on disk, sealed under a
// passphrase.
//
// The file is a JSON blob holding Argon2id parameters, a random salt and
// nonce, and the ChaCha20-Poly1305 ciphertext of record.Encode. The record's
// address is stored in the clear and bound as associated data, so a file
// cannot be relabelled without failing to open.
package keystore

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/TheusHen/safeid/internal/logger"
	"github.com/TheusHen/safeid/safeid/name"
	"github.com/TheusHen/safeid/safeid/record"
)

const (
	formatVersion = 1
	saltSize      = 16

	// Open reads the cost parameters from the file before it can
	// authenticate anything, so they are bounded.
	maxMemoryKiB = 1 << 20 // 1 GiB
	maxTime      = 16
)

var (
	ErrWrongPassphrase    = errors.New("keystore: wrong passphrase or corrupted file")
	ErrUnsupportedVersion = errors.New("keystore: unsupported format version")
	ErrEmptyPassphrase    = errors.New("keystore: empty passphrase")
	ErrInvalidParams      = errors.New("keystore: invalid argon2 parameters")
)

var log = logger.Logger("keystore")

// Params are the Argon2id cost parameters.
type Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

func DefaultParams() Params {
	return Params{Time: 1, MemoryKiB: 64 * 1024, Threads: 4}
}

func (p Params) validate() error {
	if p.Time == 0 || p.Time > maxTime || p.Threads == 0 || p.MemoryKiB < 8*uint32(p.Threads) || p.MemoryKiB > maxMemoryKiB {
		return ErrInvalidParams
	}
	return nil
}

type blob struct {
	V         int    `json:"v"`
	Address   string `json:"address"`
	Salt      []byte `json:"salt"`
	Time      uint32 `json:"argon2_t"`
	MemoryKiB uint32 `json:"argon2_m"`
	Threads   uint8  `json:"argon2_p"`
	Nonce     []byte `json:"nonce"`
	Cipher    []byte `json:"cipher"`
}

// Seal encrypts a under passphrase.
func Seal(passphrase string, a record.AnMpid, p Params) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	raw, err := record.Encode(a)
	if err != nil {
		return nil, err
	}
	defer wipe(raw)

	b := blob{
		V:         formatVersion,
		Address:   a.Address().String(),
		Salt:      make([]byte, saltSize),
		Time:      p.Time,
		MemoryKiB: p.MemoryKiB,
		Threads:   p.Threads,
		Nonce:     make([]byte, chacha20poly1305.NonceSize),
	}
	if _, err := rand.Read(b.Salt); err != nil {
		return nil, err
	}
	if _, err := rand.Read(b.Nonce); err != nil {
		return nil, err
	}

	kek := deriveKEK(passphrase, b.Salt, p)
	defer wipe(kek)
	aead, err := chacha20poly1305.New(kek)
	if err != nil {
		return nil, err
	}
	b.Cipher = aead.Seal(nil, b.Nonce, raw, []byte(b.Address))
	return json.Marshal(b)
}

// Open reverses Seal and checks the record still derives the stored address.
func Open(passphrase string, data []byte) (record.AnMpid, error) {
	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		return record.AnMpid{}, fmt.Errorf("keystore: %w", err)
	}
	if b.V != formatVersion {
		return record.AnMpid{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, b.V)
	}
	address, err := name.ParseHex(b.Address)
	if err != nil {
		return record.AnMpid{}, fmt.Errorf("keystore: address: %w", err)
	}

	params := Params{Time: b.Time, MemoryKiB: b.MemoryKiB, Threads: b.Threads}
	if err := params.validate(); err != nil {
		return record.AnMpid{}, err
	}
	if len(b.Salt) != saltSize {
		return record.AnMpid{}, ErrWrongPassphrase
	}

	kek := deriveKEK(passphrase, b.Salt, params)
	defer wipe(kek)
	aead, err := chacha20poly1305.New(kek)
	if err != nil {
		return record.AnMpid{}, err
	}
	if len(b.Nonce) != aead.NonceSize() {
		return record.AnMpid{}, ErrWrongPassphrase
	}
	raw, err := aead.Open(nil, b.Nonce, b.Cipher, []byte(b.Address))
	if err != nil {
		return record.AnMpid{}, ErrWrongPassphrase
	}
	defer wipe(raw)

	a, err := record.Decode(raw)
	if err != nil {
		return record.AnMpid{}, err
	}
	if a.Address() != address {
		return record.AnMpid{}, record.ErrAddressMismatch
	}
	return a, nil
}

// Save seals a and writes it to path with owner-only permissions.
func Save(path, passphrase string, a record.AnMpid, p Params) error {
	data, err := Seal(passphrase, a, p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	log.Info("record saved", "path", path, "record", a)
	return nil
}

func Load(path, passphrase string) (record.AnMpid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return record.AnMpid{}, err
	}
	return Open(passphrase, data)
}

func deriveKEK(passphrase string, salt []byte, p Params) []byte {
	return argon2.IDKey([]byte(passphrase), salt, p.Time, p.MemoryKiB, p.Threads, chacha20poly1305.KeySize)
}

// wipe overwrites b with zeros.
func wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	zero := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zero)
}

package record

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"go.uber.org/multierr"

	"github.com/TheusHen/safeid/internal/logger"
	"github.com/TheusHen/safeid/safeid/keys"
	"github.com/TheusHen/safeid/safeid/name"
)

var log = logger.Logger("record")

// wireName is the name sub-structure: a one-element array.
type wireName struct {
	_  struct{} `cbor:",toarray"`
	ID []byte
}

type wireRecord struct {
	_                struct{} `cbor:",toarray"`
	SigningPublic    []byte
	EncryptionPublic []byte
	SigningSecret    []byte
	EncryptionSecret []byte
	Name             wireName
}

// Encode returns the canonical encoding of a, secret keys included.
func Encode(a AnMpid) ([]byte, error) {
	sp, ep := a.keys.PublicKeys()
	ss, es := a.keys.SecretKeys()
	n := a.correlationName
	w := wireRecord{
		SigningPublic:    sp[:],
		EncryptionPublic: ep[:],
		SigningSecret:    ss[:],
		EncryptionSecret: es[:],
		Name:             wireName{ID: n[:]},
	}
	return cbor.Marshal(cbor.Tag{Number: WireTag, Content: w})
}

// Decode parses an encoded AnMpid. Every key and the name must have their
// exact fixed length; otherwise a *MalformedRecordError listing each failing
// field is returned and no record is produced.
func Decode(data []byte) (AnMpid, error) {
	var raw cbor.RawTag
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return AnMpid{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	if raw.Number != WireTag {
		return AnMpid{}, fmt.Errorf("%w: %w: %d", ErrMalformedRecord, ErrUnexpectedTag, raw.Number)
	}
	var w wireRecord
	if err := cbor.Unmarshal(raw.Content, &w); err != nil {
		return AnMpid{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	var errs error
	sp, err := keys.SigningPublicKeyFromBytes(w.SigningPublic)
	errs = multierr.Append(errs, err)
	ep, err := keys.EncryptionPublicKeyFromBytes(w.EncryptionPublic)
	errs = multierr.Append(errs, err)
	ss, err := keys.SigningSecretKeyFromBytes(w.SigningSecret)
	errs = multierr.Append(errs, err)
	es, err := keys.EncryptionSecretKeyFromBytes(w.EncryptionSecret)
	errs = multierr.Append(errs, err)
	n, err := name.FromBytes(w.Name.ID)
	errs = multierr.Append(errs, err)
	if errs != nil {
		log.Debug("rejecting malformed record", "failures", len(multierr.Errors(errs)))
		return AnMpid{}, newMalformedRecordError(errs)
	}

	return New(keys.NewKeyPairSet(sp, ss, ep, es), n), nil
}

// VerifyPayload decodes payload and checks that it is addressed at address
// and that its secret keys belong to its public keys, so the owner cannot be
// rewritten by anyone who only knows the public halves.
func VerifyPayload(payload []byte, address name.Name) error {
	a, err := Decode(payload)
	if err != nil {
		return err
	}
	if a.Address() != address {
		return ErrAddressMismatch
	}
	return a.keys.Validate()
}

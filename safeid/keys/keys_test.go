package keys

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBytesExactLength(t *testing.T) {
	ks, err := GenerateKeyPairSet()
	require.NoError(t, err)

	sp, err := SigningPublicKeyFromBytes(ks.SigningPublic().Slice())
	require.NoError(t, err)
	assert.Equal(t, ks.SigningPublic(), sp)

	ss, err := SigningSecretKeyFromBytes(ks.SigningSecret().Slice())
	require.NoError(t, err)
	assert.True(t, ss.Equal(ks.SigningSecret()))

	ep, err := EncryptionPublicKeyFromBytes(ks.EncryptionPublic().Slice())
	require.NoError(t, err)
	assert.Equal(t, ks.EncryptionPublic(), ep)

	es, err := EncryptionSecretKeyFromBytes(ks.EncryptionSecret().Slice())
	require.NoError(t, err)
	assert.True(t, es.Equal(ks.EncryptionSecret()))
}

func TestFromBytesSizeMismatch(t *testing.T) {
	cases := []struct {
		name     string
		convert  func([]byte) error
		expected int
	}{
		{"signing public", func(b []byte) error { _, err := SigningPublicKeyFromBytes(b); return err }, SigningPublicKeySize},
		{"signing secret", func(b []byte) error { _, err := SigningSecretKeyFromBytes(b); return err }, SigningSecretKeySize},
		{"encryption public", func(b []byte) error { _, err := EncryptionPublicKeyFromBytes(b); return err }, EncryptionPublicKeySize},
		{"encryption secret", func(b []byte) error { _, err := EncryptionSecretKeyFromBytes(b); return err }, EncryptionSecretKeySize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, n := range []int{0, tc.expected - 1, tc.expected + 1} {
				err := tc.convert(make([]byte, n))
				var sizeErr *SizeMismatchError
				require.True(t, errors.As(err, &sizeErr), "len %d", n)
				assert.Equal(t, tc.expected, sizeErr.Expected)
				assert.Equal(t, n, sizeErr.Actual)
			}
		})
	}
}

func TestGenerateKeyPairSetDistinct(t *testing.T) {
	a, err := GenerateKeyPairSet()
	require.NoError(t, err)
	b, err := GenerateKeyPairSet()
	require.NoError(t, err)

	assert.NotEqual(t, a.SigningPublic(), b.SigningPublic())
	assert.NotEqual(t, a.EncryptionPublic(), b.EncryptionPublic())
	// Ed25519 private keys embed the public key in their second half.
	assert.Equal(t, a.SigningPublic().Slice(), a.SigningSecret().Slice()[32:])
}

func TestGenerateKeyPairSetFromShortReader(t *testing.T) {
	_, err := GenerateKeyPairSetFrom(bytes.NewReader(make([]byte, 8)))
	require.Error(t, err)
}

func TestSignVerify(t *testing.T) {
	ks, err := GenerateKeyPairSet()
	require.NoError(t, err)

	msg := []byte("hello")
	sig := ks.Sign(msg)
	require.NotEmpty(t, sig)
	assert.True(t, Verify(ks.SigningPublic(), msg, sig))
	assert.False(t, Verify(ks.SigningPublic(), []byte("tampered"), sig))

	other, err := GenerateKeyPairSet()
	require.NoError(t, err)
	assert.False(t, Verify(other.SigningPublic(), msg, sig))
}

func TestSealOpen(t *testing.T) {
	ks, err := GenerateKeyPairSet()
	require.NoError(t, err)

	sealed, err := SealTo(ks.EncryptionPublic(), []byte("for your eyes"))
	require.NoError(t, err)

	pt, err := ks.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, []byte("for your eyes"), pt)

	other, err := GenerateKeyPairSet()
	require.NoError(t, err)
	_, err = other.Open(sealed)
	assert.ErrorIs(t, err, ErrOpenFailed)
}

func TestAccessorsReturnCopies(t *testing.T) {
	ks, err := GenerateKeyPairSet()
	require.NoError(t, err)

	sec := ks.SigningSecret()
	sec[0] ^= 0xff
	assert.False(t, sec.Equal(ks.SigningSecret()))

	sp, _ := ks.PublicKeys()
	sp[0] ^= 0xff
	assert.NotEqual(t, sp, ks.SigningPublic())
}

func TestValidate(t *testing.T) {
	ks, err := GenerateKeyPairSet()
	require.NoError(t, err)
	require.NoError(t, ks.Validate())

	other, err := GenerateKeyPairSet()
	require.NoError(t, err)

	sp, ep := ks.PublicKeys()
	ss, es := ks.SecretKeys()
	oss, oes := other.SecretKeys()

	// A secret key whose embedded public half was patched to match.
	forged := oss
	copy(forged[32:], sp[:])

	cases := map[string]KeyPairSet{
		"foreign signing secret":    NewKeyPairSet(sp, oss, ep, es),
		"patched signing secret":    NewKeyPairSet(sp, forged, ep, es),
		"foreign encryption secret": NewKeyPairSet(sp, ss, ep, oes),
		"zero secrets":              NewKeyPairSet(sp, SigningSecretKey{}, ep, EncryptionSecretKey{}),
	}
	for label, bad := range cases {
		t.Run(label, func(t *testing.T) {
			assert.ErrorIs(t, bad.Validate(), ErrKeyMismatch)
		})
	}
}

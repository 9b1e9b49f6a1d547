package record

import (
	"bytes"
	"encoding/hex"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheusHen/safeid/safeid/keys"
	"github.com/TheusHen/safeid/safeid/name"
)

func mustGenerate(t *testing.T) AnMpid {
	t.Helper()
	a, err := Generate()
	require.NoError(t, err)
	return a
}

func TestAccessors(t *testing.T) {
	ks, err := keys.GenerateKeyPairSet()
	require.NoError(t, err)
	n := name.Name{3}

	a := New(ks, n)
	sp, ep := a.PublicKeys()
	ss, es := a.SecretKeys()
	assert.Equal(t, ks.SigningPublic(), sp)
	assert.Equal(t, ks.EncryptionPublic(), ep)
	assert.True(t, ks.SigningSecret().Equal(ss))
	assert.True(t, ks.EncryptionSecret().Equal(es))
	assert.Equal(t, n, a.CorrelationName())
	assert.Equal(t, ks, a.KeyPairSet())
}

func TestAddressDerivedFromPublicKeys(t *testing.T) {
	a := mustGenerate(t)
	sp, ep := a.PublicKeys()
	assert.Equal(t, name.Derive(sp, ep), a.Address())
	assert.Equal(t, a.Address(), a.Address())
}

func TestAddressIgnoresNameAndSecrets(t *testing.T) {
	a := mustGenerate(t)
	sp, ep := a.PublicKeys()

	var ss keys.SigningSecretKey
	var es keys.EncryptionSecretKey
	b := New(keys.NewKeyPairSet(sp, ss, ep, es), name.Name{9})

	assert.Equal(t, a.Address(), b.Address())
}

func TestAddressChangesWithPublicKeys(t *testing.T) {
	a := mustGenerate(t)
	sp, ep := a.PublicKeys()
	ss, es := a.SecretKeys()

	sp[len(sp)-1] ^= 0x01
	b := New(keys.NewKeyPairSet(sp, ss, ep, es), a.CorrelationName())
	assert.NotEqual(t, a.Address(), b.Address())

	sp, _ = a.PublicKeys()
	ep[0] ^= 0x80
	c := New(keys.NewKeyPairSet(sp, ss, ep, es), a.CorrelationName())
	assert.NotEqual(t, a.Address(), c.Address())
}

func TestEqualIgnoresCorrelationName(t *testing.T) {
	ks, err := keys.GenerateKeyPairSet()
	require.NoError(t, err)
	other, err := keys.GenerateKeyPairSet()
	require.NoError(t, err)

	assert.True(t, New(ks, name.Name{1}).Equal(New(ks, name.Name{2})))
	assert.False(t, New(ks, name.Name{1}).Equal(New(other, name.Name{1})))
}

func TestCloneIsIndependent(t *testing.T) {
	a := mustGenerate(t)
	b := a.Clone()
	require.True(t, a.Equal(b))
	assert.Equal(t, a.CorrelationName(), b.CorrelationName())

	// Secret keys come back as copies; scribbling on one leaves both records intact.
	ss, _ := b.SecretKeys()
	for i := range ss {
		ss[i] = 0
	}
	origSS, _ := a.SecretKeys()
	cloneSS, _ := b.SecretKeys()
	assert.True(t, origSS.Equal(cloneSS))
	assert.False(t, origSS.Equal(ss))
}

func TestOwnerAndTypeTag(t *testing.T) {
	a := mustGenerate(t)
	owner, ok := a.Owner()
	require.True(t, ok)
	assert.Equal(t, a.CorrelationName(), owner)
	assert.Equal(t, uint64(103), a.TypeTag())

	enc, err := a.SerialisedBytes()
	require.NoError(t, err)
	direct, err := Encode(a)
	require.NoError(t, err)
	assert.Equal(t, direct, enc)
}

func TestStringAndLogValueHideSecrets(t *testing.T) {
	a := mustGenerate(t)
	ss, es := a.SecretKeys()

	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Info("record", "rec", a)

	for _, out := range []string{a.String(), buf.String()} {
		assert.Contains(t, out, a.Address().Short())
		assert.NotContains(t, strings.ToLower(out), hex.EncodeToString(ss[:8]))
		assert.NotContains(t, strings.ToLower(out), hex.EncodeToString(es[:8]))
	}
}

func TestGenerateFromDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 4096)
	a, err := GenerateFrom(bytes.NewReader(seed))
	require.NoError(t, err)
	b, err := GenerateFrom(bytes.NewReader(seed))
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.CorrelationName(), b.CorrelationName())

	_, err = GenerateFrom(bytes.NewReader(seed[:40]))
	require.Error(t, err)
}

package protocol

import (
	"bytes"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheusHen/safeid/safeid/name"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	n, err := name.Random()
	require.NoError(t, err)
	owner, err := name.Random()
	require.NoError(t, err)

	cases := map[string]Envelope{
		"with owner":   {TypeTag: 103, Name: n, Owner: owner, HasOwner: true, Payload: []byte("record bytes")},
		"no owner":     {TypeTag: 7, Name: n, Payload: []byte{1, 2, 3}},
		"compressible": {TypeTag: 103, Name: n, Payload: bytes.Repeat([]byte("safeid"), 512)},
	}
	for label, in := range cases {
		t.Run(label, func(t *testing.T) {
			enc, err := EncodeEnvelope(in)
			require.NoError(t, err)
			out, err := DecodeEnvelope(enc)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}

func TestEnvelopeCompressesOnlyWhenSmaller(t *testing.T) {
	n, _ := name.Random()
	big := bytes.Repeat([]byte{0x42}, 4096)
	enc, err := EncodeEnvelope(Envelope{Name: n, Payload: big})
	require.NoError(t, err)
	assert.Less(t, len(enc), len(big))

	var w wireEnvelope
	require.NoError(t, cbor.Unmarshal(enc, &w))
	assert.Equal(t, uint32(len(big)), w.RawSize)

	random, _ := name.Random()
	enc, err = EncodeEnvelope(Envelope{Name: n, Payload: random.Slice()})
	require.NoError(t, err)
	require.NoError(t, cbor.Unmarshal(enc, &w))
	assert.Zero(t, w.RawSize)
	assert.Equal(t, random.Slice(), w.Payload)
}

func TestDecodeEnvelopeRejectsBadNames(t *testing.T) {
	short, err := cbor.Marshal(wireEnvelope{Name: []byte{1, 2}})
	require.NoError(t, err)
	_, err = DecodeEnvelope(short)
	assert.ErrorIs(t, err, ErrInvalidEnvelope)

	n, _ := name.Random()
	badOwner, err := cbor.Marshal(wireEnvelope{Name: n.Slice(), Owner: []byte{1}})
	require.NoError(t, err)
	_, err = DecodeEnvelope(badOwner)
	assert.ErrorIs(t, err, ErrInvalidEnvelope)

	_, err = DecodeEnvelope([]byte{0xff})
	assert.ErrorIs(t, err, ErrInvalidEnvelope)
}

func TestGetRoundTrip(t *testing.T) {
	n, _ := name.Random()
	got, err := DecodeGet(EncodeGet(n))
	require.NoError(t, err)
	assert.Equal(t, n, got)

	_, err = DecodeGet([]byte("short"))
	assert.ErrorIs(t, err, ErrInvalidEnvelope)
}

func TestDecodeEnvelopeRejectsBadBlocks(t *testing.T) {
	n, _ := name.Random()
	block, ok := compressBlock(bytes.Repeat([]byte{0}, 4096))
	require.True(t, ok)

	cases := map[string]wireEnvelope{
		"short size":  {Name: n.Slice(), RawSize: 100, Payload: block},
		"oversize":    {Name: n.Slice(), RawSize: MaxFramePayload + 1, Payload: block},
		"not a block": {Name: n.Slice(), RawSize: 16, Payload: []byte{0xff, 0xff, 0xff}},
	}
	for label, w := range cases {
		t.Run(label, func(t *testing.T) {
			enc, err := cbor.Marshal(w)
			require.NoError(t, err)
			_, err = DecodeEnvelope(enc)
			assert.ErrorIs(t, err, ErrDecompressionFailed)
		})
	}
}

func TestCompressBlockSkipsIncompressible(t *testing.T) {
	_, ok := compressBlock(nil)
	assert.False(t, ok)

	random, _ := name.Random()
	out, ok := compressBlock(random.Slice())
	assert.False(t, ok)
	assert.Equal(t, random.Slice(), out)
}

package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeShortString(t *testing.T) {
	h, err := NewHashFromStr("0x1")
	require.NoError(t, err)
	expected := Hash{}
	expected[HashSize-1] = 1
	assert.Equal(t, expected, *h)
	assert.Equal(t, "0000000000000000000000000000000000000000000000000000000000000001", h.String())
}

func TestDecodeTooLong(t *testing.T) {
	_, err := NewHashFromStr("00" + ZeroHash.String())
	assert.Equal(t, ErrHashStrSize, err)
}

func TestTextRoundTrip(t *testing.T) {
	h := HashH([]byte("cell"))
	text, err := h.MarshalText()
	require.NoError(t, err)

	var decoded Hash
	require.NoError(t, decoded.UnmarshalText(text))
	assert.True(t, h.IsEqual(&decoded))
}

func TestHashFuncs(t *testing.T) {
	assert.Equal(t, "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8",
		HashH(nil).String())
	assert.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		Keccak256H(nil).String())
	assert.NotEqual(t, HashH(nil), Blake256H(nil))

	a, b := HashH([]byte("a")), HashH([]byte("b"))
	assert.Equal(t, HashH(append(a.CloneBytes(), b[:]...)), HashMerge(&a, &b))
	assert.NotEqual(t, HashMerge(&a, &b), HashMerge(&b, &a))
}

func TestSetBytesLength(t *testing.T) {
	var h Hash
	assert.Error(t, h.SetBytes([]byte{1, 2, 3}))
	assert.True(t, h.IsZero())
}

package serialization

import (
	"bytes"
	"testing"

	"github.com/Qitmeer/cellverify/common/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteElements(t *testing.T) {
	var buf bytes.Buffer
	h := hash.MustHexToHash("0x1")
	err := WriteElements(&buf, uint8(7), uint32(1), uint64(2), true, h, []byte{0xaa, 0xbb})
	require.NoError(t, err)

	b := buf.Bytes()
	assert.Equal(t, 1+4+8+1+hash.HashSize+VarBytesSize(2), len(b))
	assert.Equal(t, byte(7), b[0])
	assert.Equal(t, []byte{1, 0, 0, 0}, b[1:5])
	assert.Equal(t, []byte{2, 0, 0, 0, 0, 0, 0, 0}, b[5:13])
	assert.Equal(t, byte(1), b[13])
	assert.Equal(t, []byte{2, 0, 0, 0, 0xaa, 0xbb}, b[len(b)-6:])
}

func TestWriteUnsupported(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteElements(&buf, "string"))
}

package binary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWrite(t *testing.T) {
	data := make([]byte, 13)
	WriteUint8(9, data, 0)
	WriteUint64LittleEndian(100_000_000, data, 1)
	data[9], data[10], data[11], data[12] = 0x02, 0x01, 0x00, 0x00

	assert.Equal(t, uint8(9), ReadUint8(data, 0))
	assert.Equal(t, uint64(100_000_000), ReadUint64LittleEndian(data, 1))
	assert.Equal(t, uint32(258), ReadUint32LittleEndian(data, 9))
	assert.Equal(t, []byte{0x00, 0xe1, 0xf5, 0x05, 0, 0, 0, 0}, data[1:9])
}

func TestCheckLength(t *testing.T) {
	data := make([]byte, 12)
	require.NoError(t, CheckLength(data, 4, 8))
	assert.ErrorIs(t, CheckLength(data, 5, 8), ErrShortBuffer)
	assert.ErrorIs(t, CheckLength(data, -1, 1), ErrShortBuffer)
}

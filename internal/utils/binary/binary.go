// internal/utils/binary/binary.go
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShortBuffer: данных меньше, чем требует раскладка.
var ErrShortBuffer = errors.New("buffer too short")

// CheckLength проверяет, что в data есть size байт начиная с offset.
func CheckLength(data []byte, offset, size int) error {
	if offset < 0 || size < 0 || len(data) < offset+size {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortBuffer, size, offset, len(data))
	}
	return nil
}

// ReadUint64LittleEndian reads a uint64 from a byte slice in little-endian format
func ReadUint64LittleEndian(data []byte, offset int) uint64 {
	return binary.LittleEndian.Uint64(data[offset : offset+8])
}

// ReadUint32LittleEndian reads a uint32 from a byte slice in little-endian format
func ReadUint32LittleEndian(data []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(data[offset : offset+4])
}

// ReadUint8 reads a uint8 (byte) from a byte slice
func ReadUint8(data []byte, offset int) uint8 {
	return data[offset]
}

// WriteUint64LittleEndian writes a uint64 to a byte slice in little-endian format
func WriteUint64LittleEndian(val uint64, data []byte, offset int) {
	binary.LittleEndian.PutUint64(data[offset:offset+8], val)
}

// WriteUint8 writes a uint8 (byte) to a byte slice
func WriteUint8(val uint8, data []byte, offset int) {
	data[offset] = val
}

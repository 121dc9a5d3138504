// Copyright (c) 2017-2018 The qitmeer developers

// Package serialization produces the canonical little-endian byte strings
// the chain hashes and measures. Values are written field by field; byte
// slices and vectors carry a uint32 length prefix.
package serialization

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Qitmeer/cellverify/common/hash"
)

var littleEndian = binary.LittleEndian

// WriteElements writes multiple items to w.  It is equivalent to multiple
// calls to writeElement.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		err := writeElement(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// writeElement writes the little endian representation of element to w.
func writeElement(w io.Writer, element interface{}) error {
	var err error
	switch e := element.(type) {
	case uint8:
		_, err = w.Write([]byte{e})

	case uint32:
		var buf [4]byte
		littleEndian.PutUint32(buf[:], e)
		_, err = w.Write(buf[:])

	case uint64:
		var buf [8]byte
		littleEndian.PutUint64(buf[:], e)
		_, err = w.Write(buf[:])

	case bool:
		if e {
			_, err = w.Write([]byte{0x01})
		} else {
			_, err = w.Write([]byte{0x00})
		}

	case hash.Hash:
		_, err = w.Write(e[:])

	case *hash.Hash:
		_, err = w.Write(e[:])

	// Proposal short id.
	case [10]byte:
		_, err = w.Write(e[:])

	case []byte:
		err = WriteVarBytes(w, e)

	default:
		return fmt.Errorf("serialization: unsupported element type %T", element)
	}
	return err
}

// WriteVarBytes writes a uint32 length prefix followed by b.
func WriteVarBytes(w io.Writer, b []byte) error {
	if err := WriteCount(w, len(b)); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// WriteCount writes the length prefix of a vector.
func WriteCount(w io.Writer, n int) error {
	return writeElement(w, uint32(n))
}

// VarBytesSize returns the serialized size of a byte slice of length n.
func VarBytesSize(n int) int {
	return CountSize + n
}

// CountSize is the size of a vector length prefix.
const CountSize = 4

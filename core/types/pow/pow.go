// Copyright (c) 2017-2020 The qitmeer developers
// license that can be found in the LICENSE file.

package pow

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/Qitmeer/cellverify/common/hash"
)

// PowMessageLength is the size of the message hashed by the hash based
// engines: nonce 8 bytes + pow hash 32 bytes.
const PowMessageLength = 8 + hash.HashSize

type PowType byte

const (
	//pow type enum
	DUMMY     PowType = 0
	BLAKE2B   PowType = 1
	KECCAK256 PowType = 2
	BLAKE256  PowType = 3
)

var PowMapString = map[PowType]string{
	DUMMY:     "dummy",
	BLAKE2B:   "blake2b",
	KECCAK256: "keccak256",
	BLAKE256:  "blake256",
}

func (t PowType) String() string {
	if name, ok := PowMapString[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown pow type %d", byte(t))
}

// ParsePowType returns the pow type named s.
func ParsePowType(s string) (PowType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range PowMapString {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown pow engine %q", s)
}

// PowHeader is the part of a header a pow engine looks at.
type PowHeader interface {
	// hash of the header serialized without its nonce
	PowHash() hash.Hash
	Nonce() uint64
	CompactTarget() uint32
}

// PowMessage builds the engine input: little endian nonce followed by the
// pow hash.
func PowMessage(powHash hash.Hash, nonce uint64) [PowMessageLength]byte {
	var msg [PowMessageLength]byte
	binary.LittleEndian.PutUint64(msg[:8], nonce)
	copy(msg[8:], powHash[:])
	return msg
}

// Engine verifies the proof of work of headers. The zero value is the dummy
// engine. Engines are stateless and safe for concurrent use.
type Engine struct {
	powType PowType
}

// NewEngine returns the engine for powType.
func NewEngine(powType PowType) Engine {
	return Engine{powType: powType}
}

func (e Engine) Type() PowType {
	return e.powType
}

// Verify reports whether header carries a valid proof of work.
func (e Engine) Verify(header PowHeader) bool {
	switch e.powType {
	case DUMMY:
		return true
	case BLAKE2B:
		return verifyHash(header, hash.HashH)
	case KECCAK256:
		return verifyHash(header, hash.Keccak256H)
	case BLAKE256:
		return verifyHash(header, hash.Blake256H)
	default:
		return false
	}
}

func verifyHash(header PowHeader, hashFunc func([]byte) hash.Hash) bool {
	target, overflow := CompactToTarget(header.CompactTarget())
	if target.IsZero() || overflow {
		return false
	}
	msg := PowMessage(header.PowHash(), header.Nonce())
	digest := hashFunc(msg[:])
	return HashToU256(&digest).Cmp(target) <= 0
}

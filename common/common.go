package common

import (
	"encoding/binary"
)

const (
	uint256ByteSize = 32
	uint64ByteSize  = 8
)

// Uint64ToUint256Bytes returns num as a 32 bytes big-endian word, the way
// a uint256 is laid out by abi.encodePacked
func Uint64ToUint256Bytes(num uint64) []byte {
	word := make([]byte, uint256ByteSize)
	binary.BigEndian.PutUint64(word[uint256ByteSize-uint64ByteSize:], num)

	return word
}

// BoolToByte returns 1 for true and 0 for false
func BoolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

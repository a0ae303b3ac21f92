package encoding

import (
	"encoding/binary"
	"math"
)

// BSON scalars are little-endian on the wire. All decoders assume the caller
// already checked that b is long enough.

func DecodeInt32(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b))
}

func DecodeInt64(b []byte) int64 {
	return int64(binary.LittleEndian.Uint64(b))
}

func DecodeFloat64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

func putInt32(b []byte, n int32) {
	binary.LittleEndian.PutUint32(b, uint32(n))
}

func putInt64(b []byte, n int64) {
	binary.LittleEndian.PutUint64(b, uint64(n))
}

func putFloat64(b []byte, f float64) {
	binary.LittleEndian.PutUint64(b, math.Float64bits(f))
}

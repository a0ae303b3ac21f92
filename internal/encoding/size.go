package encoding

import (
	"bytes"

	"github.com/altertable-ai/bson/internal/types"
)

// ValueSize returns the number of bytes the value of type t occupies at the
// start of b. It never reads past len(b); ok is false when b is too short or
// an embedded length field is inconsistent with the bytes that remain.
// A zero size with ok true is valid: undefined, null, minkey and maxkey
// carry no payload.
func ValueSize(t types.Type, b []byte) (int, bool) {
	switch t {
	case types.TypeDouble, types.TypeDateTime, types.TypeTimestamp, types.TypeInt64:
		if len(b) < 8 {
			return 0, false
		}
		return 8, true
	case types.TypeInt32:
		if len(b) < 4 {
			return 0, false
		}
		return 4, true
	case types.TypeBoolean:
		if len(b) < 1 {
			return 0, false
		}
		return 1, true
	case types.TypeDecimal128:
		if len(b) < 16 {
			return 0, false
		}
		return 16, true
	case types.TypeObjectID:
		if len(b) < 12 {
			return 0, false
		}
		return 12, true
	case types.TypeUndefined, types.TypeNull, types.TypeMinKey, types.TypeMaxKey:
		return 0, true
	case types.TypeString, types.TypeJavascript, types.TypeSymbol:
		// 4-byte length n, then n bytes of content ending in NUL.
		if len(b) < 4 {
			return 0, false
		}
		n := DecodeInt32(b)
		if n < 1 || int(n) > len(b)-4 {
			return 0, false
		}
		return 4 + int(n), true
	case types.TypeDocument, types.TypeArray:
		if len(b) < 4 {
			return 0, false
		}
		n := DecodeInt32(b)
		if n < 5 || int(n) > len(b) {
			return 0, false
		}
		return int(n), true
	case types.TypeBinary:
		// 4-byte length, 1 subtype byte, then the payload.
		if len(b) < 5 {
			return 0, false
		}
		n := DecodeInt32(b)
		if n < 0 || int(n) > len(b)-5 {
			return 0, false
		}
		return 5 + int(n), true
	case types.TypeDBPointer:
		// String of length n, then a 12-byte objectid.
		if len(b) < 4 {
			return 0, false
		}
		n := DecodeInt32(b)
		if n < 1 || int(n) > len(b)-16 {
			return 0, false
		}
		return 4 + int(n) + 12, true
	case types.TypeCodeWithScope:
		// Self-describing total length: int32 + string + scope document.
		if len(b) < 4 {
			return 0, false
		}
		n := DecodeInt32(b)
		if n < 14 || int(n) > len(b) {
			return 0, false
		}
		return int(n), true
	case types.TypeRegex:
		// Two consecutive NUL-terminated runs: pattern, then options.
		pat := bytes.IndexByte(b, 0x00)
		if pat < 0 {
			return 0, false
		}
		opt := bytes.IndexByte(b[pat+1:], 0x00)
		if opt < 0 {
			return 0, false
		}
		return pat + 1 + opt + 1, true
	}

	return 0, false
}

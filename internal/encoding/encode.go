package encoding

import (
	"bytes"
	"math"
	"strconv"

	"github.com/altertable-ai/bson/internal/types"
	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"
)

var (
	// ErrUnsupportedRootType is returned when the JSON root is not an
	// object or an array.
	ErrUnsupportedRootType = errors.New("JSON root must be an object or an array")

	// ErrUnsupportedValueType is returned when a JSON value has no BSON
	// mapping.
	ErrUnsupportedValueType = errors.New("unsupported JSON value in conversion to BSON")

	// ErrBufferTooSmall is returned when the output buffer cannot hold the
	// encoded document. The buffer contents are undefined on failure.
	ErrBufferTooSmall = errors.New("buffer too small for BSON output")

	// ErrInvalidJSON is returned when the input cannot be walked as JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
)

// EncodeJSON converts a JSON object or array into a BSON document written at
// the start of dst and returns the number of bytes written. dst is never
// grown: the call fails with ErrBufferTooSmall the moment a write would
// overflow it, and the caller must discard the touched region. A buffer of
// twice the JSON size plus a fixed slack is always sufficient; FromJSON in
// the root package applies that heuristic.
//
// Nesting depth is bounded only by the call stack; pathologically deep JSON
// can exhaust it.
func EncodeJSON(dst, json []byte) (int, error) {
	root := bytes.TrimSpace(json)
	if len(root) == 0 {
		return 0, ErrUnsupportedRootType
	}

	w := writer{buf: dst}
	var err error
	switch root[0] {
	case '{':
		err = w.encodeObject(root)
	case '[':
		err = w.encodeArray(root)
	default:
		return 0, ErrUnsupportedRootType
	}
	if err != nil {
		return 0, err
	}

	return w.pos, nil
}

// writer is a bounded cursor over a caller-owned buffer. It owns the buffer
// exclusively for the duration of one encode call, which makes the length
// back-patch in encodeObject/encodeArray a localized mutation.
type writer struct {
	buf []byte
	pos int
}

func (w *writer) writeByte(c byte) error {
	if w.pos >= len(w.buf) {
		return ErrBufferTooSmall
	}
	w.buf[w.pos] = c
	w.pos++
	return nil
}

func (w *writer) write(p []byte) error {
	if w.pos+len(p) > len(w.buf) {
		return ErrBufferTooSmall
	}
	copy(w.buf[w.pos:], p)
	w.pos += len(p)
	return nil
}

func (w *writer) writeInt32(n int32) error {
	if w.pos+4 > len(w.buf) {
		return ErrBufferTooSmall
	}
	putInt32(w.buf[w.pos:], n)
	w.pos += 4
	return nil
}

func (w *writer) writeInt64(n int64) error {
	if w.pos+8 > len(w.buf) {
		return ErrBufferTooSmall
	}
	putInt64(w.buf[w.pos:], n)
	w.pos += 8
	return nil
}

func (w *writer) writeFloat64(f float64) error {
	if w.pos+8 > len(w.buf) {
		return ErrBufferTooSmall
	}
	putFloat64(w.buf[w.pos:], f)
	w.pos += 8
	return nil
}

// reserveInt32 skips 4 bytes for a length prefix to be patched later.
func (w *writer) reserveInt32() (int, error) {
	if w.pos+4 > len(w.buf) {
		return 0, ErrBufferTooSmall
	}
	off := w.pos
	w.pos += 4
	return off, nil
}

// patchInt32 back-fills a previously reserved length prefix.
func (w *writer) patchInt32(off int, n int32) {
	putInt32(w.buf[off:], n)
}

// encodeObject writes one document region: reserved length prefix, one
// element per key/value pair in source order, terminator, then the
// back-patched total length.
func (w *writer) encodeObject(obj []byte) error {
	start, err := w.reserveInt32()
	if err != nil {
		return err
	}

	err = jsonparser.ObjectEach(obj, func(key, value []byte, dataType jsonparser.ValueType, offset int) error {
		return w.encodeElement(key, value, dataType)
	})
	if err != nil {
		if isEncodeError(err) {
			return err
		}
		return errors.WithDetail(ErrInvalidJSON, err.Error())
	}

	if err := w.writeByte(0x00); err != nil {
		return err
	}
	w.patchInt32(start, int32(w.pos-start))
	return nil
}

// encodeArray is encodeObject with keys synthesized as ascending decimal
// indices "0", "1", ...
func (w *writer) encodeArray(arr []byte) error {
	start, err := w.reserveInt32()
	if err != nil {
		return err
	}

	var idx int64
	var cbErr error
	_, perr := jsonparser.ArrayEach(arr, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if cbErr != nil {
			return
		}
		if err != nil {
			cbErr = errors.WithDetail(ErrInvalidJSON, err.Error())
			return
		}
		cbErr = w.encodeElement(strconv.AppendInt(nil, idx, 10), value, dataType)
		idx++
	})
	if cbErr != nil {
		return cbErr
	}
	if perr != nil {
		return errors.WithDetail(ErrInvalidJSON, perr.Error())
	}

	if err := w.writeByte(0x00); err != nil {
		return err
	}
	w.patchInt32(start, int32(w.pos-start))
	return nil
}

// encodeElement writes the type byte, the NUL-terminated key, then the value
// payload for one JSON value.
func (w *writer) encodeElement(key, value []byte, dataType jsonparser.ValueType) error {
	switch dataType {
	case jsonparser.Null:
		return w.writeHeader(types.TypeNull, key)

	case jsonparser.Boolean:
		v, err := jsonparser.ParseBoolean(value)
		if err != nil {
			return errors.WithDetail(ErrInvalidJSON, err.Error())
		}
		if err := w.writeHeader(types.TypeBoolean, key); err != nil {
			return err
		}
		if v {
			return w.writeByte(0x01)
		}
		return w.writeByte(0x00)

	case jsonparser.Number:
		return w.encodeNumber(key, value)

	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return errors.WithDetail(ErrInvalidJSON, err.Error())
		}
		if err := w.writeHeader(types.TypeString, key); err != nil {
			return err
		}
		return w.writeString(s)

	case jsonparser.Array:
		if err := w.writeHeader(types.TypeArray, key); err != nil {
			return err
		}
		return w.encodeArray(value)

	case jsonparser.Object:
		if err := w.writeHeader(types.TypeDocument, key); err != nil {
			return err
		}
		return w.encodeObject(value)
	}

	return ErrUnsupportedValueType
}

// encodeNumber follows the same subtype probing as the rest of the codebase:
// signed integer first, then unsigned, then floating point. Signed values
// fitting in 32 bits become int32, everything else integral becomes int64;
// unsigned magnitudes are reinterpreted as int64 bits.
func (w *writer) encodeNumber(key, value []byte) error {
	if i, err := jsonparser.ParseInt(value); err == nil {
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			if err := w.writeHeader(types.TypeInt32, key); err != nil {
				return err
			}
			return w.writeInt32(int32(i))
		}
		if err := w.writeHeader(types.TypeInt64, key); err != nil {
			return err
		}
		return w.writeInt64(i)
	}

	if u, err := strconv.ParseUint(string(value), 10, 64); err == nil {
		if err := w.writeHeader(types.TypeInt64, key); err != nil {
			return err
		}
		return w.writeInt64(int64(u))
	}

	f, err := jsonparser.ParseFloat(value)
	if err != nil {
		return errors.WithDetail(ErrInvalidJSON, err.Error())
	}
	if err := w.writeHeader(types.TypeDouble, key); err != nil {
		return err
	}
	return w.writeFloat64(f)
}

// writeHeader writes the element type byte and the NUL-terminated key.
func (w *writer) writeHeader(t types.Type, key []byte) error {
	if err := w.writeByte(byte(t)); err != nil {
		return err
	}
	if err := w.write(key); err != nil {
		return err
	}
	return w.writeByte(0x00)
}

// writeString writes a BSON string payload: int32 length counting the
// trailing NUL, the content bytes, then the NUL.
func (w *writer) writeString(s string) error {
	if err := w.writeInt32(int32(len(s) + 1)); err != nil {
		return err
	}
	if err := w.write([]byte(s)); err != nil {
		return err
	}
	return w.writeByte(0x00)
}

func isEncodeError(err error) bool {
	return errors.Is(err, ErrBufferTooSmall) ||
		errors.Is(err, ErrUnsupportedValueType) ||
		errors.Is(err, ErrInvalidJSON)
}

package encoding

import (
	"bytes"
	"strconv"

	"github.com/altertable-ai/bson/internal/types"
)

// A document is [int32 total_length][element*][0x00], total_length counting
// itself and the terminator. The smallest document is 5 bytes.
const minDocLen = 5

// Validate reports whether b starts with a structurally well-formed BSON
// document. It performs a single flat pass: nested documents and arrays are
// skip-decoded by their length prefix, not revalidated element by element.
// Callers needing deep validation call Validate again on extracted slices.
func Validate(b []byte) bool {
	if len(b) < minDocLen {
		return false
	}

	length := int(DecodeInt32(b))
	if length < minDocLen || length > len(b) {
		return false
	}
	if b[length-1] != 0x00 {
		return false
	}

	pos := 4
	for pos < length-1 {
		t := types.Type(b[pos])
		pos++

		// Key: NUL-terminated, must end before the document terminator.
		k := bytes.IndexByte(b[pos:length-1], 0x00)
		if k < 0 {
			return false
		}
		pos += k + 1

		sz, ok := ValueSize(t, b[pos:length-1])
		if !ok {
			return false
		}
		pos += sz
	}

	return pos == length-1
}

// Find scans the document for the first element whose key equals key, in
// document order. It returns false both when the document is malformed and
// when the key is absent; lookup over arbitrary blobs is a predicate, not an
// error path.
func Find(doc, key []byte) (types.Element, bool) {
	if len(doc) < minDocLen {
		return types.Element{}, false
	}

	length := int(DecodeInt32(doc))
	if length < minDocLen || length > len(doc) {
		return types.Element{}, false
	}

	pos := 4
	for pos < length-1 {
		t := types.Type(doc[pos])
		pos++

		k := bytes.IndexByte(doc[pos:length-1], 0x00)
		if k < 0 {
			return types.Element{}, false
		}
		elemKey := doc[pos : pos+k]
		pos += k + 1

		sz, ok := ValueSize(t, doc[pos:length-1])
		if !ok {
			return types.Element{}, false
		}

		if bytes.Equal(elemKey, key) {
			return types.Element{
				Type:  t,
				Key:   elemKey,
				Value: doc[pos : pos+sz],
			}, true
		}

		pos += sz
	}

	return types.Element{}, false
}

// ArrayElement returns the element at the given index of a BSON array.
// Arrays are documents whose keys are consecutive decimal strings starting
// at "0"; no gap or ordering check is performed beyond the scan itself.
func ArrayElement(arr []byte, index uint64) (types.Element, bool) {
	return Find(arr, strconv.AppendUint(nil, index, 10))
}

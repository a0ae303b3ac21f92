package path

import (
	"github.com/altertable-ai/bson/internal/encoding"
	"github.com/altertable-ai/bson/internal/types"
)

// Traverse follows segments through nested documents and arrays starting at
// doc and returns the element addressed by the final segment, whatever its
// type. Every intermediate segment must resolve to a document or array; any
// miss, malformed buffer or scalar met mid-path fails the whole traversal.
//
// An empty segment slice is not valid input: the whole-document case belongs
// to the caller, which already holds the buffer.
func Traverse(doc []byte, segments []Segment) (types.Element, bool) {
	if len(segments) == 0 {
		return types.Element{}, false
	}

	current := doc
	var elem types.Element
	for i, seg := range segments {
		var ok bool
		switch s := seg.(type) {
		case Index:
			elem, ok = encoding.ArrayElement(current, uint64(s))
		case Key:
			elem, ok = encoding.Find(current, []byte(s))
		}
		if !ok {
			return types.Element{}, false
		}

		if i < len(segments)-1 {
			if elem.Type != types.TypeDocument && elem.Type != types.TypeArray {
				return types.Element{}, false
			}
			current = elem.Value
		}
	}

	return elem, true
}

// Package bson implements a self-contained codec and query engine for the
// BSON binary document format. It validates byte buffers as well-formed BSON,
// locates elements by key or array index, traverses dotted/bracketed path
// expressions through nested documents and arrays, and encodes JSON into a
// freshly allocated BSON buffer.
//
// Every operation is a pure function over caller-supplied buffers: nothing
// blocks, locks or retains state, so concurrent calls over disjoint buffers
// need no coordination.
package bson

import (
	"github.com/altertable-ai/bson/internal/encoding"
	"github.com/altertable-ai/bson/internal/path"
	"github.com/altertable-ai/bson/internal/types"
)

// Type is the one-byte type tag of a BSON element.
type Type = types.Type

// BSON type tags from the BSON specification.
const (
	TypeDouble        = types.TypeDouble
	TypeString        = types.TypeString
	TypeDocument      = types.TypeDocument
	TypeArray         = types.TypeArray
	TypeBinary        = types.TypeBinary
	TypeUndefined     = types.TypeUndefined
	TypeObjectID      = types.TypeObjectID
	TypeBoolean       = types.TypeBoolean
	TypeDateTime      = types.TypeDateTime
	TypeNull          = types.TypeNull
	TypeRegex         = types.TypeRegex
	TypeDBPointer     = types.TypeDBPointer
	TypeJavascript    = types.TypeJavascript
	TypeSymbol        = types.TypeSymbol
	TypeCodeWithScope = types.TypeCodeWithScope
	TypeInt32         = types.TypeInt32
	TypeTimestamp     = types.TypeTimestamp
	TypeInt64         = types.TypeInt64
	TypeDecimal128    = types.TypeDecimal128
	TypeMinKey        = types.TypeMinKey
	TypeMaxKey        = types.TypeMaxKey
)

// Element is one (type, key, value) triple of a BSON document.
type Element = types.Element

// Segment is one step of a parsed path expression: either a Key or an Index.
type Segment = path.Segment

// Key addresses an element of a document by name.
type Key = path.Key

// Index addresses an element of an array by position.
type Index = path.Index

// Path parse failure kinds.
var (
	ErrMissingDollarPrefix   = path.ErrMissingDollarPrefix
	ErrTrailingDot           = path.ErrTrailingDot
	ErrEmptyKey              = path.ErrEmptyKey
	ErrUnterminatedQuote     = path.ErrUnterminatedQuote
	ErrTrailingBracket       = path.ErrTrailingBracket
	ErrInvalidIndex          = path.ErrInvalidIndex
	ErrMissingClosingBracket = path.ErrMissingClosingBracket
	ErrUnexpectedCharacter   = path.ErrUnexpectedCharacter
)

// Encoding failure kinds.
var (
	ErrUnsupportedRootType  = encoding.ErrUnsupportedRootType
	ErrUnsupportedValueType = encoding.ErrUnsupportedValueType
	ErrBufferTooSmall       = encoding.ErrBufferTooSmall
	ErrInvalidJSON          = encoding.ErrInvalidJSON
)

// Validate reports whether doc is a structurally well-formed BSON document.
// The pass is flat: nested documents and arrays are skip-decoded by their
// length prefix. Call Validate again on an extracted value slice for deep
// validation.
func Validate(doc []byte) bool {
	return encoding.Validate(doc)
}

// Find returns the first element of doc whose key equals key, in document
// order. It returns false when the key is absent or doc is malformed.
func Find(doc []byte, key string) (Element, bool) {
	return encoding.Find(doc, []byte(key))
}

// ArrayElement returns the element at the given index of a BSON array, which
// is a document keyed by consecutive decimal strings starting at "0".
func ArrayElement(arr []byte, index uint64) (Element, bool) {
	return encoding.ArrayElement(arr, index)
}

// ParsePath parses a path expression of the form `$.key1."quoted key"[0]`
// into segments. `$` alone parses to an empty slice, addressing the whole
// document.
func ParsePath(p string) ([]Segment, error) {
	return path.Parse(p)
}

// Traverse follows parsed segments through doc and returns the element the
// final segment addresses. The segment slice must not be empty; callers
// handle the whole-document case with the buffer they already hold.
func Traverse(doc []byte, segments []Segment) (Element, bool) {
	return path.Traverse(doc, segments)
}

// EncodeJSON converts a JSON object or array into a BSON document written at
// the start of dst and returns the number of bytes written. dst is never
// grown; the call fails with ErrBufferTooSmall when it cannot hold the
// output, and the touched region is then undefined.
func EncodeJSON(dst, json []byte) (int, error) {
	return encoding.EncodeJSON(dst, json)
}

// FromJSON converts a JSON object or array into a newly allocated BSON
// document. The output buffer is sized at twice the JSON input plus a fixed
// slack, which covers the worst-case expansion of the BSON layout.
func FromJSON(json []byte) ([]byte, error) {
	buf := make([]byte, 2*len(json)+1024)
	n, err := encoding.EncodeJSON(buf, json)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

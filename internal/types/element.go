package types

import (
	"encoding/binary"
	"math"

	"github.com/golang-module/carbon/v2"
)

// Element is one (type, key, value) triple of a BSON document. Key and Value
// are sub-slices of the document buffer the element was found in; they stay
// valid as long as that buffer does.
type Element struct {
	Type  Type
	Key   []byte
	Value []byte
}

// Int32 returns the decoded payload of an int32 element.
func (e *Element) Int32() (int32, bool) {
	if e.Type != TypeInt32 || len(e.Value) < 4 {
		return 0, false
	}
	return int32(binary.LittleEndian.Uint32(e.Value)), true
}

// Int64 returns the decoded payload of an int64 or timestamp element.
func (e *Element) Int64() (int64, bool) {
	if (e.Type != TypeInt64 && e.Type != TypeTimestamp) || len(e.Value) < 8 {
		return 0, false
	}
	return int64(binary.LittleEndian.Uint64(e.Value)), true
}

// Double returns the decoded payload of a double element.
func (e *Element) Double() (float64, bool) {
	if e.Type != TypeDouble || len(e.Value) < 8 {
		return 0, false
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(e.Value)), true
}

// Boolean returns the decoded payload of a boolean element.
func (e *Element) Boolean() (bool, bool) {
	if e.Type != TypeBoolean || len(e.Value) < 1 {
		return false, false
	}
	return e.Value[0] != 0x00, true
}

// Text returns the decoded payload of a string, javascript or symbol
// element, without the trailing NUL.
func (e *Element) Text() (string, bool) {
	switch e.Type {
	case TypeString, TypeJavascript, TypeSymbol:
	default:
		return "", false
	}
	if len(e.Value) < 4 {
		return "", false
	}
	n := int32(binary.LittleEndian.Uint32(e.Value))
	if n < 1 || int(n) > len(e.Value)-4 {
		return "", false
	}
	return string(e.Value[4 : 4+int(n)-1]), true
}

// Document returns the raw document buffer of a document or array element.
// The slice is itself a complete BSON document, length prefix included.
func (e *Element) Document() ([]byte, bool) {
	if e.Type != TypeDocument && e.Type != TypeArray {
		return nil, false
	}
	return e.Value, true
}

// ObjectID returns the 12 payload bytes of an objectid element.
func (e *Element) ObjectID() ([]byte, bool) {
	if e.Type != TypeObjectID || len(e.Value) < 12 {
		return nil, false
	}
	return e.Value[:12], true
}

// DateTime returns the payload of a UTC datetime element, stored on the wire
// as milliseconds since the Unix epoch.
func (e *Element) DateTime() (carbon.Carbon, bool) {
	if e.Type != TypeDateTime || len(e.Value) < 8 {
		return carbon.Carbon{}, false
	}
	ms := int64(binary.LittleEndian.Uint64(e.Value))
	return carbon.CreateFromTimestampMilli(ms, carbon.UTC), true
}

package types

import (
	"fmt"
)

// Type is the one-byte type tag of a BSON element.
type Type byte

// BSON type tags from the BSON specification.
const (
	TypeDouble        Type = 0x01
	TypeString        Type = 0x02
	TypeDocument      Type = 0x03
	TypeArray         Type = 0x04
	TypeBinary        Type = 0x05
	TypeUndefined     Type = 0x06 // deprecated
	TypeObjectID      Type = 0x07
	TypeBoolean       Type = 0x08
	TypeDateTime      Type = 0x09
	TypeNull          Type = 0x0A
	TypeRegex         Type = 0x0B
	TypeDBPointer     Type = 0x0C // deprecated
	TypeJavascript    Type = 0x0D
	TypeSymbol        Type = 0x0E // deprecated
	TypeCodeWithScope Type = 0x0F
	TypeInt32         Type = 0x10
	TypeTimestamp     Type = 0x11
	TypeInt64         Type = 0x12
	TypeDecimal128    Type = 0x13
	TypeMinKey        Type = 0xFF
	TypeMaxKey        Type = 0x7F
)

func (t Type) String() string {
	switch t {
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeDocument:
		return "document"
	case TypeArray:
		return "array"
	case TypeBinary:
		return "binary"
	case TypeUndefined:
		return "undefined"
	case TypeObjectID:
		return "objectid"
	case TypeBoolean:
		return "boolean"
	case TypeDateTime:
		return "datetime"
	case TypeNull:
		return "null"
	case TypeRegex:
		return "regex"
	case TypeDBPointer:
		return "dbpointer"
	case TypeJavascript:
		return "javascript"
	case TypeSymbol:
		return "symbol"
	case TypeCodeWithScope:
		return "javascriptwithscope"
	case TypeInt32:
		return "int32"
	case TypeTimestamp:
		return "timestamp"
	case TypeInt64:
		return "int64"
	case TypeDecimal128:
		return "decimal128"
	case TypeMinKey:
		return "minkey"
	case TypeMaxKey:
		return "maxkey"
	}

	// Arbitrary byte buffers can carry any tag; render it instead of panicking.
	return fmt.Sprintf("unknown(0x%02X)", byte(t))
}

// Valid reports whether t is one of the defined BSON type tags.
func (t Type) Valid() bool {
	switch {
	case t >= TypeDouble && t <= TypeDecimal128:
		return true
	case t == TypeMinKey, t == TypeMaxKey:
		return true
	}
	return false
}

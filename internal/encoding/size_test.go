package encoding_test

import (
	"testing"

	"github.com/altertable-ai/bson/internal/encoding"
	"github.com/altertable-ai/bson/internal/types"
	"github.com/stretchr/testify/require"
)

func makeByteSlice(b ...byte) []byte {
	return b
}

func mergeByteSlices(b ...[]byte) []byte {
	var out []byte
	for _, b := range b {
		out = append(out, b...)
	}
	return out
}

func TestValueSizeFixed(t *testing.T) {
	tests := []struct {
		typ  types.Type
		size int
	}{
		{types.TypeDouble, 8},
		{types.TypeDateTime, 8},
		{types.TypeTimestamp, 8},
		{types.TypeInt64, 8},
		{types.TypeInt32, 4},
		{types.TypeBoolean, 1},
		{types.TypeDecimal128, 16},
		{types.TypeObjectID, 12},
	}

	for _, test := range tests {
		t.Run(test.typ.String(), func(t *testing.T) {
			b := make([]byte, test.size)
			sz, ok := encoding.ValueSize(test.typ, b)
			require.True(t, ok)
			require.Equal(t, test.size, sz)

			// One byte short must fail, and a longer slice must not
			// change the answer.
			_, ok = encoding.ValueSize(test.typ, b[:test.size-1])
			require.False(t, ok)

			sz, ok = encoding.ValueSize(test.typ, append(b, 0xFF))
			require.True(t, ok)
			require.Equal(t, test.size, sz)
		})
	}
}

func TestValueSizeZeroPayload(t *testing.T) {
	// A zero size is a valid answer for these types, not a failure.
	for _, typ := range []types.Type{types.TypeUndefined, types.TypeNull, types.TypeMinKey, types.TypeMaxKey} {
		t.Run(typ.String(), func(t *testing.T) {
			sz, ok := encoding.ValueSize(typ, nil)
			require.True(t, ok)
			require.Zero(t, sz)
		})
	}
}

func TestValueSizeString(t *testing.T) {
	tests := []struct {
		name   string
		value  []byte
		want   int
		wantOK bool
	}{
		{"hi", makeByteSlice(0x03, 0x00, 0x00, 0x00, 'h', 'i', 0x00), 7, true},
		{"empty content", makeByteSlice(0x01, 0x00, 0x00, 0x00, 0x00), 5, true},
		{"length zero", makeByteSlice(0x00, 0x00, 0x00, 0x00, 0x00), 0, false},
		{"negative length", makeByteSlice(0xFF, 0xFF, 0xFF, 0xFF, 0x00), 0, false},
		{"length past end", makeByteSlice(0x04, 0x00, 0x00, 0x00, 'h', 'i', 0x00), 0, false},
		{"short header", makeByteSlice(0x03, 0x00), 0, false},
	}

	for _, typ := range []types.Type{types.TypeString, types.TypeJavascript, types.TypeSymbol} {
		for _, test := range tests {
			t.Run(typ.String()+"/"+test.name, func(t *testing.T) {
				sz, ok := encoding.ValueSize(typ, test.value)
				require.Equal(t, test.wantOK, ok)
				require.Equal(t, test.want, sz)
			})
		}
	}
}

func TestValueSizeDocument(t *testing.T) {
	tests := []struct {
		name   string
		value  []byte
		want   int
		wantOK bool
	}{
		{"empty document", makeByteSlice(0x05, 0x00, 0x00, 0x00, 0x00), 5, true},
		{"length below minimum", makeByteSlice(0x04, 0x00, 0x00, 0x00, 0x00), 0, false},
		{"length past end", makeByteSlice(0x06, 0x00, 0x00, 0x00, 0x00), 0, false},
		{"short header", makeByteSlice(0x05, 0x00, 0x00), 0, false},
	}

	for _, typ := range []types.Type{types.TypeDocument, types.TypeArray} {
		for _, test := range tests {
			t.Run(typ.String()+"/"+test.name, func(t *testing.T) {
				sz, ok := encoding.ValueSize(typ, test.value)
				require.Equal(t, test.wantOK, ok)
				require.Equal(t, test.want, sz)
			})
		}
	}
}

func TestValueSizeBinary(t *testing.T) {
	tests := []struct {
		name   string
		value  []byte
		want   int
		wantOK bool
	}{
		{"empty payload", makeByteSlice(0x00, 0x00, 0x00, 0x00, 0x00), 5, true},
		{"two bytes", makeByteSlice(0x02, 0x00, 0x00, 0x00, 0x80, 0xAA, 0xBB), 7, true},
		{"negative length", makeByteSlice(0xFF, 0xFF, 0xFF, 0xFF, 0x00), 0, false},
		{"length past end", makeByteSlice(0x03, 0x00, 0x00, 0x00, 0x80, 0xAA, 0xBB), 0, false},
		{"missing subtype", makeByteSlice(0x00, 0x00, 0x00, 0x00), 0, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sz, ok := encoding.ValueSize(types.TypeBinary, test.value)
			require.Equal(t, test.wantOK, ok)
			require.Equal(t, test.want, sz)
		})
	}
}

func TestValueSizeDBPointer(t *testing.T) {
	oid := make([]byte, 12)
	value := mergeByteSlices(
		makeByteSlice(0x02, 0x00, 0x00, 0x00), // string length 2
		makeByteSlice('a', 0x00),
		oid,
	)

	// Exact boundary: n == remaining-16.
	sz, ok := encoding.ValueSize(types.TypeDBPointer, value)
	require.True(t, ok)
	require.Equal(t, 18, sz)

	// One byte short of the trailing objectid: n > remaining-16.
	_, ok = encoding.ValueSize(types.TypeDBPointer, value[:len(value)-1])
	require.False(t, ok)

	_, ok = encoding.ValueSize(types.TypeDBPointer, makeByteSlice(0x00, 0x00, 0x00, 0x00))
	require.False(t, ok)
}

func TestValueSizeCodeWithScope(t *testing.T) {
	// Minimal form: empty code string plus an empty scope document.
	value := mergeByteSlices(
		makeByteSlice(0x0E, 0x00, 0x00, 0x00), // total length 14
		makeByteSlice(0x01, 0x00, 0x00, 0x00, 0x00),
		makeByteSlice(0x05, 0x00, 0x00, 0x00, 0x00),
	)

	sz, ok := encoding.ValueSize(types.TypeCodeWithScope, value)
	require.True(t, ok)
	require.Equal(t, 14, sz)

	// Below the structural minimum of 14.
	_, ok = encoding.ValueSize(types.TypeCodeWithScope, makeByteSlice(0x0D, 0x00, 0x00, 0x00, 0x00))
	require.False(t, ok)

	_, ok = encoding.ValueSize(types.TypeCodeWithScope, value[:13])
	require.False(t, ok)
}

func TestValueSizeRegex(t *testing.T) {
	tests := []struct {
		name   string
		value  []byte
		want   int
		wantOK bool
	}{
		{"pattern and options", makeByteSlice('a', 'b', 0x00, 'i', 0x00), 5, true},
		{"empty pattern and options", makeByteSlice(0x00, 0x00), 2, true},
		{"unterminated options", makeByteSlice('a', 'b', 0x00, 'i'), 0, false},
		{"unterminated pattern", makeByteSlice('a', 'b'), 0, false},
		{"empty", nil, 0, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sz, ok := encoding.ValueSize(types.TypeRegex, test.value)
			require.Equal(t, test.wantOK, ok)
			require.Equal(t, test.want, sz)
		})
	}
}

func TestValueSizeUnknownType(t *testing.T) {
	_, ok := encoding.ValueSize(types.Type(0x42), makeByteSlice(0x00, 0x00, 0x00, 0x00))
	require.False(t, ok)
}

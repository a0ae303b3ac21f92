// Package path implements the dotted/bracketed expression language used to
// address nested elements of a BSON document: `$.key1."quoted key"[0].key2`.
package path

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// Parse failure kinds. Each syntactic defect maps to exactly one sentinel so
// callers can build precise diagnostics.
var (
	ErrMissingDollarPrefix   = errors.New("path must start with '$'")
	ErrTrailingDot           = errors.New("path ends with '.'")
	ErrEmptyKey              = errors.New("empty key in path")
	ErrUnterminatedQuote     = errors.New("unclosed quoted key in path")
	ErrTrailingBracket       = errors.New("path ends with '['")
	ErrInvalidIndex          = errors.New("invalid array index in path")
	ErrMissingClosingBracket = errors.New("missing ']' in path")
	ErrUnexpectedCharacter   = errors.New("unexpected character in path")
)

// Segment is one step of a parsed path: either an object key or an array
// index. The two implementations are Key and Index.
type Segment interface {
	segment()
}

// Key addresses an element of a document by name.
type Key string

// Index addresses an element of an array by position.
type Index uint64

func (Key) segment()   {}
func (Index) segment() {}

// Parse parses a path expression into its segments. An empty input yields an
// empty segment slice, which addresses the whole document; any other input
// must start with '$'. Partial results are never returned alongside an
// error.
func Parse(path string) ([]Segment, error) {
	if len(path) == 0 {
		return nil, nil
	}

	if path[0] != '$' {
		return nil, ErrMissingDollarPrefix
	}

	var segments []Segment
	pos := 1
	for pos < len(path) {
		switch path[pos] {
		case '.':
			pos++
			if pos >= len(path) {
				return nil, ErrTrailingDot
			}

			quoted := path[pos] == '"'
			if quoted {
				pos++
			}

			start := pos
			for pos < len(path) {
				if quoted {
					if path[pos] == '"' {
						break
					}
				} else if path[pos] == '.' || path[pos] == '[' {
					break
				}
				pos++
			}

			if pos == start {
				return nil, errors.Wrapf(ErrEmptyKey, "at offset %d", start)
			}
			if quoted {
				if pos >= len(path) {
					return nil, errors.Wrapf(ErrUnterminatedQuote, "at offset %d", start-1)
				}
				segments = append(segments, Key(path[start:pos]))
				pos++ // closing quote
			} else {
				segments = append(segments, Key(path[start:pos]))
			}

		case '[':
			pos++
			if pos >= len(path) {
				return nil, ErrTrailingBracket
			}

			start := pos
			for pos < len(path) && path[pos] >= '0' && path[pos] <= '9' {
				pos++
			}
			if pos == start {
				return nil, errors.Wrapf(ErrInvalidIndex, "at offset %d", start)
			}
			if pos >= len(path) {
				return nil, errors.Wrapf(ErrMissingClosingBracket, "at offset %d", start)
			}
			if path[pos] != ']' {
				return nil, errors.Wrapf(ErrInvalidIndex, "at offset %d", pos)
			}

			idx, err := strconv.ParseUint(path[start:pos], 10, 64)
			if err != nil {
				return nil, errors.Wrapf(ErrInvalidIndex, "at offset %d", start)
			}
			segments = append(segments, Index(idx))
			pos++ // closing bracket

		default:
			return nil, errors.Wrapf(ErrUnexpectedCharacter, "%q at offset %d", path[pos], pos)
		}
	}

	return segments, nil
}

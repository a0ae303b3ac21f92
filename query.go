package bson

import (
	"github.com/altertable-ai/bson/internal/encoding"
	"github.com/altertable-ai/bson/internal/path"
	"github.com/altertable-ai/bson/internal/types"
)

// The helpers below combine path parsing and traversal into single-call
// queries. Each parses its path per call; a syntax error is reported as an
// error, while a lookup miss over a valid path is reported as ok=false.

// Exists reports whether p addresses an element of doc. The empty path `$`
// reports whether doc itself is a well-formed document.
func Exists(doc []byte, p string) (bool, error) {
	segments, err := path.Parse(p)
	if err != nil {
		return false, err
	}
	if len(segments) == 0 {
		return encoding.Validate(doc), nil
	}
	_, ok := path.Traverse(doc, segments)
	return ok, nil
}

// TypeOf returns the type of the element p addresses. The empty path `$`
// yields TypeDocument.
func TypeOf(doc []byte, p string) (Type, bool, error) {
	segments, err := path.Parse(p)
	if err != nil {
		return 0, false, err
	}
	if len(segments) == 0 {
		if !encoding.Validate(doc) {
			return 0, false, nil
		}
		return types.TypeDocument, true, nil
	}
	elem, ok := path.Traverse(doc, segments)
	if !ok {
		return 0, false, nil
	}
	return elem.Type, true, nil
}

// Extract returns the raw BSON region p addresses: doc itself for the empty
// path, otherwise the value slice of a nested document or array. Scalar
// elements are not extractable as documents and report ok=false.
func Extract(doc []byte, p string) ([]byte, bool, error) {
	segments, err := path.Parse(p)
	if err != nil {
		return nil, false, err
	}
	if len(segments) == 0 {
		return doc, true, nil
	}
	elem, ok := path.Traverse(doc, segments)
	if !ok {
		return nil, false, nil
	}
	sub, ok := elem.Document()
	return sub, ok, nil
}

// ExtractText returns the decoded content of the string element p addresses,
// without the trailing NUL.
func ExtractText(doc []byte, p string) (string, bool, error) {
	segments, err := path.Parse(p)
	if err != nil {
		return "", false, err
	}
	elem, ok := path.Traverse(doc, segments)
	if !ok {
		return "", false, nil
	}
	if elem.Type != types.TypeString {
		return "", false, nil
	}
	s, ok := elem.Text()
	return s, ok, nil
}

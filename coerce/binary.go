package coerce

import (
	"strings"

	"github.com/duckbridge/duckbridge-go/schema"
)

// BinaryKind is the resolved representation for an ambiguous
// binary-typed field: a bit-string rendered as '0'/'1' characters, or
// an opaque byte blob.
type BinaryKind int

const (
	KindUnresolved BinaryKind = iota
	KindBlob
	KindBits
)

// ResolveBinary decides between bit-string and blob for one raw value
// of a binary field. First match wins:
//
//  1. fixed-width physical encoding -> bit-string
//  2. source-type hint containing "BIT" -> bit-string
//  3. legacy 2-byte pattern heuristic -> bit-string
//  4. otherwise -> blob
//
// Rules 1 and 2 depend only on the descriptor, so a field they match
// classifies identically for every row. Rule 3 inspects the value
// itself and is kept only for compatibility with historic behavior;
// callers that need row-to-row stability should resolve once per
// field and reuse the result (see the result assembler).
func ResolveBinary(f schema.FieldDescriptor, b []byte) BinaryKind {
	if f.Physical == schema.PhysicalFixedBinary {
		return KindBits
	}
	if strings.Contains(strings.ToUpper(f.Meta.SourceType), "BIT") {
		return KindBits
	}
	if len(b) == 2 && looksLikeBits(expandBits(b)) {
		return KindBits
	}
	return KindBlob
}

// ApplyBinary renders a raw binary value under an already-resolved
// kind. Blobs keep every byte, leading zero bytes included; only the
// bit-string rendering strips leading zeros (zero bits, and only when
// no declared width is available).
func ApplyBinary(kind BinaryKind, b []byte, f schema.FieldDescriptor) any {
	if kind == KindBits {
		return renderBits(b, f.Meta.DeclaredWidth)
	}
	return b
}

// renderBits expands every byte to 8 binary digits. A declared width
// selects the trailing width digits; without one, leading '0' digits
// are stripped down to a minimum length of 1.
func renderBits(b []byte, width int) string {
	s := expandBits(b)
	if width > 0 {
		if width < len(s) {
			return s[len(s)-width:]
		}
		return s
	}
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

func expandBits(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 8)
	for _, by := range b {
		for bit := 7; bit >= 0; bit-- {
			if by&(1<<uint(bit)) != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return sb.String()
}

// looksLikeBits is the legacy heuristic for undeclared 2-byte values:
// a short alternating run or a leading-zeros-then-ones shape. Known
// to misclassify arbitrary blobs that happen to contain these
// patterns; kept unchanged for compatibility.
func looksLikeBits(s string) bool {
	if strings.Contains(s, "010101") {
		return true
	}
	zeros := 0
	for zeros < len(s) && s[zeros] == '0' {
		zeros++
	}
	if zeros == 0 || zeros == len(s) {
		return false
	}
	for i := zeros; i < len(s); i++ {
		if s[i] != '1' {
			return false
		}
	}
	return true
}

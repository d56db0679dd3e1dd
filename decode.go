// Package jsondec implements a recursive-descent JSON decoder producing a
// dynamically-typed value tree.
//
// Decoding is all-or-nothing: the whole input must hold exactly one JSON
// value, otherwise a *DecodeError with the offending byte offset is
// returned. Object fields keep document order, integer and float literals
// keep distinct kinds.
package jsondec

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/iancoleman/orderedmap"
)

// DefaultMaxDepth bounds container nesting when Decoder.MaxDepth is zero.
const DefaultMaxDepth = 200

// DecodeError describes a failure to decode malformed JSON.
type DecodeError struct {
	// Message is a human-readable description of the failure.
	Message string

	// Offset is the 0-based byte position where the failure was detected.
	Offset int
}

// Error implements error.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Message, e.Offset)
}

// Decoder decodes a JSON document from text.
type Decoder struct {
	// MaxDepth limits container nesting, DefaultMaxDepth is used when 0.
	MaxDepth int

	content string
	idx     int
	depth   int
}

// NewDecoder creates a Decoder for the given text.
func NewDecoder(text string) *Decoder {
	return &Decoder{content: text}
}

// Decode parses text as a single JSON value.
func Decode(text string) (Value, error) {
	return NewDecoder(text).Decode()
}

// Decode parses the decoder text as a single JSON value.
//
// Leading and trailing whitespace is allowed, any other remaining input
// fails with "extra data". Every call restarts from the beginning of the
// text.
func (d *Decoder) Decode() (Value, error) {
	d.idx = 0
	d.depth = 0

	d.skipWhitespace()

	v, err := d.decodeValue()
	if err != nil {
		return Value{}, err
	}

	d.skipWhitespace()

	if d.idx != len(d.content) {
		return Value{}, d.errorAt(d.idx, "extra data")
	}

	return v, nil
}

func (d *Decoder) errorAt(offset int, format string, args ...interface{}) error {
	return &DecodeError{Message: fmt.Sprintf(format, args...), Offset: offset}
}

// skipWhitespace consumes the four JSON whitespace characters and no others.
func (d *Decoder) skipWhitespace() {
	for d.idx < len(d.content) {
		switch d.content[d.idx] {
		case ' ', '\t', '\n', '\r':
			d.idx++
		default:
			return
		}
	}
}

// push accounts for entering a container, failing when nesting exceeds the
// configured maximum. Callers must decrement depth on exit.
func (d *Decoder) push(offset int) error {
	maxDepth := d.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}

	d.depth++
	if d.depth > maxDepth {
		return d.errorAt(offset, "maximum recursion depth exceeded")
	}

	return nil
}

// decodeValue dispatches on the next significant byte.
func (d *Decoder) decodeValue() (Value, error) {
	if d.idx >= len(d.content) {
		return Value{}, d.errorAt(d.idx, "unexpected end of input")
	}

	switch c := d.content[d.idx]; {
	case c == '{':
		return d.decodeObject()
	case c == '[':
		return d.decodeArray()
	case c == '"':
		return d.decodeString()
	case c == 't' || c == 'f' || c == 'n':
		return d.decodeLiteral()
	case c == '-' || (c >= '0' && c <= '9'):
		return d.decodeNumber()
	default:
		return Value{}, d.errorAt(d.idx, "unexpected character %q", c)
	}
}

func (d *Decoder) decodeObject() (Value, error) {
	if err := d.push(d.idx); err != nil {
		return Value{}, err
	}
	defer func() { d.depth-- }()

	d.idx++ // consume '{'
	fields := orderedmap.New()

	d.skipWhitespace()

	if d.idx < len(d.content) && d.content[d.idx] == '}' {
		d.idx++

		return Value{Type: TypeObject, Fields: fields}, nil
	}

	for {
		if d.idx >= len(d.content) {
			return Value{}, d.errorAt(d.idx, "unexpected end of input")
		}

		if d.content[d.idx] != '"' {
			return Value{}, d.errorAt(d.idx, "object key must be a string")
		}

		key, err := d.decodeString()
		if err != nil {
			return Value{}, err
		}

		d.skipWhitespace()

		if d.idx >= len(d.content) {
			return Value{}, d.errorAt(d.idx, "unexpected end of input")
		}

		if d.content[d.idx] != ':' {
			return Value{}, d.errorAt(d.idx, "expected ':' after object key")
		}

		d.idx++
		d.skipWhitespace()

		val, err := d.decodeValue()
		if err != nil {
			return Value{}, err
		}

		// Last value wins, the key keeps the position of its first occurrence.
		fields.Set(key.Str, val)

		d.skipWhitespace()

		if d.idx >= len(d.content) {
			return Value{}, d.errorAt(d.idx, "unexpected end of input")
		}

		switch d.content[d.idx] {
		case ',':
			d.idx++
			d.skipWhitespace()

			if d.idx < len(d.content) && d.content[d.idx] == '}' {
				return Value{}, d.errorAt(d.idx, "trailing comma before '}'")
			}
		case '}':
			d.idx++

			return Value{Type: TypeObject, Fields: fields}, nil
		default:
			return Value{}, d.errorAt(d.idx, "expected ',' or '}' in object")
		}
	}
}

func (d *Decoder) decodeArray() (Value, error) {
	if err := d.push(d.idx); err != nil {
		return Value{}, err
	}
	defer func() { d.depth-- }()

	d.idx++ // consume '['
	items := []Value{}

	d.skipWhitespace()

	if d.idx < len(d.content) && d.content[d.idx] == ']' {
		d.idx++

		return Value{Type: TypeArray, Items: items}, nil
	}

	for {
		elem, err := d.decodeValue()
		if err != nil {
			return Value{}, err
		}

		items = append(items, elem)

		d.skipWhitespace()

		if d.idx >= len(d.content) {
			return Value{}, d.errorAt(d.idx, "unexpected end of input")
		}

		switch d.content[d.idx] {
		case ',':
			d.idx++
			d.skipWhitespace()

			if d.idx < len(d.content) && d.content[d.idx] == ']' {
				return Value{}, d.errorAt(d.idx, "trailing comma before ']'")
			}
		case ']':
			d.idx++

			return Value{Type: TypeArray, Items: items}, nil
		default:
			return Value{}, d.errorAt(d.idx, "expected ',' or ']' in array")
		}
	}
}

func (d *Decoder) decodeString() (Value, error) {
	start := d.idx
	d.idx++ // consume opening quote

	var out strings.Builder

	for {
		if d.idx >= len(d.content) {
			return Value{}, d.errorAt(start, "unterminated string")
		}

		c := d.content[d.idx]

		switch {
		case c == '"':
			d.idx++

			return Value{Type: TypeString, Str: out.String()}, nil
		case c == '\\':
			if err := d.decodeEscape(&out); err != nil {
				return Value{}, err
			}
		case c < 0x20:
			return Value{}, d.errorAt(d.idx, "raw control character in string")
		default:
			// Multi-byte UTF-8 sequences pass through byte by byte.
			out.WriteByte(c)
			d.idx++
		}
	}
}

func (d *Decoder) decodeEscape(out *strings.Builder) error {
	escStart := d.idx

	d.idx++ // consume backslash

	if d.idx >= len(d.content) {
		return d.errorAt(d.idx, "unexpected end of input")
	}

	c := d.content[d.idx]
	d.idx++

	switch c {
	case '"':
		out.WriteByte('"')
	case '\\':
		out.WriteByte('\\')
	case '/':
		out.WriteByte('/')
	case 'b':
		out.WriteByte('\b')
	case 'f':
		out.WriteByte('\f')
	case 'n':
		out.WriteByte('\n')
	case 'r':
		out.WriteByte('\r')
	case 't':
		out.WriteByte('\t')
	case 'u':
		r, err := d.decodeUnicodeEscape(escStart)
		if err != nil {
			return err
		}

		out.WriteRune(r)
	default:
		return d.errorAt(escStart, "invalid escape character %q", c)
	}

	return nil
}

// decodeUnicodeEscape decodes the hex digits of a \uXXXX escape, pairing a
// high surrogate with an immediately following \uXXXX low surrogate into one
// scalar value. An unpaired surrogate is accepted and decodes to U+FFFD, the
// same permissive policy encoding/json applies.
func (d *Decoder) decodeUnicodeEscape(escStart int) (rune, error) {
	cp, err := d.hex4(escStart)
	if err != nil {
		return 0, err
	}

	if !utf16.IsSurrogate(cp) {
		return cp, nil
	}

	if d.idx+1 < len(d.content) && d.content[d.idx] == '\\' && d.content[d.idx+1] == 'u' {
		next := d.idx
		d.idx += 2

		cp2, err := d.hex4(next)
		if err != nil {
			return 0, err
		}

		if r := utf16.DecodeRune(cp, cp2); r != utf8.RuneError {
			return r, nil
		}

		// Not a matching low surrogate, rewind so the second escape decodes
		// on its own.
		d.idx = next
	}

	return utf8.RuneError, nil
}

// hex4 consumes exactly four hex digits, case-insensitive.
func (d *Decoder) hex4(escStart int) (rune, error) {
	if d.idx+4 > len(d.content) {
		return 0, d.errorAt(escStart, `invalid \u escape`)
	}

	cp, err := strconv.ParseUint(d.content[d.idx:d.idx+4], 16, 32)
	if err != nil {
		return 0, d.errorAt(escStart, `invalid \u escape`)
	}

	d.idx += 4

	return rune(cp), nil
}

// decodeLiteral consumes a run of letters and requires exactly true, false
// or null.
func (d *Decoder) decodeLiteral() (Value, error) {
	start := d.idx

	for d.idx < len(d.content) && isLetter(d.content[d.idx]) {
		d.idx++
	}

	switch word := d.content[start:d.idx]; word {
	case "true":
		return Value{Type: TypeBoolean, Boolean: true}, nil
	case "false":
		return Value{Type: TypeBoolean}, nil
	case "null":
		return Value{Type: TypeNull}, nil
	default:
		return Value{}, d.errorAt(start, "invalid literal %q", word)
	}
}

// decodeNumber enforces the JSON number grammar
// -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)? while scanning. The kind is
// decided by the literal: fraction or exponent makes a float, otherwise the
// value is an integer. Integers beyond the int64 range fall back to float.
func (d *Decoder) decodeNumber() (Value, error) {
	start := d.idx

	if d.content[d.idx] == '-' {
		d.idx++
	}

	intStart := d.idx

	if d.digitRun() == 0 {
		return Value{}, d.errorAt(start, "invalid number literal")
	}

	if d.idx-intStart > 1 && d.content[intStart] == '0' {
		return Value{}, d.errorAt(start, "leading zero in number literal")
	}

	isFloat := false

	if d.idx < len(d.content) && d.content[d.idx] == '.' {
		isFloat = true
		d.idx++

		if d.digitRun() == 0 {
			return Value{}, d.errorAt(start, "invalid number literal")
		}
	}

	if d.idx < len(d.content) && (d.content[d.idx] == 'e' || d.content[d.idx] == 'E') {
		isFloat = true
		d.idx++

		if d.idx < len(d.content) && (d.content[d.idx] == '+' || d.content[d.idx] == '-') {
			d.idx++
		}

		if d.digitRun() == 0 {
			return Value{}, d.errorAt(start, "invalid number literal")
		}
	}

	literal := d.content[start:d.idx]

	if !isFloat {
		i, err := strconv.ParseInt(literal, 10, 64)
		if err == nil {
			return Value{Type: TypeInteger, Int: i}, nil
		}
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return Value{}, d.errorAt(start, "invalid number literal")
	}

	return Value{Type: TypeFloat, Float: f}, nil
}

// digitRun consumes consecutive decimal digits and returns how many.
func (d *Decoder) digitRun() int {
	n := 0

	for d.idx < len(d.content) && d.content[d.idx] >= '0' && d.content[d.idx] <= '9' {
		d.idx++
		n++
	}

	return n
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

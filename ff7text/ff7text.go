// Package ff7text converts between the game's field text encoding and
// readable strings.
//
// Bytes below 0xE0 are glyphs. 0xE0-0xFD are special characters and party
// name placeholders, 0xFE starts a control sequence and 0xFF ends the string.
// Glyphs that clash with the brace notation used for specials and controls
// are escaped with a backslash.
package ff7text

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DecodeError reports a malformed byte sequence.
type DecodeError struct {
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ff7text: %s at offset %d", e.Reason, e.Offset)
}

// Decoder yields the tokens of an encoded buffer one at a time.
type Decoder struct {
	buf []byte
	pos int
	err error
}

func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Reset rewinds the decoder to the start of its buffer.
func (d *Decoder) Reset() {
	d.pos = 0
	d.err = nil
}

// Offset is the position of the next unread byte.
func (d *Decoder) Offset() int {
	return d.pos
}

// Next returns the next decoded token. It returns io.EOF at the end of the
// buffer or after the terminator. A DecodeError is sticky until Reset.
func (d *Decoder) Next() (string, error) {
	if d.err != nil {
		return "", d.err
	}
	if d.pos >= len(d.buf) {
		return "", io.EOF
	}

	start := d.pos
	c := d.buf[d.pos]
	d.pos++

	switch {
	case c == End:
		d.pos = len(d.buf)
		return "", io.EOF

	case c < firstSpecial:
		g := normalGlyphs[c]
		if strings.ContainsRune(escaped, g) {
			return `\` + string(g), nil
		}
		return string(g), nil

	case c == Control:
		return d.control(start)
	}

	s, ok := special[c]
	if !ok {
		return "", d.fail(start, fmt.Sprintf("unknown special character 0x%02X", c))
	}
	if c == newCode {
		return s + "\n", nil
	}
	return s, nil
}

func (d *Decoder) control(start int) (string, error) {
	if d.pos >= len(d.buf) {
		return "", d.fail(start, "spurious control code at end of string")
	}
	k := d.buf[d.pos]
	d.pos++

	switch k {
	case waitCode:
		if d.pos+2 > len(d.buf) {
			return "", d.fail(start, "not enough bytes for WAIT command")
		}
		arg := binary.LittleEndian.Uint16(d.buf[d.pos:])
		d.pos += 2
		return fmt.Sprintf("{WAIT %d}", arg), nil

	case strCode:
		if d.pos+4 > len(d.buf) {
			return "", d.fail(start, "not enough bytes for STR command")
		}
		offset := binary.LittleEndian.Uint16(d.buf[d.pos:])
		length := binary.LittleEndian.Uint16(d.buf[d.pos+2:])
		d.pos += 4
		return fmt.Sprintf("{STR %d %d}", offset, length), nil
	}

	s, ok := control[k]
	if !ok {
		return "", d.fail(start, fmt.Sprintf("illegal control code 0x%02X", k))
	}
	return s, nil
}

func (d *Decoder) fail(offset int, reason string) error {
	d.err = &DecodeError{Offset: offset, Reason: reason}
	return d.err
}

// Decode converts buf up to the first terminator.
func Decode(buf []byte) (string, error) {
	var sb strings.Builder
	d := NewDecoder(buf)
	for {
		tok, err := d.Next()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
		sb.WriteString(tok)
	}
}

// Encode converts decoded text back to bytes and appends the terminator.
// It accepts everything Decode produces.
func Encode(s string) ([]byte, error) {
	rs := []rune(s)
	out := make([]byte, 0, len(rs)+1)

	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch r {
		case '\\':
			if i+1 >= len(rs) {
				return nil, fmt.Errorf("ff7text: dangling escape at end of %q", s)
			}
			i++
			code, ok := glyphCode[rs[i]]
			if !ok {
				return nil, fmt.Errorf("ff7text: no glyph for %q", rs[i])
			}
			out = append(out, code...)

		case '{':
			end := i + 1
			for end < len(rs) && rs[end] != '}' {
				end++
			}
			if end >= len(rs) {
				return nil, fmt.Errorf("ff7text: unterminated token in %q", s)
			}
			code, err := encodeToken(string(rs[i : end+1]))
			if err != nil {
				return nil, err
			}
			out = append(out, code...)
			i = end
			if code[0] == newCode && i+1 < len(rs) && rs[i+1] == '\n' {
				i++
			}

		case '}':
			return nil, fmt.Errorf("ff7text: unbalanced '}' in %q", s)

		default:
			code, ok := glyphCode[r]
			if !ok {
				return nil, fmt.Errorf("ff7text: no glyph for %q", r)
			}
			out = append(out, code...)
		}
	}
	return append(out, End), nil
}

func encodeToken(tok string) ([]byte, error) {
	if code, ok := tokenCode[tok]; ok {
		return code, nil
	}
	fields := strings.Fields(strings.Trim(tok, "{}"))
	args := make([]uint16, 0, 2)
	for _, f := range fields[min(1, len(fields)):] {
		v, err := strconv.ParseUint(f, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("ff7text: bad argument in %s: %w", tok, err)
		}
		args = append(args, uint16(v))
	}
	switch {
	case len(fields) == 2 && fields[0] == "WAIT":
		return binary.LittleEndian.AppendUint16([]byte{Control, waitCode}, args[0]), nil
	case len(fields) == 3 && fields[0] == "STR":
		out := binary.LittleEndian.AppendUint16([]byte{Control, strCode}, args[0])
		return binary.LittleEndian.AppendUint16(out, args[1]), nil
	}
	return nil, fmt.Errorf("ff7text: unknown token %s", tok)
}

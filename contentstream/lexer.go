package contentstream

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/tsawler/textscan/core"
)

// parseNumber parses an integer or real number operand. A lone sign or
// decimal point reads as zero, as most viewers do.
func (p *Parser) parseNumber() (core.Object, error) {
	start := p.pos
	hasDecimal := false

	for p.pos < len(p.data) && (p.data[p.pos] == '+' || p.data[p.pos] == '-') {
		p.pos++
	}
	signEnd := p.pos

	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
		} else if c == '.' && !hasDecimal {
			hasDecimal = true
			p.pos++
		} else {
			break
		}
	}

	digits := string(p.data[signEnd:p.pos])
	if digits == "" || digits == "." {
		return core.Int(0), nil
	}
	negative := bytes.Count(p.data[start:signEnd], []byte{'-'})%2 == 1

	if hasDecimal {
		val, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid real number %q: %w", digits, err)
		}
		if negative {
			val = -val
		}
		return core.Real(val), nil
	}

	val, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		// out of range integers degrade to reals
		f, ferr := strconv.ParseFloat(digits, 64)
		if ferr != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", digits, err)
		}
		if negative {
			f = -f
		}
		return core.Real(f), nil
	}
	if negative {
		val = -val
	}
	return core.Int(val), nil
}

// parseString parses a literal string (...) with escape sequence handling.
func (p *Parser) parseString() (core.Object, error) {
	p.pos++ // skip '('

	var result bytes.Buffer
	depth := 1

	for p.pos < len(p.data) && depth > 0 {
		c := p.data[p.pos]
		p.pos++

		switch c {
		case '\\':
			if p.pos >= len(p.data) {
				break
			}
			next := p.data[p.pos]
			p.pos++
			switch next {
			case 'n':
				result.WriteByte('\n')
			case 'r':
				result.WriteByte('\r')
			case 't':
				result.WriteByte('\t')
			case 'b':
				result.WriteByte('\b')
			case 'f':
				result.WriteByte('\f')
			case '\r':
				// line continuation
				if p.pos < len(p.data) && p.data[p.pos] == '\n' {
					p.pos++
				}
			case '\n':
			case '0', '1', '2', '3', '4', '5', '6', '7':
				octal := int(next - '0')
				for i := 0; i < 2 && p.pos < len(p.data); i++ {
					d := p.data[p.pos]
					if d < '0' || d > '7' {
						break
					}
					octal = octal*8 + int(d-'0')
					p.pos++
				}
				result.WriteByte(byte(octal & 0xFF))
			default:
				// covers \( \) \\ and unknown escapes, which drop the backslash
				result.WriteByte(next)
			}
		case '(':
			depth++
			result.WriteByte(c)
		case ')':
			depth--
			if depth > 0 {
				result.WriteByte(c)
			}
		default:
			result.WriteByte(c)
		}
	}

	if depth != 0 {
		return nil, errors.New("unclosed string")
	}
	return core.String(result.String()), nil
}

// parseHexString parses a hexadecimal string <...>. An odd digit count
// implies a trailing zero; whitespace is ignored.
func (p *Parser) parseHexString() (core.Object, error) {
	p.pos++ // skip '<'

	var result bytes.Buffer
	var hi byte
	half := false

	for p.pos < len(p.data) {
		c := p.data[p.pos]
		p.pos++

		switch {
		case c == '>':
			if half {
				result.WriteByte(hi << 4)
			}
			return core.String(result.String()), nil
		case isWhitespace(c):
		case isHexDigit(c):
			if half {
				result.WriteByte(hi<<4 | hexValue(c))
			} else {
				hi = hexValue(c)
			}
			half = !half
		default:
			if i := bytes.IndexByte(p.data[p.pos:], '>'); i >= 0 {
				p.pos += i + 1
			} else {
				p.pos = len(p.data)
			}
			return nil, fmt.Errorf("invalid hex digit %q", c)
		}
	}
	return nil, errors.New("unclosed hex string")
}

// parseName parses a name object /Name with # escape handling.
func (p *Parser) parseName() (core.Object, error) {
	p.pos++ // skip '/'

	var result bytes.Buffer
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if !isRegular(c) {
			break
		}
		if c == '#' && p.pos+2 < len(p.data) && isHexDigit(p.data[p.pos+1]) && isHexDigit(p.data[p.pos+2]) {
			result.WriteByte(hexValue(p.data[p.pos+1])<<4 | hexValue(p.data[p.pos+2]))
			p.pos += 3
			continue
		}
		result.WriteByte(c)
		p.pos++
	}
	return core.Name(result.String()), nil
}

// parseArray parses an array [...] of operands.
func (p *Parser) parseArray() (core.Object, error) {
	if p.depth >= maxNesting {
		return nil, errTooDeep
	}
	p.depth++
	defer func() { p.depth-- }()

	p.pos++ // skip '['
	arr := core.Array{}

	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, errors.New("unclosed array")
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		obj, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

// parseDict parses a dictionary <<...>>, used by marked-content operators.
func (p *Parser) parseDict() (core.Object, error) {
	if p.depth >= maxNesting {
		return nil, errTooDeep
	}
	p.depth++
	defer func() { p.depth-- }()

	p.pos += 2 // skip '<<'
	dict := make(core.Dict)

	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, errors.New("unclosed dictionary")
		}
		if p.data[p.pos] == '>' && p.pos+1 < len(p.data) && p.data[p.pos+1] == '>' {
			p.pos += 2
			return dict, nil
		}
		if p.data[p.pos] != '/' {
			return nil, errors.New("dictionary key must be a name")
		}
		key, _ := p.parseName()
		value, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		dict[string(key.(core.Name))] = value
	}
}

// isWhitespace reports whether c is a PDF whitespace character.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

// isDelimiter reports whether c is a PDF delimiter character.
func isDelimiter(c byte) bool {
	return c == '(' || c == ')' || c == '<' || c == '>' ||
		c == '[' || c == ']' || c == '{' || c == '}' ||
		c == '/' || c == '%'
}

// isRegular reports whether c can appear in an operator or name.
func isRegular(c byte) bool {
	return !isWhitespace(c) && !isDelimiter(c)
}

func isNumberStart(c byte) bool {
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

// isHexDigit reports whether c is a hexadecimal digit.
func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// hexValue returns the numeric value of a hexadecimal digit.
func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

package contentstream

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/tsawler/textscan/core"
)

// Operation represents a single content stream operation consisting of an
// operator and its operands. Operands are PDF objects that precede the operator.
type Operation struct {
	Operator string        // The operator (e.g., "Tj", "Tm", "q")
	Operands []core.Object // The operands
}

// Source delivers the operations of a content stream in order. Next returns
// io.EOF once the stream is exhausted. Any other error is reported for the
// current position only; the next call resumes after it.
type Source interface {
	Next() (Operation, error)
}

// SyntaxError describes a malformed token. The parser has already moved
// past the offending bytes when it is returned.
type SyntaxError struct {
	Offset int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("content stream offset %d: %v", e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// maxNesting bounds array and dictionary depth inside operands.
const maxNesting = 64

var errTooDeep = errors.New("operand nesting too deep")

// Parser parses PDF content streams into a sequence of operations.
// Each operation consists of an operator and its operands.
type Parser struct {
	data     []byte
	pos      int
	operands []core.Object
	depth    int
}

// NewParser creates a new content stream parser for the given data.
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// Parse parses the whole content stream and returns all operations in
// order. It stops at the first syntax error and returns the operations read
// before it.
func (p *Parser) Parse() ([]Operation, error) {
	ops := make([]Operation, 0)
	for {
		op, err := p.Next()
		if err == io.EOF {
			return ops, nil
		}
		if err != nil {
			return ops, err
		}
		ops = append(ops, op)
	}
}

// Next returns the next operation. Operands left over at the end of the
// stream without an operator are dropped.
func (p *Parser) Next() (Operation, error) {
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			p.operands = p.operands[:0]
			return Operation{}, io.EOF
		}

		start := p.pos
		c := p.data[p.pos]

		if isRegular(c) && !isNumberStart(c) {
			token := p.readToken()
			switch token {
			case "true":
				p.operands = append(p.operands, core.Bool(true))
				continue
			case "false":
				p.operands = append(p.operands, core.Bool(false))
				continue
			case "null":
				p.operands = append(p.operands, core.Null{})
				continue
			case "BI":
				p.operands = p.operands[:0]
				return p.parseInlineImage(start)
			}
			return p.emit(token), nil
		}

		operand, err := p.parseOperand()
		if err != nil {
			if p.pos == start {
				p.pos++
			}
			return Operation{}, &SyntaxError{Offset: start, Err: err}
		}
		p.operands = append(p.operands, operand)
	}
}

// emit creates an operation with the pending operands and clears them.
func (p *Parser) emit(operator string) Operation {
	op := Operation{
		Operator: operator,
		Operands: make([]core.Object, len(p.operands)),
	}
	copy(op.Operands, p.operands)
	p.operands = p.operands[:0]
	return op
}

// readToken reads a run of regular characters.
func (p *Parser) readToken() string {
	start := p.pos
	for p.pos < len(p.data) && isRegular(p.data[p.pos]) {
		p.pos++
	}
	return string(p.data[start:p.pos])
}

// parseInlineImage consumes BI <dict> ID <data> EI and returns it as a
// single BI operation whose operand is the image dictionary. The image
// data is skipped.
func (p *Parser) parseInlineImage(start int) (Operation, error) {
	dict := make(core.Dict)
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return Operation{}, &SyntaxError{Offset: start, Err: errors.New("inline image without ID")}
		}
		if isRegular(p.data[p.pos]) && !isNumberStart(p.data[p.pos]) {
			if tok := p.readToken(); tok == "ID" {
				break
			}
			continue
		}
		key, err := p.parseOperand()
		if err != nil {
			p.pos++
			continue
		}
		name, ok := key.(core.Name)
		if !ok {
			continue
		}
		p.skipWhitespace()
		if p.pos < len(p.data) && isRegular(p.data[p.pos]) && !isNumberStart(p.data[p.pos]) {
			// bare keyword value (true/false) or the ID marker
			save := p.pos
			switch tok := p.readToken(); tok {
			case "true":
				dict[string(name)] = core.Bool(true)
			case "false":
				dict[string(name)] = core.Bool(false)
			default:
				p.pos = save
			}
			continue
		}
		value, err := p.parseOperand()
		if err != nil {
			p.pos++
			continue
		}
		dict[string(name)] = value
	}

	// a single whitespace byte separates ID from the data
	if p.pos < len(p.data) && isWhitespace(p.data[p.pos]) {
		p.pos++
	}
	p.skipImageData()

	return Operation{Operator: "BI", Operands: []core.Object{dict}}, nil
}

// skipImageData advances past the next EI that is preceded by whitespace
// and followed by whitespace or the end of the stream.
func (p *Parser) skipImageData() {
	for i := p.pos; i+1 < len(p.data); i++ {
		if p.data[i] != 'E' || p.data[i+1] != 'I' {
			continue
		}
		if i > p.pos && !isWhitespace(p.data[i-1]) {
			continue
		}
		if i+2 < len(p.data) && !isWhitespace(p.data[i+2]) && !isDelimiter(p.data[i+2]) {
			continue
		}
		p.pos = i + 2
		return
	}
	p.pos = len(p.data)
}

// parseOperand parses a single operand, which can be a number, string, name,
// array or dictionary. Keywords are handled by the caller.
func (p *Parser) parseOperand() (core.Object, error) {
	p.skipWhitespace()

	if p.pos >= len(p.data) {
		return nil, io.ErrUnexpectedEOF
	}

	c := p.data[p.pos]

	switch {
	case isNumberStart(c):
		return p.parseNumber()
	case c == '(':
		return p.parseString()
	case c == '<' && p.pos+1 < len(p.data) && p.data[p.pos+1] == '<':
		return p.parseDict()
	case c == '<':
		return p.parseHexString()
	case c == '/':
		return p.parseName()
	case c == '[':
		return p.parseArray()
	case c == 't' || c == 'f' || c == 'n':
		save := p.pos
		switch p.readToken() {
		case "true":
			return core.Bool(true), nil
		case "false":
			return core.Bool(false), nil
		case "null":
			return core.Null{}, nil
		}
		p.pos = save
	}

	return nil, fmt.Errorf("unexpected character %q", c)
}

// skipWhitespace advances past PDF whitespace characters and comments.
func (p *Parser) skipWhitespace() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == '%' {
			if i := bytes.IndexAny(p.data[p.pos:], "\r\n"); i >= 0 {
				p.pos += i
			} else {
				p.pos = len(p.data)
			}
			continue
		}
		if !isWhitespace(c) {
			return
		}
		p.pos++
	}
}

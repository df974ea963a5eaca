/*
Copyright 2026 the API Check Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/cbt-testing/apicheck/pkg/jsonvalue"
)

// Parse compiles a textual path. A leading "$" is accepted and ignored.
func Parse(expr string) (Path, error) {
	p := &parser{input: expr}

	p.skipSpace()

	if p.peek() == '$' {
		p.pos++

		if p.peek() == '.' {
			p.pos++
		}
	}

	path, err := p.path(false)
	if err != nil {
		return nil, err
	}

	p.skipSpace()

	if !p.done() {
		return nil, p.errorf("unexpected %q", p.peek())
	}

	return path, nil
}

// MustParse is like Parse but panics on error.
func MustParse(expr string) Path {
	path, err := Parse(expr)
	if err != nil {
		panic(err)
	}

	return path
}

type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d in %q", ErrSyntax, fmt.Sprintf(format, args...), p.pos, p.input)
}

func (p *parser) done() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	if p.done() {
		return 0
	}

	return p.input[p.pos]
}

func (p *parser) skipSpace() {
	for !p.done() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
}

// path parses segments until the input ends or, when nested inside a
// filter, until a token that cannot continue a path.
func (p *parser) path(nested bool) (Path, error) {
	var path Path

	first := true

	for !p.done() {
		c := p.peek()

		switch {
		case c == '[':
			segment, err := p.bracket()
			if err != nil {
				return nil, err
			}

			path = append(path, segment)
		case c == '.':
			if first {
				return nil, p.errorf("path cannot start with '.'")
			}

			p.pos++

			if p.peek() == '*' {
				p.pos++
				path = append(path, WildcardSegment{})

				break
			}

			name := p.name()
			if name == "" {
				return nil, p.errorf("expected member name")
			}

			path = append(path, FieldSegment{Name: name})
		case first && c == '*':
			p.pos++
			path = append(path, WildcardSegment{})
		case first && isNameByte(c):
			path = append(path, FieldSegment{Name: p.name()})
		default:
			if nested {
				return path, nil
			}

			return nil, p.errorf("unexpected %q", c)
		}

		first = false
	}

	return path, nil
}

func isNameByte(c byte) bool {
	switch c {
	case '.', '[', ']', '(', ')', '\'', '"', ' ', '\t', '=', '!', 0:
		return false
	}

	return true
}

func (p *parser) name() string {
	start := p.pos

	for !p.done() && isNameByte(p.peek()) {
		p.pos++
	}

	return p.input[start:p.pos]
}

func (p *parser) expect(c byte) error {
	p.skipSpace()

	if p.peek() != c {
		return p.errorf("expected %q", c)
	}

	p.pos++

	return nil
}

func (p *parser) bracket() (Segment, error) {
	p.pos++ // [

	p.skipSpace()

	var segment Segment

	switch c := p.peek(); {
	case c == '*':
		p.pos++

		segment = WildcardSegment{}
	case c == '?':
		p.pos++

		filter, err := p.filter()
		if err != nil {
			return nil, err
		}

		segment = filter
	case c == '\'' || c == '"':
		name, err := p.quoted()
		if err != nil {
			return nil, err
		}

		segment = FieldSegment{Name: name}
	case c == '-' || (c >= '0' && c <= '9'):
		start := p.pos
		p.pos++

		for !p.done() && p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
		}

		index, err := strconv.Atoi(p.input[start:p.pos])
		if err != nil {
			return nil, p.errorf("invalid index %q", p.input[start:p.pos])
		}

		segment = IndexSegment{Index: index}
	default:
		return nil, p.errorf("unexpected %q in brackets", c)
	}

	if err := p.expect(']'); err != nil {
		return nil, err
	}

	return segment, nil
}

func (p *parser) filter() (FilterSegment, error) {
	if err := p.expect('('); err != nil {
		return FilterSegment{}, err
	}

	p.skipSpace()

	if p.peek() == '@' {
		p.pos++

		if p.peek() == '.' {
			p.pos++
		}
	}

	sub, err := p.path(true)
	if err != nil {
		return FilterSegment{}, err
	}

	if len(sub) == 0 {
		return FilterSegment{}, p.errorf("empty filter")
	}

	p.skipSpace()

	segment := FilterSegment{Sub: sub, Op: OpTruthy}

	switch {
	case strings.HasPrefix(p.input[p.pos:], "=="):
		segment.Op = OpEqual
	case strings.HasPrefix(p.input[p.pos:], "!="):
		segment.Op = OpNotEqual
	}

	if segment.Op != OpTruthy {
		p.pos += 2
		p.skipSpace()

		value, err := p.literal()
		if err != nil {
			return FilterSegment{}, err
		}

		segment.Value = value
	}

	if err := p.expect(')'); err != nil {
		return FilterSegment{}, err
	}

	return segment, nil
}

func (p *parser) quoted() (string, error) {
	quote := p.peek()
	p.pos++

	var b strings.Builder

	for !p.done() {
		c := p.peek()
		p.pos++

		switch c {
		case '\\':
			if p.done() {
				return "", p.errorf("unterminated escape")
			}

			if err := p.escape(&b); err != nil {
				return "", err
			}
		case quote:
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}

	return "", p.errorf("unterminated string")
}

//nolint:gochecknoglobals
var escapes = map[byte]byte{
	'b': '\b',
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
}

// escape decodes the JSON escape following a backslash. Any other escaped
// byte, such as a quote, stands for itself.
func (p *parser) escape(b *strings.Builder) error {
	c := p.peek()
	p.pos++

	if c != 'u' {
		if r, ok := escapes[c]; ok {
			c = r
		}

		b.WriteByte(c)

		return nil
	}

	r, err := p.hex()
	if err != nil {
		return err
	}

	if utf16.IsSurrogate(r) && strings.HasPrefix(p.input[p.pos:], `\u`) {
		p.pos += 2

		low, err := p.hex()
		if err != nil {
			return err
		}

		r = utf16.DecodeRune(r, low)
	}

	b.WriteRune(r)

	return nil
}

func (p *parser) hex() (rune, error) {
	if p.pos+4 > len(p.input) {
		return 0, p.errorf("truncated unicode escape")
	}

	n, err := strconv.ParseUint(p.input[p.pos:p.pos+4], 16, 16)
	if err != nil {
		return 0, p.errorf("invalid unicode escape %q", p.input[p.pos:p.pos+4])
	}

	p.pos += 4

	return rune(n), nil
}

// literal parses a filter operand: a quoted string or a bare JSON scalar.
func (p *parser) literal() (jsonvalue.Value, error) {
	if c := p.peek(); c == '\'' || c == '"' {
		s, err := p.quoted()
		if err != nil {
			return jsonvalue.Value{}, err
		}

		return jsonvalue.StringValue(s), nil
	}

	start := p.pos

	for !p.done() && p.peek() != ')' && p.peek() != ' ' {
		p.pos++
	}

	token := p.input[start:p.pos]

	v, err := jsonvalue.Parse([]byte(token))
	if err != nil || v.Kind() == jsonvalue.Array || v.Kind() == jsonvalue.Object {
		return jsonvalue.Value{}, p.errorf("invalid literal %q", token)
	}

	return v, nil
}

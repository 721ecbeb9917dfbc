package convert

import (
	"strconv"
	"strings"
)

// kernSpace is the TJ displacement, in thousandths of a text unit, beyond
// which an adjustment is read as a word gap.
const kernSpace = 200

// TextLines decodes the text-showing operators of a page content stream and
// returns the text as lines. A new line starts on T*, ' and ", on Td/TD with
// a vertical offset, on Tm with a new baseline, and at ET. Strings are taken
// as single-byte encoded; composite font encodings are not mapped.
func TextLines(stream []byte) []string {
	d := &textDecoder{lex: lexer{src: stream}}
	d.run()
	return d.lines
}

type textDecoder struct {
	lex      lexer
	operands []token
	lines    []string
	cur      strings.Builder
	lastY    float64
	haveY    bool
}

func (d *textDecoder) run() {
	for {
		tok, ok := d.lex.next()
		if !ok {
			break
		}
		if tok.kind != tokOperator {
			d.operands = append(d.operands, tok)
			continue
		}
		d.apply(tok.text)
		d.operands = d.operands[:0]
	}
	d.flush()
}

func (d *textDecoder) apply(op string) {
	switch op {
	case "Tj":
		if s, ok := d.operand(0, tokString); ok {
			d.cur.WriteString(s.text)
		}
	case "'":
		d.flush()
		if s, ok := d.operand(0, tokString); ok {
			d.cur.WriteString(s.text)
		}
	case "\"":
		d.flush()
		if s, ok := d.operand(2, tokString); ok {
			d.cur.WriteString(s.text)
		}
	case "TJ":
		if a, ok := d.operand(0, tokArray); ok {
			d.showArray(a.items)
		}
	case "T*":
		d.flush()
	case "Td", "TD":
		if ty, ok := d.number(1); ok && ty != 0 {
			d.flush()
		} else if tx, ok := d.number(0); ok && tx > 0 && d.cur.Len() > 0 {
			d.space()
		}
	case "Tm":
		if y, ok := d.number(5); ok {
			if d.haveY && y != d.lastY {
				d.flush()
			} else if d.cur.Len() > 0 {
				d.space()
			}
			d.lastY, d.haveY = y, true
		}
	case "BT":
		d.haveY = false
	case "ET":
		d.flush()
	}
}

func (d *textDecoder) showArray(items []token) {
	for _, it := range items {
		switch it.kind {
		case tokString:
			d.cur.WriteString(it.text)
		case tokNumber:
			if n, err := strconv.ParseFloat(it.text, 64); err == nil && n < -kernSpace {
				d.space()
			}
		}
	}
}

// operand returns the i-th operand of the current operator.
func (d *textDecoder) operand(i int, kind tokenKind) (token, bool) {
	if i >= len(d.operands) {
		return token{}, false
	}
	t := d.operands[i]
	return t, t.kind == kind
}

func (d *textDecoder) number(i int) (float64, bool) {
	t, ok := d.operand(i, tokNumber)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(t.text, 64)
	return n, err == nil
}

func (d *textDecoder) space() {
	s := d.cur.String()
	if s != "" && !strings.HasSuffix(s, " ") {
		d.cur.WriteByte(' ')
	}
}

func (d *textDecoder) flush() {
	line := strings.TrimSpace(d.cur.String())
	d.cur.Reset()
	if line != "" {
		d.lines = append(d.lines, line)
	}
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokString
	tokName
	tokArray
	tokDict
	tokOperator
)

type token struct {
	kind  tokenKind
	text  string
	items []token
}

// lexer splits a content stream into PDF tokens.
type lexer struct {
	src []byte
	pos int
}

func isWhite(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (l *lexer) skip() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isWhite(c) {
			l.pos++
			continue
		}
		if c == '%' {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' && l.src[l.pos] != '\r' {
				l.pos++
			}
			continue
		}
		return
	}
}

// maxArrayDepth bounds array nesting. Deeper arrays are skipped whole; text
// operators never take nested arrays.
const maxArrayDepth = 64

func (l *lexer) next() (token, bool) {
	return l.token(0)
}

// token reads the next token inside depth enclosing arrays. Stray closing
// delimiters and unknown bytes are skipped.
func (l *lexer) token(depth int) (token, bool) {
	for {
		l.skip()
		if l.pos >= len(l.src) {
			return token{}, false
		}

		c := l.src[l.pos]
		switch {
		case c == '(':
			l.pos++
			return token{kind: tokString, text: l.literal()}, true
		case c == '<' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '<':
			l.pos += 2
			l.skipDict()
			return token{kind: tokDict}, true
		case c == '<':
			l.pos++
			return token{kind: tokString, text: l.hex()}, true
		case c == '[':
			l.pos++
			if depth >= maxArrayDepth {
				l.skipArray()
				return token{kind: tokArray}, true
			}
			return l.array(depth + 1), true
		case c == '/':
			l.pos++
			return token{kind: tokName, text: l.regular()}, true
		case c == ']' || c == ')' || c == '>' || c == '{' || c == '}':
			l.pos++
			continue
		}

		word := l.regular()
		if word == "" {
			l.pos++
			continue
		}
		if _, err := strconv.ParseFloat(word, 64); err == nil {
			return token{kind: tokNumber, text: word}, true
		}
		if word == "BI" {
			l.skipInlineImage()
		}
		return token{kind: tokOperator, text: word}, true
	}
}

// array reads the items of an array; the opening bracket is consumed.
func (l *lexer) array(depth int) token {
	var items []token
	for {
		l.skip()
		if l.pos >= len(l.src) {
			break
		}
		if l.src[l.pos] == ']' {
			l.pos++
			break
		}
		t, ok := l.token(depth)
		if !ok {
			break
		}
		items = append(items, t)
	}
	return token{kind: tokArray, items: items}
}

// skipArray moves past an array body, nested arrays included; the opening
// bracket is consumed.
func (l *lexer) skipArray() {
	depth := 1
	for l.pos < len(l.src) && depth > 0 {
		switch l.src[l.pos] {
		case '[':
			depth++
			l.pos++
		case ']':
			depth--
			l.pos++
		case '(':
			l.pos++
			l.literal()
		default:
			l.pos++
		}
	}
}

func (l *lexer) regular() string {
	start := l.pos
	for l.pos < len(l.src) && !isWhite(l.src[l.pos]) && !isDelim(l.src[l.pos]) {
		l.pos++
	}
	return string(l.src[start:l.pos])
}

// literal reads a (string) body; the opening parenthesis is consumed.
func (l *lexer) literal() string {
	var sb strings.Builder
	depth := 1
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		l.pos++
		switch c {
		case '(':
			depth++
			sb.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return latin1(sb.String())
			}
			sb.WriteByte(c)
		case '\\':
			if l.pos >= len(l.src) {
				break
			}
			e := l.src[l.pos]
			l.pos++
			switch e {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			case '\r':
				if l.pos < len(l.src) && l.src[l.pos] == '\n' {
					l.pos++
				}
			case '\n':
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for k := 0; k < 2 && l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '7'; k++ {
						v = v*8 + int(l.src[l.pos]-'0')
						l.pos++
					}
					sb.WriteByte(byte(v))
				} else {
					sb.WriteByte(e)
				}
			}
		default:
			sb.WriteByte(c)
		}
	}
	return latin1(sb.String())
}

// hex reads a <hex string> body; the opening bracket is consumed.
func (l *lexer) hex() string {
	var digits []byte
	for l.pos < len(l.src) && l.src[l.pos] != '>' {
		c := l.src[l.pos]
		if !isWhite(c) {
			digits = append(digits, c)
		}
		l.pos++
	}
	l.pos++ // '>'
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}

	out := make([]byte, 0, len(digits)/2)
	for i := 0; i+1 < len(digits); i += 2 {
		v, err := strconv.ParseUint(string(digits[i:i+2]), 16, 8)
		if err != nil {
			continue
		}
		out = append(out, byte(v))
	}
	return latin1(string(out))
}

func (l *lexer) skipDict() {
	depth := 1
	for l.pos+1 < len(l.src) && depth > 0 {
		switch {
		case l.src[l.pos] == '<' && l.src[l.pos+1] == '<':
			depth++
			l.pos += 2
		case l.src[l.pos] == '>' && l.src[l.pos+1] == '>':
			depth--
			l.pos += 2
		case l.src[l.pos] == '(':
			l.pos++
			l.literal()
		default:
			l.pos++
		}
	}
	if depth > 0 {
		l.pos = len(l.src)
	}
}

// skipInlineImage moves past inline image data up to and including EI.
func (l *lexer) skipInlineImage() {
	for l.pos+2 < len(l.src) {
		if isWhite(l.src[l.pos]) && l.src[l.pos+1] == 'E' && l.src[l.pos+2] == 'I' &&
			(l.pos+3 == len(l.src) || isWhite(l.src[l.pos+3])) {
			l.pos += 3
			return
		}
		l.pos++
	}
	l.pos = len(l.src)
}

// latin1 maps single-byte text to UTF-8, dropping control characters other
// than tab.
func latin1(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == '\t':
			sb.WriteByte(' ')
		case b == '\n' || b == '\r':
			sb.WriteByte(' ')
		case b < 0x20 || b == 0x7f:
		default:
			sb.WriteRune(rune(b))
		}
	}
	return sb.String()
}

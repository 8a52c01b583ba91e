// Package scanner implements the single-pass, index-driven scanner of
// spec.md §4.1: source text in, an ordered token sequence out, with
// unrecognized characters reported through the shared reporter rather than
// aborting the scan.
package scanner

import (
	"strconv"
	"strings"

	"github.com/tronlang/tron/lang/reporter"
	"github.com/tronlang/tron/lang/token"
)

// Scanner tokenizes a single source file. It is not safe for concurrent use.
type Scanner struct {
	src []byte
	rep *reporter.Reporter

	sb   strings.Builder
	cur  byte // current byte, 0 at end of input
	off  int  // offset of cur in src
	roff int  // offset following cur
	line int  // 1-indexed line of cur

	// illegal accumulates unrecognized-character diagnostics as they're
	// encountered; they're flushed together the first time Scan reaches
	// end-of-input (spec.md §4.1: "the scanner appends an error string to an
	// accumulator and continues; at end-of-input, accumulated errors are
	// reported together"), not reported one at a time as they occur.
	illegal        []illegalChar
	flushedIllegal bool
}

type illegalChar struct {
	line int
	ch   string
}

// New returns a Scanner over src. Diagnostics encountered while scanning are
// sent to rep (spec.md §4.8); rep must not be nil.
func New(src []byte, rep *reporter.Reporter) *Scanner {
	s := &Scanner{src: src, rep: rep, line: 1}
	s.advance()
	return s
}

func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = 0
		return
	}
	if s.cur == '\n' {
		s.line++
	}
	s.off = s.roff
	s.cur = s.src[s.roff]
	s.roff++
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) atEnd() bool { return s.off >= len(s.src) }

func (s *Scanner) advanceIf(b byte) bool {
	if s.cur == b {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token and its value. It returns token.EOF
// (repeatedly) once the source is exhausted.
func (s *Scanner) Scan() (token.Token, token.Value) {
	s.skipWhitespaceAndComments()

	line := s.line
	if s.atEnd() {
		s.flushIllegal()
		return token.EOF, token.Value{Line: line}
	}

	cur := s.cur
	switch {
	case isLetter(cur):
		lit := s.identifier()
		tok := token.LookupIdent(lit)
		return tok, token.Value{Raw: lit, Line: line}
	case isDigit(cur) || (cur == '.' && isDigit(s.peek())):
		return s.number(line)
	case cur == '"' || cur == '\'':
		return s.stringLiteral(cur, line)
	}

	s.advance()
	switch cur {
	case '(':
		return token.LPAREN, token.Value{Raw: "(", Line: line}
	case ')':
		return token.RPAREN, token.Value{Raw: ")", Line: line}
	case '{':
		return token.LBRACE, token.Value{Raw: "{", Line: line}
	case '}':
		return token.RBRACE, token.Value{Raw: "}", Line: line}
	case '[':
		return token.LBRACK, token.Value{Raw: "[", Line: line}
	case ']':
		return token.RBRACK, token.Value{Raw: "]", Line: line}
	case ',':
		return token.COMMA, token.Value{Raw: ",", Line: line}
	case ';':
		return token.SEMI, token.Value{Raw: ";", Line: line}
	case ':':
		return token.COLON, token.Value{Raw: ":", Line: line}
	case '.':
		return token.DOT, token.Value{Raw: ".", Line: line}
	case '@':
		return token.AT, token.Value{Raw: "@", Line: line}
	case '*':
		return token.STAR, token.Value{Raw: "*", Line: line}
	case '/':
		return token.SLASH, token.Value{Raw: "/", Line: line}
	case '%':
		return token.PERCENT, token.Value{Raw: "%", Line: line}
	case '^':
		return token.CARET, token.Value{Raw: "^", Line: line}
	case '|':
		if s.advanceIf('|') {
			return token.PIPE_PIPE, token.Value{Raw: "||", Line: line}
		}
		return token.PIPE, token.Value{Raw: "|", Line: line}
	case '&':
		if s.advanceIf('&') {
			return token.AMP_AMP, token.Value{Raw: "&&", Line: line}
		}
		s.reportIllegal(line, "&")
		return token.ILLEGAL, token.Value{Raw: "&", Line: line}
	case '+':
		if s.advanceIf('+') {
			return token.PLUS_PLUS, token.Value{Raw: "++", Line: line}
		}
		return token.PLUS, token.Value{Raw: "+", Line: line}
	case '-':
		if s.advanceIf('-') {
			return token.MINUS_MINUS, token.Value{Raw: "--", Line: line}
		}
		return token.MINUS, token.Value{Raw: "-", Line: line}
	case '!':
		if s.advanceIf('=') {
			return token.BANG_EQ, token.Value{Raw: "!=", Line: line}
		}
		return token.BANG, token.Value{Raw: "!", Line: line}
	case '=':
		if s.advanceIf('=') {
			return token.EQ_EQ, token.Value{Raw: "==", Line: line}
		}
		return token.EQ, token.Value{Raw: "=", Line: line}
	case '<':
		if s.advanceIf('=') {
			return token.LE, token.Value{Raw: "<=", Line: line}
		}
		return token.LT, token.Value{Raw: "<", Line: line}
	case '>':
		if s.advanceIf('=') {
			return token.GE, token.Value{Raw: ">=", Line: line}
		}
		return token.GT, token.Value{Raw: ">", Line: line}
	default:
		s.reportIllegal(line, string(cur))
		return token.ILLEGAL, token.Value{Raw: string(cur), Line: line}
	}
}

// reportIllegal appends an unrecognized-character diagnostic to the
// accumulator instead of reporting it immediately (spec.md §4.1, §7).
func (s *Scanner) reportIllegal(line int, ch string) {
	s.illegal = append(s.illegal, illegalChar{line: line, ch: ch})
}

// flushIllegal reports every accumulated unrecognized-character diagnostic
// the first time Scan reaches end-of-input. Scan returns token.EOF
// repeatedly once exhausted, so flushedIllegal guards against reporting the
// same batch again on a later call.
func (s *Scanner) flushIllegal() {
	if s.flushedIllegal {
		return
	}
	s.flushedIllegal = true
	for _, ic := range s.illegal {
		s.rep.Report(reporter.E1002, ic.line, ic.ch)
	}
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case s.cur == ' ' || s.cur == '\t' || s.cur == '\r' || s.cur == '\n':
			s.advance()
		case s.cur == '/' && s.peek() == '/':
			for s.cur != '\n' && !s.atEnd() {
				s.advance()
			}
		default:
			return
		}
	}
}

func (s *Scanner) identifier() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) number(line int) (token.Token, token.Value) {
	start := s.off
	for isDigit(s.cur) {
		s.advance()
	}
	if s.cur == '.' && isDigit(s.peek()) {
		s.advance()
		for isDigit(s.cur) {
			s.advance()
		}
	}
	lit := string(s.src[start:s.off])
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		s.rep.Report(reporter.E1003, line, lit)
	}
	return token.NUMBER, token.Value{Raw: lit, Line: line, Float: f}
}

func (s *Scanner) stringLiteral(quote byte, line int) (token.Token, token.Value) {
	s.advance() // consume opening quote
	s.sb.Reset()
	for {
		if s.atEnd() {
			s.rep.Report(reporter.E1001, line)
			return token.STRING, token.Value{Raw: s.sb.String(), Line: line, String: s.sb.String()}
		}
		if s.cur == quote {
			s.advance()
			break
		}
		s.sb.WriteByte(s.cur)
		s.advance()
	}
	return token.STRING, token.Value{Raw: s.sb.String(), Line: line, String: s.sb.String()}
}

func isLetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || b == '_'
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

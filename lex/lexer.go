// Package lex is the Lexer for filter expressions.  The rules of the
// language live in a Dialect, the Lexer is a state-function scanner that
// walks those rules emitting Tokens.
package lex

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	u "github.com/araddon/gou"
)

var (
	// Trace is a global var to turn on tracing.  can be turned out with env
	// variable "lextrace=true"
	//
	//     export lextrace=true
	Trace bool
)

func init() {
	if t := os.Getenv("lextrace"); t != "" {
		Trace = true
	}
}

func debugf(f string, args ...interface{}) {
	if Trace {
		u.DoLog(3, u.DEBUG, fmt.Sprintf(f, args...))
	}
}

const (
	eof       = -1
	decDigits = "0123456789"
)

// StateFn represents the state of the lexer as a function that returns the
// next state.
type StateFn func(*Lexer) StateFn

// LexError is returned when no rule of the dialect matches the remaining
// input.
type LexError struct {
	Input  string
	Pos    int // byte offset of the unmatched input
	Line   int
	Column int
}

func (e *LexError) Near() string {
	if e.Pos >= len(e.Input) {
		return ""
	}
	near := e.Input[e.Pos:]
	if len(near) > 20 {
		near = near[:20]
	}
	return near
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex: unrecognized input at line %d column %d near %q", e.Line, e.Column, e.Near())
}

// NewLexer Creates a new lexer for the input string
func NewLexer(input string, dialect *Dialect) *Lexer {
	dialect.Init()
	l := &Lexer{
		input:   input,
		state:   LexExpression,
		tokens:  make(chan Token, 1),
		dialect: dialect,
	}
	return l
}

// NewFilterLexer creates a new lexer for the input string using FilterDialect.
func NewFilterLexer(input string) *Lexer {
	return NewLexer(input, FilterDialect)
}

// Tokenize lexes the whole input with the FilterDialect.  The returned
// tokens always end with a TokenEOF.
func Tokenize(input string) ([]Token, error) {
	l := NewFilterLexer(input)
	tokens := make([]Token, 0, 8)
	for {
		tok := l.NextToken()
		switch tok.T {
		case TokenError:
			return nil, l.Err()
		case TokenEOF:
			return append(tokens, tok), nil
		}
		tokens = append(tokens, tok)
	}
}

// Lexer holds the state of the lexical scanning.
//
// Holds a *Dialect* which gives the ordered rules of this language.
//
// many-generations removed from that Based on the lexer from the "text/template" package.
// See http://www.youtube.com/watch?v=HxaD_trXwRE
type Lexer struct {
	input   string     // the string being scanned
	state   StateFn    // the next lexing function to enter
	pos     int        // current position in the input
	start   int        // start position of this token
	width   int        // width of last rune read from input
	tokens  chan Token // channel of scanned tokens we output on
	dialect *Dialect   // Dialect is the syntax-rules of this language
	err     *LexError  // set once a TokenError has been emitted
}

// NextToken returns the next token from the input.  Once the input is
// exhausted, or after a TokenError, it keeps returning TokenEOF.
func (l *Lexer) NextToken() Token {
	for {
		select {
		case token := <-l.tokens:
			return token
		default:
			if l.state == nil {
				return Token{T: TokenEOF, V: "", Pos: len(l.input)}
			}
			l.state = l.state(l)
		}
	}
}

// Err is the lex error, if a TokenError was emitted.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

// Next returns the next rune in the input
func (l *Lexer) Next() (r rune) {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.width
	return r
}

// Peek returns but does not consume the next rune in the input.
func (l *Lexer) Peek() rune {
	r := l.Next()
	l.backup()
	return r
}

// PeekX grab the next x characters without consuming
func (l *Lexer) PeekX(x int) string {
	if l.pos+x > len(l.input) {
		return l.input[l.pos:]
	}
	return l.input[l.pos : l.pos+x]
}

// backup steps back one rune. Can only be called once per call of next.
func (l *Lexer) backup() {
	l.pos -= l.width
}

// reset moves back to a previous position, used by scanners that fail
// part way through a lexeme.
func (l *Lexer) reset(pos int) {
	l.pos = pos
	l.width = 0
}

// IsEnd have we consumed all input?
func (l *Lexer) IsEnd() bool {
	return l.pos >= len(l.input)
}

// Emit passes an token back to the client.
func (l *Lexer) Emit(t TokenType) {
	l.emitValue(t, l.input[l.start:l.pos])
}

func (l *Lexer) emitValue(t TokenType, v string) {
	debugf("emit: %s  '%s' start=%d pos=%d", t, v, l.start, l.pos)
	line, col := l.lineColumn(l.start)
	l.tokens <- Token{T: t, V: v, Pos: l.start, Line: line, Column: col}
	l.start = l.pos
}

// ignore skips over the pending input before this point.
func (l *Lexer) ignore() {
	l.start = l.pos
}

// accept consumes the next rune if it's from the valid set.
func (l *Lexer) accept(valid string) bool {
	if strings.IndexRune(valid, l.Next()) >= 0 {
		return true
	}
	l.backup()
	return false
}

// acceptRun consumes a run of runes from the valid set.
func (l *Lexer) acceptRun(valid string) bool {
	pos := l.pos
	for strings.IndexRune(valid, l.Next()) >= 0 {
	}
	l.backup()
	return l.pos > pos
}

// tryMatch consumes the literal text if the input continues with it,
// case sensitive.  Does not advance the input if the text was not matched.
func (l *Lexer) tryMatch(matchTo string) bool {
	if !strings.HasPrefix(l.input[l.pos:], matchTo) {
		return false
	}
	l.pos += len(matchTo)
	return true
}

// lineColumn reports the 1 based line and column of a byte offset.
func (l *Lexer) lineColumn(pos int) (int, int) {
	if pos > len(l.input) {
		pos = len(l.input)
	}
	line := 1 + strings.Count(l.input[:pos], "\n")
	col := pos + 1
	if nl := strings.LastIndex(l.input[:pos], "\n"); nl >= 0 {
		col = pos - nl
	}
	return line, col
}

// errorf records a LexError at the current token start, emits a TokenError
// and terminates the scan by passing back a nil state.
func (l *Lexer) errorf(format string, args ...interface{}) StateFn {
	line, col := l.lineColumn(l.start)
	l.err = &LexError{Input: l.input, Pos: l.start, Line: line, Column: col}
	debugf("lex error: %s  %v", fmt.Sprintf(format, args...), l.err)
	l.tokens <- Token{T: TokenError, V: l.err.Error(), Pos: l.start, Line: line, Column: col}
	return nil
}

// matchRule tries a single rule at the current position.
func (l *Lexer) matchRule(r *Rule) bool {
	if r.Scan != nil {
		return r.Scan(l)
	}
	pos := l.pos
	if !l.tryMatch(r.Match) {
		return false
	}
	if r.Keyword && isWordRune(l.Peek()) {
		// android is an identity, not "and" + "roid"
		l.reset(pos)
		return false
	}
	return true
}

// LexExpression is the single state of the filter lexer: try each dialect
// rule in order at the current position and emit the first match.
func LexExpression(l *Lexer) StateFn {
	if l.IsEnd() {
		l.Emit(TokenEOF)
		return nil
	}
	for _, r := range l.dialect.Rules {
		if !l.matchRule(r) {
			continue
		}
		switch {
		case r.Skip:
			l.ignore()
		case r.Unquote:
			raw := l.input[l.start:l.pos]
			l.emitValue(r.Token, raw[1:len(raw)-1])
		default:
			l.Emit(r.Token)
		}
		return LexExpression
	}
	return l.errorf("no rule matches %q", l.PeekX(10))
}

// Scanners -------------------------------------------------------------------

func scanWhiteSpace(l *Lexer) bool {
	pos := l.pos
	for r := l.Next(); unicode.IsSpace(r); r = l.Next() {
	}
	l.backup()
	return l.pos > pos
}

// scanNumber   212, 212.321
//
// No sign, unary minus is an operator.  A number must not run straight into
// a word rune:  12abc is not a number.
func scanNumber(l *Lexer) bool {
	pos := l.pos
	if !l.acceptRun(decDigits) {
		return false
	}
	mark := l.pos
	if l.accept(".") {
		if !l.acceptRun(decDigits) {
			// "12." the dot is not part of the number
			l.reset(mark)
		}
	}
	if isWordRune(l.Peek()) {
		l.reset(pos)
		return false
	}
	return true
}

// scanIdentity   favorites.color, height, some.Symbol22
func scanIdentity(l *Lexer) bool {
	if !isAsciiLetter(l.Peek()) {
		return false
	}
	for r := l.Next(); isIdentityRune(r); r = l.Next() {
	}
	l.backup()
	return true
}

// scanString   "o.+"    no escapes, so a string can not contain a quote.
func scanString(l *Lexer) bool {
	pos := l.pos
	if !l.accept(`"`) {
		return false
	}
	end := strings.IndexByte(l.input[l.pos:], '"')
	if end < 0 {
		l.reset(pos)
		return false
	}
	l.pos += end + 1
	return true
}

// Helpers --------------------------------------------------------------------

func isAsciiLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isWordRune is a regex \w rune
func isWordRune(r rune) bool {
	return isAsciiLetter(r) || isDigit(r) || r == '_'
}

// isIdentityRune may this rune continue an identity
func isIdentityRune(r rune) bool {
	return isWordRune(r) || r == '.'
}

// IsValidIdentity is the given string a single field-path identity
func IsValidIdentity(identity string) bool {
	if identity == "" || !isAsciiLetter(rune(identity[0])) {
		return false
	}
	for _, r := range identity {
		if !isIdentityRune(r) {
			return false
		}
	}
	return true
}
